// Package render turns a stored service record into a static, read-only
// sheet layout. It is a pure transform: no state, no store access; the
// handler serializes whatever comes back.
package render

import (
	"fmt"
	"strings"

	"go-taller-records/internal/model"
)

type FieldKind string

const (
	KindText  FieldKind = "text"
	KindCheck FieldKind = "check"
	KindSiNo  FieldKind = "si_no"
)

// Field is one rendered, always-disabled form field.
type Field struct {
	Key      string    `json:"key"`
	Label    string    `json:"label"`
	Kind     FieldKind `json:"kind"`
	Value    string    `json:"value,omitempty"`    // text kind, verbatim with "" fallback
	Checked  bool      `json:"checked"`            // check kind
	Selected string    `json:"selected,omitempty"` // si_no kind: "SI", "NO" or ""
	ReadOnly bool      `json:"read_only"`
}

type Section struct {
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// SheetLayout is the full rendered sheet. Notice is set instead of
// sections when the area has no configured layout.
type SheetLayout struct {
	Area     string    `json:"area"`
	Title    string    `json:"title"`
	Sections []Section `json:"sections,omitempty"`
	Notice   string    `json:"notice,omitempty"`
}

// Sheet selects the fixed layout for the area and echoes the stored field
// values into it. An unrecognized area yields a single notice.
func Sheet(fields map[string]interface{}, area model.ServiceArea) SheetLayout {
	switch area {
	case model.AreaHardware:
		return hardwareSheet(fields)
	case model.AreaSoftware:
		return softwareSheet(fields)
	case model.AreaElectronics:
		return electronicsSheet(fields)
	case model.AreaTesting:
		return testingSheet(fields)
	default:
		return SheetLayout{
			Area:   string(area),
			Notice: "Área no configurada",
		}
	}
}

func hardwareSheet(fields map[string]interface{}) SheetLayout {
	sheet := SheetLayout{Area: string(model.AreaHardware), Title: "Servicio de Hardware"}
	sheet.Sections = append(sheet.Sections, Section{
		Title: "Diagnóstico",
		Fields: []Field{
			checkField(fields, "enciende", "Equipo enciende"),
			checkField(fields, "danioFisico", "Daño físico visible"),
			textField(fields, "componentesRevisados", "Componentes revisados"),
			textField(fields, "diagnostico", "Diagnóstico"),
			siNoField(fields, "reparable", "Reparable"),
		},
	})
	// Parts subsection only renders when the technician flagged the need.
	if boolValue(fields, "requiereRepuestos") {
		sheet.Sections = append(sheet.Sections, Section{
			Title: "Repuestos",
			Fields: []Field{
				checkField(fields, "requiereRepuestos", "Requiere repuestos"),
				textField(fields, "repuestos", "Repuestos solicitados"),
				textField(fields, "costoEstimado", "Costo estimado"),
			},
		})
	}
	sheet.Sections = append(sheet.Sections, observationsSection(fields))
	return sheet
}

func softwareSheet(fields map[string]interface{}) SheetLayout {
	sheet := SheetLayout{Area: string(model.AreaSoftware), Title: "Servicio de Software"}
	sheet.Sections = append(sheet.Sections, Section{
		Title: "Sistema",
		Fields: []Field{
			textField(fields, "sistemaOperativo", "Sistema operativo"),
			siNoField(fields, "licenciaOriginal", "Licencia original"),
			textField(fields, "programasInstalados", "Programas instalados"),
			checkField(fields, "respaldoRealizado", "Respaldo realizado"),
		},
	})
	if boolValue(fields, "respaldoRealizado") {
		sheet.Sections = append(sheet.Sections, Section{
			Title: "Respaldo",
			Fields: []Field{
				textField(fields, "ubicacionRespaldo", "Ubicación del respaldo"),
				textField(fields, "tamanioRespaldo", "Tamaño"),
			},
		})
	}
	sheet.Sections = append(sheet.Sections, observationsSection(fields))
	return sheet
}

func electronicsSheet(fields map[string]interface{}) SheetLayout {
	sheet := SheetLayout{Area: string(model.AreaElectronics), Title: "Servicio de Electrónica"}
	sheet.Sections = append(sheet.Sections, Section{
		Title: "Medición",
		Fields: []Field{
			textField(fields, "voltajeEntrada", "Voltaje de entrada"),
			textField(fields, "voltajeSalida", "Voltaje de salida"),
			checkField(fields, "cortoCircuito", "Corto circuito detectado"),
			textField(fields, "componenteDaniado", "Componente dañado"),
			siNoField(fields, "reparable", "Reparable"),
		},
	})
	if boolValue(fields, "cortoCircuito") {
		sheet.Sections = append(sheet.Sections, Section{
			Title: "Detalle del Corto",
			Fields: []Field{
				textField(fields, "zonaAfectada", "Zona afectada"),
				textField(fields, "componentesReemplazar", "Componentes a reemplazar"),
			},
		})
	}
	sheet.Sections = append(sheet.Sections, observationsSection(fields))
	return sheet
}

func testingSheet(fields map[string]interface{}) SheetLayout {
	sheet := SheetLayout{Area: string(model.AreaTesting), Title: "Control de Pruebas"}
	sheet.Sections = append(sheet.Sections, Section{
		Title: "Pruebas",
		Fields: []Field{
			checkField(fields, "pruebasFuncionales", "Pruebas funcionales ejecutadas"),
			textField(fields, "tiempoPrueba", "Tiempo de prueba"),
			siNoField(fields, "aprobado", "Aprobado"),
		},
	})
	if boolValue(fields, "pruebasFuncionales") {
		sheet.Sections = append(sheet.Sections, Section{
			Title: "Resultados",
			Fields: []Field{
				textField(fields, "resultado", "Resultado"),
				textField(fields, "fallasEncontradas", "Fallas encontradas"),
			},
		})
	}
	sheet.Sections = append(sheet.Sections, observationsSection(fields))
	return sheet
}

func observationsSection(fields map[string]interface{}) Section {
	return Section{
		Title: "Observaciones",
		Fields: []Field{
			textField(fields, "observaciones", "Observaciones"),
		},
	}
}

func textField(fields map[string]interface{}, key, label string) Field {
	return Field{Key: key, Label: label, Kind: KindText, Value: textValue(fields, key), ReadOnly: true}
}

func checkField(fields map[string]interface{}, key, label string) Field {
	return Field{Key: key, Label: label, Kind: KindCheck, Checked: boolValue(fields, key), ReadOnly: true}
}

func siNoField(fields map[string]interface{}, key, label string) Field {
	return Field{Key: key, Label: label, Kind: KindSiNo, Selected: siNoValue(fields, key), ReadOnly: true}
}

func textValue(fields map[string]interface{}, key string) string {
	value, ok := fields[key]
	if !ok || value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}

func boolValue(fields map[string]interface{}, key string) bool {
	value, ok := fields[key]
	if !ok {
		return false
	}
	b, _ := value.(bool)
	return b
}

// siNoValue normalizes the stored tri-state to "SI", "NO" or unset.
func siNoValue(fields map[string]interface{}, key string) string {
	value, ok := fields[key]
	if !ok || value == nil {
		return ""
	}
	switch strings.ToUpper(strings.TrimSpace(fmt.Sprintf("%v", value))) {
	case "SI", "SÍ":
		return "SI"
	case "NO":
		return "NO"
	default:
		return ""
	}
}
