package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go-taller-records/internal/model"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Compras"

// The 14 fixed report columns. Columns E..M hold item-level values,
// newline-joined across the record's items.
var exportHeaders = []string{
	"Fecha", "Proveedor", "Tipo Comprobante", "N° Comprobante",
	"Cantidad", "Descripción", "P. Unitario", "Importe",
	"N° Informe Técnico", "Boleta Física", "Factura Electrónica",
	"Boleta Electrónica", "Observación", "Total",
}

var exportColWidths = []float64{12, 28, 18, 16, 10, 35, 12, 12, 16, 14, 16, 16, 30, 12}

// ExportFileName embeds the generation date in the download name.
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("Compras_%s.xlsx", now.Format("2006-01-02"))
}

// BuildPurchaseWorkbook renders the filtered subset as a spreadsheet:
// title, generation timestamp, the echoed filter block, the aggregate
// total, then one row per record with item columns newline-joined.
// The builder reads nothing beyond its arguments.
func BuildPurchaseWorkbook(records []model.PurchaseRecord, f Filters, generatedAt time.Time) (*excelize.File, error) {
	file := excelize.NewFile()
	if err := file.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	titleStyle, err := file.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	generatedStyle, err := file.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Italic: true, Color: "#808080"},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}
	labelStyle, err := file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, err
	}
	headerStyle, err := file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#D9E1F2"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return nil, err
	}
	dataStyle, err := file.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})
	if err != nil {
		return nil, err
	}

	lastCol := colName(len(exportHeaders) - 1) // "N"

	// Title and generation timestamp
	file.SetCellValue(exportSheet, "A1", "REGISTRO DE COMPRAS")
	file.MergeCell(exportSheet, "A1", lastCol+"1")
	file.SetCellStyle(exportSheet, "A1", lastCol+"1", titleStyle)
	file.SetCellValue(exportSheet, "A2", "Generado: "+generatedAt.Format("02/01/2006 15:04"))
	file.MergeCell(exportSheet, "A2", lastCol+"2")
	file.SetCellStyle(exportSheet, "A2", lastCol+"2", generatedStyle)

	// Applied-filters block. Labels span A:C, values span the rest.
	filterRows := []struct {
		label string
		value string
	}{
		{"Tipo de Comprobante", voucherFilterLabel(f.VoucherType)},
		{"Fecha Inicio", orDash(f.DateStart)},
		{"Fecha Fin", orDash(f.DateEnd)},
		{"Búsqueda", orDash(strings.TrimSpace(f.Search))},
	}
	row := 4
	for _, fr := range filterRows {
		labelRef := fmt.Sprintf("A%d", row)
		labelEnd := fmt.Sprintf("C%d", row)
		valueRef := fmt.Sprintf("D%d", row)
		valueEnd := fmt.Sprintf("%s%d", lastCol, row)
		file.SetCellValue(exportSheet, labelRef, fr.label)
		file.MergeCell(exportSheet, labelRef, labelEnd)
		file.SetCellStyle(exportSheet, labelRef, labelEnd, labelStyle)
		file.SetCellValue(exportSheet, valueRef, fr.value)
		file.MergeCell(exportSheet, valueRef, valueEnd)
		row++
	}

	// Aggregate total of the visible subset
	file.SetCellValue(exportSheet, "A8", "TOTAL GENERAL")
	file.MergeCell(exportSheet, "A8", "C8")
	file.SetCellStyle(exportSheet, "A8", "C8", labelStyle)
	file.SetCellValue(exportSheet, "D8", FormatCurrency(AggregateTotal(records)))
	file.MergeCell(exportSheet, "D8", lastCol+"8")
	file.SetCellStyle(exportSheet, "D8", lastCol+"8", labelStyle)

	// Column header row
	const headerRow = 10
	for i, header := range exportHeaders {
		file.SetCellValue(exportSheet, fmt.Sprintf("%s%d", colName(i), headerRow), header)
	}
	file.SetCellStyle(exportSheet, fmt.Sprintf("A%d", headerRow), fmt.Sprintf("%s%d", lastCol, headerRow), headerStyle)

	// One row per record; item columns join all items with newlines so the
	// row grows in height instead of splitting.
	for recIdx, record := range records {
		r := headerRow + 1 + recIdx
		values := []interface{}{
			record.Date,
			record.Provider,
			voucherLabel(record.VoucherType),
			record.VoucherNumber,
			joinItems(record.Items, func(item model.LineItem) string { return formatQty(item.Quantity) }),
			joinItems(record.Items, func(item model.LineItem) string { return item.Description }),
			joinItems(record.Items, func(item model.LineItem) string { return formatMoney(item.UnitPrice) }),
			joinItems(record.Items, func(item model.LineItem) string { return formatMoney(item.Amount) }),
			joinItems(record.Items, func(item model.LineItem) string { return item.TechReportNum }),
			joinItems(record.Items, func(item model.LineItem) string { return item.BoletaFisica }),
			joinItems(record.Items, func(item model.LineItem) string { return item.FacturaElect }),
			joinItems(record.Items, func(item model.LineItem) string { return item.BoletaElect }),
			joinItems(record.Items, func(item model.LineItem) string { return item.Observation }),
			formatMoney(record.Total),
		}
		for colIdx, value := range values {
			file.SetCellValue(exportSheet, fmt.Sprintf("%s%d", colName(colIdx), r), value)
		}
		file.SetCellStyle(exportSheet, fmt.Sprintf("A%d", r), fmt.Sprintf("%s%d", lastCol, r), dataStyle)
		if n := len(record.Items); n > 1 {
			file.SetRowHeight(exportSheet, r, float64(15*n))
		}
	}

	for i, width := range exportColWidths {
		file.SetColWidth(exportSheet, colName(i), colName(i), width)
	}

	return file, nil
}

// FormatCurrency renders a two-decimal sol amount, e.g. "S/ 15.50".
func FormatCurrency(v float64) string {
	return fmt.Sprintf("S/ %.2f", v)
}

func formatMoney(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func formatQty(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func joinItems(items []model.LineItem, pick func(model.LineItem) string) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = pick(item)
	}
	return strings.Join(parts, "\n")
}

func voucherLabel(v model.VoucherType) string {
	if label, ok := model.VoucherTypeLabels[v]; ok {
		return label
	}
	return string(v)
}

func voucherFilterLabel(v *model.VoucherType) string {
	if v == nil {
		return "Todos"
	}
	return voucherLabel(*v)
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}

// colName maps a zero-based index to a spreadsheet column letter. The
// report is 14 columns wide, so a single letter always suffices.
func colName(i int) string {
	return string(rune('A' + i))
}
