package service

import (
	"testing"
	"time"

	"go-taller-records/internal/model"

	"github.com/stretchr/testify/require"
)

func exportFixture() []model.PurchaseRecord {
	return []model.PurchaseRecord{
		{
			Date:          "2024-06-15",
			Provider:      "ACME",
			VoucherType:   model.VoucherInvoice,
			VoucherNumber: "F001-123",
			Total:         10.0,
			Items: []model.LineItem{
				{Quantity: 2, Description: "Fuente ATX", UnitPrice: 2.5, Amount: 5.0, TechReportNum: "IT-01"},
				{Quantity: 1, Description: "Cable SATA", UnitPrice: 5.0, Amount: 5.0},
			},
		},
		{
			Date:          "2024-06-10",
			Provider:      "Proveedor SAC",
			VoucherType:   model.VoucherDeliveryNote,
			VoucherNumber: "G001-55",
			Total:         5.5,
			Items: []model.LineItem{
				{Quantity: 1, Description: "Teclado USB", UnitPrice: 5.5, Amount: 5.5},
			},
		},
	}
}

func TestExportFileNameEmbedsDate(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)
	require.Equal(t, "Compras_2024-06-15.xlsx", ExportFileName(now))
}

func TestWorkbookSummaryBlock(t *testing.T) {
	generated := time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)
	file, err := BuildPurchaseWorkbook(exportFixture(), Filters{}, generated)
	require.NoError(t, err)
	defer file.Close()

	title, err := file.GetCellValue(exportSheet, "A1")
	require.NoError(t, err)
	require.Equal(t, "REGISTRO DE COMPRAS", title)

	stamp, err := file.GetCellValue(exportSheet, "A2")
	require.NoError(t, err)
	require.Equal(t, "Generado: 15/06/2024 10:30", stamp)

	total, err := file.GetCellValue(exportSheet, "D8")
	require.NoError(t, err)
	require.Equal(t, "S/ 15.50", total)
}

func TestWorkbookEchoesUnsetFilters(t *testing.T) {
	file, err := BuildPurchaseWorkbook(nil, Filters{}, time.Now())
	require.NoError(t, err)
	defer file.Close()

	cases := map[string]string{
		"A4": "Tipo de Comprobante",
		"D4": "Todos",
		"A5": "Fecha Inicio",
		"D5": "-",
		"A6": "Fecha Fin",
		"D6": "-",
		"A7": "Búsqueda",
		"D7": "-",
	}
	for ref, want := range cases {
		got, err := file.GetCellValue(exportSheet, ref)
		require.NoError(t, err)
		require.Equal(t, want, got, "cell %s", ref)
	}
}

func TestWorkbookEchoesActiveFilters(t *testing.T) {
	vt := model.VoucherInvoice
	f := Filters{VoucherType: &vt, DateStart: "2024-06-01", DateEnd: "2024-06-30", Search: "teclado"}
	file, err := BuildPurchaseWorkbook(nil, f, time.Now())
	require.NoError(t, err)
	defer file.Close()

	voucher, err := file.GetCellValue(exportSheet, "D4")
	require.NoError(t, err)
	require.Equal(t, "Factura", voucher)

	start, err := file.GetCellValue(exportSheet, "D5")
	require.NoError(t, err)
	require.Equal(t, "2024-06-01", start)

	search, err := file.GetCellValue(exportSheet, "D7")
	require.NoError(t, err)
	require.Equal(t, "teclado", search)
}

func TestWorkbookHeaderRow(t *testing.T) {
	file, err := BuildPurchaseWorkbook(nil, Filters{}, time.Now())
	require.NoError(t, err)
	defer file.Close()

	first, err := file.GetCellValue(exportSheet, "A10")
	require.NoError(t, err)
	require.Equal(t, "Fecha", first)

	last, err := file.GetCellValue(exportSheet, "N10")
	require.NoError(t, err)
	require.Equal(t, "Total", last)
}

func TestWorkbookJoinsItemColumnsWithNewlines(t *testing.T) {
	file, err := BuildPurchaseWorkbook(exportFixture(), Filters{}, time.Now())
	require.NoError(t, err)
	defer file.Close()

	// First data row: the two-item record stays a single row
	date, err := file.GetCellValue(exportSheet, "A11")
	require.NoError(t, err)
	require.Equal(t, "2024-06-15", date)

	qty, err := file.GetCellValue(exportSheet, "E11")
	require.NoError(t, err)
	require.Equal(t, "2\n1", qty)

	descriptions, err := file.GetCellValue(exportSheet, "F11")
	require.NoError(t, err)
	require.Equal(t, "Fuente ATX\nCable SATA", descriptions)

	amounts, err := file.GetCellValue(exportSheet, "H11")
	require.NoError(t, err)
	require.Equal(t, "5.00\n5.00", amounts)

	reports, err := file.GetCellValue(exportSheet, "I11")
	require.NoError(t, err)
	require.Equal(t, "IT-01\n", reports)

	voucher, err := file.GetCellValue(exportSheet, "C11")
	require.NoError(t, err)
	require.Equal(t, "Factura", voucher)

	// Second record on the next row
	provider, err := file.GetCellValue(exportSheet, "B12")
	require.NoError(t, err)
	require.Equal(t, "Proveedor SAC", provider)

	total, err := file.GetCellValue(exportSheet, "N12")
	require.NoError(t, err)
	require.Equal(t, "5.50", total)
}
