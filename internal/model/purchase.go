package model

import "github.com/google/uuid"

type VoucherType string

const (
	VoucherInvoice      VoucherType = "INVOICE"
	VoucherDeliveryNote VoucherType = "DELIVERY_NOTE"
)

// VoucherTypeLabels maps the stored enum to the display name used on reports.
var VoucherTypeLabels = map[VoucherType]string{
	VoucherInvoice:      "Factura",
	VoucherDeliveryNote: "Guía de Remisión",
}

// PurchaseRecord is one purchase transaction (header + owned line items).
type PurchaseRecord struct {
	BaseModel
	Date          string      `gorm:"type:varchar(10);not null;index" json:"date"` // ISO YYYY-MM-DD
	Provider      string      `gorm:"type:varchar(255);not null" json:"provider" validate:"required"`
	VoucherType   VoucherType `gorm:"type:varchar(20);not null" json:"voucher_type" validate:"required,oneof=INVOICE DELIVERY_NOTE"`
	VoucherNumber string      `gorm:"type:varchar(50);not null" json:"voucher_number" validate:"required"`

	// Snapshot of the sum of item amounts at save time. Not recomputed on read.
	Total float64 `gorm:"not null;default:0" json:"total"`

	// Insertion order is display order
	Items []LineItem `gorm:"foreignKey:PurchaseRecordID" json:"items"`
}

// LineItem is one purchased line. Items are owned by their PurchaseRecord
// and have no lifecycle of their own.
type LineItem struct {
	BaseModel
	PurchaseRecordID uuid.UUID `gorm:"type:uuid;not null;index" json:"purchase_record_id"`

	Quantity    float64 `gorm:"not null;default:0" json:"quantity"`
	Description string  `json:"description"`
	UnitPrice   float64 `gorm:"not null;default:0" json:"unit_price"`
	// Amount = round(quantity * unit_price, 2), snapshotted on every edit
	Amount float64 `gorm:"not null;default:0" json:"amount"`

	// Free-text annotations, independently optional
	TechReportNum string `gorm:"type:varchar(50)" json:"tech_report_num"`
	BoletaFisica  string `gorm:"type:varchar(50)" json:"boleta_fisica"`
	FacturaElect  string `gorm:"type:varchar(50)" json:"factura_elect"`
	BoletaElect   string `gorm:"type:varchar(50)" json:"boleta_elect"`
	Observation   string `json:"observation"`

	SortOrder int `gorm:"not null;default:0" json:"sort_order"`
}
