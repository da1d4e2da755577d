package models

// ElectronicInvoice is a DIAN electronic invoice ingested via its CUFE code.
// The CUFE is stored normalized (upper-case, no whitespace) and is unique per
// user; equivalent inputs differing only by case or whitespace collide.
type ElectronicInvoice struct {
	Base
	UserID        uint    `gorm:"not null;index;uniqueIndex:idx_invoices_user_cufe" json:"user_id"`
	CUFE          string  `gorm:"column:cufe;size:96;not null;uniqueIndex:idx_invoices_user_cufe" json:"cufe"`
	SupplierName  string  `gorm:"not null" json:"supplier_name"`
	SupplierTaxID string  `json:"supplier_tax_id"`
	InvoiceDate   string  `gorm:"size:10" json:"invoice_date"`
	TotalAmount   float64 `gorm:"not null;default:0" json:"total_amount"`

	// ExtractedData holds structured data pulled from the QR payload or the
	// DIAN portal, serialized as JSON.
	ExtractedData string `json:"extracted_data,omitempty"`

	// SourceDocument optionally references the document the invoice was
	// ingested from (upload id, scan reference).
	SourceDocument string `json:"source_document,omitempty"`
}
