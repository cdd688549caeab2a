package models

import (
	"time"
)

// Invoice is a billing record for a sale. Invoices are created once via the
// admin area and are read-only thereafter; there is no edit or delete path.
// Amounts are caller-supplied and stored as-is with no recomputation.
type Invoice struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	InvoiceNumber    string    `gorm:"size:50;uniqueIndex;not null" json:"invoice_number"`
	InvoiceDate      time.Time `gorm:"not null" json:"invoice_date"`
	CustomerName     string    `gorm:"size:150;not null" json:"customer_name"`
	CustomerAddress  string    `gorm:"size:500" json:"customer_address"`
	CustomerEmail    string    `gorm:"size:150" json:"customer_email"`
	ItemsDescription string    `gorm:"type:text;not null" json:"items_description"`
	SubtotalAmount   float64   `gorm:"not null" json:"subtotal_amount"`
	TaxRate          float64   `gorm:"not null;default:0" json:"tax_rate"`
	TaxAmount        float64   `gorm:"not null;default:0" json:"tax_amount"`
	TotalAmount      float64   `gorm:"not null" json:"total_amount"`
	Notes            string    `gorm:"size:500" json:"notes"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}
