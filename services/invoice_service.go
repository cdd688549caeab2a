package services

import (
	"fmt"
	"time"

	"github.com/motoshop/motoshop-api/models"
	"gorm.io/gorm"
)

// InvoiceService encapsulates invoice creation, including invoice-number
// assignment.
type InvoiceService struct {
	DB *gorm.DB
}

func NewInvoiceService(db *gorm.DB) *InvoiceService {
	return &InvoiceService{DB: db}
}

// FormatInvoiceNumber builds an invoice number of the form INV-YYYYMMDD-NNNN
func FormatInvoiceNumber(date time.Time, sequence uint) string {
	return fmt.Sprintf("INV-%s-%04d", date.Format("20060102"), sequence)
}

// Create persists the invoice with a freshly assigned invoice number. The
// number is derived from the highest existing row id and assigned inside the
// insert transaction, so sequential creations always produce strictly
// increasing suffixes.
func (s *InvoiceService) Create(invoice *models.Invoice) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var lastID uint
		row := tx.Model(&models.Invoice{}).Select("COALESCE(MAX(id), 0)").Row()
		if err := row.Scan(&lastID); err != nil {
			return fmt.Errorf("failed to determine next invoice sequence: %w", err)
		}
		invoice.InvoiceNumber = FormatInvoiceNumber(time.Now(), lastID+1)
		if err := tx.Create(invoice).Error; err != nil {
			return fmt.Errorf("failed to create invoice: %w", err)
		}
		return nil
	})
}
