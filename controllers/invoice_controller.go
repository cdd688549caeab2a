package controllers

import (
	"net/http"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/motoshop/motoshop-api/config"
	"github.com/motoshop/motoshop-api/models"
	"github.com/motoshop/motoshop-api/services"
)

// CreateInvoiceRequest represents the request body for creating an invoice.
// Amounts are stored as supplied; the server performs no cross-field
// recomputation of totals.
type CreateInvoiceRequest struct {
	CustomerName     string  `json:"customer_name"`
	CustomerAddress  string  `json:"customer_address"`
	CustomerEmail    string  `json:"customer_email"`
	InvoiceDate      string  `json:"invoice_date"` // YYYY-MM-DD
	ItemsDescription string  `json:"items_description"`
	SubtotalAmount   float64 `json:"subtotal_amount"`
	TaxRate          float64 `json:"tax_rate"`
	TaxAmount        float64 `json:"tax_amount"`
	TotalAmount      float64 `json:"total_amount"`
	Notes            string  `json:"notes"`
}

// validate checks the request field by field, returning a map of errors and
// the parsed invoice date when valid.
func (r *CreateInvoiceRequest) validate() (time.Time, map[string]string) {
	fieldErrors := make(map[string]string)

	if name := strings.TrimSpace(r.CustomerName); name == "" || len(name) > 150 {
		fieldErrors["customer_name"] = "Customer name is required and cannot exceed 150 characters"
	}
	if len(r.CustomerAddress) > 500 {
		fieldErrors["customer_address"] = "Customer address cannot exceed 500 characters"
	}
	if email := strings.TrimSpace(r.CustomerEmail); email != "" {
		if _, err := mail.ParseAddress(email); err != nil || len(email) > 150 {
			fieldErrors["customer_email"] = "Customer email must be a valid address"
		}
	}

	invoiceDate, err := time.Parse("2006-01-02", strings.TrimSpace(r.InvoiceDate))
	if err != nil {
		fieldErrors["invoice_date"] = "Invoice date is required in YYYY-MM-DD format"
	}

	if desc := strings.TrimSpace(r.ItemsDescription); desc == "" || len(desc) > 1000 {
		fieldErrors["items_description"] = "Items description is required and cannot exceed 1000 characters"
	}
	if r.SubtotalAmount < 0 {
		fieldErrors["subtotal_amount"] = "Subtotal cannot be negative"
	}
	if r.TaxRate < 0 || r.TaxRate > 100 {
		fieldErrors["tax_rate"] = "Tax rate must be between 0 and 100"
	}
	if r.TaxAmount < 0 {
		fieldErrors["tax_amount"] = "Tax amount cannot be negative"
	}
	if r.TotalAmount < 0 {
		fieldErrors["total_amount"] = "Total cannot be negative"
	}
	if len(r.Notes) > 500 {
		fieldErrors["notes"] = "Notes cannot exceed 500 characters"
	}

	if len(fieldErrors) > 0 {
		return time.Time{}, fieldErrors
	}
	return invoiceDate, nil
}

// ListInvoices handles GET /api/v1/admin/invoices - all invoices, newest
// invoice date first
func ListInvoices(c *gin.Context) {
	db := config.GetDB()

	var invoices []models.Invoice
	if err := db.Order("invoice_date desc").Find(&invoices).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load invoices",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    invoices,
	})
}

// CreateInvoice handles POST /api/v1/admin/invoices - validated create with
// server-assigned invoice number
func CreateInvoice(c *gin.Context) {
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	invoiceDate, fieldErrors := req.validate()
	if fieldErrors != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid invoice data",
				"details": fieldErrors,
			},
		})
		return
	}

	invoice := models.Invoice{
		InvoiceDate:      invoiceDate,
		CustomerName:     strings.TrimSpace(req.CustomerName),
		CustomerAddress:  strings.TrimSpace(req.CustomerAddress),
		CustomerEmail:    strings.TrimSpace(req.CustomerEmail),
		ItemsDescription: strings.TrimSpace(req.ItemsDescription),
		SubtotalAmount:   req.SubtotalAmount,
		TaxRate:          req.TaxRate,
		TaxAmount:        req.TaxAmount,
		TotalAmount:      req.TotalAmount,
		Notes:            strings.TrimSpace(req.Notes),
	}

	svc := services.NewInvoiceService(config.GetDB())
	if err := svc.Create(&invoice); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create invoice",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    invoice,
	})
}

// GetInvoice handles GET /api/v1/admin/invoices/:id - single invoice detail
func GetInvoice(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Invoice id must be a positive integer",
			},
		})
		return
	}

	db := config.GetDB()
	var invoice models.Invoice
	if err := db.First(&invoice, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Invoice not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    invoice,
	})
}
