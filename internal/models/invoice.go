package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// InvoiceStatus represents the billing state of an invoice
type InvoiceStatus string

const (
	InvoicePending     InvoiceStatus = "pending"
	InvoicePhotosReady InvoiceStatus = "photos_ready"
	InvoicePaid        InvoiceStatus = "paid"
	InvoiceCancelled   InvoiceStatus = "cancelled"
)

// ValidInvoiceStatus reports whether the given value is a known status.
func ValidInvoiceStatus(s InvoiceStatus) bool {
	switch s {
	case InvoicePending, InvoicePhotosReady, InvoicePaid, InvoiceCancelled:
		return true
	}
	return false
}

// Invoice represents a client invoice. Items holds the line items as JSON;
// the reminder engine only cares about the status transitions.
type Invoice struct {
	ID         string         `gorm:"primaryKey;size:64" json:"id"`
	ClientName string         `gorm:"size:120;not null;index" json:"client_name"`
	SessionID  *string        `gorm:"size:64;index" json:"session_id,omitempty"`
	Amount     float64        `gorm:"not null" json:"amount"`
	Items      datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"items"`
	Status     InvoiceStatus  `gorm:"size:20;not null;default:pending" json:"status"`
	CreatedAt  time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook assigns the invoice ID and defaults
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Status == "" {
		i.Status = InvoicePending
	}
	return nil
}

// TableName specifies the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoice"
}

// CreateInvoiceRequest represents the data needed to create an invoice
type CreateInvoiceRequest struct {
	ClientName string         `json:"client_name" binding:"required,max=120"`
	SessionID  string         `json:"session_id" binding:"omitempty,max=64"`
	Amount     float64        `json:"amount" binding:"required,gt=0"`
	Items      datatypes.JSON `json:"items"`
}
