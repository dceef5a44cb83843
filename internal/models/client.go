package models

import (
	"time"

	"gorm.io/gorm"
)

// Client represents a studio client. Email and phone are optional; the
// dispatch job only attempts the channels a client actually has. Clients are
// soft-deleted so reminder lookups naturally skip removed clients.
type Client struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:120;not null;index" json:"name"`
	Email     string         `gorm:"size:255" json:"email"`
	Phone     string         `gorm:"size:32" json:"phone"`
	Notes     string         `gorm:"type:text" json:"notes"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Client model
func (Client) TableName() string {
	return "client"
}

// CreateClientRequest represents the data needed to register a client
type CreateClientRequest struct {
	Name  string `json:"name" binding:"required,max=120"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone" binding:"omitempty,max=32"`
	Notes string `json:"notes" binding:"omitempty,max=2000"`
}
