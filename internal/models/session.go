package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionStatus represents where a photo session sits in its lifecycle
type SessionStatus string

const (
	SessionScheduled SessionStatus = "scheduled"
	SessionCompleted SessionStatus = "completed"
	SessionClaimed   SessionStatus = "claimed"
	SessionCancelled SessionStatus = "cancelled"
)

// ValidSessionStatus reports whether the given value is a known status.
func ValidSessionStatus(s SessionStatus) bool {
	switch s {
	case SessionScheduled, SessionCompleted, SessionClaimed, SessionCancelled:
		return true
	}
	return false
}

// PhotoSession represents a booked photography session
type PhotoSession struct {
	ID          string        `gorm:"primaryKey;size:64" json:"id"`
	ClientName  string        `gorm:"size:120;not null;index" json:"client_name"`
	Package     string        `gorm:"size:80" json:"package"`
	ScheduledAt time.Time     `gorm:"not null;index" json:"scheduled_at"`
	Location    string        `gorm:"size:255" json:"location"`
	Status      SessionStatus `gorm:"size:20;not null;default:scheduled" json:"status"`
	CreatedAt   time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time     `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook assigns the session ID and defaults
func (s *PhotoSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Status == "" {
		s.Status = SessionScheduled
	}
	return nil
}

// TableName specifies the table name for the PhotoSession model
func (PhotoSession) TableName() string {
	return "photo_session"
}

// CreateSessionRequest represents the data needed to book a session
type CreateSessionRequest struct {
	ClientName  string    `json:"client_name" binding:"required,max=120"`
	Package     string    `json:"package" binding:"omitempty,max=80"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
	Location    string    `json:"location" binding:"omitempty,max=255"`
}

// UpdateStatusRequest represents a status transition request
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
