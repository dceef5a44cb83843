package models

import (
	"encoding/json"
	"time"
)

// ReminderType tags the origin of a reminder. The set is open; new
// categories can be added without touching the dispatch code.
type ReminderType string

const (
	ReminderSessionCompleted    ReminderType = "SESSION_COMPLETED"
	ReminderPhotosReady3Months  ReminderType = "PHOTOS_READY_3_MONTHS"
	ReminderPhotosReady10Months ReminderType = "PHOTOS_READY_10_MONTHS"
)

// Reminder is a scheduled, single-fire notification tied optionally to a
// photo session or an invoice. Date carries day granularity only: it is
// normalized to midnight UTC at creation and compared per calendar day.
type Reminder struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Date        time.Time    `gorm:"not null;index" json:"date"`
	ClientName  string       `gorm:"size:120;not null;index" json:"client_name"`
	Description string       `gorm:"type:text;not null" json:"description"`
	Type        ReminderType `gorm:"size:40;not null;index" json:"type"`
	SessionID   *string      `gorm:"size:64;index" json:"session_id,omitempty"`
	InvoiceID   *string      `gorm:"size:64;index" json:"invoice_id,omitempty"`
	SentAt      *time.Time   `gorm:"index" json:"sent_at,omitempty"`
	CreatedAt   time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null" json:"updated_at"`
}

// IsSent reports whether the reminder reached its terminal delivered state.
// The flag is derived from SentAt so the two can never disagree.
func (r Reminder) IsSent() bool {
	return r.SentAt != nil
}

// MarshalJSON includes the derived is_sent flag so API consumers don't have
// to null-check sent_at themselves.
func (r Reminder) MarshalJSON() ([]byte, error) {
	type alias Reminder
	return json.Marshal(struct {
		alias
		IsSent bool `json:"is_sent"`
	}{alias(r), r.IsSent()})
}

// TableName specifies the table name for the Reminder model
func (Reminder) TableName() string {
	return "reminder"
}
