package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reminder is the notification log: one row per email attempt, whether it
// succeeded or not, so the office can see who was chased and when.
type Reminder struct {
	ID           string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	StudentID    string          `json:"student_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	StudentName  string          `json:"student_name" gorm:"not null"`
	Amount       decimal.Decimal `json:"amount" gorm:"type:numeric"`
	ReminderType ReminderType    `json:"reminder_type" gorm:"not null"`
	EmailSent    bool            `json:"email_sent"`
	EmailStatus  string          `json:"email_status,omitempty"`
	SentAt       time.Time       `json:"sent_at" gorm:"not null;default:now()"`
}
