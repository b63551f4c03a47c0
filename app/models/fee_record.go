package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeeRecord represents one month's charge against a student. At most one
// record may exist per (student, month, year); the schema enforces this
// with a partial unique index in addition to the pre-insert check.
type FeeRecord struct {
	ID            string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"omitempty,uuid"`
	StudentID     string          `json:"student_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Amount        decimal.Decimal `json:"amount" gorm:"not null;type:numeric" validate:"required"`
	Month         string          `json:"month" gorm:"not null" validate:"required"`
	Year          int             `json:"year" gorm:"not null" validate:"required"`
	AcademicYear  string          `json:"academic_year,omitempty"`
	DueDate       time.Time       `json:"due_date" gorm:"not null;type:date" validate:"required"`
	Status        FeeStatus       `json:"status" gorm:"not null;default:'pending'" validate:"required,oneof=pending paid"`
	PaymentDate   *time.Time      `json:"payment_date,omitempty" gorm:"type:date"`
	ChallanNumber *string         `json:"challan_number,omitempty"`
	CreatedAt     time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt     *time.Time      `json:"deleted_at,omitempty" gorm:"index"`

	// Relationships
	Student *Student `json:"student,omitempty" gorm:"foreignKey:StudentID;references:ID"`
}

// IsPending reports whether the fee is still awaiting payment.
func (f *FeeRecord) IsPending() bool {
	return f.Status == FeePending
}

// MarkAsPaid transitions the record to paid as of now, recording the
// challan number when one was issued.
func (f *FeeRecord) MarkAsPaid(challanNumber string) {
	f.Status = FeePaid
	now := time.Now()
	f.PaymentDate = &now
	if challanNumber != "" {
		f.ChallanNumber = &challanNumber
	}
}
