package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Defaulter is a derived view of a student owing money. It is recomputed
// from fee records on demand and never persisted.
type Defaulter struct {
	Student      *Student        `json:"student"`
	TotalPending decimal.Decimal `json:"total_pending"`
	OverdueDays  int             `json:"overdue_days"`
	FeeRecords   []*FeeRecord    `json:"fee_records"`
}

// DefaulterStats summarises a defaulter list for the dashboard cards.
type DefaulterStats struct {
	TotalDefaulters int             `json:"total_defaulters"`
	TotalPending    decimal.Decimal `json:"total_pending"`
	Critical        int             `json:"critical"` // overdue more than 30 days
	Recent          int             `json:"recent"`   // overdue 7 days or less
	WithEmail       int             `json:"with_email"`
	WithPhone       int             `json:"with_phone"`
}

// FeeStats summarises fee records under the current filters.
type FeeStats struct {
	TotalRecords   int             `json:"total_records"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	PaidAmount     decimal.Decimal `json:"paid_amount"`
	PendingAmount  decimal.Decimal `json:"pending_amount"`
	PaidRecords    int             `json:"paid_records"`
	PendingRecords int             `json:"pending_records"`
}

// StudentsStats summarises the student table for the students page.
type StudentsStats struct {
	TotalStudents    int `json:"total_students"`
	ActiveStudents   int `json:"active_students"`
	InactiveStudents int `json:"inactive_students"`
	NewThisMonth     int `json:"new_this_month"`
}

// DashboardStats is the aggregate view for the admin landing page.
type DashboardStats struct {
	TotalStudents   int             `json:"total_students"`
	TotalCourses    int             `json:"total_courses"`
	TotalDefaulters int             `json:"total_defaulters"`
	PendingAmount   decimal.Decimal `json:"pending_amount"`
	CollectedAmount decimal.Decimal `json:"collected_amount"`
	RemindersSent   int             `json:"reminders_sent"`
	GeneratedAt     time.Time       `json:"generated_at"`
}
