package models

// FeeStatus defines the lifecycle of a fee record. The only modeled
// transition is pending -> paid; there is no reversal.
type FeeStatus string

const (
	FeePending FeeStatus = "pending"
	FeePaid    FeeStatus = "paid"
)

// ReminderType defines the kind of notification logged against a student.
type ReminderType string

const (
	EmailReminder       ReminderType = "email_reminder"
	PaymentConfirmation ReminderType = "payment_confirmation"
)

// Months lists calendar month names as stored on fee records.
var Months = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// IsValidMonth reports whether name is one of the twelve month names.
func IsValidMonth(name string) bool {
	for _, m := range Months {
		if m == name {
			return true
		}
	}
	return false
}

// MonthIndex returns the zero-based index of a month name, or -1.
func MonthIndex(name string) int {
	for i, m := range Months {
		if m == name {
			return i
		}
	}
	return -1
}
