package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/farahtourait-ai/city-college-fee-system/app/config"
	"github.com/farahtourait-ai/city-college-fee-system/app/models"
)

func TestConfirmationEmail(t *testing.T) {
	m := &Mailer{
		college: config.CollegeConfig{
			Name:       "City College",
			Address:    "Main Road",
			AdminEmail: "admin@citycollege.example",
		},
	}
	student := &models.Student{ID: "s1", Name: "Ayesha Khan", RollNumber: "2301", Email: "ayesha@example.com"}
	challan := "CH-2026-03-1001"
	fee := &models.FeeRecord{
		StudentID:     "s1",
		Amount:        decimal.NewFromInt(3500),
		Month:         "March",
		Year:          2026,
		ChallanNumber: &challan,
	}

	to, subject, body := m.confirmationEmail(student, fee)

	// The office gets the confirmation, not the student.
	assert.Equal(t, "admin@citycollege.example", to)
	assert.Contains(t, subject, "Payment Received")
	assert.Contains(t, body, "Ayesha Khan")
	assert.Contains(t, body, "roll 2301")
	assert.Contains(t, body, "3500.00")
	assert.Contains(t, body, "March 2026")
	assert.Contains(t, body, challan)
	assert.NotContains(t, body, student.Email)
}

func TestConfirmationEmailNoAdminConfigured(t *testing.T) {
	m := &Mailer{college: config.CollegeConfig{Name: "City College"}}
	fee := &models.FeeRecord{Amount: decimal.NewFromInt(1000), Month: "April", Year: 2026}
	to, _, _ := m.confirmationEmail(&models.Student{Name: "X", RollNumber: "1"}, fee)
	assert.Empty(t, to)
}
