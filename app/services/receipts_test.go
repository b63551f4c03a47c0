package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farahtourait-ai/city-college-fee-system/app/config"
	"github.com/farahtourait-ai/city-college-fee-system/app/models"
)

func testCollege() config.CollegeConfig {
	return config.CollegeConfig{
		Name:    "City Computer College",
		Phone:   "9876543210",
		Address: "123 College Road, City",
	}
}

func testPaidFee() *models.FeeRecord {
	paid := time.Date(2026, 3, 12, 0, 0, 0, 0, time.Local)
	challan := "CH-2026-03-1001"
	return &models.FeeRecord{
		ID:            "f1",
		Amount:        decimal.NewFromInt(4000),
		Month:         "March",
		Year:          2026,
		DueDate:       time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local),
		Status:        models.FeePaid,
		PaymentDate:   &paid,
		ChallanNumber: &challan,
		Student: &models.Student{
			ID:         "s1",
			RollNumber: "101",
			Name:       "Ali Raza",
			FatherName: "Raza Khan",
			Course:     "One Year Diploma",
		},
	}
}

func TestGenerateReceiptPDF(t *testing.T) {
	t.Run("renders a pdf document", func(t *testing.T) {
		out, err := GenerateReceiptPDF(testCollege(), testPaidFee())
		require.NoError(t, err)
		require.NotEmpty(t, out)
		assert.Equal(t, "%PDF", string(out[:4]))
	})

	t.Run("rejects fee without student", func(t *testing.T) {
		fee := testPaidFee()
		fee.Student = nil
		_, err := GenerateReceiptPDF(testCollege(), fee)
		require.Error(t, err)
	})
}

func TestGenerateChallanPDF(t *testing.T) {
	t.Run("renders a pdf document", func(t *testing.T) {
		fee := testPaidFee()
		fee.Status = models.FeePending
		fee.PaymentDate = nil
		out, err := GenerateChallanPDF(testCollege(), fee)
		require.NoError(t, err)
		require.NotEmpty(t, out)
		assert.Equal(t, "%PDF", string(out[:4]))
	})

	t.Run("rejects fee without student", func(t *testing.T) {
		fee := testPaidFee()
		fee.Student = nil
		_, err := GenerateChallanPDF(testCollege(), fee)
		require.Error(t, err)
	})
}
