package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farahtourait-ai/city-college-fee-system/app/models"
)

func TestEnrollmentFees(t *testing.T) {
	now := time.Date(2026, time.March, 5, 14, 0, 0, 0, time.UTC)

	t.Run("resolved course yields monthly and registration fees", func(t *testing.T) {
		res := CourseResolution{
			Resolved:   true,
			Method:     ResolvedByKeyword,
			MonthlyFee: decimal.NewFromInt(3500),
		}
		fees := EnrollmentFees("s1", res, now)
		require.Len(t, fees, 2)

		monthly, registration := fees[0], fees[1]
		assert.Equal(t, "March", monthly.Month)
		assert.Equal(t, 2026, monthly.Year)
		assert.True(t, monthly.Amount.Equal(decimal.NewFromInt(3500)))

		assert.Equal(t, RegistrationMonth, registration.Month)
		assert.True(t, registration.Amount.Equal(RegistrationFeeAmount))

		// The registration label must not clash with a calendar month,
		// or it would trip the monthly uniqueness for the student.
		assert.False(t, models.IsValidMonth(registration.Month))

		for _, fee := range fees {
			assert.Equal(t, "s1", fee.StudentID)
			assert.Equal(t, models.FeePending, fee.Status)
			assert.Equal(t, FeeDueDate(2026, time.March), fee.DueDate)
		}
	})

	t.Run("unresolved course charges registration only", func(t *testing.T) {
		fees := EnrollmentFees("s2", CourseResolution{Resolved: false}, now)
		require.Len(t, fees, 1)
		assert.Equal(t, RegistrationMonth, fees[0].Month)
		assert.True(t, fees[0].Amount.Equal(RegistrationFeeAmount))
	})

	t.Run("zero resolved fee charges registration only", func(t *testing.T) {
		res := CourseResolution{Resolved: true, MonthlyFee: decimal.Zero}
		fees := EnrollmentFees("s3", res, now)
		require.Len(t, fees, 1)
		assert.Equal(t, RegistrationMonth, fees[0].Month)
	})
}
