package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farahtourait-ai/city-college-fee-system/app/models"
)

func pendingFee(amount int64, due time.Time) *models.FeeRecord {
	return &models.FeeRecord{
		Amount:  decimal.NewFromInt(amount),
		Status:  models.FeePending,
		DueDate: due,
	}
}

func paidFee(amount int64, due time.Time) *models.FeeRecord {
	return &models.FeeRecord{
		Amount:  decimal.NewFromInt(amount),
		Status:  models.FeePaid,
		DueDate: due,
	}
}

func TestBuildDefaulters(t *testing.T) {
	now := time.Date(2026, 3, 15, 14, 30, 0, 0, time.Local)

	t.Run("students with only paid fees are excluded", func(t *testing.T) {
		students := []*models.Student{
			{ID: "s1", Name: "Paid Up", FeeRecords: []*models.FeeRecord{
				paidFee(3000, now.AddDate(0, -1, 0)),
				paidFee(3000, now.AddDate(0, -2, 0)),
			}},
			{ID: "s2", Name: "No Records"},
		}
		assert.Empty(t, BuildDefaulters(students, now))
	})

	t.Run("pending totals and sort order", func(t *testing.T) {
		students := []*models.Student{
			{ID: "s1", Name: "Small Debt", FeeRecords: []*models.FeeRecord{
				pendingFee(3000, now.AddDate(0, -1, 0)),
			}},
			{ID: "s2", Name: "Big Debt", FeeRecords: []*models.FeeRecord{
				pendingFee(4000, now.AddDate(0, -2, 0)),
				pendingFee(4000, now.AddDate(0, -1, 0)),
				paidFee(4000, now.AddDate(0, -3, 0)),
			}},
		}
		defaulters := BuildDefaulters(students, now)
		require.Len(t, defaulters, 2)
		assert.Equal(t, "s2", defaulters[0].Student.ID)
		assert.True(t, defaulters[0].TotalPending.Equal(decimal.NewFromInt(8000)))
		assert.Equal(t, "s1", defaulters[1].Student.ID)
		// Only the pending records travel with the defaulter.
		assert.Len(t, defaulters[0].FeeRecords, 2)
	})

	t.Run("overdue days from earliest pending due date", func(t *testing.T) {
		students := []*models.Student{
			{ID: "s1", FeeRecords: []*models.FeeRecord{
				pendingFee(3000, time.Date(2026, 3, 5, 0, 0, 0, 0, time.Local)),
				pendingFee(3000, time.Date(2026, 2, 10, 0, 0, 0, 0, time.Local)),
			}},
		}
		defaulters := BuildDefaulters(students, now)
		require.Len(t, defaulters, 1)
		// March 15 minus February 10.
		assert.Equal(t, 33, defaulters[0].OverdueDays)
	})

	t.Run("future due dates clamp to zero", func(t *testing.T) {
		students := []*models.Student{
			{ID: "s1", FeeRecords: []*models.FeeRecord{
				pendingFee(3000, now.AddDate(0, 1, 0)),
			}},
		}
		defaulters := BuildDefaulters(students, now)
		require.Len(t, defaulters, 1)
		assert.Equal(t, 0, defaulters[0].OverdueDays)
	})

	t.Run("overdue days independent of time of day", func(t *testing.T) {
		students := []*models.Student{
			{ID: "s1", FeeRecords: []*models.FeeRecord{
				pendingFee(3000, time.Date(2026, 3, 10, 23, 59, 0, 0, time.Local)),
			}},
		}
		morning := BuildDefaulters(students, time.Date(2026, 3, 15, 0, 1, 0, 0, time.Local))
		evening := BuildDefaulters(students, time.Date(2026, 3, 15, 23, 59, 0, 0, time.Local))
		require.Len(t, morning, 1)
		require.Len(t, evening, 1)
		assert.Equal(t, 5, morning[0].OverdueDays)
		assert.Equal(t, morning[0].OverdueDays, evening[0].OverdueDays)
	})
}

func TestComputeDefaulterStats(t *testing.T) {
	defaulters := []*models.Defaulter{
		{Student: &models.Student{Email: "a@college.test", Phone: "111"}, TotalPending: decimal.NewFromInt(8000), OverdueDays: 45},
		{Student: &models.Student{Phone: "222"}, TotalPending: decimal.NewFromInt(3000), OverdueDays: 5},
		{Student: &models.Student{}, TotalPending: decimal.NewFromInt(4000), OverdueDays: 12},
	}

	stats := ComputeDefaulterStats(defaulters)
	assert.Equal(t, 3, stats.TotalDefaulters)
	assert.True(t, stats.TotalPending.Equal(decimal.NewFromInt(15000)))
	assert.Equal(t, 1, stats.Critical)
	assert.Equal(t, 1, stats.Recent)
	assert.Equal(t, 1, stats.WithEmail)
	assert.Equal(t, 2, stats.WithPhone)
}
