package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/farahtourait-ai/city-college-fee-system/app/models"
)

func TestOverdueDefaulters(t *testing.T) {
	defaulters := []*models.Defaulter{
		{Student: &models.Student{ID: "s1"}, OverdueDays: 0},
		{Student: &models.Student{ID: "s2"}, OverdueDays: 3},
		{Student: &models.Student{ID: "s3"}, OverdueDays: 10},
	}

	t.Run("threshold filters by overdue age", func(t *testing.T) {
		due := overdueDefaulters(defaulters, 5)
		assert.Len(t, due, 1)
		assert.Equal(t, "s3", due[0].Student.ID)
	})

	t.Run("default threshold still excludes not-yet-overdue", func(t *testing.T) {
		due := overdueDefaulters(defaulters, 1)
		assert.Len(t, due, 2)
	})

	t.Run("zero threshold is clamped to one", func(t *testing.T) {
		due := overdueDefaulters(defaulters, 0)
		assert.Len(t, due, 2)
	})

	t.Run("no defaulters past threshold", func(t *testing.T) {
		assert.Empty(t, overdueDefaulters(defaulters, 30))
	})
}
