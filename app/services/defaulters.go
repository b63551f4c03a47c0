package services

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/farahtourait-ai/city-college-fee-system/app/models"
)

// midnight truncates t to local midnight so overdue day counts do not
// depend on the time of day the report runs.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// BuildDefaulters derives the defaulter list from students with their fee
// records loaded. A student appears only with a positive pending total;
// the list is sorted by total pending, largest first.
func BuildDefaulters(students []*models.Student, now time.Time) []*models.Defaulter {
	today := midnight(now)

	var defaulters []*models.Defaulter
	for _, student := range students {
		pending := student.PendingFees()
		if len(pending) == 0 {
			continue
		}

		total := decimal.Zero
		var earliestDue time.Time
		for _, fee := range pending {
			total = total.Add(fee.Amount)
			due := midnight(fee.DueDate)
			if earliestDue.IsZero() || due.Before(earliestDue) {
				earliestDue = due
			}
		}
		if !total.IsPositive() {
			continue
		}

		overdueDays := int(today.Sub(earliestDue).Hours() / 24)
		if overdueDays < 0 {
			overdueDays = 0
		}

		defaulters = append(defaulters, &models.Defaulter{
			Student:      student,
			TotalPending: total,
			OverdueDays:  overdueDays,
			FeeRecords:   pending,
		})
	}

	sort.SliceStable(defaulters, func(i, j int) bool {
		return defaulters[i].TotalPending.GreaterThan(defaulters[j].TotalPending)
	})
	return defaulters
}

// ComputeDefaulterStats summarises a defaulter list for the dashboard.
func ComputeDefaulterStats(defaulters []*models.Defaulter) *models.DefaulterStats {
	stats := &models.DefaulterStats{
		TotalDefaulters: len(defaulters),
		TotalPending:    decimal.Zero,
	}
	for _, d := range defaulters {
		stats.TotalPending = stats.TotalPending.Add(d.TotalPending)
		if d.OverdueDays > 30 {
			stats.Critical++
		}
		if d.OverdueDays <= 7 {
			stats.Recent++
		}
		if d.Student.HasEmail() {
			stats.WithEmail++
		}
		if d.Student.HasPhone() {
			stats.WithPhone++
		}
	}
	return stats
}
