package database

import (
	"database/sql"
	"time"

	"github.com/farahtourait-ai/city-college-fee-system/app/models"
)

// GetDashboardStats assembles the landing page counters. Defaulter counts
// are computed separately by the defaulters service and merged by the
// handler; this covers the parts a few aggregate queries answer directly.
func GetDashboardStats(db *sql.DB) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{GeneratedAt: time.Now()}

	err := db.QueryRow(`SELECT COUNT(*) FROM students WHERE deleted_at IS NULL AND is_active`).
		Scan(&stats.TotalStudents)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`SELECT COUNT(*) FROM courses WHERE deleted_at IS NULL`).
		Scan(&stats.TotalCourses)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`SELECT
			COALESCE(SUM(amount) FILTER (WHERE status = 'pending'), 0),
			COALESCE(SUM(amount) FILTER (WHERE status = 'paid'), 0)
			FROM fee_records WHERE deleted_at IS NULL`).
		Scan(&stats.PendingAmount, &stats.CollectedAmount)
	if err != nil {
		return nil, err
	}

	monthStart := time.Now().AddDate(0, 0, -30)
	stats.RemindersSent, err = CountRemindersSince(db, monthStart)
	if err != nil {
		return nil, err
	}

	return stats, nil
}
