package database

import (
	"database/sql"
	"time"

	"github.com/farahtourait-ai/city-college-fee-system/app/models"
)

func CreateReminder(db *sql.DB, reminder *models.Reminder) error {
	query := `INSERT INTO reminders (student_id, student_name, amount, reminder_type, email_sent, email_status)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, sent_at`

	return db.QueryRow(query,
		reminder.StudentID, reminder.StudentName, reminder.Amount,
		reminder.ReminderType, reminder.EmailSent, reminder.EmailStatus,
	).Scan(&reminder.ID, &reminder.SentAt)
}

// GetReminders returns the notification log, newest first.
func GetReminders(db *sql.DB, limit int) ([]*models.Reminder, error) {
	query := `SELECT id, student_id, student_name, amount, reminder_type, email_sent, email_status, sent_at
			  FROM reminders
			  ORDER BY sent_at DESC`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []*models.Reminder
	for rows.Next() {
		r := &models.Reminder{}
		err := rows.Scan(&r.ID, &r.StudentID, &r.StudentName, &r.Amount,
			&r.ReminderType, &r.EmailSent, &r.EmailStatus, &r.SentAt)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, r)
	}
	return reminders, rows.Err()
}

// GetRemindersByStudent returns the log for one student, newest first.
func GetRemindersByStudent(db *sql.DB, studentID string) ([]*models.Reminder, error) {
	query := `SELECT id, student_id, student_name, amount, reminder_type, email_sent, email_status, sent_at
			  FROM reminders
			  WHERE student_id = $1
			  ORDER BY sent_at DESC`

	rows, err := db.Query(query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []*models.Reminder
	for rows.Next() {
		r := &models.Reminder{}
		err := rows.Scan(&r.ID, &r.StudentID, &r.StudentName, &r.Amount,
			&r.ReminderType, &r.EmailSent, &r.EmailStatus, &r.SentAt)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, r)
	}
	return reminders, rows.Err()
}

// CountRemindersSince counts reminder emails attempted since a cutoff,
// used on the dashboard.
func CountRemindersSince(db *sql.DB, since time.Time) (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM reminders WHERE sent_at >= $1`, since).Scan(&count)
	return count, err
}
