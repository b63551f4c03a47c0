package services

import (
	"database/sql"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/farahtourait-ai/city-college-fee-system/app/config"
	"github.com/farahtourait-ai/city-college-fee-system/app/database"
	"github.com/farahtourait-ai/city-college-fee-system/app/models"
)

// StartScheduler starts the background task scheduler: the nightly fee
// reminder sweep and the hourly expired session cleanup. The returned
// cron can be stopped on shutdown.
func StartScheduler(db *sql.DB, cfg *config.Config) *cron.Cron {
	c := cron.New()

	// 8 PM daily, after the office closes.
	c.AddFunc("0 20 * * *", func() {
		if !cfg.Reminders.AutoSend {
			return
		}
		log.Println("Triggering scheduled fee reminder sweep...")
		if err := RunReminderSweep(db, cfg); err != nil {
			log.Printf("Reminder sweep failed: %v", err)
		}
	})

	c.AddFunc("@hourly", func() {
		deleted, err := database.DeleteExpiredSessions(db)
		if err != nil {
			log.Printf("Session cleanup failed: %v", err)
			return
		}
		if deleted > 0 {
			log.Printf("Session cleanup removed %d expired sessions", deleted)
		}
	})

	c.Start()
	log.Println("Scheduler started...")
	return c
}

// overdueDefaulters keeps the defaulters whose earliest pending fee is
// at least threshold days overdue. A threshold below one still requires
// the fee to be past due.
func overdueDefaulters(defaulters []*models.Defaulter, threshold int) []*models.Defaulter {
	if threshold < 1 {
		threshold = 1
	}
	var due []*models.Defaulter
	for _, d := range defaulters {
		if d.OverdueDays >= threshold {
			due = append(due, d)
		}
	}
	return due
}

// RunReminderSweep emails every defaulter who has an email address and is
// past the configured overdue threshold. Defaulters without email are
// logged as skipped so the office can follow up by phone.
func RunReminderSweep(db *sql.DB, cfg *config.Config) error {
	log.Println("Starting fee reminder sweep...")

	students, err := database.GetStudentsWithFeeRecords(db)
	if err != nil {
		return err
	}

	defaulters := overdueDefaulters(BuildDefaulters(students, time.Now()), cfg.Reminders.OverdueDays)
	mailer := NewMailer(db, cfg)

	sent, skipped := 0, 0
	for _, d := range defaulters {
		reminder := mailer.SendFeeReminder(d)
		if reminder.EmailSent {
			sent++
		} else {
			skipped++
		}
	}

	log.Printf("Reminder sweep completed. Sent %d, skipped/failed %d of %d due defaulters.",
		sent, skipped, len(defaulters))
	return nil
}
