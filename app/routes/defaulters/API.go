package defaulters

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/farahtourait-ai/city-college-fee-system/app/config"
	"github.com/farahtourait-ai/city-college-fee-system/app/database"
	"github.com/farahtourait-ai/city-college-fee-system/app/models"
	"github.com/farahtourait-ai/city-college-fee-system/app/services"
)

func buildDefaulters() ([]*models.Defaulter, error) {
	students, err := database.GetStudentsWithFeeRecords(config.GetDB())
	if err != nil {
		return nil, err
	}
	return services.BuildDefaulters(students, time.Now()), nil
}

func GetDefaultersAPI(c *fiber.Ctx) error {
	defaulters, err := buildDefaulters()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to compute defaulters"})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"defaulters": defaulters,
		"count":      len(defaulters),
	})
}

func GetDefaulterStatsAPI(c *fiber.Ctx) error {
	defaulters, err := buildDefaulters()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to compute defaulters"})
	}

	return c.JSON(fiber.Map{"success": true, "data": services.ComputeDefaulterStats(defaulters)})
}

// SendRemindersAPI emails fee reminders. With student_ids it targets
// those defaulters; without, every defaulter is reminded. Defaulters
// without email are reported as skipped.
func SendRemindersAPI(c *fiber.Ctx) error {
	type RemindRequest struct {
		StudentIDs []string `json:"student_ids"`
	}

	var req RemindRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request"})
	}

	defaulters, err := buildDefaulters()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to compute defaulters"})
	}

	targets := defaulters
	if len(req.StudentIDs) > 0 {
		wanted := make(map[string]bool, len(req.StudentIDs))
		for _, id := range req.StudentIDs {
			wanted[id] = true
		}
		targets = nil
		for _, d := range defaulters {
			if wanted[d.Student.ID] {
				targets = append(targets, d)
			}
		}
	}

	mailer := services.NewMailer(config.GetDB(), config.AppConfig)
	sent, skipped := 0, 0
	var reminders []*models.Reminder
	for _, d := range targets {
		reminder := mailer.SendFeeReminder(d)
		reminders = append(reminders, reminder)
		if reminder.EmailSent {
			sent++
		} else {
			skipped++
		}
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"sent":      sent,
		"skipped":   skipped,
		"reminders": reminders,
	})
}
