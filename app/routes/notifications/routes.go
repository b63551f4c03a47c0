package notifications

import (
	"github.com/gofiber/fiber/v2"

	"github.com/farahtourait-ai/city-college-fee-system/app/config"
	"github.com/farahtourait-ai/city-college-fee-system/app/database"
	"github.com/farahtourait-ai/city-college-fee-system/app/routes/auth"
)

func SetupNotificationsRoutes(app *fiber.App) {
	api := app.Group("/api/notifications")
	api.Use(auth.AuthMiddleware)
	api.Get("/", GetNotificationsAPI)
	api.Get("/student/:id", GetStudentNotificationsAPI)
}

// GetNotificationsAPI returns the reminder log, newest first.
func GetNotificationsAPI(c *fiber.Ctx) error {
	reminders, err := database.GetReminders(config.GetDB(), c.QueryInt("limit", 100))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch notifications"})
	}

	return c.JSON(fiber.Map{"success": true, "reminders": reminders, "count": len(reminders)})
}

func GetStudentNotificationsAPI(c *fiber.Ctx) error {
	reminders, err := database.GetRemindersByStudent(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch notifications"})
	}

	return c.JSON(fiber.Map{"success": true, "reminders": reminders, "count": len(reminders)})
}
