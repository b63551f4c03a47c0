package dashboard

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/farahtourait-ai/city-college-fee-system/app/config"
	"github.com/farahtourait-ai/city-college-fee-system/app/database"
	"github.com/farahtourait-ai/city-college-fee-system/app/routes/auth"
	"github.com/farahtourait-ai/city-college-fee-system/app/services"
)

func SetupDashboardRoutes(app *fiber.App) {
	api := app.Group("/api/dashboard")
	api.Use(auth.AuthMiddleware)
	api.Get("/stats", GetDashboardStatsAPI)
}

// GetDashboardStatsAPI returns the landing page counters: enrollment and
// catalog sizes, collected versus pending amounts, and the defaulter
// summary.
func GetDashboardStatsAPI(c *fiber.Ctx) error {
	db := config.GetDB()

	stats, err := database.GetDashboardStats(db)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch dashboard statistics"})
	}

	students, err := database.GetStudentsWithFeeRecords(db)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to compute defaulters"})
	}
	defaulters := services.BuildDefaulters(students, time.Now())
	stats.TotalDefaulters = len(defaulters)

	return c.JSON(fiber.Map{
		"success":         true,
		"data":            stats,
		"defaulter_stats": services.ComputeDefaulterStats(defaulters),
	})
}
