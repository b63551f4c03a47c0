package defaulters

import (
	"github.com/gofiber/fiber/v2"

	"github.com/farahtourait-ai/city-college-fee-system/app/routes/auth"
)

func SetupDefaultersRoutes(app *fiber.App) {
	api := app.Group("/api/defaulters")
	api.Use(auth.AuthMiddleware)
	api.Get("/", GetDefaultersAPI)       // Get defaulter list
	api.Get("/stats", GetDefaulterStatsAPI)
	api.Post("/remind", SendRemindersAPI) // Email selected or all defaulters
}
