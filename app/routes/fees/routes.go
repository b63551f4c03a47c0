package fees

import (
	"github.com/gofiber/fiber/v2"

	"github.com/farahtourait-ai/city-college-fee-system/app/routes/auth"
)

func SetupFeesRoutes(app *fiber.App) {
	api := app.Group("/api/fees")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetFeeRecordsAPI)             // Get fee records with filters
	api.Get("/stats", GetFeeStatsAPI)          // Get fee statistics
	api.Post("/", CreateFeeRecordAPI)          // Create fee record
	api.Post("/challans", GenerateChallansAPI) // Generate monthly challans
	api.Get("/:id", GetFeeRecordByIDAPI)
	api.Put("/:id", UpdateFeeRecordAPI)
	api.Delete("/:id", auth.RoleMiddleware("admin"), DeleteFeeRecordAPI)
	api.Post("/:id/pay", MarkFeePaidAPI)       // Mark single fee paid
	api.Post("/pay-bulk", MarkFeesPaidBulkAPI) // Mark several fees paid
	api.Get("/:id/receipt.pdf", ReceiptPDFAPI) // Download receipt PDF
	api.Get("/:id/challan.pdf", ChallanPDFAPI) // Download challan PDF

	// Printable HTML views
	web := app.Group("/fees")
	web.Use(auth.AuthMiddleware)
	web.Get("/:id/receipt", ReceiptPage)
}
