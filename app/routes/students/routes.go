package students

import (
	"github.com/gofiber/fiber/v2"

	"github.com/farahtourait-ai/city-college-fee-system/app/routes/auth"
)

func SetupStudentsRoutes(app *fiber.App) {
	// API routes
	api := app.Group("/api/students")
	api.Use(auth.AuthMiddleware)
	api.Get("/", GetStudentsAPI)           // Get students with filters and pagination
	api.Get("/search", SearchStudentsAPI)  // Search students
	api.Get("/stats", GetStudentsStatsAPI) // Get students statistics
	api.Post("/import", ImportStudentsAPI) // Bulk import from CSV/XLSX
	api.Get("/:id", GetStudentByIDAPI)     // Get single student by ID
	api.Post("/", CreateStudentAPI)        // Create new student
	api.Put("/:id", UpdateStudentAPI)      // Update existing student
	api.Delete("/:id", auth.RoleMiddleware("admin"), DeleteStudentAPI)
}
