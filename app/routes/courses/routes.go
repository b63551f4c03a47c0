package courses

import (
	"github.com/gofiber/fiber/v2"

	"github.com/farahtourait-ai/city-college-fee-system/app/routes/auth"
)

func SetupCoursesRoutes(app *fiber.App) {
	api := app.Group("/api/courses")
	api.Use(auth.AuthMiddleware)
	api.Get("/", GetCoursesAPI)       // Get all courses
	api.Get("/:id", GetCourseByIDAPI) // Get single course
	api.Post("/", CreateCourseAPI)    // Create new course
	api.Put("/:id", UpdateCourseAPI)  // Update existing course
	api.Delete("/:id", auth.RoleMiddleware("admin"), DeleteCourseAPI)
}
