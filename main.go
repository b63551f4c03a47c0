package main

import (
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/template/html/v2"

	"github.com/farahtourait-ai/city-college-fee-system/app/config"
	"github.com/farahtourait-ai/city-college-fee-system/app/database"
	"github.com/farahtourait-ai/city-college-fee-system/app/routes/auth"
	"github.com/farahtourait-ai/city-college-fee-system/app/routes/courses"
	"github.com/farahtourait-ai/city-college-fee-system/app/routes/dashboard"
	"github.com/farahtourait-ai/city-college-fee-system/app/routes/defaulters"
	"github.com/farahtourait-ai/city-college-fee-system/app/routes/fees"
	"github.com/farahtourait-ai/city-college-fee-system/app/routes/notifications"
	"github.com/farahtourait-ai/city-college-fee-system/app/routes/students"
	"github.com/farahtourait-ai/city-college-fee-system/app/services"
)

// customErrorHandler handles HTTP errors with custom templates
func customErrorHandler(c *fiber.Ctx, err error) error {
	// Status code defaults to 500
	code := fiber.StatusInternalServerError

	// Retrieve the custom status code if it's a *fiber.Error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	// Check if this is an API request
	if len(c.Path()) >= 4 && c.Path()[:4] == "/api" {
		return c.Status(code).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"code":    code,
		})
	}

	title := "Error - City Computer College"
	errorTitle := "An Error Occurred"
	message := err.Error()
	switch code {
	case 404:
		title = "Page Not Found - City Computer College"
		errorTitle = "Page Not Found"
		message = "The page you are looking for does not exist."
	case 401:
		title = "Unauthorized - City Computer College"
		errorTitle = "Unauthorized"
		message = "Please log in to access this resource."
	case 403:
		title = "Access Forbidden - City Computer College"
		errorTitle = "Access Forbidden"
		message = "You don't have permission to access this resource."
	case 500:
		title = "Server Error - City Computer College"
		errorTitle = "Internal Server Error"
		message = "We're experiencing technical difficulties. Please try again later."
	}

	return c.Status(code).Render("error", fiber.Map{
		"Title":        title,
		"ErrorCode":    code,
		"ErrorTitle":   errorTitle,
		"ErrorMessage": message,
	})
}

func main() {
	// Load .env before anything reads the environment
	config.LoadEnv()

	// Initialize database
	config.InitDB()
	defer config.GetDB().Close()

	// Run database migrations
	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Start background scheduler
	scheduler := services.StartScheduler(config.GetDB(), config.AppConfig)
	defer scheduler.Stop()

	// Initialize template engine
	engine := html.New("./app/templates", ".html")
	engine.AddFunc("json", func(v interface{}) (string, error) {
		b, err := json.Marshal(v)
		return string(b), err
	})

	// Create Fiber app
	app := fiber.New(fiber.Config{
		Views:             engine,
		PassLocalsToViews: true,
		ErrorHandler:      customErrorHandler,
		BodyLimit:         20 * 1024 * 1024, // spreadsheet uploads
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Routes
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/auth/login")
	})

	auth.SetupAuthRoutes(app)
	dashboard.SetupDashboardRoutes(app)
	students.SetupStudentsRoutes(app)
	courses.SetupCoursesRoutes(app)
	fees.SetupFeesRoutes(app)
	defaulters.SetupDefaultersRoutes(app)
	notifications.SetupNotificationsRoutes(app)

	// Catch-all route for 404 errors (must be last)
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Page not found")
	})

	// Start server
	log.Println("Server starting on :8080")
	log.Fatal(app.Listen(":8080"))
}
