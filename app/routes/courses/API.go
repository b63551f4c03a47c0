package courses

import (
	"database/sql"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/farahtourait-ai/city-college-fee-system/app/config"
	"github.com/farahtourait-ai/city-college-fee-system/app/database"
	"github.com/farahtourait-ai/city-college-fee-system/app/models"
)

var validate = validator.New()

type CourseRequest struct {
	Name           string          `json:"name" validate:"required"`
	MonthlyFee     decimal.Decimal `json:"monthly_fee" validate:"required"`
	DurationMonths int             `json:"duration_months" validate:"required,min=1"`
	Category       string          `json:"category"`
}

func GetCoursesAPI(c *fiber.Ctx) error {
	courses, err := database.GetAllCourses(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch courses"})
	}

	return c.JSON(fiber.Map{"success": true, "courses": courses, "count": len(courses)})
}

func GetCourseByIDAPI(c *fiber.Ctx) error {
	course, err := database.GetCourseByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "Course not found"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch course"})
	}

	return c.JSON(fiber.Map{"success": true, "course": course})
}

func CreateCourseAPI(c *fiber.Ctx) error {
	var req CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	if !req.MonthlyFee.IsPositive() {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Monthly fee must be positive"})
	}

	course := &models.Course{
		Name:           req.Name,
		MonthlyFee:     req.MonthlyFee,
		DurationMonths: req.DurationMonths,
		Category:       req.Category,
	}

	if err := database.CreateCourse(config.GetDB(), course); err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to create course"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "course": course})
}

func UpdateCourseAPI(c *fiber.Ctx) error {
	var req CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	if !req.MonthlyFee.IsPositive() {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Monthly fee must be positive"})
	}

	course := &models.Course{
		ID:             c.Params("id"),
		Name:           req.Name,
		MonthlyFee:     req.MonthlyFee,
		DurationMonths: req.DurationMonths,
		Category:       req.Category,
	}

	if err := database.UpdateCourse(config.GetDB(), course); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "Course not found"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to update course"})
	}

	return c.JSON(fiber.Map{"success": true, "course": course})
}

func DeleteCourseAPI(c *fiber.Ctx) error {
	if err := database.DeleteCourse(config.GetDB(), c.Params("id")); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "Course not found"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to delete course"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Course deleted"})
}
