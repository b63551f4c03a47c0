package students

import (
	"database/sql"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/farahtourait-ai/city-college-fee-system/app/config"
	"github.com/farahtourait-ai/city-college-fee-system/app/database"
	"github.com/farahtourait-ai/city-college-fee-system/app/models"
	"github.com/farahtourait-ai/city-college-fee-system/app/services"
)

var validate = validator.New()

type StudentRequest struct {
	RollNumber string `json:"roll_number" validate:"required"`
	Name       string `json:"name" validate:"required"`
	FatherName string `json:"father_name"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone"`
	Course     string `json:"course"`
	ClassTime  string `json:"class_time"`
	IsActive   *bool  `json:"is_active"`
}

func GetStudentsAPI(c *fiber.Ctx) error {
	filters := database.StudentFilters{
		Search:    c.Query("search"),
		Status:    c.Query("status"),
		CourseID:  c.Query("course_id"),
		SortBy:    c.Query("sort_by", "roll_number"),
		SortOrder: c.Query("sort_order", "asc"),
		Limit:     c.QueryInt("limit", 20),
		Offset:    c.QueryInt("offset", 0),
	}

	students, totalCount, err := database.GetStudentsWithFilters(config.GetDB(), filters)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch students"})
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"students":    students,
		"count":       len(students),
		"total_count": totalCount,
	})
}

func SearchStudentsAPI(c *fiber.Ctx) error {
	query := c.Query("q")
	if len(query) < 2 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Search query must be at least 2 characters"})
	}

	students, _, err := database.GetStudentsWithFilters(config.GetDB(), database.StudentFilters{
		Search: query,
		Limit:  20,
	})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Search failed"})
	}

	return c.JSON(fiber.Map{"success": true, "students": students, "count": len(students)})
}

func GetStudentsStatsAPI(c *fiber.Ctx) error {
	stats, err := database.GetStudentsStats(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch students statistics"})
	}

	return c.JSON(fiber.Map{"success": true, "data": stats})
}

func GetStudentByIDAPI(c *fiber.Ctx) error {
	student, err := database.GetStudentByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch student"})
	}

	return c.JSON(fiber.Map{"success": true, "student": student})
}

// CreateStudentAPI enrolls a student. The free-text course is resolved
// against the catalog to link a course when one matches; the first
// month's fee and the one-time registration fee are created alongside.
func CreateStudentAPI(c *fiber.Ctx) error {
	var req StudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	db := config.GetDB()

	var courseID *string
	var resolution services.CourseResolution
	if req.Course != "" {
		courses, err := database.GetAllCourses(db)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load course catalog"})
		}
		resolution = services.NewCourseResolver(courses).Resolve(req.Course, nil)
		if resolution.Resolved && resolution.Course != nil {
			id := resolution.Course.ID
			courseID = &id
		}
	}

	student := &models.Student{
		RollNumber: req.RollNumber,
		Name:       req.Name,
		FatherName: req.FatherName,
		Email:      req.Email,
		Phone:      req.Phone,
		Course:     req.Course,
		CourseID:   courseID,
		ClassTime:  req.ClassTime,
	}

	if err := database.CreateStudent(db, student); err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to create student: " + err.Error()})
	}

	// First month's fee (when the course resolved) plus the one-time
	// registration fee.
	for _, fee := range services.EnrollmentFees(student.ID, resolution, time.Now()) {
		if err := database.CreateFeeRecord(db, fee); err != nil && err != database.ErrDuplicateFeeRecord {
			log.Printf("Enrollment fee %s for student %s failed: %v", fee.Month, student.RollNumber, err)
		}
	}

	response := fiber.Map{"success": true, "student": student}
	if req.Course != "" && !resolution.Resolved {
		response["course_unresolved"] = true
		response["course_reason"] = resolution.Reason
	}
	return c.Status(201).JSON(response)
}

func UpdateStudentAPI(c *fiber.Ctx) error {
	var req StudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	db := config.GetDB()
	student, err := database.GetStudentByID(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch student"})
	}

	student.RollNumber = req.RollNumber
	student.Name = req.Name
	student.FatherName = req.FatherName
	student.Email = req.Email
	student.Phone = req.Phone
	student.ClassTime = req.ClassTime
	if req.IsActive != nil {
		student.IsActive = *req.IsActive
	}

	// Re-resolve the catalog link when the course text changes.
	if req.Course != student.Course {
		student.Course = req.Course
		student.CourseID = nil
		if req.Course != "" {
			courses, err := database.GetAllCourses(db)
			if err == nil {
				if res := services.NewCourseResolver(courses).Resolve(req.Course, nil); res.Resolved && res.Course != nil {
					id := res.Course.ID
					student.CourseID = &id
				}
			}
		}
	}

	if err := database.UpdateStudent(db, student); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to update student"})
	}

	return c.JSON(fiber.Map{"success": true, "student": student})
}

func DeleteStudentAPI(c *fiber.Ctx) error {
	if err := database.DeleteStudent(config.GetDB(), c.Params("id")); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to delete student"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Student deleted"})
}
