package fees

import (
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/farahtourait-ai/city-college-fee-system/app/config"
	"github.com/farahtourait-ai/city-college-fee-system/app/database"
	"github.com/farahtourait-ai/city-college-fee-system/app/models"
	"github.com/farahtourait-ai/city-college-fee-system/app/services"
)

var validate = validator.New()

type FeeRecordRequest struct {
	StudentID    string          `json:"student_id" validate:"required,uuid"`
	Amount       decimal.Decimal `json:"amount"`
	Month        string          `json:"month" validate:"required"`
	Year         int             `json:"year" validate:"required,min=2000"`
	AcademicYear string          `json:"academic_year"`
	DueDate      string          `json:"due_date"` // YYYY-MM-DD, defaults to the 10th
}

func GetFeeRecordsAPI(c *fiber.Ctx) error {
	filters := database.FeeFilters{
		StudentID: c.Query("student_id"),
		Status:    c.Query("status"),
		Month:     c.Query("month"),
		Year:      c.QueryInt("year", 0),
		Search:    c.Query("search"),
		Limit:     c.QueryInt("limit", 20),
		Offset:    c.QueryInt("offset", 0),
	}

	records, totalCount, err := database.GetFeeRecords(config.GetDB(), filters)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch fee records"})
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"records":     records,
		"count":       len(records),
		"total_count": totalCount,
	})
}

func GetFeeStatsAPI(c *fiber.Ctx) error {
	stats, err := database.GetFeeStats(config.GetDB(), c.Query("month"), c.QueryInt("year", 0))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch fee statistics"})
	}

	return c.JSON(fiber.Map{"success": true, "data": stats})
}

func GetFeeRecordByIDAPI(c *fiber.Ctx) error {
	fee, err := database.GetFeeRecordByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "Fee record not found"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch fee record"})
	}

	return c.JSON(fiber.Map{"success": true, "record": fee})
}

// CreateFeeRecordAPI creates a pending fee. When no amount is given the
// fee comes from the course resolver; an unresolved course is an error the
// operator must fix, not a silent default charge.
func CreateFeeRecordAPI(c *fiber.Ctx) error {
	var req FeeRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	if !models.IsValidMonth(req.Month) {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid month name"})
	}

	db := config.GetDB()
	student, err := database.GetStudentByID(db, req.StudentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch student"})
	}

	amount := req.Amount
	if !amount.IsPositive() {
		courses, err := database.GetAllCourses(db)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load course catalog"})
		}
		resolution := services.NewCourseResolver(courses).Resolve(student.Course, student.CatalogCourse)
		if !resolution.Resolved {
			return c.Status(422).JSON(fiber.Map{
				"success":       false,
				"error":         "Could not resolve a fee for course: " + resolution.Reason,
				"suggested_fee": resolution.SuggestedFee,
			})
		}
		amount = resolution.MonthlyFee
	}

	dueDate := services.FeeDueDate(req.Year, time.Month(models.MonthIndex(req.Month)+1))
	if req.DueDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", req.DueDate, time.Local)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid due date, expected YYYY-MM-DD"})
		}
		dueDate = parsed
	}

	fee := &models.FeeRecord{
		StudentID:    req.StudentID,
		Amount:       amount,
		Month:        req.Month,
		Year:         req.Year,
		AcademicYear: req.AcademicYear,
		DueDate:      dueDate,
		Status:       models.FeePending,
	}

	if err := database.CreateFeeRecord(db, fee); err != nil {
		if err == database.ErrDuplicateFeeRecord {
			return c.Status(409).JSON(fiber.Map{"success": false, "error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to create fee record"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "record": fee})
}

func UpdateFeeRecordAPI(c *fiber.Ctx) error {
	var req FeeRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request"})
	}
	if !models.IsValidMonth(req.Month) {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid month name"})
	}
	if !req.Amount.IsPositive() {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Amount must be positive"})
	}

	dueDate := services.FeeDueDate(req.Year, time.Month(models.MonthIndex(req.Month)+1))
	if req.DueDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", req.DueDate, time.Local)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid due date, expected YYYY-MM-DD"})
		}
		dueDate = parsed
	}

	fee := &models.FeeRecord{
		ID:           c.Params("id"),
		Amount:       req.Amount,
		Month:        req.Month,
		Year:         req.Year,
		AcademicYear: req.AcademicYear,
		DueDate:      dueDate,
	}

	if err := database.UpdateFeeRecord(config.GetDB(), fee); err != nil {
		switch err {
		case sql.ErrNoRows:
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "Fee record not found"})
		case database.ErrDuplicateFeeRecord:
			return c.Status(409).JSON(fiber.Map{"success": false, "error": err.Error()})
		default:
			return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to update fee record"})
		}
	}

	return c.JSON(fiber.Map{"success": true, "record": fee})
}

func DeleteFeeRecordAPI(c *fiber.Ctx) error {
	if err := database.DeleteFeeRecord(config.GetDB(), c.Params("id")); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "Fee record not found"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to delete fee record"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Fee record deleted"})
}
