package fees

import (
	"database/sql"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/farahtourait-ai/city-college-fee-system/app/config"
	"github.com/farahtourait-ai/city-college-fee-system/app/database"
	"github.com/farahtourait-ai/city-college-fee-system/app/models"
	"github.com/farahtourait-ai/city-college-fee-system/app/services"
)

func loadFeeWithStudent(c *fiber.Ctx) (*models.FeeRecord, error) {
	fee, err := database.GetFeeRecordByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fiber.NewError(404, "Fee record not found")
		}
		return nil, fiber.NewError(500, "Failed to fetch fee record")
	}
	if fee.Student == nil {
		return nil, fiber.NewError(500, "Fee record has no student")
	}
	return fee, nil
}

// ReceiptPDFAPI streams a payment receipt PDF for a paid fee record.
func ReceiptPDFAPI(c *fiber.Ctx) error {
	fee, err := loadFeeWithStudent(c)
	if err != nil {
		return err
	}
	if fee.IsPending() {
		return c.Status(409).JSON(fiber.Map{"success": false, "error": "Fee is not paid yet, generate a challan instead"})
	}

	pdf, err := services.GenerateReceiptPDF(config.AppConfig.College, fee)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to generate receipt"})
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="receipt-%s.pdf"`, fee.Student.RollNumber))
	return c.Send(pdf)
}

// ChallanPDFAPI streams a printable challan PDF for a pending fee record.
func ChallanPDFAPI(c *fiber.Ctx) error {
	fee, err := loadFeeWithStudent(c)
	if err != nil {
		return err
	}

	pdf, err := services.GenerateChallanPDF(config.AppConfig.College, fee)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to generate challan"})
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="challan-%s.pdf"`, fee.Student.RollNumber))
	return c.Send(pdf)
}

// ReceiptPage renders the printable HTML receipt view.
func ReceiptPage(c *fiber.Ctx) error {
	fee, err := loadFeeWithStudent(c)
	if err != nil {
		return err
	}

	college := config.AppConfig.College
	paidOn := ""
	if fee.PaymentDate != nil {
		paidOn = fee.PaymentDate.Format("02 Jan 2006")
	}

	return c.Render("receipts/receipt", fiber.Map{
		"Title":       "Fee Receipt - " + college.Name,
		"College":     college,
		"Fee":         fee,
		"Student":     fee.Student,
		"Amount":      fee.Amount.StringFixed(2),
		"PaidOn":      paidOn,
		"IsPaid":      !fee.IsPending(),
	}, "")
}

// GenerateChallansAPI creates pending fee records with challan numbers for
// every active student for the requested month.
func GenerateChallansAPI(c *fiber.Ctx) error {
	type ChallanRequest struct {
		Month string `json:"month"`
		Year  int    `json:"year"`
	}

	var req ChallanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request"})
	}
	if !models.IsValidMonth(req.Month) {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid month name"})
	}
	if req.Year < 2000 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid year"})
	}

	result, err := services.GenerateMonthlyChallans(config.GetDB(), req.Month, req.Year)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Challan generation failed: " + err.Error()})
	}

	return c.JSON(fiber.Map{"success": true, "result": result})
}
