package fees

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/farahtourait-ai/city-college-fee-system/app/config"
	"github.com/farahtourait-ai/city-college-fee-system/app/database"
	"github.com/farahtourait-ai/city-college-fee-system/app/services"
)

type MarkPaidRequest struct {
	PaymentDate   string `json:"payment_date"` // YYYY-MM-DD, defaults to today
	ChallanNumber string `json:"challan_number"`
	SendEmail     bool   `json:"send_email"`
}

func parsePaymentDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now(), nil
	}
	return time.ParseInLocation("2006-01-02", raw, time.Local)
}

// MarkFeePaidAPI transitions a pending fee to paid. Optionally emails the
// student a payment confirmation.
func MarkFeePaidAPI(c *fiber.Ctx) error {
	var req MarkPaidRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request"})
	}

	paymentDate, err := parsePaymentDate(req.PaymentDate)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid payment date, expected YYYY-MM-DD"})
	}

	var challan *string
	if req.ChallanNumber != "" {
		challan = &req.ChallanNumber
	}

	db := config.GetDB()
	fee, err := database.MarkFeeRecordPaid(db, c.Params("id"), paymentDate, challan)
	if err != nil {
		switch err {
		case sql.ErrNoRows:
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "Fee record not found"})
		case database.ErrFeeAlreadyPaid:
			return c.Status(409).JSON(fiber.Map{"success": false, "error": err.Error()})
		default:
			return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to mark fee as paid"})
		}
	}

	if req.SendEmail && fee.Student != nil {
		mailer := services.NewMailer(db, config.AppConfig)
		mailer.SendPaymentConfirmation(fee.Student, fee)
	}

	return c.JSON(fiber.Map{"success": true, "record": fee})
}

// MarkFeesPaidBulkAPI marks several fee records paid in one call, as the
// office does when clearing a counter sheet. Each record is reported
// individually so one already-paid record does not abort the batch.
func MarkFeesPaidBulkAPI(c *fiber.Ctx) error {
	type BulkRequest struct {
		FeeIDs      []string `json:"fee_ids"`
		PaymentDate string   `json:"payment_date"`
		SendEmail   bool     `json:"send_email"`
	}

	var req BulkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request"})
	}
	if len(req.FeeIDs) == 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "fee_ids is required"})
	}

	paymentDate, err := parsePaymentDate(req.PaymentDate)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid payment date, expected YYYY-MM-DD"})
	}

	db := config.GetDB()
	mailer := services.NewMailer(db, config.AppConfig)

	type outcome struct {
		FeeID string `json:"fee_id"`
		Paid  bool   `json:"paid"`
		Error string `json:"error,omitempty"`
	}

	var results []outcome
	paid := 0
	for _, id := range req.FeeIDs {
		fee, err := database.MarkFeeRecordPaid(db, id, paymentDate, nil)
		if err != nil {
			msg := "failed to mark paid"
			switch err {
			case sql.ErrNoRows:
				msg = "not found"
			case database.ErrFeeAlreadyPaid:
				msg = err.Error()
			}
			results = append(results, outcome{FeeID: id, Error: msg})
			continue
		}
		paid++
		results = append(results, outcome{FeeID: id, Paid: true})

		if req.SendEmail && fee.Student != nil {
			mailer.SendPaymentConfirmation(fee.Student, fee)
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"paid":    paid,
		"failed":  len(req.FeeIDs) - paid,
		"results": results,
	})
}
