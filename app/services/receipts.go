package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/farahtourait-ai/city-college-fee-system/app/config"
	"github.com/farahtourait-ai/city-college-fee-system/app/models"
)

// GenerateReceiptPDF renders a payment receipt for a paid fee record. The
// fee must carry its student.
func GenerateReceiptPDF(college config.CollegeConfig, fee *models.FeeRecord) ([]byte, error) {
	if fee.Student == nil {
		return nil, fmt.Errorf("fee record has no student loaded")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 10, college.Name, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, college.Address, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, "Phone: "+college.Phone, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "FEE RECEIPT", "T", 1, "C", false, 0, "")
	pdf.Ln(4)

	receiptNo := fee.ID
	if fee.ChallanNumber != nil {
		receiptNo = *fee.ChallanNumber
	}
	paidOn := ""
	if fee.PaymentDate != nil {
		paidOn = fee.PaymentDate.Format("02 Jan 2006")
	}

	rows := [][2]string{
		{"Receipt No", receiptNo},
		{"Date", paidOn},
		{"Roll Number", fee.Student.RollNumber},
		{"Student Name", fee.Student.Name},
		{"Father Name", fee.Student.FatherName},
		{"Course", fee.Student.Course},
		{"Fee Month", fmt.Sprintf("%s %d", fee.Month, fee.Year)},
		{"Amount Paid", "Rs. " + fee.Amount.StringFixed(2)},
		{"Status", string(fee.Status)},
	}

	pdf.SetFont("Arial", "", 11)
	for _, row := range rows {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(50, 8, row[0], "1", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(0, 8, row[1], "1", 1, "L", false, 0, "")
	}

	pdf.Ln(10)
	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(0, 6, "This is a computer generated receipt and does not require a signature.", "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, "Generated on "+time.Now().Format("02 Jan 2006 15:04"), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return buf.Bytes(), nil
}
