package services

import (
	"bytes"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"

	"github.com/farahtourait-ai/city-college-fee-system/app/config"
	"github.com/farahtourait-ai/city-college-fee-system/app/database"
	"github.com/farahtourait-ai/city-college-fee-system/app/models"
)

// ChallanResult reports a monthly challan generation run.
type ChallanResult struct {
	Month      string   `json:"month"`
	Year       int      `json:"year"`
	Generated  int      `json:"generated"`
	Existing   int      `json:"existing"`
	Unresolved []string `json:"unresolved_courses,omitempty"`
}

// GenerateMonthlyChallans creates a pending fee record with a challan
// number for every active student for the given month, skipping students
// who already have one. Fee amounts come from the course resolver; a miss
// is surfaced in the result rather than silently defaulted.
func GenerateMonthlyChallans(db *sql.DB, month string, year int) (*ChallanResult, error) {
	if !models.IsValidMonth(month) {
		return nil, fmt.Errorf("invalid month %q", month)
	}

	students, _, err := database.GetStudentsWithFilters(db, database.StudentFilters{Status: "active"})
	if err != nil {
		return nil, err
	}
	courses, err := database.GetAllCourses(db)
	if err != nil {
		return nil, err
	}
	resolver := NewCourseResolver(courses)

	result := &ChallanResult{Month: month, Year: year}
	unresolved := make(map[string]bool)
	dueDate := FeeDueDate(year, time.Month(models.MonthIndex(month)+1))

	for _, student := range students {
		exists, err := database.FeeRecordExists(db, student.ID, month, year)
		if err != nil {
			return nil, err
		}
		if exists {
			result.Existing++
			continue
		}

		var linked *models.Course
		if student.CourseID != nil {
			if c, err := database.GetCourseByID(db, *student.CourseID); err == nil {
				linked = c
			}
		}
		resolution := resolver.Resolve(student.Course, linked)
		fee := resolution.MonthlyFee
		if !resolution.Resolved {
			fee = resolution.SuggestedFee
			if !unresolved[student.Course] {
				unresolved[student.Course] = true
				result.Unresolved = append(result.Unresolved, student.Course)
			}
		}

		seq, err := database.NextChallanSequence(db)
		if err != nil {
			return nil, err
		}
		challanNumber := fmt.Sprintf("CH-%d-%02d-%d", year, models.MonthIndex(month)+1, seq)

		record := &models.FeeRecord{
			StudentID:     student.ID,
			Amount:        fee,
			Month:         month,
			Year:          year,
			DueDate:       dueDate,
			Status:        models.FeePending,
			ChallanNumber: &challanNumber,
		}
		err = database.CreateFeeRecord(db, record)
		if err == database.ErrDuplicateFeeRecord {
			// Lost a race with a concurrent run; the record exists, which
			// is all this pass needs.
			result.Existing++
			continue
		}
		if err != nil {
			log.Printf("Challan for student %s (%s) failed: %v", student.RollNumber, month, err)
			continue
		}
		result.Generated++
	}

	return result, nil
}

// GenerateChallanPDF renders a printable bank challan for a pending fee,
// with a QR code carrying the challan reference for quick lookup at the
// counter.
func GenerateChallanPDF(college config.CollegeConfig, fee *models.FeeRecord) ([]byte, error) {
	if fee.Student == nil {
		return nil, fmt.Errorf("fee record has no student loaded")
	}

	challanNo := fee.ID
	if fee.ChallanNumber != nil {
		challanNo = *fee.ChallanNumber
	}

	qrPayload := fmt.Sprintf("%s|%s|%s %d|%s", challanNo, fee.Student.RollNumber, fee.Month, fee.Year, fee.Amount.StringFixed(2))
	qrPNG, err := qrcode.Encode(qrPayload, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("encode challan qr: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 10, college.Name, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, college.Address, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "FEE CHALLAN", "T", 1, "C", false, 0, "")
	pdf.Ln(4)

	rows := [][2]string{
		{"Challan No", challanNo},
		{"Roll Number", fee.Student.RollNumber},
		{"Student Name", fee.Student.Name},
		{"Course", fee.Student.Course},
		{"Fee Month", fmt.Sprintf("%s %d", fee.Month, fee.Year)},
		{"Due Date", fee.DueDate.Format("02 Jan 2006")},
		{"Amount Due", "Rs. " + fee.Amount.StringFixed(2)},
	}

	for _, row := range rows {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(50, 8, row[0], "1", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(0, 8, row[1], "1", 1, "L", false, 0, "")
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("challan-qr", opts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("challan-qr", 150, 30, 35, 35, false, opts, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(0, 6, "Payable at the college office before the due date. Late payment may incur a surcharge.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render challan: %w", err)
	}
	return buf.Bytes(), nil
}
