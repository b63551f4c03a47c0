package services

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/farahtourait-ai/city-college-fee-system/app/database"
	"github.com/farahtourait-ai/city-college-fee-system/app/models"
)

// importFallbackFee is charged on imported students whose course could not
// be resolved against the catalog or the fee table.
var importFallbackFee = decimal.NewFromInt(5000)

// FeeDueDay is the day of the month fees fall due.
const FeeDueDay = 10

// ImportRow is one parsed spreadsheet row before any database work.
type ImportRow struct {
	LineNumber int
	RollNumber string
	Name       string
	FatherName string
	Email      string
	Phone      string
	Course     string
	ClassTime  string
}

// ImportError describes why one row was not imported.
type ImportError struct {
	LineNumber int    `json:"line_number"`
	RollNumber string `json:"roll_number,omitempty"`
	Message    string `json:"message"`
}

// ImportResult is the aggregate outcome of a bulk import. Duplicates are
// classified and reported, never silently re-inserted.
type ImportResult struct {
	TotalRows         int           `json:"total_rows"`
	Imported          int           `json:"imported"`
	Duplicates        int           `json:"duplicates"`
	Skipped           int           `json:"skipped"`
	Failed            int           `json:"failed"`
	DuplicateRolls    []string      `json:"duplicate_rolls,omitempty"`
	UnresolvedCourses []string      `json:"unresolved_courses,omitempty"`
	Errors            []ImportError `json:"errors,omitempty"`
}

// normalizeHeader trims, lowercases and converts spaces to underscores so
// that "Roll No" and "roll_no" map the same way.
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.Join(strings.Fields(h), "_")
	return h
}

// headerField maps a normalized spreadsheet header to a student field
// name, tolerating the header variants office spreadsheets actually use.
func headerField(header string) string {
	switch {
	case strings.Contains(header, "roll"):
		return "roll_number"
	case strings.Contains(header, "father"):
		return "father_name"
	case strings.Contains(header, "mail"):
		return "email"
	case strings.Contains(header, "phone"), strings.Contains(header, "telephone"),
		strings.Contains(header, "mobile"), strings.Contains(header, "contact"):
		return "phone"
	case strings.Contains(header, "course"), strings.Contains(header, "subject"):
		return "course"
	case strings.Contains(header, "class"), strings.Contains(header, "time"),
		strings.Contains(header, "shift"):
		return "class_time"
	case strings.Contains(header, "name"):
		return "name"
	}
	return ""
}

func rowFromRecord(fields map[int]string, record []string, lineNumber int) ImportRow {
	row := ImportRow{LineNumber: lineNumber}
	for i, value := range record {
		value = strings.TrimSpace(value)
		switch fields[i] {
		case "roll_number":
			row.RollNumber = value
		case "name":
			row.Name = value
		case "father_name":
			row.FatherName = value
		case "email":
			row.Email = value
		case "phone":
			row.Phone = value
		case "course":
			row.Course = value
		case "class_time":
			row.ClassTime = value
		}
	}
	return row
}

func mapHeaders(header []string) (map[int]string, error) {
	fields := make(map[int]string)
	for i, h := range header {
		if f := headerField(normalizeHeader(h)); f != "" {
			fields[i] = f
		}
	}
	hasRoll, hasName := false, false
	for _, f := range fields {
		if f == "roll_number" {
			hasRoll = true
		}
		if f == "name" {
			hasName = true
		}
	}
	if !hasRoll || !hasName {
		return nil, fmt.Errorf("header row must include roll number and name columns")
	}
	return fields, nil
}

// ParseCSV reads student rows from a CSV stream. The first row is the
// header; ragged rows are tolerated.
func ParseCSV(r io.Reader) ([]ImportRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	fields, err := mapHeaders(header)
	if err != nil {
		return nil, err
	}

	var rows []ImportRow
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line+1, err)
		}
		line++
		rows = append(rows, rowFromRecord(fields, record, line))
	}
	return rows, nil
}

// ParseXLSX reads student rows from the first sheet of an Excel workbook.
func ParseXLSX(r io.Reader) ([]ImportRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}

	fields, err := mapHeaders(records[0])
	if err != nil {
		return nil, err
	}

	var rows []ImportRow
	for i, record := range records[1:] {
		rows = append(rows, rowFromRecord(fields, record, i+2))
	}
	return rows, nil
}

// skipCourse reports whether a row's course text marks it as a
// non-importable entry.
func skipCourse(course string) bool {
	c := strings.ToLower(course)
	return strings.Contains(c, "diploma in it") || strings.Contains(c, "registration")
}

// FeeDueDate returns the due date for a month's fee, always the 10th.
func FeeDueDate(year int, month time.Month) time.Time {
	return time.Date(year, month, FeeDueDay, 0, 0, 0, 0, time.Local)
}

// Importer turns parsed rows into students with an opening pending fee.
type Importer struct {
	db       *sql.DB
	resolver *CourseResolver
}

func NewImporter(db *sql.DB, resolver *CourseResolver) *Importer {
	return &Importer{db: db, resolver: resolver}
}

// rowClass is the per-row import decision, taken before anything
// touches the database.
type rowClass int

const (
	rowImport rowClass = iota
	rowEmpty
	rowMissingFields
	rowSkippedCourse
	rowDuplicate
)

// classifyRow decides what Import does with one row. Only rowImport
// rows ever reach the database; a roll number already in existing is a
// duplicate, never a fresh insert.
func classifyRow(row ImportRow, existing map[string]bool) rowClass {
	switch {
	case row.RollNumber == "" && row.Name == "" && row.Course == "":
		return rowEmpty
	case row.RollNumber == "" || row.Name == "":
		return rowMissingFields
	case skipCourse(row.Course):
		return rowSkippedCourse
	case existing[row.RollNumber]:
		return rowDuplicate
	}
	return rowImport
}

// Import classifies and inserts the parsed rows. Duplicate roll numbers
// and skip-listed courses are counted, not inserted; every imported
// student gets a pending fee for the current month due on the 10th.
func (im *Importer) Import(rows []ImportRow) (*ImportResult, error) {
	result := &ImportResult{TotalRows: len(rows)}

	existing, err := database.GetAllRollNumbers(im.db)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	unresolved := make(map[string]bool)

	for _, row := range rows {
		switch classifyRow(row, existing) {
		case rowEmpty, rowSkippedCourse:
			result.Skipped++
			continue
		case rowMissingFields:
			result.Failed++
			result.Errors = append(result.Errors, ImportError{
				LineNumber: row.LineNumber,
				RollNumber: row.RollNumber,
				Message:    "roll number and name are required",
			})
			continue
		case rowDuplicate:
			result.Duplicates++
			result.DuplicateRolls = append(result.DuplicateRolls, row.RollNumber)
			continue
		}

		resolution := im.resolver.Resolve(row.Course, nil)
		fee := resolution.MonthlyFee
		var courseID *string
		if resolution.Resolved && resolution.Course != nil {
			id := resolution.Course.ID
			courseID = &id
		}
		if !resolution.Resolved {
			fee = importFallbackFee
			if !unresolved[row.Course] {
				unresolved[row.Course] = true
				result.UnresolvedCourses = append(result.UnresolvedCourses, row.Course)
			}
		}

		student := &models.Student{
			RollNumber: row.RollNumber,
			Name:       row.Name,
			FatherName: row.FatherName,
			Email:      row.Email,
			Phone:      row.Phone,
			Course:     row.Course,
			CourseID:   courseID,
			ClassTime:  row.ClassTime,
		}
		if err := database.CreateStudent(im.db, student); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, ImportError{
				LineNumber: row.LineNumber,
				RollNumber: row.RollNumber,
				Message:    err.Error(),
			})
			continue
		}
		existing[row.RollNumber] = true

		feeRecord := &models.FeeRecord{
			StudentID: student.ID,
			Amount:    fee,
			Month:     models.Months[now.Month()-1],
			Year:      now.Year(),
			DueDate:   FeeDueDate(now.Year(), now.Month()),
			Status:    models.FeePending,
		}
		if err := database.CreateFeeRecord(im.db, feeRecord); err != nil && err != database.ErrDuplicateFeeRecord {
			result.Errors = append(result.Errors, ImportError{
				LineNumber: row.LineNumber,
				RollNumber: row.RollNumber,
				Message:    "student imported but opening fee failed: " + err.Error(),
			})
		}

		result.Imported++
	}

	return result, nil
}
