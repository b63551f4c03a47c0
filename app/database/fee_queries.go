package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/farahtourait-ai/city-college-fee-system/app/models"
)

// ErrDuplicateFeeRecord is returned when an insert collides with the
// unique (student, month, year) index.
var ErrDuplicateFeeRecord = errors.New("fee record already exists for this student, month and year")

// ErrFeeAlreadyPaid is returned when marking a record paid that is no
// longer pending.
var ErrFeeAlreadyPaid = errors.New("fee record is already paid")

// FeeFilters represents filtering options for fee records
type FeeFilters struct {
	StudentID string
	Status    string
	Month     string
	Year      int
	Search    string
	Limit     int
	Offset    int
}

const feeColumns = `f.id, f.student_id, f.amount, f.month, f.year, f.academic_year,
	f.due_date, f.status, f.payment_date, f.challan_number, f.created_at, f.updated_at`

func scanFeeRecord(scanner interface {
	Scan(dest ...interface{}) error
}) (*models.FeeRecord, error) {
	fee := &models.FeeRecord{}
	err := scanner.Scan(
		&fee.ID, &fee.StudentID, &fee.Amount, &fee.Month, &fee.Year,
		&fee.AcademicYear, &fee.DueDate, &fee.Status, &fee.PaymentDate,
		&fee.ChallanNumber, &fee.CreatedAt, &fee.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return fee, nil
}

// GetFeeRecords returns fee records matching the filters, newest due date
// first, each with its student attached, plus the unpaginated total count.
func GetFeeRecords(db *sql.DB, filters FeeFilters) ([]*models.FeeRecord, int, error) {
	var conditions []string
	var args []interface{}
	argIndex := 1

	conditions = append(conditions, "f.deleted_at IS NULL", "s.deleted_at IS NULL")

	if filters.StudentID != "" {
		conditions = append(conditions, fmt.Sprintf("f.student_id = $%d", argIndex))
		args = append(args, filters.StudentID)
		argIndex++
	}
	if filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("f.status = $%d", argIndex))
		args = append(args, filters.Status)
		argIndex++
	}
	if filters.Month != "" {
		conditions = append(conditions, fmt.Sprintf("f.month = $%d", argIndex))
		args = append(args, filters.Month)
		argIndex++
	}
	if filters.Year != 0 {
		conditions = append(conditions, fmt.Sprintf("f.year = $%d", argIndex))
		args = append(args, filters.Year)
		argIndex++
	}
	if filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(s.name ILIKE $%d OR s.roll_number ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+filters.Search+"%")
		argIndex++
	}

	where := strings.Join(conditions, " AND ")

	var totalCount int
	countQuery := `SELECT COUNT(*) FROM fee_records f JOIN students s ON s.id = f.student_id WHERE ` + where
	if err := db.QueryRow(countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s, s.id, s.roll_number, s.name, s.email, s.phone, s.course
			  FROM fee_records f
			  JOIN students s ON s.id = f.student_id
			  WHERE %s
			  ORDER BY f.due_date DESC, s.name`, feeColumns, where)

	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
		args = append(args, filters.Limit, filters.Offset)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var records []*models.FeeRecord
	for rows.Next() {
		fee := &models.FeeRecord{Student: &models.Student{}}
		err := rows.Scan(
			&fee.ID, &fee.StudentID, &fee.Amount, &fee.Month, &fee.Year,
			&fee.AcademicYear, &fee.DueDate, &fee.Status, &fee.PaymentDate,
			&fee.ChallanNumber, &fee.CreatedAt, &fee.UpdatedAt,
			&fee.Student.ID, &fee.Student.RollNumber, &fee.Student.Name,
			&fee.Student.Email, &fee.Student.Phone, &fee.Student.Course,
		)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, fee)
	}
	return records, totalCount, rows.Err()
}

func GetFeeRecordByID(db *sql.DB, id string) (*models.FeeRecord, error) {
	query := `SELECT ` + feeColumns + ` FROM fee_records f WHERE f.id = $1 AND f.deleted_at IS NULL`
	fee, err := scanFeeRecord(db.QueryRow(query, id))
	if err != nil {
		return nil, err
	}

	student, err := GetStudentByID(db, fee.StudentID)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	fee.Student = student
	return fee, nil
}

func GetFeeRecordsByStudent(db *sql.DB, studentID string) ([]*models.FeeRecord, error) {
	query := `SELECT ` + feeColumns + `
			  FROM fee_records f
			  WHERE f.student_id = $1 AND f.deleted_at IS NULL
			  ORDER BY f.year DESC, f.due_date DESC`

	rows, err := db.Query(query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.FeeRecord
	for rows.Next() {
		fee, err := scanFeeRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, fee)
	}
	return records, rows.Err()
}

// CreateFeeRecord inserts a fee record. A collision with the unique
// (student, month, year) index comes back as ErrDuplicateFeeRecord.
func CreateFeeRecord(db *sql.DB, fee *models.FeeRecord) error {
	query := `INSERT INTO fee_records (student_id, amount, month, year, academic_year, due_date, status, payment_date, challan_number)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING id, created_at, updated_at`

	if fee.Status == "" {
		fee.Status = models.FeePending
	}

	err := db.QueryRow(query,
		fee.StudentID, fee.Amount, fee.Month, fee.Year, fee.AcademicYear,
		fee.DueDate, fee.Status, fee.PaymentDate, fee.ChallanNumber,
	).Scan(&fee.ID, &fee.CreatedAt, &fee.UpdatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrDuplicateFeeRecord
	}
	return err
}

// FeeRecordExists reports whether a live record exists for the student in
// the given month and year.
func FeeRecordExists(db *sql.DB, studentID, month string, year int) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM fee_records
			  WHERE student_id = $1 AND month = $2 AND year = $3 AND deleted_at IS NULL)`
	err := db.QueryRow(query, studentID, month, year).Scan(&exists)
	return exists, err
}

// MarkFeeRecordPaid transitions a pending record to paid. The status guard
// in the WHERE clause makes concurrent double payment a no-op that reports
// ErrFeeAlreadyPaid instead of overwriting the first payment.
func MarkFeeRecordPaid(db *sql.DB, id string, paymentDate time.Time, challanNumber *string) (*models.FeeRecord, error) {
	query := `UPDATE fee_records
			  SET status = 'paid', payment_date = $1,
			      challan_number = COALESCE($2, challan_number),
			      updated_at = NOW()
			  WHERE id = $3 AND status = 'pending' AND deleted_at IS NULL`

	res, err := db.Exec(query, paymentDate, challanNumber, id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Distinguish a missing record from one already paid.
		if _, lookupErr := scanFeeRecord(db.QueryRow(
			`SELECT `+feeColumns+` FROM fee_records f WHERE f.id = $1 AND f.deleted_at IS NULL`, id)); lookupErr != nil {
			return nil, lookupErr
		}
		return nil, ErrFeeAlreadyPaid
	}
	return GetFeeRecordByID(db, id)
}

func UpdateFeeRecord(db *sql.DB, fee *models.FeeRecord) error {
	query := `UPDATE fee_records
			  SET amount = $1, month = $2, year = $3, academic_year = $4, due_date = $5, updated_at = NOW()
			  WHERE id = $6 AND deleted_at IS NULL`

	res, err := db.Exec(query, fee.Amount, fee.Month, fee.Year, fee.AcademicYear, fee.DueDate, fee.ID)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrDuplicateFeeRecord
	}
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func DeleteFeeRecord(db *sql.DB, id string) error {
	res, err := db.Exec(`UPDATE fee_records SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// GetFeeStats summarises fee records, optionally scoped to one month/year.
func GetFeeStats(db *sql.DB, month string, year int) (*models.FeeStats, error) {
	var conditions []string
	var args []interface{}
	argIndex := 1

	conditions = append(conditions, "deleted_at IS NULL")
	if month != "" {
		conditions = append(conditions, fmt.Sprintf("month = $%d", argIndex))
		args = append(args, month)
		argIndex++
	}
	if year != 0 {
		conditions = append(conditions, fmt.Sprintf("year = $%d", argIndex))
		args = append(args, year)
		argIndex++
	}

	query := fmt.Sprintf(`SELECT
			  COUNT(*),
			  COALESCE(SUM(amount), 0),
			  COALESCE(SUM(amount) FILTER (WHERE status = 'paid'), 0),
			  COALESCE(SUM(amount) FILTER (WHERE status = 'pending'), 0),
			  COUNT(*) FILTER (WHERE status = 'paid'),
			  COUNT(*) FILTER (WHERE status = 'pending')
			  FROM fee_records WHERE %s`, strings.Join(conditions, " AND "))

	stats := &models.FeeStats{}
	err := db.QueryRow(query, args...).Scan(
		&stats.TotalRecords, &stats.TotalAmount, &stats.PaidAmount,
		&stats.PendingAmount, &stats.PaidRecords, &stats.PendingRecords,
	)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// NextChallanSequence reserves the next value of the challan counter.
func NextChallanSequence(db *sql.DB) (int64, error) {
	var seq int64
	err := db.QueryRow(`SELECT nextval('challan_number_seq')`).Scan(&seq)
	return seq, err
}

// SetChallanNumber stamps a challan number onto a fee record that does not
// have one yet.
func SetChallanNumber(db *sql.DB, feeID, challanNumber string) error {
	res, err := db.Exec(`UPDATE fee_records SET challan_number = $1, updated_at = NOW()
			  WHERE id = $2 AND challan_number IS NULL AND deleted_at IS NULL`, challanNumber, feeID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
