package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/farahtourait-ai/city-college-fee-system/app/models"
)

// StudentFilters represents filtering options for students
type StudentFilters struct {
	Search    string
	Status    string
	CourseID  string
	SortBy    string
	SortOrder string
	Limit     int
	Offset    int
}

const studentColumns = `s.id, s.roll_number, s.name, s.father_name, s.email, s.phone,
	s.course, s.course_id, s.class_time, s.enrollment_date, s.is_active,
	s.created_at, s.updated_at`

func scanStudent(scanner interface {
	Scan(dest ...interface{}) error
}) (*models.Student, error) {
	student := &models.Student{}
	err := scanner.Scan(
		&student.ID, &student.RollNumber, &student.Name, &student.FatherName,
		&student.Email, &student.Phone, &student.Course, &student.CourseID,
		&student.ClassTime, &student.EnrollmentDate, &student.IsActive,
		&student.CreatedAt, &student.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return student, nil
}

// GetStudentsWithFilters returns students matching the filters plus the
// unpaginated total count.
func GetStudentsWithFilters(db *sql.DB, filters StudentFilters) ([]*models.Student, int, error) {
	var conditions []string
	var args []interface{}
	argIndex := 1

	conditions = append(conditions, "s.deleted_at IS NULL")

	if filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(s.name ILIKE $%d OR s.roll_number ILIKE $%d OR s.course ILIKE $%d OR s.email ILIKE $%d OR s.phone ILIKE $%d)",
			argIndex, argIndex, argIndex, argIndex, argIndex))
		args = append(args, "%"+filters.Search+"%")
		argIndex++
	}

	if filters.Status == "active" {
		conditions = append(conditions, "s.is_active = true")
	} else if filters.Status == "inactive" {
		conditions = append(conditions, "s.is_active = false")
	}

	if filters.CourseID != "" {
		conditions = append(conditions, fmt.Sprintf("s.course_id = $%d", argIndex))
		args = append(args, filters.CourseID)
		argIndex++
	}

	where := strings.Join(conditions, " AND ")

	var totalCount int
	countQuery := "SELECT COUNT(*) FROM students s WHERE " + where
	if err := db.QueryRow(countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	// Whitelist sortable columns; anything else falls back to roll_number.
	sortBy := "roll_number"
	switch filters.SortBy {
	case "name", "roll_number", "enrollment_date", "created_at":
		sortBy = filters.SortBy
	}
	sortOrder := "ASC"
	if strings.EqualFold(filters.SortOrder, "desc") {
		sortOrder = "DESC"
	}

	query := fmt.Sprintf("SELECT %s FROM students s WHERE %s ORDER BY s.%s %s",
		studentColumns, where, sortBy, sortOrder)

	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
		args = append(args, filters.Limit, filters.Offset)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, 0, err
		}
		students = append(students, student)
	}
	return students, totalCount, rows.Err()
}

func GetAllStudents(db *sql.DB) ([]*models.Student, error) {
	students, _, err := GetStudentsWithFilters(db, StudentFilters{SortBy: "name"})
	return students, err
}

// GetStudentByID loads one student with its catalog course (when linked)
// and all fee records.
func GetStudentByID(db *sql.DB, id string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + `,
			  c.id, c.name, c.monthly_fee, c.duration_months, c.category
			  FROM students s
			  LEFT JOIN courses c ON s.course_id = c.id AND c.deleted_at IS NULL
			  WHERE s.id = $1 AND s.deleted_at IS NULL`

	student := &models.Student{}
	var cID, cName, cCategory sql.NullString
	var cFee sql.NullString
	var cDuration sql.NullInt64

	err := db.QueryRow(query, id).Scan(
		&student.ID, &student.RollNumber, &student.Name, &student.FatherName,
		&student.Email, &student.Phone, &student.Course, &student.CourseID,
		&student.ClassTime, &student.EnrollmentDate, &student.IsActive,
		&student.CreatedAt, &student.UpdatedAt,
		&cID, &cName, &cFee, &cDuration, &cCategory,
	)
	if err != nil {
		return nil, err
	}

	if cID.Valid {
		course := &models.Course{
			ID:             cID.String,
			Name:           cName.String,
			DurationMonths: int(cDuration.Int64),
			Category:       cCategory.String,
		}
		if cFee.Valid {
			if err := course.MonthlyFee.Scan(cFee.String); err != nil {
				return nil, err
			}
		}
		student.CatalogCourse = course
	}

	feeRecords, err := GetFeeRecordsByStudent(db, student.ID)
	if err != nil {
		return nil, err
	}
	student.FeeRecords = feeRecords

	return student, nil
}

// GetStudentsWithFeeRecords eager-loads every active student together with
// its fee records in two queries. This is the input the defaulter
// aggregator works from.
func GetStudentsWithFeeRecords(db *sql.DB) ([]*models.Student, error) {
	students, _, err := GetStudentsWithFilters(db, StudentFilters{Status: "active", SortBy: "name"})
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return students, nil
	}

	byID := make(map[string]*models.Student, len(students))
	for _, s := range students {
		byID[s.ID] = s
	}

	query := `SELECT id, student_id, amount, month, year, academic_year, due_date,
			  status, payment_date, challan_number, created_at, updated_at
			  FROM fee_records
			  WHERE deleted_at IS NULL
			  ORDER BY due_date`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		fee := &models.FeeRecord{}
		err := rows.Scan(
			&fee.ID, &fee.StudentID, &fee.Amount, &fee.Month, &fee.Year,
			&fee.AcademicYear, &fee.DueDate, &fee.Status, &fee.PaymentDate,
			&fee.ChallanNumber, &fee.CreatedAt, &fee.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		if student, ok := byID[fee.StudentID]; ok {
			student.FeeRecords = append(student.FeeRecords, fee)
		}
	}
	return students, rows.Err()
}

// GetAllRollNumbers returns the set of existing roll numbers, used by the
// bulk importer to classify duplicates before inserting anything.
func GetAllRollNumbers(db *sql.DB) (map[string]bool, error) {
	rows, err := db.Query(`SELECT roll_number FROM students WHERE deleted_at IS NULL`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	existing := make(map[string]bool)
	for rows.Next() {
		var roll string
		if err := rows.Scan(&roll); err != nil {
			return nil, err
		}
		existing[roll] = true
	}
	return existing, rows.Err()
}

func CreateStudent(db *sql.DB, student *models.Student) error {
	query := `INSERT INTO students (roll_number, name, father_name, email, phone, course, course_id, class_time, enrollment_date)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, COALESCE($9, CURRENT_DATE))
			  RETURNING id, enrollment_date, created_at, updated_at`

	var enrollment interface{}
	if !student.EnrollmentDate.IsZero() {
		enrollment = student.EnrollmentDate
	}

	return db.QueryRow(query,
		student.RollNumber, student.Name, student.FatherName, student.Email,
		student.Phone, student.Course, student.CourseID, student.ClassTime, enrollment,
	).Scan(&student.ID, &student.EnrollmentDate, &student.CreatedAt, &student.UpdatedAt)
}

func UpdateStudent(db *sql.DB, student *models.Student) error {
	query := `UPDATE students
			  SET roll_number = $1, name = $2, father_name = $3, email = $4, phone = $5,
			      course = $6, course_id = $7, class_time = $8, is_active = $9, updated_at = NOW()
			  WHERE id = $10 AND deleted_at IS NULL`

	res, err := db.Exec(query,
		student.RollNumber, student.Name, student.FatherName, student.Email,
		student.Phone, student.Course, student.CourseID, student.ClassTime,
		student.IsActive, student.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func DeleteStudent(db *sql.DB, id string) error {
	query := `UPDATE students SET deleted_at = NOW(), is_active = false WHERE id = $1 AND deleted_at IS NULL`
	res, err := db.Exec(query, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func GetStudentsStats(db *sql.DB) (*models.StudentsStats, error) {
	stats := &models.StudentsStats{}
	query := `SELECT
			  COUNT(*),
			  COUNT(*) FILTER (WHERE is_active),
			  COUNT(*) FILTER (WHERE NOT is_active),
			  COUNT(*) FILTER (WHERE enrollment_date >= date_trunc('month', CURRENT_DATE))
			  FROM students WHERE deleted_at IS NULL`

	err := db.QueryRow(query).Scan(
		&stats.TotalStudents, &stats.ActiveStudents,
		&stats.InactiveStudents, &stats.NewThisMonth,
	)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
