package database

import (
	"database/sql"

	"github.com/farahtourait-ai/city-college-fee-system/app/models"
)

func GetAllCourses(db *sql.DB) ([]*models.Course, error) {
	query := `SELECT id, name, monthly_fee, duration_months, category, created_at, updated_at
			  FROM courses
			  WHERE deleted_at IS NULL
			  ORDER BY name`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		course := &models.Course{}
		err := rows.Scan(
			&course.ID, &course.Name, &course.MonthlyFee,
			&course.DurationMonths, &course.Category,
			&course.CreatedAt, &course.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	return courses, rows.Err()
}

func GetCourseByID(db *sql.DB, id string) (*models.Course, error) {
	course := &models.Course{}
	query := `SELECT id, name, monthly_fee, duration_months, category, created_at, updated_at
			  FROM courses
			  WHERE id = $1 AND deleted_at IS NULL`

	err := db.QueryRow(query, id).Scan(
		&course.ID, &course.Name, &course.MonthlyFee,
		&course.DurationMonths, &course.Category,
		&course.CreatedAt, &course.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return course, nil
}

func CreateCourse(db *sql.DB, course *models.Course) error {
	query := `INSERT INTO courses (name, monthly_fee, duration_months, category)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, created_at, updated_at`

	return db.QueryRow(query,
		course.Name, course.MonthlyFee, course.DurationMonths, course.Category,
	).Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt)
}

func UpdateCourse(db *sql.DB, course *models.Course) error {
	query := `UPDATE courses
			  SET name = $1, monthly_fee = $2, duration_months = $3, category = $4, updated_at = NOW()
			  WHERE id = $5 AND deleted_at IS NULL`

	res, err := db.Exec(query,
		course.Name, course.MonthlyFee, course.DurationMonths, course.Category, course.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func DeleteCourse(db *sql.DB, id string) error {
	query := `UPDATE courses SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	res, err := db.Exec(query, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
