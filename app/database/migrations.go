package database

import (
	"database/sql"
	"log"
)

// RunMigrations checks and applies necessary schema updates
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto`,

		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,

		`CREATE TABLE IF NOT EXISTS roles (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT UNIQUE NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS user_roles (
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			role_id UUID NOT NULL REFERENCES roles(id) ON DELETE CASCADE,
			PRIMARY KEY (user_id, role_id)
		)`,

		`CREATE TABLE IF NOT EXISTS sessions (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			expires_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at)`,

		`CREATE TABLE IF NOT EXISTS courses (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL,
			monthly_fee NUMERIC(12,2) NOT NULL DEFAULT 0,
			duration_months INT NOT NULL DEFAULT 1,
			category TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,

		`CREATE TABLE IF NOT EXISTS students (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			roll_number TEXT UNIQUE NOT NULL,
			name TEXT NOT NULL,
			father_name TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			course TEXT NOT NULL DEFAULT '',
			course_id UUID REFERENCES courses(id),
			class_time TEXT NOT NULL DEFAULT '',
			enrollment_date DATE NOT NULL DEFAULT CURRENT_DATE,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE INDEX IF NOT EXISTS idx_students_course_id ON students(course_id)`,

		`CREATE TABLE IF NOT EXISTS fee_records (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			amount NUMERIC(12,2) NOT NULL,
			month TEXT NOT NULL,
			year INT NOT NULL,
			academic_year TEXT NOT NULL DEFAULT '',
			due_date DATE NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending','paid')),
			payment_date DATE,
			challan_number TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fee_records_student_id ON fee_records(student_id)`,
		`CREATE INDEX IF NOT EXISTS idx_fee_records_status ON fee_records(status)`,

		`CREATE TABLE IF NOT EXISTS reminders (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			student_name TEXT NOT NULL,
			amount NUMERIC(12,2) NOT NULL DEFAULT 0,
			reminder_type TEXT NOT NULL,
			email_sent BOOLEAN NOT NULL DEFAULT false,
			email_status TEXT NOT NULL DEFAULT '',
			sent_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reminders_student_id ON reminders(student_id)`,

		`CREATE SEQUENCE IF NOT EXISTS challan_number_seq START 1001`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			log.Printf("Migration statement failed: %v", err)
			return err
		}
	}

	if err := addFeeRecordUniqueIndex(db); err != nil {
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// addFeeRecordUniqueIndex enforces "one fee record per student per month"
// at the schema level. The pre-insert check alone races under concurrent
// inserts; the partial unique index closes that gap without tripping over
// soft-deleted rows.
func addFeeRecordUniqueIndex(db *sql.DB) error {
	query := `
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1
				FROM pg_indexes
				WHERE tablename = 'fee_records'
				AND indexname = 'uniq_fee_records_student_month_year'
			) THEN
				CREATE UNIQUE INDEX uniq_fee_records_student_month_year
				ON fee_records (student_id, month, year)
				WHERE deleted_at IS NULL;
				RAISE NOTICE 'Added unique index on fee_records (student_id, month, year)';
			END IF;
		END $$;
	`
	_, err := db.Exec(query)
	if err != nil {
		log.Printf("Failed to create fee_records unique index: %v", err)
		return err
	}
	return nil
}
