package models

import "time"

// Student represents an enrolled student. The Course field is the free-text
// course name as entered or imported; CourseID is the optional catalog
// reference and may be missing or stale, which is why fee lookups go
// through the course resolver instead of trusting either field alone.
//
// Email and Phone are optional; an empty string means the contact detail
// is absent. Callers must use HasEmail/HasPhone rather than comparing
// against sentinel strings.
type Student struct {
	ID             string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"omitempty,uuid"`
	RollNumber     string     `json:"roll_number" gorm:"uniqueIndex;not null" validate:"required"`
	Name           string     `json:"name" gorm:"not null" validate:"required"`
	FatherName     string     `json:"father_name,omitempty"`
	Email          string     `json:"email,omitempty" validate:"omitempty,email"`
	Phone          string     `json:"phone,omitempty"`
	Course         string     `json:"course,omitempty"`
	CourseID       *string    `json:"course_id,omitempty" gorm:"index;type:uuid" validate:"omitempty,uuid"`
	ClassTime      string     `json:"class_time,omitempty"`
	EnrollmentDate CustomTime `json:"enrollment_date" gorm:"not null;type:date"`
	IsActive       bool       `json:"is_active" gorm:"default:true"`
	CreatedAt      time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty" gorm:"index"`

	// Relationships
	CatalogCourse *Course      `json:"catalog_course,omitempty" gorm:"foreignKey:CourseID;references:ID"`
	FeeRecords    []*FeeRecord `json:"fee_records,omitempty" gorm:"foreignKey:StudentID;references:ID"`
}

// HasEmail reports whether the student has an email address on file.
func (s *Student) HasEmail() bool {
	return s.Email != ""
}

// HasPhone reports whether the student has a phone number on file.
func (s *Student) HasPhone() bool {
	return s.Phone != ""
}

// PendingFees returns the subset of fee records still pending.
func (s *Student) PendingFees() []*FeeRecord {
	var pending []*FeeRecord
	for _, f := range s.FeeRecords {
		if f.Status == FeePending {
			pending = append(pending, f)
		}
	}
	return pending
}
