package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/farahtourait-ai/city-college-fee-system/app/models"
)

// RegistrationFeeAmount is charged once when a student is enrolled.
var RegistrationFeeAmount = decimal.NewFromInt(1000)

// RegistrationMonth labels the one-time registration record. It lives
// outside the calendar months so it never collides with the monthly
// (student, month, year) uniqueness.
const RegistrationMonth = "Registration"

// EnrollmentFees builds the fee records due at enrollment: the current
// month's fee at the resolved course rate, plus the one-time
// registration fee. When the course is unresolved only the registration
// fee is charged.
func EnrollmentFees(studentID string, res CourseResolution, now time.Time) []*models.FeeRecord {
	due := FeeDueDate(now.Year(), now.Month())

	var fees []*models.FeeRecord
	if res.Resolved && res.MonthlyFee.IsPositive() {
		fees = append(fees, &models.FeeRecord{
			StudentID: studentID,
			Amount:    res.MonthlyFee,
			Month:     models.Months[now.Month()-1],
			Year:      now.Year(),
			DueDate:   due,
			Status:    models.FeePending,
		})
	}

	fees = append(fees, &models.FeeRecord{
		StudentID: studentID,
		Amount:    RegistrationFeeAmount,
		Month:     RegistrationMonth,
		Year:      now.Year(),
		DueDate:   due,
		Status:    models.FeePending,
	})
	return fees
}
