package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Course represents a catalog entry students enroll into. Names are free
// text and not guaranteed unique or normalized; the resolver in
// app/services handles matching student course strings against them.
type Course struct {
	ID             string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"omitempty,uuid"`
	Name           string          `json:"name" gorm:"not null" validate:"required"`
	MonthlyFee     decimal.Decimal `json:"monthly_fee" gorm:"not null;type:numeric" validate:"required"`
	DurationMonths int             `json:"duration_months" gorm:"not null" validate:"required,gt=0"`
	Category       string          `json:"category,omitempty"`
	CreatedAt      time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt      *time.Time      `json:"deleted_at,omitempty" gorm:"index"`
}

// TotalFee returns the full course cost over its duration.
func (c *Course) TotalFee() decimal.Decimal {
	return c.MonthlyFee.Mul(decimal.NewFromInt(int64(c.DurationMonths)))
}
