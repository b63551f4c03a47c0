package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farahtourait-ai/city-college-fee-system/app/models"
)

func testCatalog() []*models.Course {
	return []*models.Course{
		{ID: "c1", Name: "One Year Diploma in Computer Applications", MonthlyFee: decimal.NewFromInt(4000), DurationMonths: 12},
		{ID: "c2", Name: "Enhanced Office Management", MonthlyFee: decimal.NewFromInt(3500), DurationMonths: 6},
		{ID: "c3", Name: "IELTS Preparation", MonthlyFee: decimal.NewFromInt(12500), DurationMonths: 3},
		{ID: "c4", Name: "Graphic Designing", MonthlyFee: decimal.NewFromInt(5000), DurationMonths: 6},
	}
}

func TestNormalizeCourseName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"trims and lowercases", "  IELTS Preparation ", "ielts preparation"},
		{"collapses internal spaces", "Graphic   Designing", "graphic designing"},
		{"fixes enhanced typos", "Enhnce Office Management", "enhanced office management"},
		{"fixes course typos", "Short Couse", "short course"},
		{"rewrites 1 year diploma", "1 year diploma", "one year diploma"},
		{"rewrites 6 months", "Office Management 6 Months", "office management six months"},
		{"empty input", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeCourseName(tt.input))
		})
	}
}

func TestResolvePrecedence(t *testing.T) {
	resolver := NewCourseResolver(testCatalog())

	t.Run("linked course wins over name matching", func(t *testing.T) {
		linked := &models.Course{ID: "c9", Name: "Anything", MonthlyFee: decimal.NewFromInt(9999)}
		res := resolver.Resolve("IELTS Preparation", linked)
		require.True(t, res.Resolved)
		assert.Equal(t, ResolvedByLink, res.Method)
		assert.True(t, res.MonthlyFee.Equal(decimal.NewFromInt(9999)))
	})

	t.Run("linked course with zero fee is ignored", func(t *testing.T) {
		linked := &models.Course{ID: "c9", Name: "Anything", MonthlyFee: decimal.Zero}
		res := resolver.Resolve("IELTS Preparation", linked)
		require.True(t, res.Resolved)
		assert.Equal(t, ResolvedByExactName, res.Method)
		assert.Equal(t, "c3", res.Course.ID)
	})

	t.Run("exact match is case insensitive", func(t *testing.T) {
		res := resolver.Resolve("ielts preparation", nil)
		require.True(t, res.Resolved)
		assert.Equal(t, ResolvedByExactName, res.Method)
	})

	t.Run("substring match in either direction", func(t *testing.T) {
		res := resolver.Resolve("IELTS", nil)
		require.True(t, res.Resolved)
		assert.Equal(t, ResolvedBySubstring, res.Method)
		assert.Equal(t, "c3", res.Course.ID)

		res = resolver.Resolve("Advanced IELTS Preparation Evening", nil)
		require.True(t, res.Resolved)
		assert.Equal(t, ResolvedBySubstring, res.Method)
	})

	t.Run("office management six months bucket", func(t *testing.T) {
		res := resolver.Resolve("Office Mgmt Management 6 Months", nil)
		require.True(t, res.Resolved)
		assert.Equal(t, ResolvedByKeyword, res.Method)
		assert.Equal(t, "c2", res.Course.ID)
	})

	t.Run("loose office match links the catalog course", func(t *testing.T) {
		officeOnly := NewCourseResolver([]*models.Course{
			{ID: "c10", Name: "Office Management Course (3 Months)", MonthlyFee: decimal.NewFromInt(3000), DurationMonths: 3},
		})
		res := officeOnly.Resolve("Office Mgmt", nil)
		require.True(t, res.Resolved)
		assert.Equal(t, ResolvedByKeyword, res.Method)
		require.NotNil(t, res.Course)
		assert.Equal(t, "c10", res.Course.ID)
		assert.True(t, res.MonthlyFee.Equal(decimal.NewFromInt(3000)))
	})

	t.Run("fee table keyword with no catalog course", func(t *testing.T) {
		res := resolver.Resolve("Amazon Virtual Assistant", nil)
		require.True(t, res.Resolved)
		assert.Equal(t, ResolvedByFeeTable, res.Method)
		assert.Nil(t, res.Course)
		assert.True(t, res.MonthlyFee.Equal(decimal.NewFromInt(15000)))
	})

	t.Run("unknown name is unresolved with suggested fee", func(t *testing.T) {
		res := resolver.Resolve("Pottery Basics", nil)
		require.False(t, res.Resolved)
		assert.True(t, res.SuggestedFee.Equal(DefaultMonthlyFee))
		assert.NotEmpty(t, res.Reason)
	})

	t.Run("empty name is unresolved", func(t *testing.T) {
		res := resolver.Resolve("   ", nil)
		require.False(t, res.Resolved)
		assert.Equal(t, "empty course name", res.Reason)
	})
}

func TestResolveDeterminism(t *testing.T) {
	resolver := NewCourseResolver(testCatalog())
	first := resolver.Resolve("Graphic Designing", nil)
	for i := 0; i < 5; i++ {
		again := resolver.Resolve("Graphic Designing", nil)
		assert.Equal(t, first.Method, again.Method)
		assert.Equal(t, first.Course, again.Course)
		assert.True(t, first.MonthlyFee.Equal(again.MonthlyFee))
	}
}

func TestFallbackFeeTable(t *testing.T) {
	resolver := NewCourseResolver(nil)

	tests := []struct {
		input string
		fee   int64
	}{
		{"IELTS Evening", 12500},
		{"Basic Office Skills", 3000},
		{"Ecommerce Store Setup", 15000},
		{"Website Development", 10000},
		{"AutoCAD 2D", 5000},
		{"Freelancing 101", 5000},
		{"Diploma Course", 4000},
		{"Spoken English", 4000},
		{"Registration", 1000},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res := resolver.Resolve(tt.input, nil)
			require.True(t, res.Resolved, "expected %q to hit the fee table", tt.input)
			assert.Equal(t, ResolvedByFeeTable, res.Method)
			assert.True(t, res.MonthlyFee.Equal(decimal.NewFromInt(tt.fee)),
				"got %s", res.MonthlyFee)
		})
	}
}
