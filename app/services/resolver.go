package services

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/farahtourait-ai/city-college-fee-system/app/models"
)

// ResolutionMethod records which rule matched a course name.
type ResolutionMethod string

const (
	ResolvedByLink      ResolutionMethod = "course_link"
	ResolvedByExactName ResolutionMethod = "exact_name"
	ResolvedBySubstring ResolutionMethod = "substring"
	ResolvedByKeyword   ResolutionMethod = "keyword"
	ResolvedByFeeTable  ResolutionMethod = "fee_table"
)

// CourseResolution is the outcome of resolving a free-text course name.
// When Resolved is false the caller gets SuggestedFee as a starting point
// but must surface the miss to the operator instead of silently charging it.
type CourseResolution struct {
	Resolved     bool
	Method       ResolutionMethod
	Course       *models.Course
	MonthlyFee   decimal.Decimal
	SuggestedFee decimal.Decimal
	Reason       string
}

// typoCorrections fixes single-word misspellings seen in office data
// entry before any matching runs.
var typoCorrections = map[string]string{
	"enhnce":  "enhanced",
	"enhcne":  "enhanced",
	"enhnace": "enhanced",
	"enhcnce": "enhanced",
	"couse":   "course",
	"coures":  "course",
	"cours":   "course",
	"courss":  "course",
}

// phraseCorrections rewrites common shorthand to the catalog's phrasing.
// Applied after word-level fixes, in order.
var phraseCorrections = [][2]string{
	{"1 year diploma", "one year diploma"},
	{"6 months", "six months"},
	{"12 month", "12 months"},
}

// feeTableEntry maps course-name keywords to the standard monthly fee
// charged when the catalog has no matching course. Checked in order.
type feeTableEntry struct {
	keywords []string
	fee      decimal.Decimal
}

var fallbackFeeTable = []feeTableEntry{
	{[]string{"ielts"}, decimal.NewFromInt(12500)},
	{[]string{"office", "management"}, decimal.NewFromInt(3000)},
	{[]string{"amazon", "ecommerce", "e-commerce"}, decimal.NewFromInt(15000)},
	{[]string{"website", "web design", "design"}, decimal.NewFromInt(10000)},
	{[]string{"autocad", "cad"}, decimal.NewFromInt(5000)},
	{[]string{"graphic"}, decimal.NewFromInt(5000)},
	{[]string{"freelancing"}, decimal.NewFromInt(5000)},
	{[]string{"diploma"}, decimal.NewFromInt(4000)},
	{[]string{"english", "spoken"}, decimal.NewFromInt(4000)},
	{[]string{"registration"}, decimal.NewFromInt(1000)},
}

// DefaultMonthlyFee is suggested when nothing in the catalog or the fee
// table matches.
var DefaultMonthlyFee = decimal.NewFromInt(3000)

// CourseResolver matches free-text course names against the catalog.
// Resolution is deterministic for a given catalog snapshot.
type CourseResolver struct {
	courses []*models.Course
}

func NewCourseResolver(courses []*models.Course) *CourseResolver {
	return &CourseResolver{courses: courses}
}

// NormalizeCourseName lowercases, collapses whitespace and applies the
// typo dictionary.
func NormalizeCourseName(name string) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(name)))
	for i, w := range fields {
		if fixed, ok := typoCorrections[w]; ok {
			fields[i] = fixed
		}
	}
	normalized := strings.Join(fields, " ")
	for _, pc := range phraseCorrections {
		normalized = strings.ReplaceAll(normalized, pc[0], pc[1])
	}
	return normalized
}

// Resolve maps a free-text course name, plus an optional already-linked
// catalog course, to a monthly fee. Rules run in a fixed order and the
// first hit wins.
func (r *CourseResolver) Resolve(courseName string, linked *models.Course) CourseResolution {
	// 1. A live catalog link with a positive fee beats any name matching.
	if linked != nil && linked.MonthlyFee.IsPositive() {
		return CourseResolution{
			Resolved:   true,
			Method:     ResolvedByLink,
			Course:     linked,
			MonthlyFee: linked.MonthlyFee,
		}
	}

	name := NormalizeCourseName(courseName)
	if name == "" {
		return CourseResolution{
			Resolved:     false,
			SuggestedFee: DefaultMonthlyFee,
			Reason:       "empty course name",
		}
	}

	// 2. Exact match on normalized names.
	for _, c := range r.courses {
		if NormalizeCourseName(c.Name) == name {
			return CourseResolution{Resolved: true, Method: ResolvedByExactName, Course: c, MonthlyFee: c.MonthlyFee}
		}
	}

	// 3. Substring containment in either direction.
	for _, c := range r.courses {
		catalog := NormalizeCourseName(c.Name)
		if catalog == "" {
			continue
		}
		if strings.Contains(catalog, name) || strings.Contains(name, catalog) {
			return CourseResolution{Resolved: true, Method: ResolvedBySubstring, Course: c, MonthlyFee: c.MonthlyFee}
		}
	}

	// 4. Keyword buckets.
	if c := r.matchKeywordBucket(name); c != nil {
		return CourseResolution{Resolved: true, Method: ResolvedByKeyword, Course: c, MonthlyFee: c.MonthlyFee}
	}

	// 5. Standard fee table by keyword.
	for _, entry := range fallbackFeeTable {
		for _, kw := range entry.keywords {
			if strings.Contains(name, kw) {
				return CourseResolution{Resolved: true, Method: ResolvedByFeeTable, MonthlyFee: entry.fee}
			}
		}
	}

	return CourseResolution{
		Resolved:     false,
		SuggestedFee: DefaultMonthlyFee,
		Reason:       "no catalog or fee table match for \"" + name + "\"",
	}
}

func (r *CourseResolver) matchKeywordBucket(name string) *models.Course {
	switch {
	case strings.Contains(name, "one year diploma"):
		if c := r.findByNameContains("one year diploma"); c != nil {
			return c
		}
		return r.findByDuration(12)
	case strings.Contains(name, "office") && strings.Contains(name, "management") && strings.Contains(name, "six months"):
		if c := r.findByNameContains("enhanced"); c != nil {
			return c
		}
		return r.findByNameContains("advance")
	case strings.Contains(name, "office"):
		// Loose match: any office variant links to the office course.
		return r.findByNameContains("office")
	case strings.Contains(name, "six months"):
		return r.findByDuration(6)
	case strings.Contains(name, "one year"), strings.Contains(name, "12 months"):
		return r.findByDuration(12)
	}
	return nil
}

func (r *CourseResolver) findByNameContains(fragment string) *models.Course {
	for _, c := range r.courses {
		if strings.Contains(NormalizeCourseName(c.Name), fragment) {
			return c
		}
	}
	return nil
}

func (r *CourseResolver) findByDuration(months int) *models.Course {
	for _, c := range r.courses {
		if c.DurationMonths == months {
			return c
		}
	}
	return nil
}
