package domain

import (
	"fmt"
	"strconv"
	"time"
)

// AssessmentYear is the year in which income of the preceding financial year is
// assessed, written "2024-25".
type AssessmentYear struct {
	start int
}

// ParseAssessmentYear parses the "YYYY-YY" form
func ParseAssessmentYear(s string) (AssessmentYear, error) {
	if len(s) != 7 || s[4] != '-' || !digits(s[:4]) || !digits(s[5:]) {
		return AssessmentYear{}, fmt.Errorf("assessment year %q must look like 2024-25", s)
	}
	start, err := strconv.Atoi(s[:4])
	if err != nil {
		return AssessmentYear{}, fmt.Errorf("assessment year %q: %w", s, err)
	}
	end, err := strconv.Atoi(s[5:])
	if err != nil {
		return AssessmentYear{}, fmt.Errorf("assessment year %q: %w", s, err)
	}
	if (start+1)%100 != end {
		return AssessmentYear{}, fmt.Errorf("assessment year %q must span consecutive years", s)
	}
	return AssessmentYear{start: start}, nil
}

// AssessmentYearFor returns the assessment year of the financial year (April to
// March) containing t.
func AssessmentYearFor(t time.Time) AssessmentYear {
	fyStart := t.Year()
	if t.Month() < time.April {
		fyStart--
	}
	return AssessmentYear{start: fyStart + 1}
}

// StartYear is the calendar year the assessment year begins in
func (a AssessmentYear) StartYear() int {
	return a.start
}

// FinancialYear returns the preceding financial year, e.g. "2023-24" for AY 2024-25
func (a AssessmentYear) FinancialYear() string {
	return fmt.Sprintf("%d-%02d", a.start-1, a.start%100)
}

// IsZero reports whether the value was never set
func (a AssessmentYear) IsZero() bool {
	return a.start == 0
}

func (a AssessmentYear) String() string {
	return fmt.Sprintf("%d-%02d", a.start, (a.start+1)%100)
}

func digits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
