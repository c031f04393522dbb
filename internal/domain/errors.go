package domain

import (
	"errors"
	"fmt"
)

// InvalidAmountError reports a monetary input that is negative or otherwise unusable.
type InvalidAmountError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidAmountError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid amount for %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid amount for %s (%s): %s", e.Field, e.Value, e.Reason)
}

// UnknownRegimeError is returned when no slab table exists for a regime in a known assessment year.
type UnknownRegimeError struct {
	Regime         RegimeID
	AssessmentYear string
}

func (e *UnknownRegimeError) Error() string {
	return fmt.Sprintf("unknown regime %q for assessment year %s", e.Regime, e.AssessmentYear)
}

// UnknownAssessmentYearError is returned when no slab tables are registered for an assessment year.
type UnknownAssessmentYearError struct {
	AssessmentYear string
}

func (e *UnknownAssessmentYearError) Error() string {
	return fmt.Sprintf("unknown assessment year %q", e.AssessmentYear)
}

// MalformedRegimeDefinitionError is raised while loading slab tables.
type MalformedRegimeDefinitionError struct {
	Regime         RegimeID
	AssessmentYear string
	Reason         string
}

func (e *MalformedRegimeDefinitionError) Error() string {
	return fmt.Sprintf("malformed regime definition %s/%s: %s", e.AssessmentYear, e.Regime, e.Reason)
}

// UnknownDeductionSectionError is returned for section identifiers outside the closed set.
type UnknownDeductionSectionError struct {
	Section string
}

func (e *UnknownDeductionSectionError) Error() string {
	return fmt.Sprintf("unknown deduction section %q", e.Section)
}

// InvalidTransitionError reports a tax return status change that the lifecycle does not allow.
type InvalidTransitionError struct {
	From ReturnStatus
	To   ReturnStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot move tax return from %s to %s", e.From, e.To)
}

// ErrReturnLocked is returned when a filed or acknowledged return is modified.
var ErrReturnLocked = errors.New("tax return is filed and can no longer be modified")
