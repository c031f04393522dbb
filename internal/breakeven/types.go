package breakeven

import (
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/shopspring/decimal"
)

// SolverOptions configures the break-even scan
type SolverOptions struct {
	Baseline      decimal.Decimal `json:"baseline"`       // First income level tested
	Step          decimal.Decimal `json:"step"`           // Increment between levels
	Tolerance     decimal.Decimal `json:"tolerance"`      // Liability gap treated as converged
	MaxIterations int             `json:"max_iterations"` // Number of levels tested at most
	KeepScan      bool            `json:"keep_scan"`      // Record every tested level in the result
}

// DefaultSolverOptions returns the standard scan: 5 lakh upward in 1 lakh
// steps, converging within 1,000 over at most 50 levels.
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Baseline:      decimal.NewFromInt(500000),
		Step:          decimal.NewFromInt(100000),
		Tolerance:     decimal.NewFromInt(1000),
		MaxIterations: 50,
	}
}

// Validate checks the options describe a bounded, increasing scan
func (o SolverOptions) Validate() error {
	if o.Baseline.IsNegative() {
		return &BreakEvenError{Operation: "validate_options", Message: "baseline cannot be negative"}
	}
	if !o.Step.IsPositive() {
		return &BreakEvenError{Operation: "validate_options", Message: "step must be positive"}
	}
	if !o.Tolerance.IsPositive() {
		return &BreakEvenError{Operation: "validate_options", Message: "tolerance must be positive"}
	}
	if o.MaxIterations <= 0 {
		return &BreakEvenError{Operation: "validate_options", Message: "max_iterations must be positive"}
	}
	return nil
}

// Request is the input to a break-even search
type Request struct {
	Deductions domain.DeductionSet
	Old        *domain.RegimeDefinition
	New        *domain.RegimeDefinition
}

// ScanPoint is one tested income level
type ScanPoint struct {
	Income     decimal.Decimal `json:"income"`
	OldTax     decimal.Decimal `json:"old_tax"`
	NewTax     decimal.Decimal `json:"new_tax"`
	Difference decimal.Decimal `json:"difference"` // old minus new
	Skipped    bool            `json:"skipped"`    // both regimes owe nothing
}

// Result is the outcome of a break-even search
type Result struct {
	Income          *decimal.Decimal `json:"income,omitempty"`
	Difference      decimal.Decimal  `json:"difference"`
	Iterations      int              `json:"iterations"`
	Converged       bool             `json:"converged"`
	ConvergenceInfo string           `json:"convergence_info"`
	Options         SolverOptions    `json:"options"`
	Scan            []ScanPoint      `json:"scan,omitempty"`
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
