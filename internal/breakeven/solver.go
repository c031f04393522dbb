// Package breakeven finds the income at which two regimes' liabilities converge.
package breakeven

import (
	"fmt"

	"github.com/rgehrsitz/itrgo/internal/calculation"
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/shopspring/decimal"
)

// Solver runs a bounded linear scan over income levels
type Solver struct {
	Options SolverOptions
	Logger  calculation.Logger
}

// NewSolver creates a new break-even solver
func NewSolver(options SolverOptions) *Solver {
	return &Solver{
		Options: options,
		Logger:  calculation.NopLogger{},
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver() *Solver {
	return NewSolver(DefaultSolverOptions())
}

// FindBreakEven tests Baseline, Baseline+Step, ... and returns the first income
// whose old and new liabilities differ by less than Tolerance. Each level is a
// salary-only profile with the caller's deduction claims held fixed. Levels
// where neither regime owes tax are skipped.
func (s *Solver) FindBreakEven(req Request) (*Result, error) {
	if err := s.Options.Validate(); err != nil {
		return nil, err
	}
	if req.Old == nil || req.New == nil {
		return nil, &BreakEvenError{Operation: "find_break_even", Message: "both regimes are required"}
	}
	if err := req.Deductions.Validate(); err != nil {
		return nil, &BreakEvenError{Operation: "find_break_even", Message: "invalid deductions", Cause: err}
	}

	result := &Result{Options: s.Options}
	income := s.Options.Baseline
	for i := 0; i < s.Options.MaxIterations; i++ {
		result.Iterations = i + 1

		point, err := s.evaluate(income, req)
		if err != nil {
			return nil, &BreakEvenError{
				Operation: "find_break_even",
				Message:   fmt.Sprintf("failed to compute liability at %s", income.StringFixed(0)),
				Cause:     err,
			}
		}
		if s.Options.KeepScan {
			result.Scan = append(result.Scan, point)
		}

		if !point.Skipped && point.Difference.Abs().LessThan(s.Options.Tolerance) {
			found := point.Income
			result.Income = &found
			result.Difference = point.Difference
			result.Converged = true
			result.ConvergenceInfo = fmt.Sprintf("liabilities within %s at income %s after %d levels",
				s.Options.Tolerance.StringFixed(0), found.StringFixed(0), result.Iterations)
			s.Logger.Debugf("break-even found at %s (difference %s)", found.StringFixed(0), point.Difference.StringFixed(2))
			return result, nil
		}
		result.Difference = point.Difference
		income = income.Add(s.Options.Step)
	}

	result.ConvergenceInfo = fmt.Sprintf("no income between %s and %s brings the regimes within %s",
		s.Options.Baseline.StringFixed(0),
		s.Options.Baseline.Add(s.Options.Step.Mul(decimal.NewFromInt(int64(s.Options.MaxIterations-1)))).StringFixed(0),
		s.Options.Tolerance.StringFixed(0))
	s.Logger.Debugf("break-even scan exhausted after %d levels", result.Iterations)
	return result, nil
}

func (s *Solver) evaluate(income decimal.Decimal, req Request) (ScanPoint, error) {
	profile := domain.IncomeProfile{Salary: income}
	oldTax, err := calculation.NetTax(profile, req.Deductions, req.Old)
	if err != nil {
		return ScanPoint{}, err
	}
	newTax, err := calculation.NetTax(profile, req.Deductions, req.New)
	if err != nil {
		return ScanPoint{}, err
	}
	return ScanPoint{
		Income:     income,
		OldTax:     oldTax,
		NewTax:     newTax,
		Difference: oldTax.Sub(newTax),
		Skipped:    oldTax.IsZero() && newTax.IsZero(),
	}, nil
}
