package breakeven

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/internal/regime"
)

func regimePair(t *testing.T) (*domain.RegimeDefinition, *domain.RegimeDefinition) {
	t.Helper()
	registry, err := regime.Default()
	require.NoError(t, err)
	oldRegime, newRegime, err := registry.Pair("2024-25")
	require.NoError(t, err)
	return oldRegime, newRegime
}

func TestNewDefaultSolver(t *testing.T) {
	solver := NewDefaultSolver()

	if solver == nil {
		t.Fatal("Expected solver to be created, got nil")
	}
	if solver.Options.MaxIterations != DefaultSolverOptions().MaxIterations {
		t.Error("Expected default options to be applied")
	}
	if solver.Logger == nil {
		t.Error("Expected a no-op logger")
	}
}

func TestFindBreakEven_Converges(t *testing.T) {
	oldRegime, newRegime := regimePair(t)
	deductions := domain.DeductionSet{
		domain.Section80C:           decimal.NewFromInt(150000),
		domain.Section80D:           decimal.NewFromInt(50000),
		domain.SectionHouseProperty: decimal.NewFromInt(200000),
	}

	solver := NewDefaultSolver()
	solver.Options.KeepScan = true
	result, err := solver.FindBreakEven(Request{Deductions: deductions, Old: oldRegime, New: newRegime})
	require.NoError(t, err)

	require.True(t, result.Converged, result.ConvergenceInfo)
	require.NotNil(t, result.Income)
	assert.True(t, decimal.NewFromInt(1600000).Equal(*result.Income), "break-even: %s", result.Income)
	assert.True(t, result.Difference.Abs().LessThan(solver.Options.Tolerance))
	assert.Equal(t, 12, result.Iterations)

	// the break-even income is on the scan grid
	offset := result.Income.Sub(solver.Options.Baseline)
	assert.True(t, offset.Mod(solver.Options.Step).IsZero())

	require.Len(t, result.Scan, 12)
	assert.True(t, result.Scan[0].Skipped, "both regimes fully rebate at the baseline")
	last := result.Scan[len(result.Scan)-1]
	assert.True(t, decimal.NewFromInt(163800).Equal(last.OldTax))
	assert.True(t, decimal.NewFromInt(163800).Equal(last.NewTax))
}

func TestFindBreakEven_NoConvergence(t *testing.T) {
	oldRegime, newRegime := regimePair(t)

	result, err := NewDefaultSolver().FindBreakEven(Request{Old: oldRegime, New: newRegime})
	require.NoError(t, err)

	assert.False(t, result.Converged)
	assert.Nil(t, result.Income)
	assert.Equal(t, 50, result.Iterations)
	assert.Empty(t, result.Scan, "scan is only kept on request")
	assert.Contains(t, result.ConvergenceInfo, "5400000")
}

func TestFindBreakEven_Errors(t *testing.T) {
	oldRegime, newRegime := regimePair(t)

	solver := NewSolver(SolverOptions{Step: decimal.Zero, Tolerance: decimal.NewFromInt(1), MaxIterations: 1})
	_, err := solver.FindBreakEven(Request{Old: oldRegime, New: newRegime})
	var beErr *BreakEvenError
	require.True(t, errors.As(err, &beErr))
	assert.Equal(t, "validate_options", beErr.Operation)

	_, err = NewDefaultSolver().FindBreakEven(Request{Old: oldRegime})
	require.True(t, errors.As(err, &beErr))

	_, err = NewDefaultSolver().FindBreakEven(Request{
		Deductions: domain.DeductionSet{domain.Section80C: decimal.NewFromInt(-1)},
		Old:        oldRegime,
		New:        newRegime,
	})
	var invalid *domain.InvalidAmountError
	require.True(t, errors.As(err, &invalid), "cause is preserved through BreakEvenError")
}

func TestTableFormatter_Format(t *testing.T) {
	income := decimal.NewFromInt(1600000)
	result := &Result{
		Income:     &income,
		Difference: decimal.Zero,
		Iterations: 12,
		Converged:  true,
		Options:    DefaultSolverOptions(),
		Scan: []ScanPoint{
			{Income: decimal.NewFromInt(500000), Skipped: true},
			{Income: income, OldTax: decimal.NewFromInt(163800), NewTax: decimal.NewFromInt(163800)},
		},
	}

	out := (&TableFormatter{}).Format(result)
	for _, want := range []string{"REGIME BREAK-EVEN ANALYSIS", "✓ Converged", "1600000.00", "16.00 L", "skipped"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q\n%s", want, out)
		}
	}

	js, err := (&JSONFormatter{Pretty: true}).Format(result)
	require.NoError(t, err)
	assert.Contains(t, js, `"converged": true`)
}
