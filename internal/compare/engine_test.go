package compare

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/internal/regime"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func newTestEngine(t *testing.T) *CompareEngine {
	t.Helper()
	registry, err := regime.Default()
	require.NoError(t, err)
	return NewCompareEngine(registry)
}

func houseOwnerDeductions() domain.DeductionSet {
	return domain.DeductionSet{
		domain.Section80C:           dec(150000),
		domain.Section80D:           dec(50000),
		domain.SectionHouseProperty: dec(200000),
	}
}

func TestCompare_SalaryWithoutDeductions(t *testing.T) {
	ce := newTestEngine(t)

	c, err := ce.Compare(domain.IncomeProfile{Salary: dec(1200000)}, domain.DeductionSet{}, "2024-25")
	require.NoError(t, err)

	assert.True(t, dec(163800).Equal(c.Old.NetTaxLiability), "old: %s", c.Old.NetTaxLiability)
	assert.True(t, dec(81900).Equal(c.New.NetTaxLiability), "new: %s", c.New.NetTaxLiability)
	assert.Equal(t, domain.RegimeNew, c.RecommendedRegime)
	assert.True(t, dec(81900).Equal(c.AbsoluteSavings))
	assert.True(t, decimal.RequireFromString("50").Equal(c.SavingsPercentage), "pct: %s", c.SavingsPercentage)
	assert.Nil(t, c.BreakEvenIncome, "without deductions the old regime never catches up")

	require.NotEmpty(t, c.Recommendations)
	assert.Contains(t, c.Recommendations[0], "Choose the new regime")
	assert.Contains(t, c.Recommendations[0], "₹81,900.00")
	assert.Contains(t, strings.Join(c.Recommendations, "\n"), "significant")
}

func TestCompare_OldRegimeWins(t *testing.T) {
	ce := newTestEngine(t)

	c, err := ce.Compare(domain.IncomeProfile{Salary: dec(1200000)}, houseOwnerDeductions(), "2024-25")
	require.NoError(t, err)

	assert.True(t, dec(65000).Equal(c.Old.NetTaxLiability), "old: %s", c.Old.NetTaxLiability)
	assert.True(t, dec(81900).Equal(c.New.NetTaxLiability))
	assert.Equal(t, domain.RegimeOld, c.RecommendedRegime)
	assert.True(t, dec(16900).Equal(c.AbsoluteSavings))
	assert.True(t, decimal.RequireFromString("20.63").Equal(c.SavingsPercentage), "pct: %s", c.SavingsPercentage)

	require.NotNil(t, c.BreakEvenIncome)
	assert.True(t, dec(1600000).Equal(*c.BreakEvenIncome), "break-even: %s", c.BreakEvenIncome)

	all := strings.Join(c.Recommendations, "\n")
	assert.Contains(t, all, "Keep proofs")
	assert.Contains(t, all, "₹16,00,000")
	assert.NotContains(t, all, "significant")
}

func TestCompareRegimes_TieGoesToFewerDeductions(t *testing.T) {
	registry, err := regime.Default()
	require.NoError(t, err)
	oldRegime, newRegime, err := registry.Pair("2024-25")
	require.NoError(t, err)

	// both regimes rebate the whole liability
	income := domain.IncomeProfile{Salary: dec(600000)}
	deductions := domain.DeductionSet{domain.Section80C: dec(150000)}

	c, err := CompareRegimes(income, deductions, RegimePair{Old: oldRegime, New: newRegime}, "2024-25", nil)
	require.NoError(t, err)

	assert.True(t, c.Old.NetTaxLiability.IsZero())
	assert.True(t, dec(7800).Equal(c.Old.RebateApplied))
	assert.True(t, c.New.NetTaxLiability.IsZero())
	assert.Equal(t, domain.RegimeNew, c.RecommendedRegime)
	assert.True(t, c.AbsoluteSavings.IsZero())
	assert.True(t, c.SavingsPercentage.IsZero())
	assert.Nil(t, c.BreakEvenIncome, "no solver given")
	require.NotEmpty(t, c.Recommendations)
	assert.Contains(t, c.Recommendations[0], "same liability")
}

func TestCompare_Errors(t *testing.T) {
	ce := newTestEngine(t)

	_, err := ce.Compare(domain.IncomeProfile{Salary: dec(1)}, nil, "2031-32")
	var ayErr *domain.UnknownAssessmentYearError
	require.True(t, errors.As(err, &ayErr))

	_, err = ce.Compare(domain.IncomeProfile{Salary: dec(-1)}, nil, "2024-25")
	var amountErr *domain.InvalidAmountError
	require.True(t, errors.As(err, &amountErr))
	assert.Equal(t, "income.salary", amountErr.Field)

	oldRegime, newRegime, err := ce.Registry.Pair("2024-25")
	require.NoError(t, err)
	_, err = CompareRegimes(domain.IncomeProfile{}, nil, RegimePair{Old: oldRegime, New: newRegime}, "2025-26", nil)
	require.True(t, errors.As(err, &ayErr), "regimes from another year are rejected")

	_, err = CompareRegimes(domain.IncomeProfile{}, nil, RegimePair{Old: oldRegime}, "2024-25", nil)
	var regimeErr *domain.UnknownRegimeError
	require.True(t, errors.As(err, &regimeErr))
	assert.Equal(t, domain.RegimeNew, regimeErr.Regime)
}

func TestCompare_LoggerReceivesSummary(t *testing.T) {
	ce := newTestEngine(t)
	logger := &recordingLogger{}
	ce.SetLogger(logger)

	_, err := ce.Compare(domain.IncomeProfile{Salary: dec(1200000)}, nil, "2024-25")
	require.NoError(t, err)
	require.NotEmpty(t, logger.infos)
	assert.Contains(t, logger.infos[0], "recommended new")

	ce.SetLogger(nil)
	assert.NotNil(t, ce.Logger)
}

type recordingLogger struct {
	infos []string
}

func (l *recordingLogger) Debugf(string, ...interface{}) {}
func (l *recordingLogger) Infof(format string, args ...interface{}) {
	l.infos = append(l.infos, fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Warnf(string, ...interface{})  {}
func (l *recordingLogger) Errorf(string, ...interface{}) {}
