package calculation

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/internal/regime"
)

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func mustRegime(t *testing.T, id domain.RegimeID) *domain.RegimeDefinition {
	t.Helper()
	registry, err := regime.Default()
	require.NoError(t, err)
	def, err := registry.Get(id, "2024-25")
	require.NoError(t, err)
	return def
}

func TestComputeTax_NewRegimeBreakdown(t *testing.T) {
	newRegime := mustRegime(t, domain.RegimeNew)

	result, err := ComputeTax(dec(1125000), newRegime)
	require.NoError(t, err)

	require.Len(t, result.SlabBreakdown, 4)
	expectedTax := []int64{0, 15000, 30000, 33750}
	expectedSlice := []int64{300000, 300000, 300000, 225000}
	for i, slab := range result.SlabBreakdown {
		assert.Equal(t, i, slab.Band)
		assert.True(t, dec(expectedSlice[i]).Equal(slab.TaxableAmount), "band %d slice: %s", i, slab.TaxableAmount)
		assert.True(t, dec(expectedTax[i]).Equal(slab.TaxAmount), "band %d tax: %s", i, slab.TaxAmount)
	}

	assert.True(t, dec(78750).Equal(result.TaxBeforeCess), "tax before cess: %s", result.TaxBeforeCess)
	assert.True(t, dec(3150).Equal(result.CessAmount), "cess: %s", result.CessAmount)
	assert.True(t, result.RebateApplied.IsZero())
	assert.True(t, dec(81900).Equal(result.NetTaxLiability), "net: %s", result.NetTaxLiability)
	assert.True(t, decimal.RequireFromString("0.156").Equal(result.MarginalTaxRate), "marginal: %s", result.MarginalTaxRate)
}

func TestComputeTax_Rebate(t *testing.T) {
	oldRegime := mustRegime(t, domain.RegimeOld)
	newRegime := mustRegime(t, domain.RegimeNew)

	tests := []struct {
		name       string
		regime     *domain.RegimeDefinition
		taxable    decimal.Decimal
		wantNet    decimal.Decimal
		wantRebate decimal.Decimal
	}{
		{"old below threshold", oldRegime, dec(400000), decimal.Zero, dec(7800)},
		{"old at threshold", oldRegime, dec(500000), decimal.Zero, dec(13000)},
		{"old one rupee above threshold", oldRegime, dec(500001), decimal.RequireFromString("13000.208"), decimal.Zero},
		{"new at threshold", newRegime, dec(700000), decimal.Zero, dec(26000)},
		{"new one rupee above threshold", newRegime, dec(700001), decimal.RequireFromString("26000.104"), decimal.Zero},
		{"old inside zero-rate band", oldRegime, dec(200000), decimal.Zero, decimal.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ComputeTax(tt.taxable, tt.regime)
			require.NoError(t, err)
			assert.True(t, tt.wantNet.Equal(result.NetTaxLiability), "net: got %s want %s", result.NetTaxLiability, tt.wantNet)
			assert.True(t, tt.wantRebate.Equal(result.RebateApplied), "rebate: got %s want %s", result.RebateApplied, tt.wantRebate)
		})
	}
}

func TestComputeTax_ZeroIncome(t *testing.T) {
	result, err := ComputeTax(decimal.Zero, mustRegime(t, domain.RegimeOld))
	require.NoError(t, err)

	assert.Empty(t, result.SlabBreakdown)
	assert.True(t, result.TaxBeforeCess.IsZero())
	assert.True(t, result.CessAmount.IsZero())
	assert.True(t, result.RebateApplied.IsZero())
	assert.True(t, result.NetTaxLiability.IsZero())
	assert.True(t, result.MarginalTaxRate.IsZero())
}

func TestComputeTax_RejectsNegativeIncome(t *testing.T) {
	result, err := ComputeTax(dec(-1), mustRegime(t, domain.RegimeNew))

	assert.Nil(t, result)
	var invalid *domain.InvalidAmountError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "taxable_income", invalid.Field)
}

func TestComputeTax_SlabSumMatchesTaxBeforeCess(t *testing.T) {
	for _, id := range []domain.RegimeID{domain.RegimeOld, domain.RegimeNew} {
		def := mustRegime(t, id)
		for _, income := range []string{"1", "249999.99", "250000", "612345.67", "999999.99", "1500000", "7654321.09"} {
			result, err := ComputeTax(decimal.RequireFromString(income), def)
			require.NoError(t, err)

			sum := decimal.Zero
			for _, slab := range result.SlabBreakdown {
				assert.True(t, slab.TaxableAmount.IsPositive(), "%s/%s: empty slice in breakdown", id, income)
				sum = sum.Add(slab.TaxAmount)
			}
			assert.True(t, sum.Equal(result.TaxBeforeCess), "%s/%s: slab sum %s != %s", id, income, sum, result.TaxBeforeCess)
		}
	}
}

func TestComputeTax_Monotonic(t *testing.T) {
	for _, id := range []domain.RegimeID{domain.RegimeOld, domain.RegimeNew} {
		def := mustRegime(t, id)
		previous := decimal.Zero
		for income := int64(0); income <= 3000000; income += 12500 {
			result, err := ComputeTax(dec(income), def)
			require.NoError(t, err)
			assert.True(t, result.NetTaxLiability.GreaterThanOrEqual(previous),
				"%s regime: liability fell from %s to %s at %d", id, previous, result.NetTaxLiability, income)
			previous = result.NetTaxLiability
		}
	}
}

func TestComputeTax_ContinuousAtBandEdges(t *testing.T) {
	epsilon := decimal.RequireFromString("0.01")
	for _, id := range []domain.RegimeID{domain.RegimeOld, domain.RegimeNew} {
		def := mustRegime(t, id)
		for _, band := range def.Slabs {
			if band.Unbounded() {
				continue
			}
			below, err := ComputeTax(band.Max.Sub(epsilon), def)
			require.NoError(t, err)
			at, err := ComputeTax(*band.Max, def)
			require.NoError(t, err)

			projected := below.TaxBeforeCess.Add(epsilon.Mul(band.Rate))
			assert.True(t, projected.Equal(at.TaxBeforeCess),
				"%s regime at %s: %s + step != %s", id, band.Max, below.TaxBeforeCess, at.TaxBeforeCess)
		}
	}
}

func TestComputeTax_Idempotent(t *testing.T) {
	def := mustRegime(t, domain.RegimeOld)

	first, err := ComputeTax(decimal.RequireFromString("1234567.89"), def)
	require.NoError(t, err)
	second, err := ComputeTax(decimal.RequireFromString("1234567.89"), def)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestMarginalRate_UsesLastBandAboveFiniteBounds(t *testing.T) {
	def := mustRegime(t, domain.RegimeOld)

	assert.True(t, decimal.RequireFromString("0.312").Equal(MarginalRate(dec(50000000), def)))
	assert.True(t, decimal.RequireFromString("0.208").Equal(MarginalRate(dec(500000), def)))
	assert.True(t, decimal.RequireFromString("0.052").Equal(MarginalRate(dec(499999), def)))
}
