package calculation

import (
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION NOTES:
//
// 1. Slabs are applied to [band.Min, min(band.Max, taxableIncome)) in ascending order.
//
// 2. Health and education cess is a flat percentage of slab tax.
//
// 3. Section 87A rebate: when taxable income does not exceed the regime's
//    threshold, tax is forgiven up to the rebate cap. The cap is a limit on tax
//    before cess, so cess on the rebated tax is forgiven with it.
//
// 4. No rounding happens here. Callers format for display.

// TaxResult is the slab-level outcome of taxing an amount under one regime
type TaxResult struct {
	TaxableIncome   decimal.Decimal
	SlabBreakdown   []domain.SlabTax
	TaxBeforeCess   decimal.Decimal
	CessAmount      decimal.Decimal
	RebateApplied   decimal.Decimal
	NetTaxLiability decimal.Decimal
	MarginalTaxRate decimal.Decimal
}

// ComputeTax applies a regime's slabs, cess and rebate to taxable income
func ComputeTax(taxableIncome decimal.Decimal, regime *domain.RegimeDefinition) (*TaxResult, error) {
	if err := domain.ValidateAmount("taxable_income", taxableIncome); err != nil {
		return nil, err
	}

	result := &TaxResult{
		TaxableIncome: taxableIncome,
		SlabBreakdown: []domain.SlabTax{},
	}

	taxBeforeCess := decimal.Zero
	for i, band := range regime.Slabs {
		if taxableIncome.LessThanOrEqual(band.Min) {
			break
		}

		upper := taxableIncome
		if !band.Unbounded() {
			upper = decimal.Min(taxableIncome, *band.Max)
		}
		incomeInBand := upper.Sub(band.Min)
		taxInBand := incomeInBand.Mul(band.Rate)

		result.SlabBreakdown = append(result.SlabBreakdown, domain.SlabTax{
			Band:          i,
			Min:           band.Min,
			Max:           band.Max,
			Rate:          band.Rate,
			TaxableAmount: incomeInBand,
			TaxAmount:     taxInBand,
		})
		taxBeforeCess = taxBeforeCess.Add(taxInBand)
	}

	cess := taxBeforeCess.Mul(regime.CessRate)
	grossTax := taxBeforeCess.Add(cess)

	rebate := decimal.Zero
	if taxableIncome.LessThanOrEqual(regime.RebateThreshold) {
		rebate = decimal.Min(grossTax, RebateLimit(regime))
	}

	result.TaxBeforeCess = taxBeforeCess
	result.CessAmount = cess
	result.RebateApplied = rebate
	result.NetTaxLiability = decimal.Max(decimal.Zero, grossTax.Sub(rebate))
	result.MarginalTaxRate = MarginalRate(taxableIncome, regime)
	return result, nil
}

// RebateLimit is the most tax, cess included, the rebate can forgive
func RebateLimit(regime *domain.RegimeDefinition) decimal.Decimal {
	return regime.RebateCap.Mul(decimal.NewFromInt(1).Add(regime.CessRate))
}

// MarginalRate returns the cess-inclusive rate of the band containing income
func MarginalRate(income decimal.Decimal, regime *domain.RegimeDefinition) decimal.Decimal {
	band := regime.Slabs[regime.BandFor(income)]
	return band.Rate.Mul(decimal.NewFromInt(1).Add(regime.CessRate))
}
