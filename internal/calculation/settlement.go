package calculation

import (
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/shopspring/decimal"
)

// Settle nets taxes already paid against the liability
func Settle(netTax decimal.Decimal, payments domain.Payments) (*domain.Settlement, error) {
	if err := domain.ValidateAmount("net_tax_liability", netTax); err != nil {
		return nil, err
	}
	if err := domain.ValidateAmount("payments.tds_deducted", payments.TDSDeducted); err != nil {
		return nil, err
	}
	if err := domain.ValidateAmount("payments.advance_tax_paid", payments.AdvanceTaxPaid); err != nil {
		return nil, err
	}

	paid := payments.Total()
	settlement := &domain.Settlement{
		NetTaxLiability:      netTax,
		TotalTaxPaid:         paid,
		RefundDue:            decimal.Zero,
		AdditionalTaxPayable: decimal.Zero,
	}
	if paid.GreaterThan(netTax) {
		settlement.RefundDue = paid.Sub(netTax)
	} else {
		settlement.AdditionalTaxPayable = netTax.Sub(paid)
	}
	return settlement, nil
}
