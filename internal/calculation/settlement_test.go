package calculation

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/itrgo/internal/domain"
)

func TestSettle(t *testing.T) {
	tests := []struct {
		name       string
		netTax     int64
		payments   domain.Payments
		wantRefund int64
		wantDue    int64
	}{
		{"balance payable", 50000, domain.Payments{TDSDeducted: dec(30000), AdvanceTaxPaid: dec(10000)}, 0, 10000},
		{"refund due", 50000, domain.Payments{TDSDeducted: dec(60000)}, 10000, 0},
		{"exactly settled", 50000, domain.Payments{AdvanceTaxPaid: dec(50000)}, 0, 0},
		{"nothing paid", 1200, domain.Payments{}, 0, 1200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Settle(dec(tt.netTax), tt.payments)
			require.NoError(t, err)
			assert.True(t, dec(tt.wantRefund).Equal(got.RefundDue), "refund: %s", got.RefundDue)
			assert.True(t, dec(tt.wantDue).Equal(got.AdditionalTaxPayable), "payable: %s", got.AdditionalTaxPayable)
			assert.True(t, tt.payments.Total().Equal(got.TotalTaxPaid))
		})
	}
}

func TestSettle_RejectsNegativePayments(t *testing.T) {
	_, err := Settle(decimal.Zero, domain.Payments{TDSDeducted: dec(-1)})
	var invalid *domain.InvalidAmountError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "payments.tds_deducted", invalid.Field)
}
