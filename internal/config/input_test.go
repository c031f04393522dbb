package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/internal/regime"
)

func newParser(t *testing.T) *InputParser {
	t.Helper()
	registry, err := regime.Default()
	require.NoError(t, err)
	return NewInputParser(registry)
}

func TestLoadFromFile_YAML(t *testing.T) {
	c, err := newParser(t).LoadFromFile(filepath.Join("testdata", "salaried.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "2024-25", c.AssessmentYear)
	assert.Equal(t, "Asha Rao", c.Taxpayer.Name)
	assert.Equal(t, domain.EntityIndividual, c.Taxpayer.EntityType)
	assert.True(t, c.Taxpayer.HasTDSDeducted)
	assert.True(t, decimal.NewFromInt(1200000).Equal(c.Income.Salary))
	assert.True(t, decimal.NewFromInt(15000).Equal(c.Income.OtherSources))
	assert.True(t, decimal.NewFromInt(150000).Equal(c.Deductions[domain.Section80C]))
	assert.True(t, decimal.NewFromInt(12000).Equal(c.Deductions[domain.Section80TTA]))
	assert.True(t, decimal.NewFromInt(60000).Equal(c.Payments.TDSDeducted))
	assert.Equal(t, domain.RegimeID(""), c.Regime)

	require.Len(t, c.Scenarios.Multipliers, 4)
	assert.True(t, decimal.RequireFromString("0.5").Equal(c.Scenarios.Multipliers[0]))
}

func TestLoadFromFile_JSON(t *testing.T) {
	c, err := newParser(t).LoadFromFile(filepath.Join("testdata", "business.json"))
	require.NoError(t, err)

	assert.Equal(t, domain.EntityBusiness, c.Taxpayer.EntityType)
	assert.True(t, c.Taxpayer.GSTRegistered)
	assert.Equal(t, domain.RegimeOld, c.Regime)
	assert.True(t, decimal.NewFromInt(12500000).Equal(c.GrossReceipts))
	assert.True(t, decimal.NewFromInt(120000).Equal(c.Income.LongTermCapitalGains))

	require.Len(t, c.PriorReturns, 1)
	prior := c.PriorReturns[0]
	assert.Equal(t, "2023-24", prior.AssessmentYear)
	assert.True(t, prior.Filed)
	assert.True(t, prior.HasCompleted("tax_audit"))
}

func TestLoadFromFile_Errors(t *testing.T) {
	parser := newParser(t)

	_, err := parser.LoadFromFile(filepath.Join("testdata", "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, err = parser.LoadFromFile(filepath.Join("testdata", "misspelt.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "salry_bonus")

	_, err = parser.LoadFromFile(filepath.Join("testdata", "bad_section.yaml"))
	var sectionErr *domain.UnknownDeductionSectionError
	require.True(t, errors.As(err, &sectionErr))
	assert.Equal(t, "80Z", sectionErr.Section)
}

func TestParse_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "negative salary",
			input:   "assessment_year: \"2024-25\"\nincome:\n  salary: -5\n",
			wantErr: "income.salary",
		},
		{
			name:    "unknown regime",
			input:   "assessment_year: \"2024-25\"\nregime: flat\n",
			wantErr: "flat",
		},
		{
			name:    "year without tables",
			input:   "assessment_year: \"2019-20\"\n",
			wantErr: "2019-20",
		},
		{
			name:    "bad year",
			input:   "assessment_year: \"2024\"\n",
			wantErr: "2024",
		},
		{
			name:    "unknown entity",
			input:   "assessment_year: \"2024-25\"\ntaxpayer:\n  entity_type: trust\n",
			wantErr: "trust",
		},
		{
			name:    "zero multiplier",
			input:   "assessment_year: \"2024-25\"\nscenarios:\n  multipliers: [1, 0]\n",
			wantErr: "scenarios.multipliers[1]",
		},
		{
			name:    "negative prior payment",
			input:   "assessment_year: \"2024-25\"\nprior_returns:\n  - assessment_year: \"2023-24\"\n    advance_tax_paid: -1\n",
			wantErr: "prior return 0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newParser(t).Parse([]byte(tt.input), FormatYAML)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParse_Defaults(t *testing.T) {
	c, err := newParser(t).Parse([]byte("income:\n  salary: 500000\n"), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "2024-25", c.AssessmentYear, "latest registered year")
	assert.Equal(t, domain.EntityIndividual, c.Taxpayer.EntityType)
	assert.NotNil(t, c.Deductions)

	_, err = NewInputParser(nil).Parse([]byte("income:\n  salary: 500000\n"), FormatYAML)
	require.Error(t, err, "no registry to default from")
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatForPath("case.JSON"))
	assert.Equal(t, FormatYAML, FormatForPath("case.yml"))
	assert.Equal(t, FormatYAML, FormatForPath("case"))
}
