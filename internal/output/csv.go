package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rgehrsitz/itrgo/internal/compare"
)

// CSVFormatter emits the regime comparison, one row per regime
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *Report) ([]byte, error) {
	out, err := (&compare.CSVFormatter{}).Format(report.Comparison)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// ScenarioCSVFormatter emits the income projection, one row per multiplier
type ScenarioCSVFormatter struct{}

func (c ScenarioCSVFormatter) Name() string { return "scenarios-csv" }

func (c ScenarioCSVFormatter) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Multiplier", "Income", "OldRegimeTax", "NewRegimeTax", "Savings", "BestRegime"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, s := range report.Scenarios {
		row := []string{
			s.Multiplier.String(),
			s.Income.StringFixed(2),
			s.OldRegimeTax.StringFixed(2),
			s.NewRegimeTax.StringFixed(2),
			s.Savings.StringFixed(2),
			string(s.BestRegime),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
