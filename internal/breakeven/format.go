package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats break-even results as a console table
type TableFormatter struct{}

// Format generates a formatted table for a break-even result
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder

	sb.WriteString("REGIME BREAK-EVEN ANALYSIS\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")
	sb.WriteString(fmt.Sprintf("Baseline Income:  %s\n", tf.formatCurrency(result.Options.Baseline)))
	sb.WriteString(fmt.Sprintf("Step:             %s\n", tf.formatCurrency(result.Options.Step)))
	sb.WriteString(fmt.Sprintf("Tolerance:        %s\n", tf.formatCurrency(result.Options.Tolerance)))
	sb.WriteString(fmt.Sprintf("Status:           %s\n", tf.formatStatus(result.Converged)))
	sb.WriteString(fmt.Sprintf("Levels Tested:    %d\n", result.Iterations))
	if result.Income != nil {
		sb.WriteString(fmt.Sprintf("Break-even Income: %s (difference %s)\n",
			tf.formatCurrency(*result.Income), tf.formatCurrency(result.Difference)))
	}
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:      %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	if len(result.Scan) > 0 {
		sb.WriteString("SCAN\n")
		sb.WriteString(strings.Repeat("-", 72) + "\n")
		sb.WriteString(fmt.Sprintf("%15s %15s %15s %15s %8s\n", "Income", "Old Regime", "New Regime", "Old - New", ""))
		for _, p := range result.Scan {
			note := ""
			if p.Skipped {
				note = "skipped"
			}
			sb.WriteString(fmt.Sprintf("%15s %15s %15s %15s %8s\n",
				tf.formatShort(p.Income),
				p.OldTax.StringFixed(0),
				p.NewTax.StringFixed(0),
				tf.deltaSymbol(p.Difference)+p.Difference.StringFixed(0),
				note))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *Result) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Helper methods

func (tf *TableFormatter) formatStatus(converged bool) string {
	if converged {
		return "✓ Converged"
	}
	return "⚠ Did not converge"
}

func (tf *TableFormatter) formatCurrency(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func (tf *TableFormatter) formatShort(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(10000000)) {
		return d.Div(decimal.NewFromInt(10000000)).StringFixed(2) + " Cr"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(100000)) {
		return d.Div(decimal.NewFromInt(100000)).StringFixed(2) + " L"
	}
	return d.StringFixed(0)
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}
