package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCase = "testdata/case.yaml"

// execute runs the root command and returns what it wrote to stdout.
// Flags keep their values between runs, so callers pass every flag they rely on.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), err
}

func TestRootCommand(t *testing.T) {
	assert.Equal(t, "itrgo", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("format"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("regimes"))
}

func TestCommandSubcommands(t *testing.T) {
	expected := []string{
		"calculate",
		"compare",
		"scenarios",
		"break-even",
		"suggest",
		"compliance",
		"validate",
		"regimes",
		"version",
	}

	registered := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}
	for _, name := range expected {
		assert.True(t, registered[name], "expected command %q to be registered", name)
	}
}

func TestCompareCommand(t *testing.T) {
	out, err := execute(t, "compare", testCase, "--format", "console")
	require.NoError(t, err)
	assert.Contains(t, out, "INCOME TAX REGIME COMPARISON")
	assert.Contains(t, out, "Assessment Year: 2024-25")

	out, err = execute(t, "compare", testCase, "--format", "json")
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "new", decoded["recommended_regime"])
	assert.Equal(t, "35100", decoded["absolute_savings"])
}

func TestCompareCommand_UnsupportedFormat(t *testing.T) {
	_, err := execute(t, "compare", testCase, "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported format "xml"`)
}

func TestCalculateCommand(t *testing.T) {
	out, err := execute(t, "calculate", testCase, "--format", "console", "--as-of", "2024-06-01")
	require.NoError(t, err)
	assert.Contains(t, out, "INCOME TAX REPORT  AY 2024-25  Asha Rao")
	assert.Contains(t, out, "Tax Payable:         ₹11,900.00")
	assert.Contains(t, out, "COMPLIANCE (as of 1 Jun 2024)")
}

func TestCalculateCommand_BadDate(t *testing.T) {
	_, err := execute(t, "calculate", testCase, "--format", "console", "--as-of", "01/06/2024")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --as-of date")
}

func TestScenariosCommand(t *testing.T) {
	out, err := execute(t, "scenarios", testCase, "--format", "json", "--multipliers", "1,2")
	require.NoError(t, err)

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "1200000", decoded[0]["income"])
	assert.Equal(t, "2400000", decoded[1]["income"])
}

func TestBreakEvenCommand(t *testing.T) {
	out, err := execute(t, "break-even", testCase, "--format", "json", "--max-iterations", "5")
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Contains(t, decoded, "converged")
	assert.Contains(t, decoded, "iterations")
}

func TestSuggestCommand(t *testing.T) {
	out, err := execute(t, "suggest", testCase, "--format", "console", "--regime", "old")
	require.NoError(t, err)
	assert.Contains(t, out, "DEDUCTION OPPORTUNITIES")

	out, err = execute(t, "suggest", testCase, "--format", "console", "--regime", "new")
	require.NoError(t, err)
	assert.Contains(t, out, "No capped deductions with unused room under the new regime")

	_, err = execute(t, "suggest", testCase, "--format", "console", "--regime", "flat")
	assert.Error(t, err)
}

func TestComplianceCommand(t *testing.T) {
	out, err := execute(t, "compliance", testCase, "--format", "json", "--as-of", "2024-06-01")
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Contains(t, decoded, "score")
	assert.NotEmpty(t, decoded["statuses"])
}

func TestValidateCommand(t *testing.T) {
	out, err := execute(t, "validate", testCase, "--format", "console")
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")
	assert.Contains(t, out, "Assessment year: 2024-25")

	_, err = execute(t, "validate", "testdata/missing.yaml", "--format", "console")
	assert.Error(t, err)
}

func TestRegimesCommand(t *testing.T) {
	out, err := execute(t, "regimes", "--format", "console", "--ay", "2024-25")
	require.NoError(t, err)
	assert.Contains(t, out, "AY 2024-25")
	assert.Contains(t, out, "No deduction sections allowed")

	_, err = execute(t, "regimes", "--format", "console", "--ay", "1999-00")
	assert.Error(t, err)
}

func TestRootCommand_InvalidCommand(t *testing.T) {
	_, err := execute(t, "invalid-command")
	assert.Error(t, err)
}

func TestFileExtension(t *testing.T) {
	tests := []struct {
		formatter string
		want      string
	}{
		{"json", "json"},
		{"html", "html"},
		{"csv", "csv"},
		{"scenarios-csv", "csv"},
		{"console", "txt"},
		{"console-verbose", "txt"},
	}
	for _, tt := range tests {
		t.Run(tt.formatter, func(t *testing.T) {
			assert.Equal(t, tt.want, fileExtension(tt.formatter))
		})
	}
}
