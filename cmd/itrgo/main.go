package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/rgehrsitz/itrgo/internal/breakeven"
	"github.com/rgehrsitz/itrgo/internal/calculation"
	"github.com/rgehrsitz/itrgo/internal/compare"
	"github.com/rgehrsitz/itrgo/internal/compliance"
	"github.com/rgehrsitz/itrgo/internal/config"
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/internal/output"
	"github.com/rgehrsitz/itrgo/internal/regime"
	"github.com/rgehrsitz/itrgo/pkg/logging"
	"github.com/rgehrsitz/itrgo/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// cli holds what the root command sets up before any subcommand runs
var cli struct {
	registry *regime.Registry
	logger   calculation.Logger
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "itrgo %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

var rootCmd = &cobra.Command{
	Use:   "itrgo",
	Short: "Indian income tax calculator CLI",
	Long: "Computes income tax under the old and new regimes, recommends the cheaper one, " +
		"projects income scenarios and checks filing and payment deadlines",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := logging.LevelFromEnv()
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = slog.LevelInfo
		}
		if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
			level = slog.LevelDebug
		}
		logFormat, _ := cmd.Flags().GetString("log-format")
		format, err := logging.ParseFormat(logFormat)
		if err != nil {
			return err
		}
		logger := logging.New(cmd.ErrOrStderr(), level, format)
		slog.SetDefault(logger)
		cli.logger = logging.NewPrintfLogger(logger)

		tablesFile, _ := cmd.Flags().GetString("regimes")
		if tablesFile != "" {
			cli.registry, err = regime.LoadFile(tablesFile)
		} else {
			cli.registry, err = regime.Default()
		}
		if err != nil {
			return fmt.Errorf("failed to load regime tables: %w", err)
		}
		slog.Debug("regime tables loaded", "years", cli.registry.AssessmentYears())
		return nil
	},
}

func loadCase(path string) (*domain.Case, error) {
	c, err := config.NewInputParser(cli.registry).LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	slog.Debug("case loaded", "file", path, "assessment_year", c.AssessmentYear)
	return c, nil
}

func outputFormat(cmd *cobra.Command) string {
	format, _ := cmd.Flags().GetString("format")
	return strings.ToLower(format)
}

func unsupportedFormat(format string, supported ...string) error {
	return fmt.Errorf("unsupported format %q (supported: %s)", format, strings.Join(supported, ", "))
}

func writeJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newReportGenerator() *output.ReportGenerator {
	rg := output.NewReportGenerator(cli.registry)
	rg.SetLogger(cli.logger)
	return rg
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [case-file]",
	Short: "Compute the return and the full tax report for a case",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCase(args[0])
		if err != nil {
			return err
		}
		asOf, err := asOfFlag(cmd)
		if err != nil {
			return err
		}
		report, err := newReportGenerator().Build(c, asOf)
		if err != nil {
			return err
		}

		format := outputFormat(cmd)
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose && format == "console" {
			format = "console-verbose"
		}
		f := output.GetFormatterByName(format)
		if f == nil {
			return unsupportedFormat(format, output.AvailableFormatterNames()...)
		}

		if save, _ := cmd.Flags().GetBool("save"); save {
			filename, err := output.WriteFormatted(f, report, fileExtension(f.Name()))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
			return nil
		}

		data, err := f.Format(report)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func fileExtension(formatter string) string {
	switch formatter {
	case "json", "html":
		return formatter
	case "csv", "scenarios-csv":
		return "csv"
	}
	return "txt"
}

var compareCmd = &cobra.Command{
	Use:   "compare [case-file]",
	Short: "Compare the old and new regimes for a case",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCase(args[0])
		if err != nil {
			return err
		}
		engine := compare.NewCompareEngine(cli.registry)
		engine.SetLogger(cli.logger)
		comparison, err := engine.Compare(c.Income, c.Deductions, c.AssessmentYear)
		if err != nil {
			return err
		}

		var out string
		switch format := outputFormat(cmd); format {
		case "console", "table":
			out = (&compare.TableFormatter{}).Format(comparison)
			if slabs, _ := cmd.Flags().GetBool("slabs"); slabs {
				out += "\n" + (&compare.TableFormatter{}).FormatSlabs(comparison.Old) +
					"\n" + (&compare.TableFormatter{}).FormatSlabs(comparison.New)
			}
		case "csv":
			out, err = (&compare.CSVFormatter{}).Format(comparison)
		case "json":
			out, err = (&compare.JSONFormatter{Pretty: true}).Format(comparison)
		default:
			return unsupportedFormat(format, "console", "csv", "json")
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

var scenariosCmd = &cobra.Command{
	Use:   "scenarios [case-file]",
	Short: "Project both regimes across income multipliers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCase(args[0])
		if err != nil {
			return err
		}
		multipliers, err := multipliersFlag(cmd, c)
		if err != nil {
			return err
		}
		oldDef, newDef, err := cli.registry.Pair(c.AssessmentYear)
		if err != nil {
			return err
		}
		scenarios, err := calculation.ProjectScenarios(c.Income, c.Deductions, multipliers, oldDef, newDef)
		if err != nil {
			return err
		}

		report := &output.Report{AssessmentYear: c.AssessmentYear, Scenarios: scenarios}
		switch format := outputFormat(cmd); format {
		case "console", "table":
			var buf bytes.Buffer
			output.WriteScenarios(&buf, scenarios)
			_, err = cmd.OutOrStdout().Write(buf.Bytes())
			return err
		case "csv":
			data, err := output.ScenarioCSVFormatter{}.Format(report)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		case "json":
			return writeJSON(cmd, scenarios)
		default:
			return unsupportedFormat(format, "console", "csv", "json")
		}
	},
}

func multipliersFlag(cmd *cobra.Command, c *domain.Case) ([]decimal.Decimal, error) {
	raw, _ := cmd.Flags().GetStringSlice("multipliers")
	if len(raw) == 0 {
		if len(c.Scenarios.Multipliers) > 0 {
			return c.Scenarios.Multipliers, nil
		}
		return calculation.DefaultMultipliers, nil
	}
	out := make([]decimal.Decimal, 0, len(raw))
	for _, s := range raw {
		m, err := decimal.NewFromString(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("invalid multiplier %q: %w", s, err)
		}
		out = append(out, m)
	}
	return out, nil
}

var breakEvenCmd = &cobra.Command{
	Use:   "break-even [case-file]",
	Short: "Find the salary at which both regimes cost the same",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCase(args[0])
		if err != nil {
			return err
		}
		oldDef, newDef, err := cli.registry.Pair(c.AssessmentYear)
		if err != nil {
			return err
		}

		options := breakeven.DefaultSolverOptions()
		if v, _ := cmd.Flags().GetInt64("baseline"); v > 0 {
			options.Baseline = decimal.NewFromInt(v)
		}
		if v, _ := cmd.Flags().GetInt64("step"); v > 0 {
			options.Step = decimal.NewFromInt(v)
		}
		if v, _ := cmd.Flags().GetInt64("tolerance"); v > 0 {
			options.Tolerance = decimal.NewFromInt(v)
		}
		if v, _ := cmd.Flags().GetInt("max-iterations"); v > 0 {
			options.MaxIterations = v
		}
		options.KeepScan, _ = cmd.Flags().GetBool("scan")

		solver := breakeven.NewSolver(options)
		solver.Logger = cli.logger
		result, err := solver.FindBreakEven(breakeven.Request{Deductions: c.Deductions, Old: oldDef, New: newDef})
		if err != nil {
			return err
		}

		switch format := outputFormat(cmd); format {
		case "console", "table":
			fmt.Fprint(cmd.OutOrStdout(), (&breakeven.TableFormatter{}).Format(result))
		case "json":
			out, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
		default:
			return unsupportedFormat(format, "console", "json")
		}
		return nil
	},
}

var suggestCmd = &cobra.Command{
	Use:   "suggest [case-file]",
	Short: "List deduction sections with unused room and the tax they would save",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCase(args[0])
		if err != nil {
			return err
		}
		regimeName, _ := cmd.Flags().GetString("regime")
		id, err := domain.ParseRegimeID(regimeName)
		if err != nil {
			return err
		}
		def, err := cli.registry.Get(id, c.AssessmentYear)
		if err != nil {
			return err
		}
		suggestions, err := calculation.SuggestDeductions(c.Income, c.Deductions, def)
		if err != nil {
			return err
		}

		switch format := outputFormat(cmd); format {
		case "console", "table":
			if len(suggestions) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No capped deductions with unused room under the %s regime\n", id)
				return nil
			}
			var buf bytes.Buffer
			output.WriteSuggestions(&buf, suggestions)
			_, err = cmd.OutOrStdout().Write(buf.Bytes())
			return err
		case "json":
			return writeJSON(cmd, suggestions)
		default:
			return unsupportedFormat(format, "console", "json")
		}
	},
}

func asOfFlag(cmd *cobra.Command) (time.Time, error) {
	raw, _ := cmd.Flags().GetString("as-of")
	if raw == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}
	t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --as-of date %q (expected YYYY-MM-DD): %w", raw, err)
	}
	return t, nil
}

var complianceCmd = &cobra.Command{
	Use:   "compliance [case-file]",
	Short: "Check filing and payment deadlines for a case",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCase(args[0])
		if err != nil {
			return err
		}
		asOf, err := asOfFlag(cmd)
		if err != nil {
			return err
		}

		engine := calculation.NewEngine(cli.registry)
		engine.SetLogger(cli.logger)
		ret := c.NewReturn(time.Now())
		if err := engine.CalculateReturn(ret); err != nil {
			return err
		}

		evaluator := compliance.NewEvaluator()
		evaluator.Logger = cli.logger
		report, err := evaluator.Evaluate(c.Taxpayer, c.ComplianceReturns(ret), asOf)
		if err != nil {
			return err
		}

		switch format := outputFormat(cmd); format {
		case "console", "table":
			var buf bytes.Buffer
			output.WriteCompliance(&buf, report)
			_, err = cmd.OutOrStdout().Write(buf.Bytes())
			return err
		case "json":
			return writeJSON(cmd, report)
		default:
			return unsupportedFormat(format, "console", "json")
		}
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [case-file]",
	Short: "Validate a case file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCase(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✓ %s is valid\n", args[0])
		fmt.Fprintf(out, "  Assessment year: %s\n", c.AssessmentYear)
		fmt.Fprintf(out, "  Gross income:    %s\n", money.FormatINR(c.Income.GrossTotalIncome()))
		fmt.Fprintf(out, "  Deductions:      %s across %d sections\n", money.FormatINR(c.Deductions.Total()), len(c.Deductions))
		if c.Regime != "" {
			fmt.Fprintf(out, "  Regime:          %s\n", c.Regime)
		}
		return nil
	},
}

var regimesCmd = &cobra.Command{
	Use:   "regimes",
	Short: "Show the slab tables in use",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ay, _ := cmd.Flags().GetString("ay")
		years := cli.registry.AssessmentYears()
		if ay != "" {
			years = []string{ay}
		}

		var all []*domain.RegimeDefinition
		for _, year := range years {
			defs, err := cli.registry.Regimes(year)
			if err != nil {
				return err
			}
			all = append(all, defs...)
		}

		switch format := outputFormat(cmd); format {
		case "console", "table":
			for _, def := range all {
				writeRegime(cmd, def)
			}
			return nil
		case "json":
			return writeJSON(cmd, all)
		default:
			return unsupportedFormat(format, "console", "json")
		}
	},
}

func writeRegime(cmd *cobra.Command, def *domain.RegimeDefinition) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s, AY %s)\n", def.Name, def.ID, def.AssessmentYear)
	fmt.Fprintln(out, strings.Repeat("-", 60))
	for _, band := range def.Slabs {
		upper := "and above"
		if band.Max != nil {
			upper = "to " + money.FormatINRWhole(*band.Max)
		}
		fmt.Fprintf(out, "  %-14s %-18s %s\n", money.FormatINRWhole(band.Min), upper, money.FormatRate(band.Rate))
	}
	fmt.Fprintf(out, "  Standard deduction %s, cess %s, rebate up to %s below %s\n",
		money.FormatINRWhole(def.StandardDeduction), money.FormatRate(def.CessRate),
		money.FormatINRWhole(def.RebateCap), money.FormatINRWhole(def.RebateThreshold))
	sections := def.AllowedSections()
	if len(sections) == 0 {
		fmt.Fprintln(out, "  No deduction sections allowed")
	}
	for _, s := range sections {
		limit, _ := def.DeductionCap(s)
		capText := "no cap"
		if limit != nil {
			capText = "cap " + money.FormatINRWhole(*limit)
		}
		fmt.Fprintf(out, "  %-16s %s\n", s, capText)
	}
	fmt.Fprintln(out)
}

func init() {
	rootCmd.PersistentFlags().StringP("format", "f", "console", "Output format (console, csv, json; calculate also accepts html)")
	rootCmd.PersistentFlags().String("regimes", "", "Path to a YAML file of slab tables (default: built-in tables)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output and info-level logging")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text, json)")

	calculateCmd.Flags().String("as-of", "", "Date for compliance checks, YYYY-MM-DD (default: today)")
	calculateCmd.Flags().Bool("save", false, "Write the report to a timestamped file instead of stdout")

	compareCmd.Flags().Bool("slabs", false, "Include the slab breakdown of both regimes")

	scenariosCmd.Flags().StringSlice("multipliers", nil, "Comma-separated income multipliers (default: from case or 0.5,0.75,1,1.25,1.5,2,3)")

	breakEvenCmd.Flags().Int64("baseline", 0, "First salary tested (default 500000)")
	breakEvenCmd.Flags().Int64("step", 0, "Salary increment between tests (default 100000)")
	breakEvenCmd.Flags().Int64("tolerance", 0, "Liability gap treated as equal (default 1000)")
	breakEvenCmd.Flags().Int("max-iterations", 0, "Maximum salary levels tested (default 50)")
	breakEvenCmd.Flags().Bool("scan", false, "Show every tested salary level")

	suggestCmd.Flags().String("regime", string(domain.RegimeOld), "Regime whose caps are checked (old, new)")

	complianceCmd.Flags().String("as-of", "", "Evaluation date, YYYY-MM-DD (default: today)")

	regimesCmd.Flags().String("ay", "", "Assessment year to show (default: all)")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(scenariosCmd)
	rootCmd.AddCommand(breakEvenCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(complianceCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(regimesCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
