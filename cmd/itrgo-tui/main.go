package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/itrgo/internal/regime"
	"github.com/rgehrsitz/itrgo/internal/tui"
	"github.com/rgehrsitz/itrgo/pkg/logging"
)

var rootCmd = &cobra.Command{
	Use:          "itrgo-tui [case-file]",
	Short:        "Interactive income tax regime planner",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		casePath := args[0]
		if _, err := os.Stat(casePath); os.IsNotExist(err) {
			return fmt.Errorf("case file not found: %s", casePath)
		}

		// the terminal belongs to the UI, so logs only go to a file
		var logOut io.Writer = io.Discard
		if logFile, _ := cmd.Flags().GetString("log-file"); logFile != "" {
			f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return err
			}
			defer f.Close()
			logOut = f
		}
		logger := logging.New(logOut, slog.LevelDebug, logging.FormatJSON)

		registry, err := loadRegistry(cmd)
		if err != nil {
			return err
		}
		asOf, err := asOfDate(cmd)
		if err != nil {
			return err
		}

		model := tui.NewModel(casePath, registry, asOf, logging.NewPrintfLogger(logger))
		p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running TUI: %w", err)
		}
		return nil
	},
}

func loadRegistry(cmd *cobra.Command) (*regime.Registry, error) {
	path, _ := cmd.Flags().GetString("regimes")
	if path == "" {
		return regime.Default()
	}
	return regime.LoadFile(path)
}

func asOfDate(cmd *cobra.Command) (time.Time, error) {
	raw, _ := cmd.Flags().GetString("as-of")
	if raw == "" {
		return time.Now(), nil
	}
	t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --as-of date %q (expected YYYY-MM-DD): %w", raw, err)
	}
	return t, nil
}

func init() {
	rootCmd.Flags().String("regimes", "", "Path to a YAML file of slab tables (default: built-in tables)")
	rootCmd.Flags().String("as-of", "", "Date for compliance checks, YYYY-MM-DD (default: today)")
	rootCmd.Flags().String("log-file", "", "Append JSON logs to this file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
