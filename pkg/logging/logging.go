// Package logging configures structured logging with slog and tint.
//
// Usage:
//
//	logging.Setup()                          // level from ITRGO_LOG_LEVEL
//	logging.SetupWithLevel(slog.LevelDebug)  // explicit level override
//
// Environment variables:
//
//	ITRGO_LOG_LEVEL: debug, info, warn, error (default: warn)
//	NO_COLOR: disables colored output when set
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Format selects the handler used for log records
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat accepts "text" or "json"
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown log format %q (expected text or json)", s)
}

// Setup configures colored logging at the level specified by ITRGO_LOG_LEVEL
func Setup() {
	SetupWithLevel(LevelFromEnv())
}

// SetupWithLevel configures colored logging at the given level.
func SetupWithLevel(level slog.Level) {
	slog.SetDefault(New(os.Stderr, level, FormatText))
}

// New builds a logger writing to w. Text output goes through tint.
func New(w io.Writer, level slog.Level, format Format) *slog.Logger {
	if format == FormatJSON {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	}
	return slog.New(
		tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			AddSource:  level <= slog.LevelDebug,
			NoColor:    os.Getenv("NO_COLOR") != "",
		}),
	)
}

// LevelFromEnv reads ITRGO_LOG_LEVEL. Command-line tools stay quiet by default.
func LevelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("ITRGO_LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// PrintfLogger adapts a slog.Logger to the printf-style logger interface the
// calculation packages accept.
type PrintfLogger struct {
	Logger *slog.Logger
}

// NewPrintfLogger wraps l; nil uses slog.Default()
func NewPrintfLogger(l *slog.Logger) PrintfLogger {
	if l == nil {
		l = slog.Default()
	}
	return PrintfLogger{Logger: l}
}

func (p PrintfLogger) Debugf(format string, args ...interface{}) {
	p.Logger.Debug(fmt.Sprintf(format, args...))
}

func (p PrintfLogger) Infof(format string, args ...interface{}) {
	p.Logger.Info(fmt.Sprintf(format, args...))
}

func (p PrintfLogger) Warnf(format string, args ...interface{}) {
	p.Logger.Warn(fmt.Sprintf(format, args...))
}

func (p PrintfLogger) Errorf(format string, args ...interface{}) {
	p.Logger.Error(fmt.Sprintf(format, args...))
}
