// Package logging sets up the slog logger used by the CLI and hands it to the
// packages that accept a *slog.Logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// LogLevel defines the severity of the log entry.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String makes LogLevel satisfy the fmt.Stringer interface.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel maps a level name to a LogLevel. Matching is case-insensitive and
// accepts the Python-style aliases WARNING and CRITICAL found in older documents.
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug, nil
	case "INFO":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarn, nil
	case "ERROR", "CRITICAL":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

var cliLevel slog.LevelVar

// InitForCLI builds a text logger writing to output, installs it as the slog
// default, and returns it. The threshold can be changed later with SetLevel.
func InitForCLI(level LogLevel, output io.Writer) *slog.Logger {
	cliLevel.Set(level.SlogLevel())
	handler := slog.NewTextHandler(output, &slog.HandlerOptions{
		Level: &cliLevel,
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// SetLevel changes the threshold of loggers built by InitForCLI.
func SetLevel(level LogLevel) {
	cliLevel.Set(level.SlogLevel())
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// For returns logger tagged with the given subsystem attribute.
func For(logger *slog.Logger, subsystem string) *slog.Logger {
	if logger == nil {
		logger = Discard()
	}
	return logger.With(slog.String("subsystem", subsystem))
}
