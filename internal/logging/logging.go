// Package logging builds the slog logger used by the CLI.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/log"
)

// New returns a slog.Logger backed by a charmbracelet/log handler.
// level is one of debug, info, warn, error; format is text or json.
func New(w io.Writer, level, format string) (*slog.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	opts := log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	}
	switch format {
	case "", "text":
		opts.Formatter = log.TextFormatter
	case "json":
		opts.Formatter = log.JSONFormatter
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}

	return slog.New(log.NewWithOptions(w, opts)), nil
}
