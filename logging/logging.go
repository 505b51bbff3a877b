// Package logging builds the slog.Handler the CLI logs with, grounded directly on the teacher's log/log.go handler factory:
// same level/format parsing shape, generalized from generic CLI logging
// to the conversion pipeline's own level and format vocabulary.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Format selects the slog.Handler's wire format.
type Format string

const (
	FormatJSON    Format = "json"
	FormatLogfmt  Format = "logfmt"
	FormatConsole Format = "console"
)

var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrUnknownLogLevel  = errors.New("unknown log level")
	ErrUnknownLogFormat = errors.New("unknown log format")
)

// NewHandler builds a slog.Handler from string level/format names, the
// form a CLI flag parser hands off (cmd/kumihan-fmt converts its
// --log-level/--log-format flags here once at startup).
func NewHandler(w io.Writer, level, format string) (slog.Handler, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	fmtName, err := parseFormat(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return NewHandlerWithLevel(w, lvl, fmtName), nil
}

// NewHandlerWithLevel builds a slog.Handler with an already-resolved
// level and format.
func NewHandlerWithLevel(w io.Writer, lvl slog.Level, format Format) slog.Handler {
	opts := &slog.HandlerOptions{Level: lvl}
	switch format {
	case FormatJSON:
		return slog.NewJSONHandler(w, opts)
	case FormatLogfmt, FormatConsole:
		return slog.NewTextHandler(w, opts)
	default:
		return slog.NewTextHandler(w, opts)
	}
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "error":
		return slog.LevelError, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLogLevel, level)
}

func parseFormat(format string) (Format, error) {
	switch Format(strings.ToLower(format)) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatLogfmt:
		return FormatLogfmt, nil
	case FormatConsole, "":
		return FormatConsole, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLogFormat, format)
}
