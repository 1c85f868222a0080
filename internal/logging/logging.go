// Package logging configures the global slog logger for marklip-launcher.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pwntr/tinter"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Format selects the log output format.
type Format string

const (
	FormatAuto Format = "auto"
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat converts a string to a Format, returning FormatAuto for unknown values.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "text", "tint", "human":
		return FormatText
	case "json":
		return FormatJSON
	default:
		return FormatAuto
	}
}

// ParseLevel converts a string to a slog.Level, defaulting to Info.
func ParseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}

// Options controls Setup.
type Options struct {
	Format Format
	Level  slog.Level
	// File, when set, sends logs to a size-rotated file instead of stderr.
	// A launchd-started launcher has no terminal to write to.
	File string
}

// Setup configures the global slog logger. Call once after flag/viper parsing.
// The returned closer flushes the log file, if any.
func Setup(opts Options) io.Closer {
	var w io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err == nil {
			lj := &lumberjack.Logger{
				Filename:   opts.File,
				MaxSize:    5, // megabytes
				MaxBackups: 3,
				MaxAge:     28, // days
			}
			w, closer = lj, lj
		}
	}

	slog.SetDefault(slog.New(NewHandler(w, opts.Format, opts.Level)))
	return closer
}

// NewHandler returns the handler Setup would install for w.
func NewHandler(w io.Writer, format Format, level slog.Level) slog.Handler {
	useTint := format == FormatText || (format == FormatAuto && IsTTY(w))
	if useTint {
		return tinter.NewHandler(w, &tinter.Options{
			Level:      level,
			TimeFormat: "15:04:05.000",
		})
	}
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
