package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/thoreinstein/solvercfg/internal/errors"
)

// Format specifies how records are rendered on the primary output.
type Format string

const (
	// FormatText produces the colorized one-line-per-record output.
	FormatText Format = "text"
	// FormatJSON produces one JSON object per record.
	FormatJSON Format = "json"
)

// ParseFormat validates a --log-format value. The empty string selects
// FormatText.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", errors.Newf("unknown log format %q (want text or json)", s)
	}
}

// Config describes the logger built by New.
type Config struct {
	// Level is the minimum level written to every output.
	Level slog.Level
	// Format selects the rendering of Output.
	Format Format
	// Output receives the primary stream. Defaults to os.Stderr.
	Output io.Writer
	// File, when set, also receives every record as JSON.
	File io.Writer
}

// New builds the logger described by cfg. An unrecognized format renders
// as text.
func New(cfg Config) *slog.Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level:       cfg.Level,
		ReplaceAttr: nameLevels,
	}

	var handler slog.Handler
	switch cfg.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(output, opts)
	default:
		handler = NewHandler(output, opts)
	}

	if cfg.File != nil {
		handler = NewMultiHandler(handler, slog.NewJSONHandler(cfg.File, opts))
	}
	return slog.New(handler)
}

// nameLevels writes LevelTrace as "TRACE" in JSON records instead of
// slog's "DEBUG-4".
func nameLevels(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.LevelKey {
		if l, ok := a.Value.Any().(slog.Level); ok {
			a.Value = slog.StringValue(levelName(l))
		}
	}
	return a
}

// NewDiscard creates a logger that discards all output.
func NewDiscard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// testWriter adapts testing.TB to io.Writer for use with slog handlers.
type testWriter struct {
	tb testing.TB
}

// Write implements io.Writer by logging to the test.
func (w *testWriter) Write(p []byte) (n int, err error) {
	w.tb.Helper()
	w.tb.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

// ForTest creates a logger that writes to the test's log output at trace
// level, so hydration fallbacks show up when a test fails.
func ForTest(tb testing.TB) *slog.Logger {
	tb.Helper()
	return New(Config{
		Level:  LevelTrace,
		Format: FormatText,
		Output: &testWriter{tb: tb},
	})
}
