package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{" json ", FormatJSON, false},
		{"logfmt", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNew_Formats(t *testing.T) {
	tests := []struct {
		name     string
		format   Format
		wantJSON bool
	}{
		{"json", FormatJSON, true},
		{"text", FormatText, false},
		{"unknown renders as text", Format("unknown"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(Config{Level: slog.LevelInfo, Format: tt.format, Output: &buf})
			logger.Info("store saved", "path", "/tmp/solver.ini")

			var parsed map[string]any
			isJSON := json.Unmarshal(buf.Bytes(), &parsed) == nil
			if isJSON != tt.wantJSON {
				t.Fatalf("JSON output = %v, want %v: %q", isJSON, tt.wantJSON, buf.String())
			}
			if isJSON {
				if parsed["msg"] != "store saved" || parsed["path"] != "/tmp/solver.ini" {
					t.Errorf("unexpected record: %v", parsed)
				}
				return
			}
			if !strings.Contains(buf.String(), "INFO  store saved path=/tmp/solver.ini") {
				t.Errorf("unexpected text output: %q", buf.String())
			}
		})
	}
}

func TestNew_FileReceivesJSONCopy(t *testing.T) {
	var stderr, file bytes.Buffer
	logger := New(Config{
		Level:  slog.LevelDebug,
		Format: FormatText,
		Output: &stderr,
		File:   &file,
	})

	logger.Debug("config loaded", "file", "config.yaml")
	logger.Log(t.Context(), LevelTrace, "below the level")

	if !strings.Contains(stderr.String(), "config loaded") {
		t.Errorf("stderr missing record: %q", stderr.String())
	}
	var parsed map[string]any
	if err := json.Unmarshal(file.Bytes(), &parsed); err != nil {
		t.Fatalf("file copy is not one JSON record: %v\n%s", err, file.String())
	}
	if parsed["level"] != "DEBUG" || parsed["file"] != "config.yaml" {
		t.Errorf("unexpected file record: %v", parsed)
	}
}

func TestNew_TraceNamedInJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelTrace, Format: FormatJSON, Output: &buf})

	logger.Log(t.Context(), LevelTrace, "option falls back to default", "option", "MESHING.DebugMesh")

	var parsed map[string]any
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatal(err)
	}
	if parsed["level"] != "TRACE" {
		t.Errorf("level = %v, want TRACE", parsed["level"])
	}
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		name  string
		level slog.Level
		want  []string
		none  []string
	}{
		{"warn", slog.LevelWarn, []string{"warn-msg", "error-msg"}, []string{"info-msg", "debug-msg"}},
		{"debug", slog.LevelDebug, []string{"debug-msg", "info-msg"}, []string{"trace-msg"}},
		{"trace", LevelTrace, []string{"trace-msg", "debug-msg"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(Config{Level: tt.level, Format: FormatText, Output: &buf})

			logger.Log(t.Context(), LevelTrace, "trace-msg")
			logger.Debug("debug-msg")
			logger.Info("info-msg")
			logger.Warn("warn-msg")
			logger.Error("error-msg")

			for _, w := range tt.want {
				if !strings.Contains(buf.String(), w) {
					t.Errorf("output missing %q: %s", w, buf.String())
				}
			}
			for _, n := range tt.none {
				if strings.Contains(buf.String(), n) {
					t.Errorf("output should not contain %q: %s", n, buf.String())
				}
			}
		})
	}
}

func TestNewDiscard(t *testing.T) {
	logger := NewDiscard()
	if logger.Enabled(t.Context(), slog.LevelError) {
		t.Error("discard logger should not be enabled at any level")
	}
}

func TestForTest(t *testing.T) {
	logger := ForTest(t)
	if !logger.Enabled(t.Context(), LevelTrace) {
		t.Error("ForTest logger should be enabled at trace level")
	}
	logger.Info("editing session opened", "options", 3)
}

func TestTestWriter_TrimsNewline(t *testing.T) {
	tw := &testWriter{tb: t}
	for _, in := range []string{"line\n", "no newline", ""} {
		n, err := tw.Write([]byte(in))
		if err != nil {
			t.Fatalf("Write(%q) error = %v", in, err)
		}
		if n != len(in) {
			t.Errorf("Write(%q) = %d, want %d", in, n, len(in))
		}
	}
}

func TestLevelFromVerbosity(t *testing.T) {
	tests := []struct {
		verbosity int
		want      slog.Level
	}{
		{-1, slog.LevelWarn},
		{0, slog.LevelWarn},
		{1, slog.LevelInfo},
		{2, slog.LevelDebug},
		{3, LevelTrace},
		{4, LevelTrace},
	}

	for _, tt := range tests {
		if got := LevelFromVerbosity(tt.verbosity); got != tt.want {
			t.Errorf("LevelFromVerbosity(%d) = %v, want %v", tt.verbosity, got, tt.want)
		}
	}
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		name      string
		quiet     bool
		verbosity int
		env       string
		want      slog.Level
	}{
		{"default", false, 0, "", slog.LevelWarn},
		{"quiet", true, 0, "2", slog.LevelError},
		{"env debug", false, 0, "1", slog.LevelDebug},
		{"env true", false, 0, "true", slog.LevelDebug},
		{"env trace", false, 0, "2", LevelTrace},
		{"env unknown", false, 0, "yes", slog.LevelWarn},
		{"flag wins", false, 1, "2", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LevelFor(tt.quiet, tt.verbosity, tt.env); got != tt.want {
				t.Errorf("LevelFor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContextRoundTrip(t *testing.T) {
	logger := NewDiscard()
	ctx := NewContext(t.Context(), logger)
	if FromContext(ctx) != logger {
		t.Error("FromContext did not return the stored logger")
	}
	if FromContext(t.Context()) != slog.Default() {
		t.Error("FromContext without a logger should return slog.Default()")
	}
}
