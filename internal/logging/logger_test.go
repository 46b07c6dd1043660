package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// TestFieldHelpers tests the Field constructor functions.
func TestFieldHelpers(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		key   string
		value any
	}{
		{"String", String("region", "wide"), "region", "wide"},
		{"Int", Int("rows", 200), "rows", 200},
		{"Uint64", Uint64("seed", 42), "seed", uint64(42)},
		{"Float64", Float64("exact", 0.944517), "exact", 0.944517},
		{"Duration", Duration("elapsed", time.Second), "elapsed", time.Second},
		{"Err nil", Err(nil), "error", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.field.Key != tt.key {
				t.Errorf("Key = %q, want %q", tt.field.Key, tt.key)
			}
			if tt.field.Value != tt.value {
				t.Errorf("Value = %v, want %v", tt.field.Value, tt.value)
			}
		})
	}
}

// TestNewLogger tests the custom logger constructor.
func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "pipeline", "debug")
	logger.Info("dataset loaded", String("region", "narrow"), Int("rows", 200))

	output := buf.String()
	for _, want := range []string{"pipeline", "dataset loaded", "narrow", "200", "info"} {
		if !strings.Contains(output, want) {
			t.Errorf("output should contain %q, got: %s", want, output)
		}
	}
}

// TestZerologAdapter_Error tests the Error method.
func TestZerologAdapter_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains []string
	}{
		{"with error", errors.New("permission denied"), []string{"render failed", "permission denied", "error"}},
		{"with nil error", nil, []string{"render failed", "error"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewLogger(&buf, "chart", "debug").Error("render failed", tt.err, String("artifact", "area_vs_N.png"))
			output := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("output should contain %q, got: %s", want, output)
				}
			}
		})
	}
}

// TestZerologAdapter_Levels checks that debug entries honor the logger level.
func TestZerologAdapter_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologAdapter(zerolog.New(&buf).Level(zerolog.InfoLevel))

	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug entry should be filtered at info level, got: %s", buf.String())
	}

	logger.Warn("falling back to synthesis")
	if !strings.Contains(buf.String(), "warn") {
		t.Errorf("warn entry missing level, got: %s", buf.String())
	}
}

// TestZerologAdapter_PrintfPrintln tests the printf-style helpers.
func TestZerologAdapter_PrintfPrintln(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "test", "debug")

	logger.Printf("wrote %d rows to %s", 200, "wide_area_results.csv")
	logger.Println("scale", "log")

	output := buf.String()
	if !strings.Contains(output, "wrote 200 rows to wide_area_results.csv") {
		t.Errorf("Printf should format message, got: %s", output)
	}
	if !strings.Contains(output, "scale log") {
		t.Errorf("Println should join arguments, got: %s", output)
	}
}

// TestZerologAdapter_applyFields tests field application with all supported types.
func TestZerologAdapter_applyFields(t *testing.T) {
	tests := []struct {
		name     string
		field    Field
		contains string
	}{
		{"string field", Field{Key: "str", Value: "hello"}, "hello"},
		{"int field", Field{Key: "num", Value: 42}, "42"},
		{"int64 field", Field{Key: "big", Value: int64(9223372036854775807)}, "9223372036854775807"},
		{"uint64 field", Field{Key: "huge", Value: uint64(18446744073709551615)}, "18446744073709551615"},
		{"float64 field", Field{Key: "pi", Value: 3.14}, "3.14"},
		{"error field", Field{Key: "err", Value: errors.New("oops")}, "oops"},
		{"bool field", Field{Key: "flag", Value: true}, "true"},
		{"interface field", Field{Key: "data", Value: struct{ X int }{X: 1}}, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewLogger(&buf, "test", "debug").Info("test", tt.field)
			if !strings.Contains(buf.String(), tt.contains) {
				t.Errorf("applyFields should handle %s, output: %s", tt.name, buf.String())
			}
		})
	}
}

// TestNewConsoleLogger tests level parsing of the console logger.
func TestNewConsoleLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(&buf, "app", "warn", true)
	logger.Info("suppressed")
	if buf.Len() != 0 {
		t.Errorf("info should be suppressed at warn level, got: %s", buf.String())
	}
	logger.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("warn should be written, got: %s", buf.String())
	}

	buf.Reset()
	NewConsoleLogger(&buf, "app", "bogus", true).Info("default level")
	if !strings.Contains(buf.String(), "default level") {
		t.Errorf("unknown level should fall back to info, got: %s", buf.String())
	}
}

// TestLoggerInterface verifies the constructors implement the Logger interface.
func TestLoggerInterface(t *testing.T) {
	var buf bytes.Buffer
	var _ Logger = NewLogger(&buf, "test", "debug")
	var _ Logger = NewConsoleLogger(&buf, "test", "info", true)
	var _ Logger = Nop()
}

// TestNewLogger_Level verifies that the JSON logger honors its level.
func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "app", "warn")
	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Warn("shown", Uint64("seed", 7))

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Errorf("messages below warn should be dropped, got: %s", output)
	}
	if !strings.Contains(output, `"seed":7`) {
		t.Errorf("output should carry the seed field, got: %s", output)
	}
}
