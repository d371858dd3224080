package logging

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestFieldHelpers(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		key   string
		value any
	}{
		{"String", String("policy", "clamp"), "policy", "clamp"},
		{"Int", Int("threads", 4), "threads", 4},
		{"Int64", Int64("start", -7), "start", int64(-7)},
		{"Float64", Float64("progress", 0.5), "progress", 0.5},
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

	t.Run("Err uses error key", func(t *testing.T) {
		testErr := errors.New("worker failed")
		f := Err(testErr)
		if f.Key != "error" || f.Value != testErr {
			t.Errorf("Err() = %+v", f)
		}
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{" warn ", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewLogger_IncludesComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "reducer")
	logger.Info("partition planned", Int("threads", 4), Int64("chunk", 3))

	output := buf.String()
	for _, want := range []string{"reducer", "partition planned", `"threads":4`, `"chunk":3`} {
		if !strings.Contains(output, want) {
			t.Errorf("output should contain %q, got: %s", want, output)
		}
	}
}

func TestZerologAdapter_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologAdapter(zerolog.New(&buf).Level(zerolog.DebugLevel))

	logger.Debug("worker done", Int("worker", 2))
	logger.Error("computation aborted", errors.New("context canceled"), String("calculator", "parallel"))
	logger.Printf("result %d", 3628800)
	logger.Println("bye", 1)

	output := buf.String()
	for _, want := range []string{"debug", "worker done", "context canceled", "parallel", "result 3628800", "bye"} {
		if !strings.Contains(output, want) {
			t.Errorf("output should contain %q, got: %s", want, output)
		}
	}
}

func TestZerologAdapter_FieldTypes(t *testing.T) {
	tests := []struct {
		name     string
		field    Field
		contains string
	}{
		{"uint64", Field{Key: "huge", Value: uint64(18446744073709551615)}, "18446744073709551615"},
		{"int64", Field{Key: "product", Value: int64(-9223372036854775808)}, "-9223372036854775808"},
		{"error", Field{Key: "cause", Value: errors.New("oops")}, `"cause":"oops"`},
		{"bool", Field{Key: "clamped", Value: true}, "true"},
		{"struct", Field{Key: "interval", Value: struct{ Lo, Hi int }{1, 5}}, `"Hi":5`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewLogger(&buf, "test").Info("fields", tt.field)
			if !strings.Contains(buf.String(), tt.contains) {
				t.Errorf("expected %q in %s", tt.contains, buf.String())
			}
		})
	}
}

func TestConsoleLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(&buf, "app", zerolog.WarnLevel)
	logger.Info("hidden")
	logger.Error("shown", errors.New("bad"))

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Errorf("info entry should be filtered at warn level: %s", output)
	}
	if !strings.Contains(output, "shown") {
		t.Errorf("error entry should be logged: %s", output)
	}
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	logger.Info("nothing")
	logger.Error("nothing", errors.New("x"))
	logger.Debug("nothing")
}

func TestStdLoggerAdapter(t *testing.T) {
	tests := []struct {
		name     string
		log      func(Logger)
		contains []string
	}{
		{"info", func(l Logger) { l.Info("started", Int("threads", 2)) }, []string{"[INFO] started", "threads=2"}},
		{"error", func(l Logger) { l.Error("failed", errors.New("boom"), String("calc", "exact")) }, []string{"[ERROR] failed: boom", "calc=exact"}},
		{"debug", func(l Logger) { l.Debug("trace") }, []string{"[DEBUG] trace"}},
		{"printf", func(l Logger) { l.Printf("value is %d", 123) }, []string{"value is 123"}},
		{"println", func(l Logger) { l.Println("a", "b") }, []string{"a b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewStdLoggerAdapter(log.New(&buf, "", 0)))
			for _, want := range tt.contains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output should contain %q, got: %s", want, buf.String())
				}
			}
		})
	}
}

func TestLoggerInterface(t *testing.T) {
	var _ Logger = NewNopLogger()
	var _ Logger = NewStdLoggerAdapter(log.New(&bytes.Buffer{}, "", 0))
}
