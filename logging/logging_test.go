package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestDefaultLoggerRoutesByLevel(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewWriterLogger(&out, &errOut, false)

	l.Info("hello", Fields{"b": 2, "a": 1})
	l.Warn("careful")
	l.Error(errors.New("boom"), "failed")

	if !strings.Contains(out.String(), "[INFO] hello {a=1 b=2}") {
		t.Fatalf("stdout=%q", out.String())
	}
	if strings.Contains(out.String(), "careful") {
		t.Fatalf("warn leaked to stdout: %q", out.String())
	}
	if !strings.Contains(errOut.String(), "[WARN] careful") {
		t.Fatalf("stderr=%q", errOut.String())
	}
	if !strings.Contains(errOut.String(), "[ERROR] failed: boom") {
		t.Fatalf("stderr=%q", errOut.String())
	}
}

func TestDefaultLoggerLevelFilter(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewWriterLogger(&out, &errOut, false)

	l.Debug("hidden")
	if out.Len() != 0 {
		t.Fatalf("debug printed at info level: %q", out.String())
	}

	l.SetLevel(DebugLevel)
	l.Debug("shown")
	if !strings.Contains(out.String(), "[DEBUG] shown") {
		t.Fatalf("stdout=%q", out.String())
	}
}

func TestWithFieldsDoesNotMutateParent(t *testing.T) {
	var out bytes.Buffer
	parent := NewWriterLogger(&out, &out, false)
	child := parent.WithFields(Fields{"component": "child"})

	parent.Info("p")
	child.Info("c")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines=%d want=2", len(lines))
	}
	if strings.Contains(lines[0], "component") {
		t.Fatalf("parent carries child fields: %q", lines[0])
	}
	if !strings.Contains(lines[1], "component=child") {
		t.Fatalf("child line=%q", lines[1])
	}
}

func TestWithContextFields(t *testing.T) {
	var out bytes.Buffer
	l := NewWriterLogger(&out, &out, false)

	ctx := ContextWithFields(context.Background(), Fields{"run_id": "abc"})
	ctx = ContextWithFields(ctx, Fields{"file": "x.csv"})
	l.WithContext(ctx).Info("run")

	got := out.String()
	if !strings.Contains(got, "file=x.csv") || !strings.Contains(got, "run_id=abc") {
		t.Fatalf("context fields missing: %q", got)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		ok   bool
	}{
		{"debug", DebugLevel, true},
		{"WARN", WarnLevel, true},
		{" error ", ErrorLevel, true},
		{"", InfoLevel, true},
		{"verbose", InfoLevel, false},
	}
	for _, tt := range tests {
		got, ok := ParseLevel(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("ParseLevel(%q)=(%v,%v) want=(%v,%v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSetGlobalLoggerNil(t *testing.T) {
	prev := GetGlobalLogger()
	defer SetGlobalLogger(prev)

	SetGlobalLogger(nil)
	if _, ok := GetGlobalLogger().(*NoOpLogger); !ok {
		t.Fatalf("nil logger should install NoOpLogger, got %T", GetGlobalLogger())
	}
}
