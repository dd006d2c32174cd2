package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestDefaultLogger_RespectsVerboseLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewDefaultLogger(&buf, false)
	l.Debug("should not appear")
	if buf.Len() != 0 {
		t.Fatalf("expected no output at Info level, got %q", buf.String())
	}

	l.Info("should appear")
	if !strings.Contains(buf.String(), "should appear") {
		t.Fatalf("expected Info output, got %q", buf.String())
	}
}

func TestDefaultLogger_VerboseEnablesDebug(t *testing.T) {
	var buf bytes.Buffer
	l := NewDefaultLogger(&buf, true)
	l.Debug("debug line")
	if !strings.Contains(buf.String(), "debug line") {
		t.Fatalf("expected Debug output when verbose, got %q", buf.String())
	}
}

func TestNopLogger_SatisfiesInterface(t *testing.T) {
	var l Logger = NopLogger{}
	l.Info("x")
	l.Debugf("%d", 1)
	l.Warn("y")
	l.Errorf("%s", "z")
}
