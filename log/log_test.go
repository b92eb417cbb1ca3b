package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	WithColors = false
	defer func() {
		SetOutput(os.Stderr)
		SetLogLevel(INFO)
		WithColors = true
	}()

	tests := []struct {
		name    string
		level   int
		logf    func(format string, args ...interface{})
		written bool
	}{
		{"debug-hidden-at-info", INFO, Debug, false},
		{"info-shown-at-info", INFO, Info, true},
		{"debug-shown-at-debug", DEBUG, Debug, true},
		{"warning-hidden-at-error", ERROR, Warning, false},
		{"error-shown-at-error", ERROR, Error, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			buf.Reset()
			SetLogLevel(test.level)
			test.logf("attribute %d", 42)

			if got := buf.Len() > 0; got != test.written {
				t.Errorf("written = %v, want %v (%q)", got, test.written, buf.String())
			}
			if test.written && !strings.HasSuffix(buf.String(), "attribute 42\n") {
				t.Errorf("unexpected line: %q", buf.String())
			}
		})
	}
}

func TestEnabled(t *testing.T) {
	defer SetLogLevel(INFO)

	SetLogLevel(WARNING)
	if Enabled(INFO) {
		t.Error("INFO should be disabled at WARNING level")
	}
	if !Enabled(ERROR) {
		t.Error("ERROR should be enabled at WARNING level")
	}
}
