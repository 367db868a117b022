package common

import (
	"bytes"
	"strings"
	"testing"
)

func TestStdLoggerLevels(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewStdLoggerWithWriter(&out, &errOut, SeverityInfo)

	l.Debugf("dropped %d", 1)
	l.Infof("kept %d", 2)
	l.Warningf("warned %d", 3)
	l.Errorf("failed %d", 4)

	if strings.Contains(out.String(), "dropped") {
		t.Errorf("debug message should be filtered below min level, got %q", out.String())
	}
	if !strings.Contains(out.String(), "INFO: kept 2") {
		t.Errorf("info message missing from stdout, got %q", out.String())
	}
	if !strings.Contains(errOut.String(), "WARNING: warned 3") {
		t.Errorf("warning message missing from stderr, got %q", errOut.String())
	}
	if !strings.Contains(errOut.String(), "ERROR: failed 4") {
		t.Errorf("error message missing from stderr, got %q", errOut.String())
	}
}

func TestSeverityString(t *testing.T) {
	tests := []struct {
		sev  Severity
		want string
	}{
		{SeverityDebug, "DEBUG"},
		{SeverityInfo, "INFO"},
		{SeverityWarning, "WARNING"},
		{SeverityError, "ERROR"},
		{Severity(42), "UNKNOWN"},
	}
	for _, tc := range tests {
		if got := tc.sev.String(); got != tc.want {
			t.Errorf("Severity(%d).String() = %q, want %q", tc.sev, got, tc.want)
		}
	}
}

func TestNoOpLogger(t *testing.T) {
	// Must be safe to call with no destination configured.
	l := NewNoOpLogger()
	l.Logf(SeverityError, "ignored")
	l.Debugf("ignored")
	l.Infof("ignored")
	l.Warningf("ignored")
	l.Errorf("ignored")
}
