package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestWithPrefixInheritsLevelAndDestination(t *testing.T) {
	var buf bytes.Buffer
	parent := New(LevelWarn)
	parent.SetOutput(&buf)

	child := parent.WithPrefix("child")
	child.Info("below threshold")
	child.Warn("tagged line")

	out := buf.String()
	if strings.Contains(out, "below threshold") {
		t.Errorf("child logged below the inherited level:\n%s", out)
	}
	if !strings.Contains(out, "child: tagged line") {
		t.Errorf("child line missing prefix or destination:\n%s", out)
	}
}

func TestWithPrefixIsolatedFromLaterSetOutput(t *testing.T) {
	var parentBuf, childBuf bytes.Buffer
	parent := New(LevelInfo)
	parent.SetOutput(&parentBuf)

	child := parent.WithPrefix("child")
	child.SetOutput(&childBuf)

	parent.Info("parent line")
	child.Info("child line")

	if strings.Contains(parentBuf.String(), "child line") {
		t.Errorf("child write reached the parent destination:\n%s", parentBuf.String())
	}
	if strings.Contains(childBuf.String(), "parent line") {
		t.Errorf("parent write reached the child destination:\n%s", childBuf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"warn", LevelWarn},
		{"WARNING", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"bogus", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
