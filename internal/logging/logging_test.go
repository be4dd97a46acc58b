package logging

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func TestVerbosityControlsLevel(t *testing.T) {
	t.Cleanup(func() { SetVerbosity(0) })

	tests := []struct {
		count int
		want  string
	}{
		{-3, "warn"},
		{0, "warn"},
		{1, "info"},
		{2, "debug"},
		{3, "trace"},
		{9, "trace"},
	}
	for _, tt := range tests {
		SetVerbosity(tt.count)
		if got := LevelName(); got != tt.want {
			t.Fatalf("SetVerbosity(%d) level = %q, want %q", tt.count, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	if _, count, err := ParseLevel("Debug"); err != nil || count != 2 {
		t.Fatalf("ParseLevel(Debug) = %d, %v", count, err)
	}
	if _, _, err := ParseLevel("loud"); err == nil {
		t.Fatal("ParseLevel(loud) expected error")
	}
}

func TestComponentLoggerFiltersAndTags(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Writer()
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(prev)
		SetVerbosity(0)
	})

	SetVerbosity(0)
	l := For("parser")
	l.Debugf("hidden %d", 1)
	l.Warnf("shown %d", 2)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line printed at warn level: %q", out)
	}
	if !strings.Contains(out, "[WARN] parser: shown 2") {
		t.Fatalf("missing tagged warn line: %q", out)
	}
}
