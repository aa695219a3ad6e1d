package statsui

import (
	"strings"
	"testing"
)

func TestCompactBreakpoint(t *testing.T) {
	if !Compact(95) {
		t.Fatalf("95 columns (760px) should be compact")
	}
	if Compact(96) {
		t.Fatalf("96 columns (768px) should use the wide layout")
	}
	if !Compact(0) {
		t.Fatalf("zero width should be compact")
	}
}

func TestFitLines(t *testing.T) {
	out := FitLines("ab\ncdef\nx", 4, 2)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "ab  " || lines[1] != "cdef" {
		t.Fatalf("unexpected lines: %q", lines)
	}
}

func TestTruncateLine(t *testing.T) {
	if got := TruncateLine("Sleep History", 6); got != "Sleep…" {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if got := TruncateLine("short", 10); got != "short" {
		t.Fatalf("unexpected truncation: %q", got)
	}
}
