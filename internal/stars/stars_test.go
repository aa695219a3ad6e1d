package stars

import (
	"math"
	"strings"
	"testing"
	"time"
)

func TestRenderDimensions(t *testing.T) {
	f := NewWithSeed(20, 1)
	f.Resize(30, 3)
	out := f.Render()
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if n := len([]rune(line)); n != 30 {
			t.Fatalf("line %d: expected 30 cells, got %d", i, n)
		}
	}
}

func TestResizeSameSizeKeepsLayout(t *testing.T) {
	f := NewWithSeed(10, 7)
	f.Resize(40, 4)
	before := append([]Star(nil), f.stars...)
	f.Resize(40, 4)
	after := f.stars
	for i := range before {
		if before[i].X != after[i].X || before[i].Y != after[i].Y {
			t.Fatalf("star %d moved on same-size resize", i)
		}
	}
}

func TestTwinkleFollowsSine(t *testing.T) {
	f := NewWithSeed(5, 3)
	f.Resize(10, 2)
	now := time.UnixMilli(123456)
	f.Twinkle(now)
	for _, s := range f.stars {
		want := math.Abs(math.Sin(123.456 + float64(s.X)))
		if math.Abs(s.Alpha-want) > 1e-9 {
			t.Fatalf("alpha %.6f, want %.6f", s.Alpha, want)
		}
		if s.Alpha < 0 || s.Alpha > 1 {
			t.Fatalf("alpha out of range: %f", s.Alpha)
		}
	}
}

func TestRenderZeroSize(t *testing.T) {
	f := NewWithSeed(5, 3)
	f.Resize(0, 0)
	if out := f.Render(); out != "" {
		t.Fatalf("expected empty render, got %q", out)
	}
}
