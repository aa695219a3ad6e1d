// Package stars renders the twinkling night-sky backdrop.
package stars

import (
	"math"
	"math/rand"
	"strings"
	"time"
)

// Star is one point of the sky. X and Y are cell coordinates.
type Star struct {
	X     int
	Y     int
	Alpha float64
}

// Field is a fixed set of stars laid out on a width x height grid.
type Field struct {
	rnd    *rand.Rand
	count  int
	width  int
	height int
	stars  []Star
}

var glyphs = []rune{' ', '.', ':', '+', '*', '✦'}

// New returns a Field of count stars seeded with the current time.
func New(count int) *Field {
	return NewWithSeed(count, time.Now().UnixNano())
}

// NewWithSeed returns a Field with a deterministic layout.
func NewWithSeed(count int, seed int64) *Field {
	return &Field{rnd: rand.New(rand.NewSource(seed)), count: count}
}

// Resize scatters the stars over a new grid. Unchanged sizes keep the layout.
func (f *Field) Resize(width, height int) {
	if width == f.width && height == f.height && f.stars != nil {
		return
	}
	f.width = width
	f.height = height
	f.stars = f.stars[:0]
	if width <= 0 || height <= 0 {
		return
	}
	for i := 0; i < f.count; i++ {
		f.stars = append(f.stars, Star{
			X:     f.rnd.Intn(width),
			Y:     f.rnd.Intn(height),
			Alpha: f.rnd.Float64(),
		})
	}
}

// Twinkle sets every star's brightness for the instant now.
func (f *Field) Twinkle(now time.Time) {
	t := float64(now.UnixMilli()) * 0.001
	for i := range f.stars {
		f.stars[i].Alpha = math.Abs(math.Sin(t + float64(f.stars[i].X)))
	}
}

// Render draws the sky as height lines of width cells.
func (f *Field) Render() string {
	if f.width <= 0 || f.height <= 0 {
		return ""
	}
	grid := make([][]int, f.height)
	for y := range grid {
		grid[y] = make([]int, f.width)
	}
	for _, s := range f.stars {
		if g := glyphIndex(s.Alpha); g > grid[s.Y][s.X] {
			grid[s.Y][s.X] = g
		}
	}
	lines := make([]string, f.height)
	var b strings.Builder
	for y, row := range grid {
		b.Reset()
		for _, g := range row {
			b.WriteRune(glyphs[g])
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}

// glyphIndex maps brightness to a glyph, brighter stars to later entries.
func glyphIndex(alpha float64) int {
	if alpha <= 0 {
		return 0
	}
	idx := int(math.Ceil(alpha * float64(len(glyphs)-1)))
	if idx >= len(glyphs) {
		idx = len(glyphs) - 1
	}
	return idx
}
