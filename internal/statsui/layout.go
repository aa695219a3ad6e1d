// Package statsui renders the sleep history and stats views.
package statsui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	// BreakpointPx is the viewport width below which the compact layout is used.
	BreakpointPx = 768
	// CellWidthPx is the logical pixel width assumed for one terminal cell.
	CellWidthPx = 8
)

// Compact reports whether a terminal of width cells is below the breakpoint.
func Compact(width int) bool {
	return width*CellWidthPx < BreakpointPx
}

// FormatClock renders a time of day in local time.
func FormatClock(t time.Time, clock24h bool) string {
	if clock24h {
		return t.Local().Format("15:04:05")
	}
	return t.Local().Format("3:04:05 PM")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

// FitLines pads or clips s to exactly width x height cells.
func FitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

// TruncateLine shortens plain text to width cells with an ellipsis.
func TruncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
