package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/sleeptrack/internal/model"
)

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line block sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := seriesMinMaxSingle(values)
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkRunes[len(sparkRunes)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkRunes)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkRunes) {
			idx = len(sparkRunes) - 1
		}
		b.WriteRune(sparkRunes[idx])
	}
	return b.String()
}

// RenderSummary prints the aggregate summary for records.
func RenderSummary(w io.Writer, records []model.SleepRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No sleep records yet.")
		return err
	}
	s := Summarize(records)
	lines := formatTable(nil, [][]string{
		{"Records", fmt.Sprintf("%d", s.Count)},
		{"Avg Sleep Duration", FormatDuration(s.MeanDuration)},
		{"Avg Sleep Quality", FormatQuality(s.MeanQuality)},
		{"Longest", FormatDuration(s.Longest)},
		{"Shortest", FormatDuration(s.Shortest)},
	}, map[int]bool{1: true})
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderTrend prints the duration trend using the terminal width.
func RenderTrend(w io.Writer, records []model.SleepRecord, window int) error {
	return RenderTrendWithSize(w, records, window, 0, defaultPlotHeight, false)
}

// RenderTrendWithSize prints the duration trend sized to a given total width.
// A second series with the moving average is drawn when window > 1.
func RenderTrendWithSize(w io.Writer, records []model.SleepRecord, window, totalWidth, height int, useColor bool) error {
	points := TrendPoints(records)
	if len(points) == 0 {
		return nil
	}
	values := durations(points)
	series := []Series{{Name: "Duration", Values: values}}
	if window > 1 && len(values) > 1 {
		series = append(series, Series{
			Name:   fmt.Sprintf("Avg(%d)", window),
			Values: MovingAverage(values, window),
		})
	}
	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	if err := PlotSeriesWithColor(w, "Sleep Duration Trend", series, width, height, useColor); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s → %s\n", points[0].Date, points[len(points)-1].Date)
	return err
}
