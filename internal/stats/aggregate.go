// Package stats contains sleep aggregation, formatting and trend rendering.
package stats

import "github.com/verte-zerg/sleeptrack/internal/model"

// Summary holds aggregates over a record snapshot.
type Summary struct {
	Count        int
	MeanDuration float64
	MeanQuality  float64
	Longest      float64
	Shortest     float64
}

// Summarize computes aggregates over records. All values are 0 for an empty
// snapshot.
func Summarize(records []model.SleepRecord) Summary {
	if len(records) == 0 {
		return Summary{}
	}
	s := Summary{
		Count:        len(records),
		MeanDuration: MeanDuration(records),
		MeanQuality:  MeanQuality(records),
		Longest:      records[0].Duration,
		Shortest:     records[0].Duration,
	}
	for _, r := range records[1:] {
		if r.Duration > s.Longest {
			s.Longest = r.Duration
		}
		if r.Duration < s.Shortest {
			s.Shortest = r.Duration
		}
	}
	return s
}

// MeanDuration returns the average duration in hours, or 0 with no records.
func MeanDuration(records []model.SleepRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	var total float64
	for _, r := range records {
		total += r.Duration
	}
	return total / float64(len(records))
}

// MeanQuality returns the average quality level, or 0 with no records.
func MeanQuality(records []model.SleepRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	total := 0
	for _, r := range records {
		total += int(r.SleepQuality)
	}
	return float64(total) / float64(len(records))
}

// TrendPoint is one (date, duration) sample of the duration trend.
type TrendPoint struct {
	Date     string
	Duration float64
}

// TrendPoints returns the chart input in store order.
func TrendPoints(records []model.SleepRecord) []TrendPoint {
	points := make([]TrendPoint, len(records))
	for i, r := range records {
		points[i] = TrendPoint{Date: r.Date, Duration: r.Duration}
	}
	return points
}

func durations(points []TrendPoint) []float64 {
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Duration
	}
	return values
}
