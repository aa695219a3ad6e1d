package statsui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/sleeptrack/internal/model"
	"github.com/verte-zerg/sleeptrack/internal/stats"
)

const (
	plotHeight    = 8
	maxTrendWidth = 120
)

var (
	cardStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	sectionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#D946EF")).Bold(true)
)

// Stats is the scrollable analytics view.
type Stats struct {
	vp      viewport.Model
	records []model.SleepRecord
	window  int
	width   int
}

// NewStats returns a stats view using window for the moving average.
func NewStats(window int) *Stats {
	if window < 1 {
		window = 1
	}
	return &Stats{vp: viewport.New(0, 0), window: window}
}

// SetRecords replaces the snapshot and re-renders.
func (s *Stats) SetRecords(records []model.SleepRecord) {
	s.records = records
	s.render()
}

// SetSize updates the available area and re-renders.
func (s *Stats) SetSize(width, height int) {
	s.width = width
	s.vp.Width = width
	s.vp.Height = maxInt(1, height)
	s.render()
}

// Window returns the moving-average window.
func (s *Stats) Window() int { return s.window }

// WidenWindow and NarrowWindow step the moving-average window.
func (s *Stats) WidenWindow() {
	s.window++
	s.render()
}

// NarrowWindow shrinks the moving-average window, never below 1.
func (s *Stats) NarrowWindow() {
	if s.window > 1 {
		s.window--
		s.render()
	}
}

// Update forwards scrolling keys to the viewport.
func (s *Stats) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.vp, cmd = s.vp.Update(msg)
	return cmd
}

// View renders the visible part of the stats content.
func (s *Stats) View() string {
	return s.vp.View()
}

func (s *Stats) render() {
	width := s.width
	if width <= 0 {
		width = 80
	}
	s.vp.SetContent(RenderStats(s.records, s.window, width))
}

// RenderStats renders summary cards and the duration trend.
func RenderStats(records []model.SleepRecord, window, width int) string {
	if len(records) == 0 {
		return mutedStyle.Render("No sleep records yet. Stats appear after your first session.")
	}
	compact := Compact(width)
	parts := []string{
		sectionStyle.Render("Sleep Analytics"),
		renderSummaryCards(stats.Summarize(records), compact),
		"",
		renderTrend(records, window, width, compact),
	}
	return strings.TrimRight(strings.Join(parts, "\n"), "\n")
}

func renderSummaryCards(s stats.Summary, compact bool) string {
	cards := []string{
		metricCard("Avg Sleep Duration", stats.FormatDuration(s.MeanDuration)),
		metricCard("Avg Sleep Quality", stats.FormatQuality(s.MeanQuality)),
		metricCard("Records", fmt.Sprintf("%d", s.Count)),
		metricCard("Longest", stats.FormatDuration(s.Longest)),
		metricCard("Shortest", stats.FormatDuration(s.Shortest)),
	}
	if compact {
		row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1])
		return lipgloss.JoinVertical(lipgloss.Left, row1, cards[2], cards[3], cards[4])
	}
	row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
	row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4])
	return lipgloss.JoinVertical(lipgloss.Left, row1, row2)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func renderTrend(records []model.SleepRecord, window, width int, compact bool) string {
	header := mutedStyle.Render(fmt.Sprintf("Trend window: %d (-/=)", window))
	if compact {
		values := make([]float64, len(records))
		for i, r := range records {
			values[i] = r.Duration
		}
		values = stats.MovingAverage(values, window)
		spark := TruncateLine(stats.Sparkline(values), maxInt(1, width-2))
		first, last := records[0].Date, records[len(records)-1].Date
		return strings.Join([]string{
			sectionStyle.Render("Sleep Duration Trend"),
			header,
			spark,
			mutedStyle.Render(fmt.Sprintf("%s → %s", first, last)),
		}, "\n")
	}
	if width > maxTrendWidth {
		width = maxTrendWidth
	}
	var buf bytes.Buffer
	if err := stats.RenderTrendWithSize(&buf, records, window, width, plotHeight, true); err != nil {
		return fmt.Sprintf("Failed to render trend: %v", err)
	}
	return header + "\n" + strings.TrimRight(buf.String(), "\n")
}
