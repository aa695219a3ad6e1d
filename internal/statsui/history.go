package statsui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/sleeptrack/internal/model"
	"github.com/verte-zerg/sleeptrack/internal/stats"
)

const emptyHistory = "No sleep records yet. Start one from the Record Sleep tab."

var (
	dateStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#B5F28B")).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	detailStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#D0D0D0"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#D946EF")).Bold(true)
	itemStyle     = lipgloss.NewStyle().PaddingLeft(2)
)

// History shows the record snapshot as a table, or as a collapsible list in
// the compact layout. It keeps a cursor used as the delete position.
type History struct {
	records  []model.SleepRecord
	cursor   int
	expanded map[string]bool
	table    table.Model
	clock24h bool

	width  int
	height int
}

// NewHistory returns an empty history view.
func NewHistory(clock24h bool) *History {
	h := &History{
		expanded: map[string]bool{},
		clock24h: clock24h,
	}
	h.table = table.New(
		table.WithColumns(historyColumns(clock24h)),
		table.WithFocused(true),
	)
	h.table.SetStyles(historyTableStyles())
	return h
}

// SetRecords replaces the snapshot. Expansion state of removed records is
// dropped and the cursor is kept inside the sequence.
func (h *History) SetRecords(records []model.SleepRecord) {
	h.records = records
	live := make(map[string]bool, len(records))
	for _, r := range records {
		live[r.ID] = true
	}
	for id := range h.expanded {
		if !live[id] {
			delete(h.expanded, id)
		}
	}
	h.clampCursor()
	h.table.SetRows(historyRows(records, h.clock24h))
	h.syncTable()
}

// SetSize updates the available area.
func (h *History) SetSize(width, height int) {
	h.width = width
	h.height = height
	h.table.SetWidth(width)
	h.table.SetHeight(maxInt(1, height-1))
	h.syncTable()
}

// Len returns the number of records shown.
func (h *History) Len() int { return len(h.records) }

// Selected returns the cursor position, or false when there are no records.
func (h *History) Selected() (int, bool) {
	if len(h.records) == 0 {
		return 0, false
	}
	return h.cursor, true
}

// MoveCursor moves the selection by delta rows, clamped to the sequence.
// The table is stepped one row at a time so its viewport follows the cursor.
func (h *History) MoveCursor(delta int) {
	if len(h.records) == 0 {
		return
	}
	for ; delta > 0; delta-- {
		h.table.MoveDown(1)
	}
	for ; delta < 0; delta++ {
		h.table.MoveUp(1)
	}
	h.cursor = h.table.Cursor()
}

// ToggleExpanded opens or closes the selected list item.
func (h *History) ToggleExpanded() {
	if len(h.records) == 0 {
		return
	}
	id := h.records[h.cursor].ID
	if h.expanded[id] {
		delete(h.expanded, id)
		return
	}
	h.expanded[id] = true
}

// Expanded reports whether the record at position is expanded.
func (h *History) Expanded(position int) bool {
	if position < 0 || position >= len(h.records) {
		return false
	}
	return h.expanded[h.records[position].ID]
}

// View renders the table or the list depending on the width.
func (h *History) View() string {
	if len(h.records) == 0 {
		return mutedStyle.Render(emptyHistory)
	}
	if Compact(h.width) {
		return h.listView()
	}
	return h.table.View()
}

// syncTable scrolls the table from the top down to h.cursor. SetCursor alone
// leaves the table viewport where it was.
func (h *History) syncTable() {
	if len(h.records) == 0 {
		return
	}
	h.table.SetCursor(0)
	h.table.GotoTop()
	for i := 0; i < h.cursor; i++ {
		h.table.MoveDown(1)
	}
}

func (h *History) clampCursor() {
	if h.cursor >= len(h.records) {
		h.cursor = len(h.records) - 1
	}
	if h.cursor < 0 {
		h.cursor = 0
	}
}

func (h *History) listView() string {
	var lines []string
	focusStart, focusEnd := 0, 0
	for i, r := range h.records {
		if i == h.cursor {
			focusStart = len(lines)
		}
		lines = append(lines, h.listHeader(i, r))
		if h.Expanded(i) {
			for _, row := range stats.FormatRows(detailRows(r, h.clock24h), map[int]bool{1: true}) {
				lines = append(lines, itemStyle.Render(detailStyle.Render(row)))
			}
		}
		if i == h.cursor {
			focusEnd = len(lines)
		}
	}
	return strings.Join(visibleWindow(lines, focusStart, focusEnd, h.height), "\n")
}

func (h *History) listHeader(i int, r model.SleepRecord) string {
	marker := "  "
	if i == h.cursor {
		marker = selectedStyle.Render("› ")
	}
	chevron := "▸"
	if h.Expanded(i) {
		chevron = "▾"
	}
	summary := mutedStyle.Render(fmt.Sprintf("%s  %d/3", stats.FormatDuration(r.Duration), r.SleepQuality))
	line := fmt.Sprintf("%s%s %s  %s", marker, dateStyle.Render(r.Date), chevron, summary)
	if h.width > 0 && lipgloss.Width(line) > h.width {
		line = marker + dateStyle.Render(r.Date) + " " + chevron
	}
	return line
}

func detailRows(r model.SleepRecord, clock24h bool) [][]string {
	return [][]string{
		{"Sleep Time:", FormatClock(r.SleepTime, clock24h)},
		{"Wake Time:", FormatClock(r.WakeTime, clock24h)},
		{"Duration:", stats.FormatDuration(r.Duration)},
		{"Quality:", fmt.Sprintf("%d/3", r.SleepQuality)},
	}
}

// visibleWindow returns at most height lines that include [start, end).
func visibleWindow(lines []string, start, end, height int) []string {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	offset := 0
	if end > height {
		offset = end - height
	}
	if start < offset {
		offset = start
	}
	last := offset + height
	if last > len(lines) {
		last = len(lines)
	}
	return lines[offset:last]
}

func historyColumns(clock24h bool) []table.Column {
	timeWidth := 11
	if clock24h {
		timeWidth = 8
	}
	return []table.Column{
		{Title: "Date", Width: 10},
		{Title: "Sleep Time", Width: maxInt(timeWidth, 10)},
		{Title: "Wake Time", Width: maxInt(timeWidth, 9)},
		{Title: "Duration", Width: 8},
		{Title: "Quality", Width: 7},
	}
}

func historyRows(records []model.SleepRecord, clock24h bool) []table.Row {
	rows := make([]table.Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, table.Row{
			r.Date,
			FormatClock(r.SleepTime, clock24h),
			FormatClock(r.WakeTime, clock24h),
			stats.FormatDuration(r.Duration),
			fmt.Sprintf("%d/3", r.SleepQuality),
		})
	}
	return rows
}

func historyTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Foreground(lipgloss.Color("#B5F28B")).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#D946EF")).
		Bold(true)
	return styles
}
