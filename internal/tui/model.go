// Package tui provides the Bubble Tea sleep tracker interface.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/verte-zerg/sleeptrack/internal/model"
	"github.com/verte-zerg/sleeptrack/internal/session"
	"github.com/verte-zerg/sleeptrack/internal/stars"
	"github.com/verte-zerg/sleeptrack/internal/stats"
	"github.com/verte-zerg/sleeptrack/internal/statsui"
)

// RecordStore is the record sequence the UI reads and mutates.
type RecordStore interface {
	session.Recorder
	DeleteAt(ctx context.Context, position int) error
	Snapshot(ctx context.Context) ([]model.SleepRecord, error)
}

type tab int

const (
	tabRecord tab = iota
	tabStats
	tabHistory
	tabCount
)

const (
	appTitle      = "Sleep Tracker"
	starCount     = 40
	maxProgress   = 60
	headerHeight  = 1
	footerHeight  = 2
	skyHeightWide = 3
)

type (
	clockTickMsg   time.Time
	sessionTickMsg struct{ gen int }
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#D946EF")).Bold(true)
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	skyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#E8E3B0"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	elapsedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	optionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
)

// Model is the root Bubble Tea model. It owns the session controller and
// re-reads the record store after every mutation.
type Model struct {
	cfg   model.Config
	store RecordStore
	ctrl  *session.Controller
	log   *zap.SugaredLogger

	keys     keyMap
	help     help.Model
	progress progress.Model
	sky      *stars.Field
	history  *statsui.History
	stats    *statsui.Stats

	activeTab tab
	records   []model.SleepRecord
	clockNow  time.Time
	errMsg    string

	width  int
	height int
}

// NewModel constructs the tracker UI. Extra options are passed to the
// session controller.
func NewModel(cfg model.Config, st RecordStore, log *zap.SugaredLogger, opts ...session.Option) *Model {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	ctrlOpts := append([]session.Option{session.WithUTCDates(cfg.UTCDates)}, opts...)
	m := &Model{
		cfg:      cfg,
		store:    st,
		ctrl:     session.NewController(st, cfg.DefaultQuality, ctrlOpts...),
		log:      log,
		keys:     defaultKeyMap(),
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		sky:      stars.New(starCount),
		history:  statsui.NewHistory(cfg.Clock24h),
		stats:    statsui.NewStats(cfg.TrendWindow),
		clockNow: time.Now(),
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return clockTick()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case clockTickMsg:
		m.clockNow = time.Time(msg)
		m.sky.Twinkle(m.clockNow)
		return m, clockTick()
	case sessionTickMsg:
		if m.ctrl.Tick(msg.gen) {
			return m, sessionTick(msg.gen)
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	bodyHeight := m.bodyHeight()
	parts := []string{
		statsui.FitLines(m.renderHeader(), m.width, headerHeight),
		statsui.FitLines(skyStyle.Render(m.sky.Render()), m.width, m.skyHeight()),
		statsui.FitLines(m.renderTabs(), m.width, m.tabsHeight()),
		statsui.FitLines(m.renderBody(bodyHeight), m.width, bodyHeight),
		statsui.FitLines(m.renderFooter(), m.width, footerHeight),
	}
	return strings.Join(parts, "\n")
}

// State exposes the current session state.
func (m *Model) State() model.SessionState {
	return m.ctrl.State()
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.NextTab):
		m.moveTab(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevTab):
		m.moveTab(-1)
		return m, nil
	}
	switch m.activeTab {
	case tabRecord:
		return m, m.handleRecordKey(msg)
	case tabStats:
		return m, m.handleStatsKey(msg)
	case tabHistory:
		m.handleHistoryKey(msg)
	}
	return m, nil
}

func (m *Model) handleRecordKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Toggle):
		if m.ctrl.State().Sleeping() {
			m.stopSession()
			return nil
		}
		if m.ctrl.Start() {
			m.errMsg = ""
			m.log.Infow("sleep session started", "start", m.ctrl.State().StartTime)
			return sessionTick(m.ctrl.Generation())
		}
	case key.Matches(msg, m.keys.Quality):
		m.selectQuality(model.Quality(msg.Runes[0] - '0'))
	case key.Matches(msg, m.keys.Up):
		m.selectQuality(m.ctrl.State().SelectedQuality + 1)
	case key.Matches(msg, m.keys.Down):
		m.selectQuality(m.ctrl.State().SelectedQuality - 1)
	}
	return nil
}

func (m *Model) selectQuality(q model.Quality) {
	if m.ctrl.SetQuality(q) {
		m.log.Debugw("quality selected", "quality", int(q))
	}
}

func (m *Model) stopSession() {
	rec, ok, err := m.ctrl.Stop(context.Background())
	if err != nil {
		m.fail("save sleep record", err)
		return
	}
	if !ok {
		return
	}
	m.errMsg = ""
	m.log.Infow("sleep session recorded",
		"id", rec.ID,
		"date", rec.Date,
		"duration", rec.Duration,
		"quality", int(rec.SleepQuality),
	)
	m.refresh()
}

func (m *Model) handleStatsKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Narrow):
		m.stats.NarrowWindow()
		m.log.Debugw("trend window changed", "window", m.stats.Window())
		return nil
	case key.Matches(msg, m.keys.Widen):
		m.stats.WidenWindow()
		m.log.Debugw("trend window changed", "window", m.stats.Window())
		return nil
	}
	return m.stats.Update(msg)
}

func (m *Model) handleHistoryKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.history.MoveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.history.MoveCursor(1)
	case key.Matches(msg, m.keys.Expand):
		m.history.ToggleExpanded()
	case key.Matches(msg, m.keys.Delete):
		pos, ok := m.history.Selected()
		if !ok {
			return
		}
		if err := m.store.DeleteAt(context.Background(), pos); err != nil {
			m.fail("delete sleep record", err)
			return
		}
		m.errMsg = ""
		m.log.Infow("sleep record deleted", "position", pos)
		m.refresh()
	}
}

func (m *Model) refresh() {
	records, err := m.store.Snapshot(context.Background())
	if err != nil {
		m.fail("load sleep records", err)
		return
	}
	m.records = records
	m.history.SetRecords(records)
	m.stats.SetRecords(records)
}

func (m *Model) fail(action string, err error) {
	m.log.Errorw("operation failed", "action", action, "error", err)
	m.errMsg = fmt.Sprintf("failed to %s: %v", action, err)
}

func (m *Model) moveTab(delta int) {
	next := (int(m.activeTab) + delta) % int(tabCount)
	if next < 0 {
		next += int(tabCount)
	}
	m.activeTab = tab(next)
}

func (m *Model) compact() bool {
	return statsui.Compact(m.width)
}

func (m *Model) skyHeight() int {
	if m.compact() {
		return skyHeightWide - 1
	}
	return skyHeightWide
}

func (m *Model) tabsHeight() int {
	h := lipgloss.Height(activeNavStyle.Render("X"))
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) bodyHeight() int {
	h := m.height - headerHeight - m.skyHeight() - m.tabsHeight() - footerHeight
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) updateLayout() {
	bodyHeight := m.bodyHeight()
	m.sky.Resize(m.width, m.skyHeight())
	m.sky.Twinkle(m.clockNow)
	m.help.Width = m.width
	m.progress.Width = minInt(maxProgress, maxInt(10, m.width-4))
	m.history.SetSize(m.width, bodyHeight)
	m.stats.SetSize(m.width, bodyHeight)
}

func (m *Model) tabNames() []string {
	names := []string{"Record Sleep", "Sleep Stats", "Sleep History"}
	if m.compact() {
		names = []string{"Record", "Stats", "History"}
	}
	if n := m.history.Len(); n > 0 {
		names[tabHistory] = fmt.Sprintf("%s (%d)", names[tabHistory], n)
	}
	return names
}

func (m *Model) renderTabs() string {
	names := m.tabNames()
	parts := make([]string, 0, len(names))
	for i, name := range names {
		if tab(i) == m.activeTab {
			parts = append(parts, activeNavStyle.Render(name))
		} else {
			parts = append(parts, inactiveNavStyle.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	title := titleStyle.Render(appTitle)
	clock := headerStyle.Render(headerClock(m.clockNow, m.cfg.Clock24h))
	gap := m.width - lipgloss.Width(title) - lipgloss.Width(clock)
	if gap < 1 {
		return clock
	}
	return title + strings.Repeat(" ", gap) + clock
}

func (m *Model) renderBody(height int) string {
	switch m.activeTab {
	case tabStats:
		return m.stats.View()
	case tabHistory:
		return m.history.View()
	}
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, m.renderRecord())
}

func (m *Model) renderRecord() string {
	state := m.ctrl.State()
	if state.Sleeping() {
		fraction := float64(state.ElapsedSeconds%3600) / 3600
		lines := []string{
			labelStyle.Render("Sleeping since " + statsui.FormatClock(state.StartTime, m.cfg.Clock24h)),
			"",
			elapsedStyle.Render(stats.FormatElapsed(state.ElapsedSeconds)),
			m.progress.ViewAs(fraction),
			"",
			labelStyle.Render(fmt.Sprintf("Quality: %d/3 %s", state.SelectedQuality, state.SelectedQuality.Label())),
			labelStyle.Render("Press enter to wake up"),
		}
		return lipgloss.JoinVertical(lipgloss.Center, lines...)
	}

	options := make([]string, 0, len(model.Qualities))
	for i := len(model.Qualities) - 1; i >= 0; i-- {
		q := model.Qualities[i]
		label := fmt.Sprintf("%d  %s", q, q.Label())
		if q == state.SelectedQuality {
			options = append(options, selectedStyle.Render("› "+label))
		} else {
			options = append(options, optionStyle.Render("  "+label))
		}
	}
	lines := []string{labelStyle.Render("Sleep quality"), lipgloss.JoinVertical(lipgloss.Left, options...), ""}
	if n := len(m.records); n > 0 {
		last := m.records[n-1]
		lines = append(lines, labelStyle.Render(fmt.Sprintf("Last night: %s on %s", stats.FormatDuration(last.Duration), last.Date)))
	}
	lines = append(lines, labelStyle.Render("Press enter to start sleeping"))
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (m *Model) renderFooter() string {
	helpLine := m.help.View(m.keys.forTab(m.activeTab, m.ctrl.State().Sleeping()))
	if m.errMsg != "" {
		return helpLine + "\n" + errorStyle.Render(statsui.TruncateLine(m.errMsg, m.width))
	}
	return helpLine
}

func headerClock(t time.Time, clock24h bool) string {
	t = t.Local()
	if clock24h {
		return t.Format("15:04") + "  " + t.Format("Mon, Jan 2, 2006")
	}
	return t.Format("03:04 PM") + "  " + t.Format("Mon, Jan 2, 2006")
}

func clockTick() tea.Cmd {
	return tea.Every(time.Second, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}

func sessionTick(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return sessionTickMsg{gen: gen}
	})
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
