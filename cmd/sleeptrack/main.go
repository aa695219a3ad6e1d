// Package main provides the CLI entrypoint for sleeptrack.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/verte-zerg/sleeptrack/internal/config"
	"github.com/verte-zerg/sleeptrack/internal/logging"
	"github.com/verte-zerg/sleeptrack/internal/model"
	"github.com/verte-zerg/sleeptrack/internal/stats"
	"github.com/verte-zerg/sleeptrack/internal/store"
	"github.com/verte-zerg/sleeptrack/internal/tui"
)

const defaultTrendWindow = 7

var (
	trackerQuality     int
	trackerClock24h    bool
	trackerUTCDates    bool
	trackerTrendWindow int
	logFile            string
	logLevel           string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "sleeptrack",
		Short:         "TUI sleep tracker",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runTrackerCmd,
	}

	rootCmd.Flags().IntVar(&trackerQuality, "quality", int(model.DefaultQuality), "initially selected sleep quality (1-3)")
	rootCmd.Flags().BoolVar(&trackerClock24h, "clock-24h", false, "show times on a 24-hour clock")
	rootCmd.Flags().BoolVar(&trackerUTCDates, "utc-dates", true, "derive record dates from UTC timestamps")
	rootCmd.Flags().IntVar(&trackerTrendWindow, "trend-window", defaultTrendWindow, "moving average window for the duration trend")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "write JSON logs to this file")
	rootCmd.Flags().StringVar(&logLevel, "log-level", logging.DefaultLevel, "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runTrackerCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "quality", &trackerQuality, fileCfg.Tracker.Quality)
	applyBoolConfig(cmd, "clock-24h", &trackerClock24h, fileCfg.Tracker.Clock24h)
	applyBoolConfig(cmd, "utc-dates", &trackerUTCDates, fileCfg.Tracker.UTCDates)
	applyIntConfig(cmd, "trend-window", &trackerTrendWindow, fileCfg.Tracker.TrendWindow)
	applyStringConfig(cmd, "log-file", &logFile, fileCfg.Log.File)
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)

	cfg := model.Config{
		DefaultQuality: model.Quality(trackerQuality),
		Clock24h:       trackerClock24h,
		UTCDates:       trackerUTCDates,
		TrendWindow:    trackerTrendWindow,
	}
	if err := validateConfig(cfg, logLevel); err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("sleeptrack needs an interactive terminal")
	}

	logger, closeLog, err := logging.New(logFile, logLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	st, err := store.Open()
	if err != nil {
		return fmt.Errorf("failed to open record store: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Warnw("failed to close record store", "error", cerr)
		}
	}()

	logger.Infow("starting tracker",
		"quality", trackerQuality,
		"clock24h", cfg.Clock24h,
		"utcDates", cfg.UTCDates,
		"trendWindow", cfg.TrendWindow,
	)
	program := tea.NewProgram(tui.NewModel(cfg, st, logger), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		logger.Errorw("tui exited with error", "error", err)
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	logger.Infow("tracker stopped")

	// Records live only in memory, so print them once before they are gone.
	if err := printSessionSummary(cmd.OutOrStdout(), st, cfg.TrendWindow); err != nil {
		return fmt.Errorf("failed to print summary: %w", err)
	}
	return nil
}

// printSessionSummary writes the aggregate report and the duration trend of
// everything recorded in st. Nothing is written when st is empty.
func printSessionSummary(w io.Writer, st *store.Store, window int) error {
	ctx := context.Background()
	n, err := st.Len(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		return nil
	}
	records, err := st.Snapshot(ctx)
	if err != nil {
		return err
	}
	if err := stats.RenderSummary(w, records); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return stats.RenderTrend(w, records, window)
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// ensureConfigFile writes the template when path does not exist yet.
func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# sleeptrack configuration
# Uncomment a value to enable it. CLI flags override config values.

[tracker]
# quality = %d            # Initially selected sleep quality (1-3)
# clock-24h = false       # Show times on a 24-hour clock
# utc-dates = true        # Derive record dates from UTC timestamps
# trend-window = %d       # Moving average window for the duration trend

[log]
# file = %q
# level = %q
`,
		model.DefaultQuality,
		defaultTrendWindow,
		config.DefaultLogPath(),
		logging.DefaultLevel,
	)
}

func validateConfig(cfg model.Config, level string) error {
	if !cfg.DefaultQuality.Valid() {
		return fmt.Errorf("--quality must be between 1 and 3")
	}
	if cfg.TrendWindow < 1 {
		return fmt.Errorf("--trend-window must be >= 1")
	}
	if level != "" {
		if _, err := zapcore.ParseLevel(level); err != nil {
			return fmt.Errorf("--log-level must be one of debug, info, warn, error: %w", err)
		}
	}
	return nil
}
