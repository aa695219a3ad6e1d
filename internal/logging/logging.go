// Package logging builds the application logger.
//
// The TUI owns the terminal, so logs only ever go to a file. Without a file
// a no-op logger is returned.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = "info"

// New returns a sugared logger writing JSON lines to path at the given level.
// The returned func flushes and closes the sink.
func New(path, level string) (*zap.SugaredLogger, func(), error) {
	if path == "" {
		return zap.NewNop().Sugar(), func() {}, nil
	}
	if level == "" {
		level = DefaultLevel
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(file), lvl)
	logger := zap.New(core).Sugar()

	closer := func() {
		if err := logger.Sync(); err != nil {
			// Best-effort flush on shutdown.
			_ = err
		}
		if err := file.Close(); err != nil {
			_ = err
		}
	}
	return logger, closer, nil
}
