// Package logging configures file-based logging for the TUI process. The
// terminal is owned by the UI, so log output goes to a file instead of
// stderr; transient transport failures land here rather than in the chat.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a JSON-lines file logger at path. The returned cleanup
// flushes buffered entries and is safe to defer. debug lowers the level to
// include per-request transport logging.
func New(path string, debug bool) (*zap.Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("logging: create log dir: %w", err)
	}

	level := zap.InfoLevel
	if debug {
		level = zap.DebugLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("logging: %w", err)
	}
	cleanup := func() { _ = logger.Sync() }
	return logger, cleanup, nil
}
