// SPDX-License-Identifier: EPL-2.0

// Package logging sets up the process-wide slog logger for the commands.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Levels lists the accepted level names, quietest first.
var Levels = []string{"none", "error", "warn", "info", "debug"}

// ParseLevel maps a level name to a slog level. "none" reports enabled=false.
func ParseLevel(name string) (level slog.Level, enabled bool, err error) {
	switch name {
	case "none":
		return 0, false, nil
	case "error":
		return slog.LevelError, true, nil
	case "warn":
		return slog.LevelWarn, true, nil
	case "info":
		return slog.LevelInfo, true, nil
	case "debug":
		return slog.LevelDebug, true, nil
	}
	return 0, false, fmt.Errorf("unexpected log level %q, want one of %v", name, Levels)
}

// New builds a logger. With an empty file it writes text to stdout;
// otherwise it writes JSON to file, rotated after 10 MB with four gzipped
// backups kept. The returned closer is nil when no file is used.
func New(level, file string) (*slog.Logger, io.Closer, error) {
	lvl, enabled, err := ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}
	if !enabled {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), nil, nil
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if file == "" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts)), nil, nil
	}

	rotated := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    10,
		MaxBackups: 4,
		MaxAge:     180,
		Compress:   true,
	}
	return slog.New(slog.NewJSONHandler(rotated, opts)), rotated, nil
}

// Configure installs the logger from New as the slog default. Close the
// returned closer, if any, before exiting.
func Configure(level, file string) (io.Closer, error) {
	logger, closer, err := New(level, file)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return closer, nil
}
