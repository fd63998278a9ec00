// Package logging builds the job's structured logger: JSON records to a
// size-rotated file plus a copy on stderr for interactive runs.
package logging

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds log sink settings.
type Config struct {
	// File is the rotating log path. Empty disables the file sink.
	File string
	// MaxSizeMB is the size a log file may reach before rotation.
	MaxSizeMB int
	// MaxBackups bounds how many rotated files are kept.
	MaxBackups int
	// Level is the minimum severity; defaults to info.
	Level slog.Level
}

// DefaultConfig returns the stock logging settings.
func DefaultConfig() Config {
	return Config{
		File:       "rco_report.log",
		MaxSizeMB:  10,
		MaxBackups: 5,
		Level:      slog.LevelInfo,
	}
}

// New builds the logger. Each record carries a timestamp, level, and
// message; callers attach the run ID with Logger.With.
func New(config Config) *slog.Logger {
	var sink io.Writer = os.Stderr
	if config.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   config.File,
			MaxSize:    config.MaxSizeMB,
			MaxBackups: config.MaxBackups,
		}
		sink = io.MultiWriter(rotator, os.Stderr)
	}
	handler := slog.NewJSONHandler(sink, &slog.HandlerOptions{Level: config.Level})
	return slog.New(handler)
}
