// Package logger provides modifications to charmbracelet/log's default logger to be used in various files/packages.
package logger

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// New creates a new default charm log writing to stderr, so stdout stays
// free for the IPC stream.
func New(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: log.GetLevel() == log.DebugLevel,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// NewWithConfig creates a new charm log with custom config
func NewWithConfig(prefix string, level log.Level, caller bool, showTimestamp bool, fmt log.Formatter) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    caller,
		ReportTimestamp: showTimestamp,
		Formatter:       fmt,
	})
}

// ApplyLevel sets the global level from a config value such as "debug" or
// "warn". An empty value leaves the current level alone.
func ApplyLevel(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	level, err := log.ParseLevel(name)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	if level == log.DebugLevel {
		log.SetReportTimestamp(true)
	}
	return nil
}
