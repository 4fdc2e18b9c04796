// Package logging builds the leveled file logger shared by every component.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
)

// FileName is the name of the log file under the state directory
const FileName = "quicklaunch.log"

// Options selects where and how much to log
type Options struct {
	Path  string // empty means DefaultPath()
	Level string // debug, info, warn or error; empty means info
	Debug bool   // forces debug level
}

// DefaultPath returns $XDG_STATE_HOME/quicklaunch/quicklaunch.log
func DefaultPath() string {
	return filepath.Join(xdg.StateHome, "quicklaunch", FileName)
}

// ParseLevel parses a level name. The empty string is info.
func ParseLevel(level string) (log.Level, error) {
	level = strings.TrimSpace(level)
	if level == "" {
		return log.InfoLevel, nil
	}
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return log.InfoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}

// New creates a logger writing to w
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
		Prefix:          "quicklaunch",
	})
}

// Discard returns a logger that drops everything
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// Open creates the log file, appending to an existing one, and returns a
// logger writing to it. The caller closes the returned file.
func Open(opts Options) (*log.Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	if opts.Debug {
		level = log.DebugLevel
	}

	path := opts.Path
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return New(f, level), f, nil
}
