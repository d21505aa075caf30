// Package logger writes parley's structured debug log.
//
// The TUI owns the terminal, so nothing can be printed to stdout while it
// runs. All diagnostics go to a slog text handler backed by a file in /tmp.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// LogLevel represents the severity of a log message
type LogLevel int

const (
	// LevelDebug is for verbose debugging information
	LevelDebug LogLevel = iota
	// LevelInfo is for general operational information
	LevelInfo
	// LevelWarn is for warning conditions
	LevelWarn
	// LevelError is for error conditions
	LevelError
)

// toSlogLevel converts our LogLevel to slog.Level
func (l LogLevel) toSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var (
	slogLogger   *slog.Logger
	levelVar     = new(slog.LevelVar)
	logFile      *os.File
	mu           sync.Mutex
	initDone     bool
	currentLevel LogLevel = LevelInfo
)

// DefaultLogPath is the default log file for the TUI process
const DefaultLogPath = "/tmp/parley-debug.log"

// logGlob matches every log file parley may have written
const logGlob = "/tmp/parley-*.log"

// SetLevel sets the minimum log level to output
func SetLevel(level LogLevel) {
	mu.Lock()
	defer mu.Unlock()
	currentLevel = level
	levelVar.Set(level.toSlogLevel())
}

// SetDebug enables debug level logging
func SetDebug(enabled bool) {
	if enabled {
		SetLevel(LevelDebug)
	} else {
		SetLevel(LevelInfo)
	}
}

// Init opens path and points the logger at it. Calling Init again without
// Reset is a no-op.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if initDone {
		return nil
	}
	return openLocked(path)
}

func openLocked(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	logFile = f
	useWriterLocked(f)
	slogLogger.Info("Logger initialized", "path", path)
	return nil
}

func useWriterLocked(w io.Writer) {
	levelVar.Set(currentLevel.toSlogLevel())
	slogLogger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: levelVar}))
	initDone = true
}

// ensureInit lazily opens the default log file. Must be called with mu held.
func ensureInit() {
	if initDone {
		return
	}
	if err := openLocked(DefaultLogPath); err != nil {
		// Can't log the failure, and stderr belongs to the TUI. Discard.
		useWriterLocked(io.Discard)
	}
}

// Close closes the log file
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	slogLogger = nil
	initDone = false
}

// Reset resets the logger state, allowing reinitialization.
// This is primarily for testing purposes.
func Reset() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	initDone = false
	slogLogger = nil
	currentLevel = LevelInfo
	levelVar = new(slog.LevelVar)
}

// ClearLogs removes all parley log files from /tmp
func ClearLogs() (int, error) {
	logs, err := filepath.Glob(logGlob)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, p := range logs {
		if err := os.Remove(p); err == nil {
			count++
		} else if !os.IsNotExist(err) {
			return count, err
		}
	}
	return count, nil
}

// WithComponent returns a slog.Logger with the component attribute pre-attached.
//
// Example:
//
//	log := logger.WithComponent("store")
//	log.Info("message sent", "conversation", convID, "id", msg.ID)
func WithComponent(component string) *slog.Logger {
	mu.Lock()
	defer mu.Unlock()

	ensureInit()
	return slogLogger.With(slog.String("component", component))
}

// WithConversation returns a slog.Logger scoped to one conversation.
func WithConversation(conversationID string) *slog.Logger {
	mu.Lock()
	defer mu.Unlock()

	ensureInit()
	return slogLogger.With(slog.String("conversation", conversationID))
}

// Logger returns the underlying slog.Logger.
func Logger() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()

	ensureInit()
	return slogLogger
}
