// Package logging owns the structured logger used across rsa-go.
//
// Nothing is configured on import: until the hosting application calls
// [Init], every package logs to a discard handler. Init returns a shutdown
// function so the application controls the logger's lifetime.
//
//	settings, err := logging.LoadSettings("logging.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	shutdown, err := logging.Init(settings)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer shutdown()
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/natefinch/lumberjack"
)

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(newDiscardLogger())
}

// Logger returns the active logger. It is safe for concurrent use.
func Logger() *slog.Logger {
	return current.Load()
}

// SetLogger installs l as the active logger. A nil l restores the discard logger.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newDiscardLogger()
	}
	current.Store(l)
}

// Init validates settings and installs the logger they describe.
// The returned shutdown function flushes and closes any file sink and
// restores the discard logger.
func Init(settings *Settings) (shutdown func() error, err error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	var (
		logger *slog.Logger
		closer io.Closer
	)
	switch settings.Type {
	case TypeConsole:
		logger = NewConsoleLogger(settings.Level, os.Stderr)
	case TypeFile:
		logger, closer = NewFileLogger(settings.Level, settings.FilePath, settings.MaxSize, settings.MaxBackups, settings.MaxAge)
	case TypeDiscard:
		logger = newDiscardLogger()
	default:
		return nil, fmt.Errorf("unsupported log type: %s", settings.Type)
	}

	current.Store(logger)
	logger.Info("logger is set up", "type", settings.Type, "level", settings.Level)

	return func() error {
		SetLogger(nil)
		if closer != nil {
			return closer.Close()
		}
		return nil
	}, nil
}

// NewConsoleLogger returns a text logger writing to w at the given level.
func NewConsoleLogger(level string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// NewFileLogger returns a JSON logger writing to a size-rotated file, and
// the closer that releases the file.
func NewFileLogger(level, filePath string, maxSize, maxBackups, maxAge int) (*slog.Logger, io.Closer) {
	writer := &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		MaxAge:     maxAge,
		Compress:   true,
	}
	return newJSONLogger(level, writer), writer
}

func newJSONLogger(level string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func parseLevel(level string) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarning:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
