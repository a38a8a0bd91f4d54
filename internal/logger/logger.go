package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// Logger is the global logger instance
	Logger *log.Logger
)

// Config holds logger configuration
type Config struct {
	Debug  bool
	LogDir string
}

// Init initializes the global logger with the given configuration
func Init(cfg Config) error {
	if err := os.MkdirAll(cfg.LogDir, 0755); err != nil {
		return err
	}

	logFile := filepath.Join(cfg.LogDir, "dayweave.log")

	fileWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	level := log.WarnLevel
	if cfg.Debug {
		level = log.DebugLevel
	}

	// In debug mode, write to both stderr and file; otherwise stay silent
	// on stderr.
	var writer io.Writer
	if cfg.Debug {
		writer = io.MultiWriter(os.Stderr, fileWriter)
	} else {
		writer = fileWriter
	}

	Logger = log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "dayweave",
	})

	return nil
}

// Debug logs a debug message
func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

// Info logs an info message
func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

// Warn logs a warning message
func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

// Error logs an error message
func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
