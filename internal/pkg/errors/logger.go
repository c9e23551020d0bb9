package errors

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log file rotation limits for the debug sink.
const (
	logFileMaxSizeMB  = 5
	logFileMaxBackups = 3
	logFileMaxAgeDays = 14
)

// Logger wraps a zerolog logger with the verbose switch used across aigh.
// Every message is passed through SanitizeErrorMessage before it reaches a sink.
type Logger struct {
	mu      sync.Mutex
	zl      zerolog.Logger
	output  io.Writer
	verbose bool
	file    io.Closer
}

// LoggerOptions configures a Logger.
type LoggerOptions struct {
	Output  io.Writer
	Verbose bool
	// LogFile, when set and Verbose is on, receives a rotated JSON copy of every entry.
	LogFile string
}

// Global logger instance
var defaultLogger = NewLogger(os.Stderr, false)

// NewLogger creates a logger writing to output.
func NewLogger(output io.Writer, verbose bool) *Logger {
	return NewLoggerWithOptions(LoggerOptions{Output: output, Verbose: verbose})
}

// NewLoggerWithOptions creates a logger from options.
func NewLoggerWithOptions(opts LoggerOptions) *Logger {
	l := &Logger{}
	l.configure(opts)
	return l
}

func (l *Logger) configure(opts LoggerOptions) {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}

	var writer io.Writer = opts.Output
	if isTerminal(opts.Output) {
		writer = zerolog.ConsoleWriter{Out: opts.Output, TimeFormat: "15:04:05"}
	}

	if l.file != nil {
		_ = l.file.Close()
		l.file = nil
	}
	if opts.Verbose && opts.LogFile != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.LogFile,
			MaxSize:    logFileMaxSizeMB,
			MaxBackups: logFileMaxBackups,
			MaxAge:     logFileMaxAgeDays,
		}
		l.file = rotator
		writer = zerolog.MultiLevelWriter(writer, rotator)
	}

	level := zerolog.WarnLevel
	if opts.Verbose {
		level = zerolog.DebugLevel
	}

	l.zl = zerolog.New(writer).Level(level).With().Timestamp().Logger()
	l.output = opts.Output
	l.verbose = opts.Verbose
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Configure replaces the default logger's settings.
func Configure(opts LoggerOptions) {
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()
	defaultLogger.configure(opts)
}

// SetVerbose enables or disables verbose logging on the default logger.
func SetVerbose(verbose bool) {
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()
	defaultLogger.configure(LoggerOptions{Output: defaultLogger.output, Verbose: verbose})
}

// IsVerbose returns whether verbose logging is enabled.
func IsVerbose() bool {
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()
	return defaultLogger.verbose
}

// SetOutput sets the output writer for the default logger.
func SetOutput(w io.Writer) {
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()
	defaultLogger.configure(LoggerOptions{Output: w, Verbose: defaultLogger.verbose})
}

// Close flushes and closes the rotating log file, if any.
func Close() error {
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()
	if defaultLogger.file == nil {
		return nil
	}
	err := defaultLogger.file.Close()
	defaultLogger.file = nil
	return err
}

func (l *Logger) log(level zerolog.Level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.zl.WithLevel(level).Msg(SanitizeErrorMessage(fmt.Sprintf(format, args...)))
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(zerolog.ErrorLevel, format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(zerolog.WarnLevel, format, args...)
}

// Info logs an info message.
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(zerolog.InfoLevel, format, args...)
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(zerolog.DebugLevel, format, args...)
}

// LogAPIRequest logs an outgoing backend request in verbose mode.
func (l *Logger) LogAPIRequest(provider, model string, promptLength int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.verbose {
		return
	}
	l.zl.Debug().
		Str("provider", provider).
		Str("model", model).
		Int("prompt_length", promptLength).
		Msg("api request")
}

// LogAPIResponse logs a backend response in verbose mode.
func (l *Logger) LogAPIResponse(provider string, responseLength int, duration time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.verbose {
		return
	}
	l.zl.Debug().
		Str("provider", provider).
		Int("response_length", responseLength).
		Dur("duration", duration).
		Msg("api response")
}

// LogPayload dumps a prompt or raw response in verbose mode.
func (l *Logger) LogPayload(kind, payload string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.verbose {
		return
	}
	l.zl.Debug().
		Str("kind", kind).
		Str("payload", SanitizeErrorMessage(payload)).
		Msg("api payload")
}

// Package-level logging functions using the default logger

// Error logs an error message.
func Error(format string, args ...interface{}) {
	defaultLogger.Error(format, args...)
}

// Warn logs a warning message.
func Warn(format string, args ...interface{}) {
	defaultLogger.Warn(format, args...)
}

// Info logs an info message.
func Info(format string, args ...interface{}) {
	defaultLogger.Info(format, args...)
}

// Debug logs a debug message.
func Debug(format string, args ...interface{}) {
	defaultLogger.Debug(format, args...)
}

// LogAPIRequest logs an outgoing backend request in verbose mode.
func LogAPIRequest(provider, model string, promptLength int) {
	defaultLogger.LogAPIRequest(provider, model, promptLength)
}

// LogAPIResponse logs a backend response in verbose mode.
func LogAPIResponse(provider string, responseLength int, duration time.Duration) {
	defaultLogger.LogAPIResponse(provider, responseLength, duration)
}

// LogPayload dumps a prompt or raw response in verbose mode.
func LogPayload(kind, payload string) {
	defaultLogger.LogPayload(kind, payload)
}
