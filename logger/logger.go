package logger

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the backend receiving formatted log records.
type Logger interface {
	// Debugf prints debug level log.
	Debugf(format string, args ...interface{})
	// Infof prints info level log.
	Infof(format string, args ...interface{})
	// Warnf prints warn level log.
	Warnf(format string, args ...interface{})
	// Errorf prints error level log.
	Errorf(format string, args ...interface{})
}

// Level is level of logger.
type Level int8

func (s Level) String() string {
	switch s {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

const (
	// LevelDebug is DEBUG level.
	LevelDebug Level = iota
	// LevelInfo is INFO level.
	LevelInfo
	// LevelWarn is WARN level.
	LevelWarn
	// LevelError is ERROR level.
	LevelError
)

var (
	mu      sync.RWMutex
	lvl     = LevelInfo
	current Logger
	dft     = newDefaultLogger()
)

func newDefaultLogger() Logger {
	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapcore.DebugLevel),
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	l, err := cfg.Build(zap.AddCaller(), zap.AddCallerSkip(2))
	if err != nil {
		panic(fmt.Sprintf("logger: build default zap logger failed: %v", err))
	}
	return NewZapLogger(l)
}

// SetLevel set global log level.
// Available levels are `LevelDebug`, `LevelInfo`, `LevelWarn` and `LevelError`.
func SetLevel(level Level) {
	mu.Lock()
	lvl = level
	mu.Unlock()
}

// GetLevel returns current logger level.
func GetLevel() Level {
	mu.RLock()
	defer mu.RUnlock()
	return lvl
}

// SetLogger replaces the backend. A nil Logger restores the default zap backend.
func SetLogger(logger Logger) {
	mu.Lock()
	current = logger
	mu.Unlock()
}

// IsDebugEnabled returns true if debug level is open.
func IsDebugEnabled() bool {
	return GetLevel() <= LevelDebug
}

func backend(level Level) Logger {
	mu.RLock()
	defer mu.RUnlock()
	if level < lvl {
		return nil
	}
	if current != nil {
		return current
	}
	return dft
}

// Debugf prints debug level log.
func Debugf(format string, v ...interface{}) {
	if l := backend(LevelDebug); l != nil {
		l.Debugf(format, v...)
	}
}

// Infof prints info level log.
func Infof(format string, v ...interface{}) {
	if l := backend(LevelInfo); l != nil {
		l.Infof(format, v...)
	}
}

// Warnf prints warn level log.
func Warnf(format string, v ...interface{}) {
	if l := backend(LevelWarn); l != nil {
		l.Warnf(format, v...)
	}
}

// Errorf prints error level log.
func Errorf(format string, v ...interface{}) {
	if l := backend(LevelError); l != nil {
		l.Errorf(format, v...)
	}
}
