// File: internal/services/logger.go
package services

import (
    "io"
    "os"
    "strings"
    "time"

    "github.com/rs/zerolog"
)

// Logger defines common logging interface for all services
type Logger interface {
    Info(msg string, keysAndValues ...interface{})
    Error(msg string, keysAndValues ...interface{})
    Debug(msg string, keysAndValues ...interface{})
    Warn(msg string, keysAndValues ...interface{})
}

// ProductionLogger adapts zerolog to the key/value Logger interface
type ProductionLogger struct {
    zl zerolog.Logger
}

// NewProductionLogger creates a JSON logger writing to w at the given level.
func NewProductionLogger(service string, w io.Writer, level zerolog.Level) *ProductionLogger {
    zl := zerolog.New(w).Level(level).With().Timestamp().Str("service", service).Logger()
    return &ProductionLogger{zl: zl}
}

// With returns a child logger carrying extra fields on every entry
func (p *ProductionLogger) With(keysAndValues ...interface{}) *ProductionLogger {
    return &ProductionLogger{zl: p.zl.With().Fields(pairs(keysAndValues)).Logger()}
}

// Zerolog exposes the underlying logger for middleware that writes events directly
func (p *ProductionLogger) Zerolog() zerolog.Logger {
    return p.zl
}

func (p *ProductionLogger) Info(msg string, keysAndValues ...interface{}) {
    p.zl.Info().Fields(pairs(keysAndValues)).Msg(msg)
}

func (p *ProductionLogger) Error(msg string, keysAndValues ...interface{}) {
    p.zl.Error().Fields(pairs(keysAndValues)).Msg(msg)
}

func (p *ProductionLogger) Debug(msg string, keysAndValues ...interface{}) {
    p.zl.Debug().Fields(pairs(keysAndValues)).Msg(msg)
}

func (p *ProductionLogger) Warn(msg string, keysAndValues ...interface{}) {
    p.zl.Warn().Fields(pairs(keysAndValues)).Msg(msg)
}

// pairs turns alternating key/value arguments into a field map.
// Non-string keys and a trailing odd value are dropped.
func pairs(keysAndValues []interface{}) map[string]interface{} {
    fields := make(map[string]interface{}, len(keysAndValues)/2)
    for i := 0; i < len(keysAndValues)-1; i += 2 {
        key, ok := keysAndValues[i].(string)
        if !ok {
            continue
        }
        if err, isErr := keysAndValues[i+1].(error); isErr && err != nil {
            fields[key] = err.Error()
            continue
        }
        fields[key] = keysAndValues[i+1]
    }
    return fields
}

// ParseLevel maps LOG_LEVEL values onto zerolog levels, defaulting to info
func ParseLevel(s string) zerolog.Level {
    switch strings.ToUpper(s) {
    case "DEBUG":
        return zerolog.DebugLevel
    case "WARN":
        return zerolog.WarnLevel
    case "ERROR":
        return zerolog.ErrorLevel
    default:
        return zerolog.InfoLevel
    }
}

// NoOpLogger is a logger that does nothing (for testing)
type NoOpLogger struct{}

func (n *NoOpLogger) Info(msg string, keysAndValues ...interface{})  {}
func (n *NoOpLogger) Error(msg string, keysAndValues ...interface{}) {}
func (n *NoOpLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (n *NoOpLogger) Warn(msg string, keysAndValues ...interface{})  {}

// Environment-based logger factory
func NewLogger(service string) Logger {
    env := os.Getenv("GO_ENV")
    if env == "test" {
        return &NoOpLogger{}
    }

    level := ParseLevel(os.Getenv("LOG_LEVEL"))
    if env == "production" || os.Getenv("ENV") == "production" {
        return NewProductionLogger(service, os.Stdout, level)
    }

    // Human-readable for development
    console := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
    return NewProductionLogger(service, console, level)
}
