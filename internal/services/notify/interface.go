// File: internal/services/notify/interface.go
package notify

import "context"

// Email is a single outgoing message
type Email struct {
    To      string
    Subject string
    HTML    string
    Text    string
}

type Provider interface {
    Send(ctx context.Context, email Email) error
}

// Logger is the logging surface this package needs
type Logger interface {
    Info(msg string, keysAndValues ...interface{})
    Error(msg string, keysAndValues ...interface{})
    Debug(msg string, keysAndValues ...interface{})
    Warn(msg string, keysAndValues ...interface{})
}
