// File: internal/middleware/constants.go
package middleware

import "context"

// Context keys for middleware communication
type contextKey string

const (
    AdminSubjectKey contextKey = "admin_subject"
)

// AdminSubject returns the subject of the verified admin token, or "" outside admin routes.
func AdminSubject(ctx context.Context) string {
    sub, _ := ctx.Value(AdminSubjectKey).(string)
    return sub
}

// Logger defines the logging interface used by the middleware
type Logger interface {
    Info(msg string, keysAndValues ...interface{})
    Error(msg string, keysAndValues ...interface{})
    Debug(msg string, keysAndValues ...interface{})
    Warn(msg string, keysAndValues ...interface{})
}
