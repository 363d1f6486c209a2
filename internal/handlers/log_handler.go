// File: internal/handlers/log_handler.go
package handlers

import (
    "net/http"
    "strings"
    "unicode/utf8"
)

const maxClientLogMessage = 2000

// FrontendLogPayload defines the structure for logs coming from the browser.
type FrontendLogPayload struct {
    Level   string `json:"level"`             // e.g., "info", "error", "warn"
    Message string `json:"message"`           // The main log message
    Context any    `json:"context,omitempty"` // Optional extra data (e.g., stack trace)
}

type LogHandler struct {
    logger Logger
}

func NewLogHandler(logger Logger) *LogHandler {
    return &LogHandler{logger: logger}
}

// LogFrontendEvent handles incoming log requests from the frontend.
func (h *LogHandler) LogFrontendEvent(w http.ResponseWriter, r *http.Request) {
    var payload FrontendLogPayload
    if err := decodeJSON(w, r, &payload); err != nil || strings.TrimSpace(payload.Message) == "" {
        writeError(w, "Invalid request body", http.StatusBadRequest)
        return
    }

    msg := payload.Message
    if utf8.RuneCountInString(msg) > maxClientLogMessage {
        msg = string([]rune(msg)[:maxClientLogMessage])
    }

    switch strings.ToLower(payload.Level) {
    case "error":
        h.logger.Error("CLIENT_LOG", "message", msg, "context", payload.Context)
    case "warn", "warning":
        h.logger.Warn("CLIENT_LOG", "message", msg, "context", payload.Context)
    case "debug":
        h.logger.Debug("CLIENT_LOG", "message", msg, "context", payload.Context)
    default:
        h.logger.Info("CLIENT_LOG", "message", msg, "context", payload.Context)
    }

    // Respond with 204 No Content as we don't need to send anything back.
    w.WriteHeader(http.StatusNoContent)
}
