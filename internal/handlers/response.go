// File: internal/handlers/response.go
package handlers

import (
    "encoding/json"
    "errors"
    "io"
    "net/http"

    "github.com/iyunix/go-supportchat/internal/dtos"
    "github.com/iyunix/go-supportchat/internal/services/chat"
    "github.com/iyunix/go-supportchat/internal/services/jobfilter"
)

// maxBodyBytes caps request bodies; the largest legitimate body is a job filter payload.
const maxBodyBytes = 1 << 20

// Logger defines the logging interface used by the HTTP handlers
type Logger interface {
    Info(msg string, keysAndValues ...interface{})
    Error(msg string, keysAndValues ...interface{})
    Debug(msg string, keysAndValues ...interface{})
    Warn(msg string, keysAndValues ...interface{})
}

// writeJSON is a helper for sending JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    json.NewEncoder(w).Encode(data)
}

// writeError is a helper for sending JSON error responses.
func writeError(w http.ResponseWriter, message string, status int) {
    writeJSON(w, status, dtos.CreateErrorResponse(message, ""))
}

// decodeJSON reads a bounded JSON body into dst. An empty body decodes to the zero value.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
    r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
    if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
        return err
    }
    return nil
}

// statusFor maps service error types onto HTTP status codes.
func statusFor(err error) (int, string) {
    switch chat.TypeOf(err) {
    case chat.ErrTypeValidation:
        return http.StatusBadRequest, string(chat.ErrTypeValidation)
    case chat.ErrTypeAccessDenied:
        return http.StatusUnauthorized, string(chat.ErrTypeAccessDenied)
    case chat.ErrTypeQuotaExceeded:
        return http.StatusForbidden, string(chat.ErrTypeQuotaExceeded)
    case chat.ErrTypeFeatureUnavailable:
        return http.StatusForbidden, string(chat.ErrTypeFeatureUnavailable)
    case chat.ErrTypeConversationClosed:
        return http.StatusConflict, string(chat.ErrTypeConversationClosed)
    case chat.ErrTypeRateLimitExceeded:
        return http.StatusTooManyRequests, string(chat.ErrTypeRateLimitExceeded)
    case chat.ErrTypeUpstream:
        return http.StatusBadGateway, string(chat.ErrTypeUpstream)
    case chat.ErrTypeUpstreamTimeout:
        return http.StatusBadGateway, string(chat.ErrTypeUpstreamTimeout)
    case chat.ErrTypeStorage:
        return http.StatusInternalServerError, string(chat.ErrTypeStorage)
    }

    switch jobfilter.TypeOf(err) {
    case jobfilter.ErrTypeValidation:
        return http.StatusBadRequest, string(jobfilter.ErrTypeValidation)
    case jobfilter.ErrTypeUpstream:
        return http.StatusBadGateway, string(jobfilter.ErrTypeUpstream)
    case jobfilter.ErrTypeUpstreamTimeout:
        return http.StatusBadGateway, string(jobfilter.ErrTypeUpstreamTimeout)
    }

    return http.StatusInternalServerError, ""
}

// errorMessage returns the client-facing text for err. Storage and unknown failures stay generic.
func errorMessage(err error, status int) string {
    if status == http.StatusInternalServerError {
        return "Something went wrong on our end."
    }
    var chatErr *chat.ChatError
    if errors.As(err, &chatErr) {
        return chatErr.Message
    }
    var filterErr *jobfilter.FilterError
    if errors.As(err, &filterErr) {
        return filterErr.Message
    }
    return http.StatusText(status)
}

// writeServiceError renders a typed service error.
func writeServiceError(w http.ResponseWriter, err error) {
    status, errType := statusFor(err)
    writeJSON(w, status, dtos.CreateErrorResponse(errorMessage(err, status), errType))
}
