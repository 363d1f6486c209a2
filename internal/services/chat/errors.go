// File: internal/services/chat/errors.go
package chat

import (
    "errors"
    "fmt"
)

type ErrorType string

const (
    ErrTypeValidation         ErrorType = "VALIDATION"
    ErrTypeAccessDenied       ErrorType = "ACCESS_DENIED"
    ErrTypeQuotaExceeded      ErrorType = "QUOTA_EXCEEDED"
    ErrTypeFeatureUnavailable ErrorType = "FEATURE_UNAVAILABLE"
    ErrTypeConversationClosed ErrorType = "CONVERSATION_CLOSED"
    ErrTypeRateLimitExceeded  ErrorType = "RATE_LIMIT_EXCEEDED"
    ErrTypeUpstream           ErrorType = "UPSTREAM"
    ErrTypeUpstreamTimeout    ErrorType = "UPSTREAM_TIMEOUT"
    ErrTypeStorage            ErrorType = "STORAGE"
)

type ChatError struct {
    Type           ErrorType
    Operation      string
    Message        string
    ConversationID string
    Cause          error
}

func (e *ChatError) Error() string {
    if e.Cause != nil {
        return fmt.Sprintf("Chat %s error in %s: %s (caused by: %v)",
            e.Type, e.Operation, e.Message, e.Cause)
    }
    return fmt.Sprintf("Chat %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *ChatError) Unwrap() error {
    return e.Cause
}

// TypeOf returns the ErrorType carried by err, or "" for foreign errors.
func TypeOf(err error) ErrorType {
    var chatErr *ChatError
    if errors.As(err, &chatErr) {
        return chatErr.Type
    }
    return ""
}

func NewValidationError(operation, msg string) *ChatError {
    return &ChatError{Type: ErrTypeValidation, Operation: operation, Message: msg}
}

// NewAccessDeniedError never says whether the id or the secret was wrong.
func NewAccessDeniedError(operation string) *ChatError {
    return &ChatError{Type: ErrTypeAccessDenied, Operation: operation, Message: "conversation not found or secret invalid"}
}

func NewClosedError(operation, conversationID string) *ChatError {
    return &ChatError{Type: ErrTypeConversationClosed, Operation: operation, Message: "conversation is no longer active", ConversationID: conversationID}
}

func NewStorageError(operation, msg string, cause error) *ChatError {
    return &ChatError{Type: ErrTypeStorage, Operation: operation, Message: msg, Cause: cause}
}
