// File: internal/services/chat/types.go
package chat

import (
    "github.com/iyunix/go-supportchat/internal/domain"
    "github.com/iyunix/go-supportchat/internal/services/transcript"
)

// Logger defines the logging interface used across chat services
type Logger interface {
    Info(msg string, keysAndValues ...interface{})
    Error(msg string, keysAndValues ...interface{})
    Debug(msg string, keysAndValues ...interface{})
    Warn(msg string, keysAndValues ...interface{})
}

// Identity is a validated name/e-mail pair.
type Identity struct {
    Name  string
    Email string
}

// SendRequest carries one user message. An empty ConversationID starts a new conversation.
type SendRequest struct {
    ConversationID string
    Secret         string
    Name           string
    Email          string
    Text           string
    ClientIP       string
}

// SendResult is returned on success. Secret is only set when the conversation was just created.
type SendResult struct {
    Reply          string
    ConversationID string
    Secret         string
}

type Delivery string

const (
    DeliveryDownload Delivery = "download"
    DeliveryEmail    Delivery = "email"
)

type ExportRequest struct {
    ConversationID string
    Secret         string
    Format         string
    Delivery       string
}

// ExportResult holds the rendered transcript for downloads; for e-mail delivery Content is empty.
type ExportResult struct {
    Format    transcript.Format
    Filename  string
    Content   []byte
    EmailedTo string
}

// HistoryResult is the ordered message log plus the conversation it belongs to.
type HistoryResult struct {
    Conversation *domain.Conversation
    Messages     []domain.Message
}
