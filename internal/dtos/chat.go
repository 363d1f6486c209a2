// File: internal/dtos/chat.go
package dtos

import (
    "time"

    "github.com/iyunix/go-supportchat/internal/domain"
)

// RegisterRequestDTO carries the visitor's identity from the widget's start form.
type RegisterRequestDTO struct {
    Name  string `json:"name"`
    Email string `json:"email"`
}

// RegisterResponseDTO echoes the normalized identity; no conversation exists yet.
type RegisterResponseDTO struct {
    Name  string `json:"name"`
    Email string `json:"email"`
}

// SendMessageRequestDTO sends one user message. Omit conversationId to start a conversation.
type SendMessageRequestDTO struct {
    ConversationID string `json:"conversationId,omitempty"`
    Secret         string `json:"secret,omitempty"`
    Name           string `json:"name,omitempty"`
    Email          string `json:"email,omitempty"`
    Text           string `json:"text"`
}

// SendMessageResponseDTO returns the assistant reply. Secret is only set for a new conversation.
type SendMessageResponseDTO struct {
    Reply          string `json:"reply"`
    ConversationID string `json:"conversationId"`
    Secret         string `json:"secret,omitempty"`
}

// ConversationAuthDTO is the (id, secret) pair every per-conversation call carries.
type ConversationAuthDTO struct {
    ConversationID string `json:"conversationId"`
    Secret         string `json:"secret"`
}

type HistoryRequestDTO struct {
    ConversationAuthDTO
    ThreadID *string `json:"threadId,omitempty"`
}

type MessageDTO struct {
    ID        uint    `json:"id"`
    Role      string  `json:"role"`
    Content   string  `json:"content"`
    ThreadID  *string `json:"threadId,omitempty"`
    CreatedAt string  `json:"createdAt"`
}

type HistoryResponseDTO struct {
    ConversationID string       `json:"conversationId"`
    Status         string       `json:"status"`
    Messages       []MessageDTO `json:"messages"`
}

type OpenThreadRequestDTO struct {
    ConversationAuthDTO
    Name string `json:"name"`
}

type ThreadResponseDTO struct {
    ID             string  `json:"id"`
    ConversationID string  `json:"conversationId"`
    Name           string  `json:"name"`
    CreatedBy      string  `json:"createdBy"`
    IsActive       bool    `json:"isActive"`
    CreatedAt      string  `json:"createdAt"`
    ClosedAt       *string `json:"closedAt,omitempty"`
}

type ExportRequestDTO struct {
    ConversationAuthDTO
    Format   string `json:"format"`
    Delivery string `json:"delivery"`
}

// ExportEmailResponseDTO acknowledges a transcript sent by e-mail.
type ExportEmailResponseDTO struct {
    Message   string `json:"message"`
    EmailedTo string `json:"emailedTo"`
}

// FromMessage maps a stored message for the history response.
func FromMessage(m domain.Message) MessageDTO {
    return MessageDTO{
        ID:        m.ID,
        Role:      m.Role,
        Content:   m.Content,
        ThreadID:  m.ThreadID,
        CreatedAt: m.CreatedAt.UTC().Format(time.RFC3339Nano),
    }
}

// FromMessageSlice keeps the input order and never returns nil.
func FromMessageSlice(messages []domain.Message) []MessageDTO {
    dtos := make([]MessageDTO, len(messages))
    for i, m := range messages {
        dtos[i] = FromMessage(m)
    }
    return dtos
}

func FromThread(t domain.ConversationThread) ThreadResponseDTO {
    dto := ThreadResponseDTO{
        ID:             t.ID,
        ConversationID: t.ConversationID,
        Name:           t.ThreadName,
        CreatedBy:      t.CreatedBy,
        IsActive:       t.IsActive,
        CreatedAt:      t.CreatedAt.UTC().Format(time.RFC3339),
    }
    if t.ClosedAt != nil {
        formatted := t.ClosedAt.UTC().Format(time.RFC3339)
        dto.ClosedAt = &formatted
    }
    return dto
}
