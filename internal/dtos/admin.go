// File: internal/dtos/admin.go
package dtos

import (
    "time"

    "github.com/iyunix/go-supportchat/internal/domain"
)

type SweepResponseDTO struct {
    ExpiredCount  int64 `json:"expiredCount"`
    PrunedWindows int64 `json:"prunedWindows"`
}

type ChangeRoleRequestDTO struct {
    Role string `json:"role"`
}

type CloseResponseDTO struct {
    ConversationID string `json:"conversationId"`
    Changed        bool   `json:"changed"`
}

// AdminConversationDTO exposes a conversation to staff. The secret hash is never included.
type AdminConversationDTO struct {
    ID             string  `json:"id"`
    UserName       string  `json:"userName"`
    UserEmail      string  `json:"userEmail"`
    Role           string  `json:"role"`
    Status         string  `json:"status"`
    ThreadID       *string `json:"threadId,omitempty"`
    LastActivityAt string  `json:"lastActivityAt"`
    TimeoutAt      string  `json:"timeoutAt"`
}

type StatsResponseDTO struct {
    Active   int64 `json:"active"`
    Closed   int64 `json:"closed"`
    Expired  int64 `json:"expired"`
    Messages int64 `json:"messages"`
}

type ThreadListResponseDTO struct {
    ConversationID string              `json:"conversationId"`
    Threads        []ThreadResponseDTO `json:"threads"`
}

func ToAdminConversation(c domain.Conversation) AdminConversationDTO {
    return AdminConversationDTO{
        ID:             c.ID,
        UserName:       c.UserName,
        UserEmail:      c.UserEmail,
        Role:           string(c.Role),
        Status:         string(c.Status),
        ThreadID:       c.ThreadID,
        LastActivityAt: c.LastActivityAt.UTC().Format(time.RFC3339),
        TimeoutAt:      c.TimeoutAt.UTC().Format(time.RFC3339),
    }
}

func ToStats(counts map[domain.ConversationStatus]int64, messages int64) StatsResponseDTO {
    return StatsResponseDTO{
        Active:   counts[domain.ConversationActive],
        Closed:   counts[domain.ConversationClosed],
        Expired:  counts[domain.ConversationExpired],
        Messages: messages,
    }
}

func ToThreadList(conversationID string, threads []domain.ConversationThread) ThreadListResponseDTO {
    list := make([]ThreadResponseDTO, 0, len(threads))
    for _, t := range threads {
        list = append(list, FromThread(t))
    }
    return ThreadListResponseDTO{ConversationID: conversationID, Threads: list}
}
