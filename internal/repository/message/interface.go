// File: internal/repository/message/interface.go
package message

import (
    "context"

    "github.com/iyunix/go-supportchat/internal/domain"
)

type MessageRepository interface {
    Create(ctx context.Context, message *domain.Message) (*domain.Message, error)
    // FindByConversationID returns messages oldest first, ties broken by insertion order.
    // A non-nil threadID restricts the result to that thread.
    FindByConversationID(ctx context.Context, conversationID string, threadID *string) ([]domain.Message, error)
    CountByConversationAndRole(ctx context.Context, conversationID string, role string) (int64, error)
    CountTotalMessages(ctx context.Context) (int64, error)
}
