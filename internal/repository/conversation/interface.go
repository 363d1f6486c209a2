// File: internal/repository/conversation/interface.go
package conversation

import (
    "context"
    "time"

    "github.com/iyunix/go-supportchat/internal/domain"
)

type ConversationRepository interface {
    Create(ctx context.Context, conv *domain.Conversation) error
    FindByID(ctx context.Context, id string) (*domain.Conversation, error)

    // Touch slides the timeout of an active conversation.
    Touch(ctx context.Context, id string, lastActivityAt, timeoutAt time.Time) error
    // Transition moves an active conversation to a terminal status.
    // It reports false when the conversation was no longer active.
    Transition(ctx context.Context, id string, to domain.ConversationStatus, at time.Time) (bool, error)
    UpdateRole(ctx context.Context, id string, role domain.Role, timeoutAt time.Time) error

    SetThread(ctx context.Context, id string, threadID string) error
    ClearThread(ctx context.Context, id string, threadID string) error

    // ExpireIdle marks every active conversation past its timeout as expired.
    ExpireIdle(ctx context.Context, now time.Time) (int64, error)
    CountByStatus(ctx context.Context, status domain.ConversationStatus) (int64, error)
}
