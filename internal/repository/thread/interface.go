// File: internal/repository/thread/interface.go
package thread

import (
    "context"
    "time"

    "github.com/iyunix/go-supportchat/internal/domain"
)

type ThreadRepository interface {
    Create(ctx context.Context, thread *domain.ConversationThread) error
    FindByID(ctx context.Context, id string) (*domain.ConversationThread, error)
    FindByConversationID(ctx context.Context, conversationID string) ([]domain.ConversationThread, error)
    // Close deactivates a thread; it reports false if the thread was already closed.
    Close(ctx context.Context, id string, at time.Time) (bool, error)
}
