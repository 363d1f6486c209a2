// File: internal/services/admin_services/admin_service.go
package admin_services

import (
    "context"
    "errors"
    "fmt"
    "time"

    "github.com/iyunix/go-supportchat/internal/domain"
    "github.com/iyunix/go-supportchat/internal/metrics"
    "github.com/iyunix/go-supportchat/internal/policy"
    "github.com/iyunix/go-supportchat/internal/repository/conversation"
    "github.com/iyunix/go-supportchat/internal/repository/message"
    "github.com/iyunix/go-supportchat/internal/repository/thread"
)

// ErrInvalidRole is returned when a role name is not one of guest, user, premium or admin.
var ErrInvalidRole = errors.New("invalid role")

// Stats is a snapshot of stored conversations and messages.
type Stats struct {
    Conversations map[domain.ConversationStatus]int64
    Messages      int64
}

// AdminService provides functionalities for administrative tasks.
type AdminService struct {
    conversations conversation.ConversationRepository
    messages      message.MessageRepository
    threads       thread.ThreadRepository
    metrics       *metrics.Metrics
    now           func() time.Time
}

// NewAdminService creates a new instance of AdminService.
func NewAdminService(
    conversations conversation.ConversationRepository,
    messages message.MessageRepository,
    threads thread.ThreadRepository,
    m *metrics.Metrics,
) *AdminService {
    return &AdminService{
        conversations: conversations,
        messages:      messages,
        threads:       threads,
        metrics:       m,
        now:           time.Now,
    }
}

// WithClock overrides the time source.
func (s *AdminService) WithClock(now func() time.Time) *AdminService {
    s.now = now
    return s
}

// ChangeRole assigns a new role and recomputes the timeout from the last activity.
func (s *AdminService) ChangeRole(ctx context.Context, conversationID, roleName string) (*domain.Conversation, error) {
    // 1. Validate that the new role is a real, defined role.
    role, err := policy.ParseRole(roleName)
    if err != nil {
        return nil, fmt.Errorf("%w: %s", ErrInvalidRole, roleName)
    }

    // 2. Find the conversation.
    conv, err := s.conversations.FindByID(ctx, conversationID)
    if err != nil {
        return nil, fmt.Errorf("failed to find conversation %s: %w", conversationID, err)
    }

    // 3. Set the new role; the timeout follows the role's window.
    timeoutAt := conv.LastActivityAt.Add(policy.TimeoutDuration(role))
    if err := s.conversations.UpdateRole(ctx, conv.ID, role, timeoutAt); err != nil {
        return nil, fmt.Errorf("failed to update role: %w", err)
    }

    conv.Role = role
    conv.TimeoutAt = timeoutAt
    return conv, nil
}

// CloseConversation ends a conversation without its secret. It reports whether the status changed.
func (s *AdminService) CloseConversation(ctx context.Context, conversationID string) (bool, error) {
    changed, err := s.conversations.Transition(ctx, conversationID, domain.ConversationClosed, s.now())
    if err != nil {
        return false, fmt.Errorf("failed to close conversation %s: %w", conversationID, err)
    }
    if changed {
        s.metrics.RecordClosed(string(domain.ConversationClosed))
    }
    return changed, nil
}

// CloseThread deactivates a thread and detaches it from its conversation. Messages are kept.
func (s *AdminService) CloseThread(ctx context.Context, threadID string) error {
    th, err := s.threads.FindByID(ctx, threadID)
    if err != nil {
        return fmt.Errorf("failed to find thread %s: %w", threadID, err)
    }
    if _, err := s.threads.Close(ctx, th.ID, s.now()); err != nil {
        return fmt.Errorf("failed to close thread: %w", err)
    }
    if err := s.conversations.ClearThread(ctx, th.ConversationID, th.ID); err != nil {
        return fmt.Errorf("failed to detach thread: %w", err)
    }
    return nil
}

// Threads lists a conversation's threads, oldest first, closed ones included.
func (s *AdminService) Threads(ctx context.Context, conversationID string) ([]domain.ConversationThread, error) {
    if _, err := s.conversations.FindByID(ctx, conversationID); err != nil {
        return nil, fmt.Errorf("failed to find conversation %s: %w", conversationID, err)
    }
    threads, err := s.threads.FindByConversationID(ctx, conversationID)
    if err != nil {
        return nil, fmt.Errorf("failed to list threads: %w", err)
    }
    return threads, nil
}

// Stats counts conversations per status and messages overall.
func (s *AdminService) Stats(ctx context.Context) (*Stats, error) {
    stats := &Stats{Conversations: make(map[domain.ConversationStatus]int64, 3)}
    for _, status := range []domain.ConversationStatus{domain.ConversationActive, domain.ConversationClosed, domain.ConversationExpired} {
        n, err := s.conversations.CountByStatus(ctx, status)
        if err != nil {
            return nil, fmt.Errorf("failed to count %s conversations: %w", status, err)
        }
        stats.Conversations[status] = n
    }

    total, err := s.messages.CountTotalMessages(ctx)
    if err != nil {
        return nil, fmt.Errorf("failed to count messages: %w", err)
    }
    stats.Messages = total
    return stats, nil
}
