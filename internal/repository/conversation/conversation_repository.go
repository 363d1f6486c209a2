// File: internal/repository/conversation/conversation_repository.go
package conversation

import (
    "context"
    "errors"
    "fmt"
    "log"
    "time"

    "gorm.io/gorm"

    "github.com/iyunix/go-supportchat/internal/domain"
)

var ErrConversationNotFound = errors.New("conversation not found")

type gormConversationRepository struct {
    db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
    return &gormConversationRepository{db: db}
}

func (r *gormConversationRepository) Create(ctx context.Context, conv *domain.Conversation) error {
    if conv.ID == "" || conv.SecretHash == "" {
        return errors.New("conversation id and secret hash are required")
    }
    if err := r.db.WithContext(ctx).Create(conv).Error; err != nil {
        log.Printf("[ConversationRepository] Database error creating conversation %s: %v", conv.ID, err)
        return fmt.Errorf("create conversation: %w", err)
    }
    return nil
}

func (r *gormConversationRepository) FindByID(ctx context.Context, id string) (*domain.Conversation, error) {
    if id == "" {
        return nil, ErrConversationNotFound
    }
    var conv domain.Conversation
    err := r.db.WithContext(ctx).Where("id = ?", id).First(&conv).Error
    if err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return nil, ErrConversationNotFound
        }
        log.Printf("[ConversationRepository] Database error finding conversation %s: %v", id, err)
        return nil, fmt.Errorf("find conversation: %w", err)
    }
    return &conv, nil
}

func (r *gormConversationRepository) Touch(ctx context.Context, id string, lastActivityAt, timeoutAt time.Time) error {
    result := r.db.WithContext(ctx).
        Model(&domain.Conversation{}).
        Where("id = ? AND status = ?", id, domain.ConversationActive).
        Updates(map[string]interface{}{
            "last_activity_at": lastActivityAt.UTC(),
            "timeout_at":       timeoutAt.UTC(),
        })
    if result.Error != nil {
        log.Printf("[ConversationRepository] Database error touching conversation %s: %v", id, result.Error)
        return fmt.Errorf("touch conversation: %w", result.Error)
    }
    if result.RowsAffected == 0 {
        return ErrConversationNotFound
    }
    return nil
}

func (r *gormConversationRepository) Transition(ctx context.Context, id string, to domain.ConversationStatus, at time.Time) (bool, error) {
    if to == domain.ConversationActive {
        return false, errors.New("cannot transition back to active")
    }
    closedAt := at.UTC()
    result := r.db.WithContext(ctx).
        Model(&domain.Conversation{}).
        Where("id = ? AND status = ?", id, domain.ConversationActive).
        Updates(map[string]interface{}{
            "status":    to,
            "closed_at": &closedAt,
        })
    if result.Error != nil {
        log.Printf("[ConversationRepository] Database error moving conversation %s to %s: %v", id, to, result.Error)
        return false, fmt.Errorf("transition conversation: %w", result.Error)
    }
    if result.RowsAffected == 1 {
        return true, nil
    }

    // Nothing changed: either unknown or already terminal.
    if _, err := r.FindByID(ctx, id); err != nil {
        return false, err
    }
    return false, nil
}

func (r *gormConversationRepository) UpdateRole(ctx context.Context, id string, role domain.Role, timeoutAt time.Time) error {
    result := r.db.WithContext(ctx).
        Model(&domain.Conversation{}).
        Where("id = ?", id).
        Updates(map[string]interface{}{
            "role":       role,
            "timeout_at": timeoutAt.UTC(),
        })
    if result.Error != nil {
        return fmt.Errorf("update role: %w", result.Error)
    }
    if result.RowsAffected == 0 {
        return ErrConversationNotFound
    }
    log.Printf("[ConversationRepository] Role of conversation %s set to %s", id, role)
    return nil
}

func (r *gormConversationRepository) SetThread(ctx context.Context, id string, threadID string) error {
    result := r.db.WithContext(ctx).
        Model(&domain.Conversation{}).
        Where("id = ?", id).
        Update("thread_id", threadID)
    if result.Error != nil {
        return fmt.Errorf("set thread: %w", result.Error)
    }
    if result.RowsAffected == 0 {
        return ErrConversationNotFound
    }
    return nil
}

// ClearThread unsets the conversation's active thread only if it still points at threadID.
func (r *gormConversationRepository) ClearThread(ctx context.Context, id string, threadID string) error {
    err := r.db.WithContext(ctx).
        Model(&domain.Conversation{}).
        Where("id = ? AND thread_id = ?", id, threadID).
        Update("thread_id", nil).Error
    if err != nil {
        return fmt.Errorf("clear thread: %w", err)
    }
    return nil
}

func (r *gormConversationRepository) ExpireIdle(ctx context.Context, now time.Time) (int64, error) {
    now = now.UTC()
    result := r.db.WithContext(ctx).
        Model(&domain.Conversation{}).
        Where("status = ? AND timeout_at < ?", domain.ConversationActive, now).
        Updates(map[string]interface{}{
            "status":    domain.ConversationExpired,
            "closed_at": &now,
        })
    if result.Error != nil {
        log.Printf("[ConversationRepository] Database error expiring idle conversations: %v", result.Error)
        return 0, fmt.Errorf("expire idle conversations: %w", result.Error)
    }
    return result.RowsAffected, nil
}

func (r *gormConversationRepository) CountByStatus(ctx context.Context, status domain.ConversationStatus) (int64, error) {
    var count int64
    err := r.db.WithContext(ctx).
        Model(&domain.Conversation{}).
        Where("status = ?", status).
        Count(&count).Error
    if err != nil {
        return 0, fmt.Errorf("count conversations: %w", err)
    }
    return count, nil
}
