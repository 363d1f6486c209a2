// File: internal/repository/thread/thread_repository.go
package thread

import (
    "context"
    "errors"
    "fmt"
    "log"
    "strings"
    "time"

    "gorm.io/gorm"

    "github.com/iyunix/go-supportchat/internal/domain"
)

var ErrThreadNotFound = errors.New("thread not found")

type gormThreadRepository struct {
    db *gorm.DB
}

func NewThreadRepository(db *gorm.DB) ThreadRepository {
    return &gormThreadRepository{db: db}
}

func (r *gormThreadRepository) Create(ctx context.Context, thread *domain.ConversationThread) error {
    if thread.ID == "" || thread.ConversationID == "" {
        return errors.New("thread id and conversation id are required")
    }
    if strings.TrimSpace(thread.ThreadName) == "" {
        return errors.New("thread name cannot be empty")
    }
    thread.IsActive = true
    if err := r.db.WithContext(ctx).Create(thread).Error; err != nil {
        log.Printf("[ThreadRepository] Database error creating thread for conversation %s: %v", thread.ConversationID, err)
        return fmt.Errorf("create thread: %w", err)
    }
    log.Printf("[ThreadRepository] Thread %s created in conversation %s", thread.ID, thread.ConversationID)
    return nil
}

func (r *gormThreadRepository) FindByID(ctx context.Context, id string) (*domain.ConversationThread, error) {
    var thread domain.ConversationThread
    err := r.db.WithContext(ctx).Where("id = ?", id).First(&thread).Error
    if err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return nil, ErrThreadNotFound
        }
        return nil, fmt.Errorf("find thread: %w", err)
    }
    return &thread, nil
}

func (r *gormThreadRepository) FindByConversationID(ctx context.Context, conversationID string) ([]domain.ConversationThread, error) {
    var threads []domain.ConversationThread
    err := r.db.WithContext(ctx).
        Where("conversation_id = ?", conversationID).
        Order("created_at asc").
        Find(&threads).Error
    if err != nil {
        return nil, fmt.Errorf("find threads: %w", err)
    }
    return threads, nil
}

func (r *gormThreadRepository) Close(ctx context.Context, id string, at time.Time) (bool, error) {
    closedAt := at.UTC()
    result := r.db.WithContext(ctx).
        Model(&domain.ConversationThread{}).
        Where("id = ? AND is_active = ?", id, true).
        Updates(map[string]interface{}{
            "is_active": false,
            "closed_at": &closedAt,
        })
    if result.Error != nil {
        return false, fmt.Errorf("close thread: %w", result.Error)
    }
    if result.RowsAffected == 1 {
        return true, nil
    }
    if _, err := r.FindByID(ctx, id); err != nil {
        return false, err
    }
    return false, nil
}
