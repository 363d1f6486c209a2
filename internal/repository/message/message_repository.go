// File: internal/repository/message/message_repository.go

package message

import (
    "context"
    "errors"
    "fmt"
    "log"
    "strings"

    "gorm.io/gorm"

    "github.com/iyunix/go-supportchat/internal/domain"
)

type gormMessageRepository struct {
    db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
    return &gormMessageRepository{db: db}
}

// Create appends one message. Messages are never updated or deleted individually.
func (r *gormMessageRepository) Create(ctx context.Context, message *domain.Message) (*domain.Message, error) {
    if err := r.validateMessageInput(message); err != nil {
        log.Printf("[MessageRepository] Validation failed: %v", err)
        return nil, fmt.Errorf("validation failed: %w", err)
    }
    if !message.CreatedAt.IsZero() {
        message.CreatedAt = message.CreatedAt.UTC()
    }

    if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
        // Content is deliberately left out of the log line.
        log.Printf("[MessageRepository] Database error during message creation for conversation %s: %v", message.ConversationID, err)
        return nil, fmt.Errorf("create message: %w", err)
    }
    return message, nil
}

func (r *gormMessageRepository) FindByConversationID(ctx context.Context, conversationID string, threadID *string) ([]domain.Message, error) {
    if conversationID == "" {
        return nil, errors.New("invalid conversation ID")
    }

    query := r.db.WithContext(ctx).Where("conversation_id = ?", conversationID)
    if threadID != nil {
        query = query.Where("thread_id = ?", *threadID)
    }

    var messages []domain.Message
    if err := query.Order("created_at asc").Order("id asc").Find(&messages).Error; err != nil {
        log.Printf("[MessageRepository] Database error finding messages for conversation %s: %v", conversationID, err)
        return nil, fmt.Errorf("find messages: %w", err)
    }
    return messages, nil
}

func (r *gormMessageRepository) CountByConversationAndRole(ctx context.Context, conversationID string, role string) (int64, error) {
    var count int64
    err := r.db.WithContext(ctx).
        Model(&domain.Message{}).
        Where("conversation_id = ? AND role = ?", conversationID, role).
        Count(&count).Error
    if err != nil {
        log.Printf("[MessageRepository] Database error counting %s messages for conversation %s: %v", role, conversationID, err)
        return 0, fmt.Errorf("count messages: %w", err)
    }
    return count, nil
}

func (r *gormMessageRepository) CountTotalMessages(ctx context.Context) (int64, error) {
    var count int64
    if err := r.db.WithContext(ctx).Model(&domain.Message{}).Count(&count).Error; err != nil {
        return 0, fmt.Errorf("count messages: %w", err)
    }
    return count, nil
}

func (r *gormMessageRepository) validateMessageInput(message *domain.Message) error {
    if message == nil {
        return errors.New("message cannot be nil")
    }
    if message.ConversationID == "" {
        return errors.New("conversation ID is required")
    }
    if message.Role != domain.MessageRoleUser && message.Role != domain.MessageRoleAssistant {
        return fmt.Errorf("invalid message role %q", message.Role)
    }
    if strings.TrimSpace(message.Content) == "" {
        return errors.New("message content cannot be empty")
    }
    return nil
}
