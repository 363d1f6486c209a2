// File: internal/domain/message.go
package domain

import "time"

const (
    MessageRoleUser      = "user"
    MessageRoleAssistant = "assistant"
)

// Message represents a single entry in a conversation's append-only log.
// ID is auto-incremented and breaks ties between equal CreatedAt values.
type Message struct {
    ID             uint      `gorm:"primarykey" json:"id"`
    ConversationID string    `gorm:"type:varchar(36);not null;index:idx_messages_conversation_created,priority:1" json:"conversationId"`
    ThreadID       *string   `gorm:"type:varchar(36);index" json:"threadId,omitempty"`
    Role           string    `gorm:"not null;size:20" json:"role"` // "user" or "assistant"
    Content        string    `gorm:"not null" json:"content"`
    CreatedAt      time.Time `gorm:"index:idx_messages_conversation_created,priority:2" json:"createdAt"`
}
