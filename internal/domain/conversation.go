// File: internal/domain/conversation.go
package domain

import "time"

// ConversationStatus is the lifecycle state of a conversation.
type ConversationStatus string

const (
    ConversationActive  ConversationStatus = "active"
    ConversationClosed  ConversationStatus = "closed"
    ConversationExpired ConversationStatus = "expired"
)

// Role decides the limits a conversation runs under.
type Role string

const (
    RoleGuest   Role = "guest"
    RoleUser    Role = "user"
    RolePremium Role = "premium"
    RoleAdmin   Role = "admin"
)

// Conversation is a single support chat session opened from the website widget.
// SecretHash holds the bcrypt hash of the bearer secret handed to the client at creation;
// it is written once and never updated.
type Conversation struct {
    ID             string             `gorm:"type:varchar(36);primaryKey" json:"id"`
    UserName       string             `gorm:"not null" json:"userName"`
    UserEmail      string             `gorm:"not null;size:320" json:"userEmail"`
    Role           Role               `gorm:"not null;size:20;default:guest" json:"role"`
    SecretHash     string             `gorm:"not null;size:100" json:"-"`
    Status         ConversationStatus `gorm:"not null;size:20;index:idx_conversations_status_timeout,priority:1" json:"status"`
    ThreadID       *string            `gorm:"type:varchar(36)" json:"threadId,omitempty"`
    CreatedAt      time.Time          `json:"createdAt"`
    LastActivityAt time.Time          `gorm:"not null" json:"lastActivityAt"`
    TimeoutAt      time.Time          `gorm:"not null;index:idx_conversations_status_timeout,priority:2" json:"timeoutAt"`
    ClosedAt       *time.Time         `json:"closedAt,omitempty"`
    UpdatedAt      time.Time          `json:"updatedAt"`
}

// IsActive reports whether the conversation still accepts writes.
func (c *Conversation) IsActive() bool {
    return c.Status == ConversationActive
}

// IsPastTimeout reports whether the sliding timeout has elapsed at now.
func (c *Conversation) IsPastTimeout(now time.Time) bool {
    return now.After(c.TimeoutAt)
}
