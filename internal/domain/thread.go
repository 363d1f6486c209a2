// File: internal/domain/thread.go
package domain

import "time"

// ConversationThread is an optional named sub-grouping of messages inside one conversation.
type ConversationThread struct {
    ID             string     `gorm:"type:varchar(36);primaryKey" json:"id"`
    ConversationID string     `gorm:"type:varchar(36);not null;index" json:"conversationId"`
    ThreadName     string     `gorm:"not null;size:100" json:"threadName"`
    CreatedBy      string     `gorm:"not null;size:200" json:"createdBy"`
    IsActive       bool       `gorm:"not null;default:true" json:"isActive"`
    CreatedAt      time.Time  `json:"createdAt"`
    ClosedAt       *time.Time `json:"closedAt,omitempty"`
}
