// File: internal/services/chat/interface.go
package chat

import (
    "context"

    "github.com/iyunix/go-supportchat/internal/domain"
    "github.com/iyunix/go-supportchat/internal/services/notify"
)

// Notifier delivers e-mails on behalf of the chat flow.
type Notifier interface {
    // NotifyNewMessage queues a staff notification; it must not block.
    NotifyNewMessage(conv *domain.Conversation, text string)
    // SendNow delivers synchronously and reports failure.
    SendNow(ctx context.Context, email notify.Email) error
}
