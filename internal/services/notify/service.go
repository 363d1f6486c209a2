// File: internal/services/notify/service.go
package notify

import (
    "context"
    "time"

    "github.com/iyunix/go-supportchat/internal/domain"
)

// Service is the notification entry point used by the chat flow.
type Service struct {
    provider   Provider
    dispatcher *Dispatcher
    retry      *RetryConfig
    staffEmail string
    logger     Logger
    now        func() time.Time
}

func NewService(provider Provider, dispatcher *Dispatcher, retry *RetryConfig, staffEmail string, logger Logger) *Service {
    return &Service{
        provider:   provider,
        dispatcher: dispatcher,
        retry:      retry,
        staffEmail: staffEmail,
        logger:     logger,
        now:        time.Now,
    }
}

// NotifyNewMessage queues a staff e-mail. It never blocks and never fails the caller.
func (s *Service) NotifyNewMessage(conv *domain.Conversation, text string) {
    if s.staffEmail == "" {
        return
    }
    email, err := NewMessageEmail(s.staffEmail, conv, text, s.now())
    if err != nil {
        s.logger.Error("failed to build staff notification", "conversation_id", conv.ID, "error", err)
        return
    }
    s.dispatcher.Enqueue(email)
}

// SendNow delivers an e-mail synchronously with retries.
func (s *Service) SendNow(ctx context.Context, email Email) error {
    return RetryWithBackoff(ctx, s.retry, func(ctx context.Context) error {
        return s.provider.Send(ctx, email)
    })
}
