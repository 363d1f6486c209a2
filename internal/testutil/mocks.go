// File: internal/testutil/mocks.go
package testutil

import (
    "context"
    "errors"
    "sync"
    "time"

    "github.com/iyunix/go-supportchat/internal/domain"
    "github.com/iyunix/go-supportchat/internal/services/ai"
    "github.com/iyunix/go-supportchat/internal/services/notify"
)

// MockCompletionProvider is a mock implementation of ai.CompletionProvider for testing
type MockCompletionProvider struct {
    CompleteFunc func(ctx context.Context, systemPrompt string, messages []ai.Message) (string, error)

    mu    sync.Mutex
    Calls [][]ai.Message
}

func (m *MockCompletionProvider) Complete(ctx context.Context, systemPrompt string, messages []ai.Message) (string, error) {
    m.mu.Lock()
    m.Calls = append(m.Calls, append([]ai.Message(nil), messages...))
    m.mu.Unlock()

    if m.CompleteFunc != nil {
        return m.CompleteFunc(ctx, systemPrompt, messages)
    }
    return "", errors.New("not implemented")
}

// CallCount returns how many completions were requested
func (m *MockCompletionProvider) CallCount() int {
    m.mu.Lock()
    defer m.mu.Unlock()
    return len(m.Calls)
}

// StaticReply returns a provider that always answers with reply
func StaticReply(reply string) *MockCompletionProvider {
    return &MockCompletionProvider{
        CompleteFunc: func(ctx context.Context, systemPrompt string, messages []ai.Message) (string, error) {
            return reply, nil
        },
    }
}

// SlowReply returns a provider that blocks until ctx ends or d passes
func SlowReply(d time.Duration) *MockCompletionProvider {
    return &MockCompletionProvider{
        CompleteFunc: func(ctx context.Context, systemPrompt string, messages []ai.Message) (string, error) {
            select {
            case <-ctx.Done():
                return "", ctx.Err()
            case <-time.After(d):
                return "late", nil
            }
        },
    }
}

// MockNotifier records notifications instead of sending them
type MockNotifier struct {
    SendNowFunc func(ctx context.Context, email notify.Email) error

    mu            sync.Mutex
    Notifications []string
    Sent          []notify.Email
}

func (m *MockNotifier) NotifyNewMessage(conv *domain.Conversation, text string) {
    m.mu.Lock()
    defer m.mu.Unlock()
    m.Notifications = append(m.Notifications, text)
}

func (m *MockNotifier) SendNow(ctx context.Context, email notify.Email) error {
    if m.SendNowFunc != nil {
        if err := m.SendNowFunc(ctx, email); err != nil {
            return err
        }
    }
    m.mu.Lock()
    defer m.mu.Unlock()
    m.Sent = append(m.Sent, email)
    return nil
}

// NotificationCount returns how many staff notifications were queued
func (m *MockNotifier) NotificationCount() int {
    m.mu.Lock()
    defer m.mu.Unlock()
    return len(m.Notifications)
}

// MockLimiter is a mock implementation of ratelimit.Limiter
type MockLimiter struct {
    CheckFunc func(ctx context.Context, ip, functionName string) bool
}

func (m *MockLimiter) Check(ctx context.Context, ip, functionName string) bool {
    if m.CheckFunc != nil {
        return m.CheckFunc(ctx, ip, functionName)
    }
    return true
}

// Clock is a settable time source for services that accept WithClock
type Clock struct {
    mu sync.Mutex
    t  time.Time
}

func NewClock(t time.Time) *Clock {
    return &Clock{t: t}
}

func (c *Clock) Now() time.Time {
    c.mu.Lock()
    defer c.mu.Unlock()
    return c.t
}

func (c *Clock) Advance(d time.Duration) {
    c.mu.Lock()
    defer c.mu.Unlock()
    c.t = c.t.Add(d)
}

// NopLogger satisfies the per-package Logger interfaces and discards everything
type NopLogger struct{}

func (NopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (NopLogger) Error(msg string, keysAndValues ...interface{}) {}
func (NopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (NopLogger) Warn(msg string, keysAndValues ...interface{})  {}
