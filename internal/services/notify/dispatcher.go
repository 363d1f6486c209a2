// File: internal/services/notify/dispatcher.go
package notify

import (
    "context"
    "sync"

    "github.com/iyunix/go-supportchat/internal/metrics"
)

// Dispatcher delivers e-mails on a background worker so callers never wait on the provider.
// A full queue drops the e-mail with a warning.
type Dispatcher struct {
    provider Provider
    retry    *RetryConfig
    logger   Logger
    metrics  *metrics.Metrics

    queue  chan Email
    mu     sync.RWMutex
    closed bool
    done   chan struct{}
}

func NewDispatcher(provider Provider, retry *RetryConfig, queueSize int, logger Logger, m *metrics.Metrics) *Dispatcher {
    if queueSize <= 0 {
        queueSize = 1
    }
    d := &Dispatcher{
        provider: provider,
        retry:    retry,
        logger:   logger,
        metrics:  m,
        queue:    make(chan Email, queueSize),
        done:     make(chan struct{}),
    }
    go d.run()
    return d
}

// Enqueue schedules an e-mail and reports whether it was accepted.
func (d *Dispatcher) Enqueue(email Email) bool {
    d.mu.RLock()
    defer d.mu.RUnlock()

    if d.closed {
        d.logger.Warn("dispatcher closed, dropping email", "subject", email.Subject)
        d.metrics.RecordNotification("dropped")
        return false
    }

    select {
    case d.queue <- email:
        return true
    default:
        d.logger.Warn("notification queue full, dropping email", "subject", email.Subject)
        d.metrics.RecordNotification("dropped")
        return false
    }
}

func (d *Dispatcher) run() {
    defer close(d.done)
    for email := range d.queue {
        err := RetryWithBackoff(context.Background(), d.retry, func(ctx context.Context) error {
            return d.provider.Send(ctx, email)
        })
        if err != nil {
            d.logger.Error("failed to deliver notification", "subject", email.Subject, "error", err)
            d.metrics.RecordNotification("failed")
            continue
        }
        d.metrics.RecordNotification("sent")
    }
}

// Close stops accepting e-mails and waits for the queue to drain or ctx to end.
func (d *Dispatcher) Close(ctx context.Context) error {
    d.mu.Lock()
    if !d.closed {
        d.closed = true
        close(d.queue)
    }
    d.mu.Unlock()

    select {
    case <-d.done:
        return nil
    case <-ctx.Done():
        return ctx.Err()
    }
}
