// File: internal/services/notify/retry.go
package notify

import (
    "context"
    "time"
)

// RetryConfig defines simple retry behavior
type RetryConfig struct {
    MaxAttempts int
    Delay       time.Duration
}

// DefaultRetryConfig provides sensible defaults
func DefaultRetryConfig() *RetryConfig {
    return &RetryConfig{
        MaxAttempts: 3,
        Delay:       500 * time.Millisecond,
    }
}

// RetryWithBackoff executes fn up to MaxAttempts times, doubling the delay between attempts.
func RetryWithBackoff(ctx context.Context, config *RetryConfig, fn func(ctx context.Context) error) error {
    var lastErr error
    delay := config.Delay

    for attempt := 0; attempt < config.MaxAttempts; attempt++ {
        err := fn(ctx)
        if err == nil {
            return nil
        }

        lastErr = err

        // Don't retry non-retryable errors
        if emailErr, ok := err.(*EmailError); ok {
            if emailErr.Type == ErrTypeConfig || emailErr.Type == ErrTypeValidation {
                return err
            }
        }

        // Don't wait after last attempt
        if attempt < config.MaxAttempts-1 {
            select {
            case <-ctx.Done():
                return ctx.Err()
            case <-time.After(delay):
            }
            delay *= 2
        }
    }

    return lastErr
}
