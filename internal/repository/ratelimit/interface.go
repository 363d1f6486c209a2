// File: internal/repository/ratelimit/interface.go
package ratelimit

import (
    "context"
    "time"
)

type RateLimitRepository interface {
    // Hit records one request for (ip, functionName) and reports whether it fits under max
    // within the current window. The check and the increment are a single atomic step.
    Hit(ctx context.Context, ip, functionName string, now time.Time, window time.Duration, max int) (bool, error)
    // PruneExpired removes windows that started at or before cutoff.
    PruneExpired(ctx context.Context, cutoff time.Time) (int64, error)
}
