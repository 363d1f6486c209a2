// File: internal/services/reaper/reaper.go

// Package reaper expires idle conversations and prunes dead rate-limit windows.
package reaper

import (
    "context"
    "fmt"
    "time"

    "github.com/robfig/cron/v3"

    "github.com/iyunix/go-supportchat/internal/metrics"
    "github.com/iyunix/go-supportchat/internal/repository/conversation"
)

// Logger is the logging surface the reaper needs
type Logger interface {
    Info(msg string, keysAndValues ...interface{})
    Error(msg string, keysAndValues ...interface{})
    Debug(msg string, keysAndValues ...interface{})
    Warn(msg string, keysAndValues ...interface{})
}

// WindowPruner removes rate-limit windows that can no longer affect a decision.
type WindowPruner interface {
    Prune(ctx context.Context) (int64, error)
}

// SweepResult reports what a single sweep changed.
type SweepResult struct {
    Expired       int64
    PrunedWindows int64
}

type Reaper struct {
    conversations conversation.ConversationRepository
    pruner        WindowPruner
    logger        Logger
    metrics       *metrics.Metrics
    now           func() time.Time
}

// New builds a reaper. pruner may be nil.
func New(conversations conversation.ConversationRepository, pruner WindowPruner, logger Logger, m *metrics.Metrics) *Reaper {
    return &Reaper{
        conversations: conversations,
        pruner:        pruner,
        logger:        logger,
        metrics:       m,
        now:           time.Now,
    }
}

// WithClock overrides the time source
func (r *Reaper) WithClock(now func() time.Time) *Reaper {
    r.now = now
    return r
}

// Sweep expires every active conversation past its timeout. Running it again without
// new activity changes nothing and reports zero. A failed prune is logged, not returned.
func (r *Reaper) Sweep(ctx context.Context) (SweepResult, error) {
    var res SweepResult

    expired, err := r.conversations.ExpireIdle(ctx, r.now().UTC())
    r.metrics.RecordSweep(expired, err)
    if err != nil {
        r.logger.Error("sweep failed", "error", err)
        return res, fmt.Errorf("sweep: %w", err)
    }
    res.Expired = expired

    if r.pruner != nil {
        pruned, err := r.pruner.Prune(ctx)
        if err != nil {
            r.logger.Warn("failed to prune rate limit windows", "error", err)
        }
        res.PrunedWindows = pruned
    }

    if res.Expired > 0 || res.PrunedWindows > 0 {
        r.logger.Info("sweep completed", "expired", res.Expired, "pruned_windows", res.PrunedWindows)
    }
    return res, nil
}

// Schedule runs Sweep on a cron spec (e.g. "@every 5m") until the returned stop func is called.
// stop waits for a running sweep to finish.
func (r *Reaper) Schedule(spec string, timeout time.Duration) (stop func(), err error) {
    c := cron.New()
    _, err = c.AddFunc(spec, func() {
        ctx, cancel := context.WithTimeout(context.Background(), timeout)
        defer cancel()
        _, _ = r.Sweep(ctx)
    })
    if err != nil {
        return nil, fmt.Errorf("invalid sweep schedule %q: %w", spec, err)
    }
    c.Start()
    r.logger.Info("sweep scheduled", "schedule", spec)

    return func() {
        <-c.Stop().Done()
    }, nil
}
