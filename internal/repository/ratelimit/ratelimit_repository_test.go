// File: internal/repository/ratelimit/ratelimit_repository_test.go
package ratelimit

import (
    "context"
    "sync"
    "testing"
    "time"

    "github.com/iyunix/go-supportchat/internal/testutil"
)

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func TestHit_CapWithinWindow(t *testing.T) {
    repo := NewRateLimitRepository(testutil.NewTestDB(t))
    ctx := context.Background()

    for i := 1; i <= 20; i++ {
        ok, err := repo.Hit(ctx, "1.2.3.4", "chat-support", t0.Add(time.Duration(i)*time.Second), time.Minute, 20)
        if err != nil {
            t.Fatalf("Hit() error = %v", err)
        }
        if !ok {
            t.Fatalf("request %d rejected, want allowed", i)
        }
    }

    ok, err := repo.Hit(ctx, "1.2.3.4", "chat-support", t0.Add(30*time.Second), time.Minute, 20)
    if err != nil {
        t.Fatalf("Hit() error = %v", err)
    }
    if ok {
        t.Error("21st request allowed, want rejected")
    }

    // Other keys are independent.
    if ok, _ := repo.Hit(ctx, "1.2.3.4", "job-filter", t0.Add(30*time.Second), time.Minute, 20); !ok {
        t.Error("different function should have its own window")
    }
    if ok, _ := repo.Hit(ctx, "5.6.7.8", "chat-support", t0.Add(30*time.Second), time.Minute, 20); !ok {
        t.Error("different ip should have its own window")
    }
}

func TestHit_WindowResets(t *testing.T) {
    repo := NewRateLimitRepository(testutil.NewTestDB(t))
    ctx := context.Background()

    for i := 0; i < 3; i++ {
        _, _ = repo.Hit(ctx, "ip", "fn", t0, time.Minute, 3)
    }
    if ok, _ := repo.Hit(ctx, "ip", "fn", t0.Add(59*time.Second), time.Minute, 3); ok {
        t.Fatal("expected rejection inside the window")
    }
    if ok, _ := repo.Hit(ctx, "ip", "fn", t0.Add(61*time.Second), time.Minute, 3); !ok {
        t.Error("expected a fresh window after expiry")
    }
}

func TestHit_ConcurrentCallersRespectCap(t *testing.T) {
    repo := NewRateLimitRepository(testutil.NewTestDB(t))
    ctx := context.Background()

    var (
        wg      sync.WaitGroup
        mu      sync.Mutex
        allowed int
    )
    for i := 0; i < 30; i++ {
        wg.Add(1)
        go func() {
            defer wg.Done()
            ok, err := repo.Hit(ctx, "ip", "fn", t0, time.Minute, 20)
            if err != nil {
                t.Errorf("Hit() error = %v", err)
                return
            }
            if ok {
                mu.Lock()
                allowed++
                mu.Unlock()
            }
        }()
    }
    wg.Wait()

    if allowed != 20 {
        t.Errorf("allowed %d concurrent requests, want 20", allowed)
    }
}

func TestPruneExpired(t *testing.T) {
    repo := NewRateLimitRepository(testutil.NewTestDB(t))
    ctx := context.Background()

    _, _ = repo.Hit(ctx, "old", "fn", t0, time.Minute, 5)
    _, _ = repo.Hit(ctx, "new", "fn", t0.Add(2*time.Minute), time.Minute, 5)

    n, err := repo.PruneExpired(ctx, t0.Add(time.Minute))
    if err != nil {
        t.Fatalf("PruneExpired() error = %v", err)
    }
    if n != 1 {
        t.Errorf("pruned %d windows, want 1", n)
    }
}
