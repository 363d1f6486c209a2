// File: internal/ratelimit/ratelimit_test.go
package ratelimit

import (
    "context"
    "errors"
    "net/http/httptest"
    "testing"
    "time"

    rlrepo "github.com/iyunix/go-supportchat/internal/repository/ratelimit"
    "github.com/iyunix/go-supportchat/internal/testutil"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *clock {
    return &clock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func TestDatabaseRateLimiter_TwentyFirstRequestRejected(t *testing.T) {
    c := newClock()
    repo := rlrepo.NewRateLimitRepository(testutil.NewTestDB(t))
    limiter := NewDatabaseRateLimiter(repo, DefaultConfig(), testutil.NopLogger{}, nil).WithClock(c.now)
    ctx := context.Background()

    for i := 1; i <= 20; i++ {
        if !limiter.Check(ctx, "10.0.0.1", FunctionChatSupport) {
            t.Fatalf("request %d rejected", i)
        }
        c.advance(time.Second)
    }
    if limiter.Check(ctx, "10.0.0.1", FunctionChatSupport) {
        t.Fatal("21st request within the window was allowed")
    }

    c.advance(61 * time.Second)
    if !limiter.Check(ctx, "10.0.0.1", FunctionChatSupport) {
        t.Error("request after the window should be allowed")
    }
}

type failingRepo struct{}

func (failingRepo) Hit(ctx context.Context, ip, fn string, now time.Time, window time.Duration, max int) (bool, error) {
    return false, errors.New("database is locked")
}

func (failingRepo) PruneExpired(ctx context.Context, cutoff time.Time) (int64, error) {
    return 0, errors.New("database is locked")
}

func TestDatabaseRateLimiter_FailsOpen(t *testing.T) {
    limiter := NewDatabaseRateLimiter(failingRepo{}, DefaultConfig(), testutil.NopLogger{}, nil)
    for i := 0; i < 50; i++ {
        if !limiter.Check(context.Background(), "ip", FunctionChatSupport) {
            t.Fatal("storage failure must allow the request")
        }
    }
}

func TestMemoryRateLimiter_Window(t *testing.T) {
    c := newClock()
    limiter := NewMemoryRateLimiter(&Config{WindowSize: time.Minute, MaxRequests: 3, CleanupPeriod: time.Hour}, nil).WithClock(c.now)
    defer limiter.Close()
    ctx := context.Background()

    for i := 0; i < 3; i++ {
        if !limiter.Check(ctx, "ip", FunctionJobFilter) {
            t.Fatalf("request %d rejected", i+1)
        }
    }
    if limiter.Check(ctx, "ip", FunctionJobFilter) {
        t.Fatal("4th request allowed")
    }
    if !limiter.Check(ctx, "ip", FunctionChatSupport) {
        t.Error("separate function should not share the window")
    }

    c.advance(time.Minute)
    if !limiter.Check(ctx, "ip", FunctionJobFilter) {
        t.Error("window should reset")
    }

    c.advance(2 * time.Minute)
    if n, _ := limiter.Prune(ctx); n != 2 {
        t.Errorf("pruned %d windows, want 2", n)
    }
}

func TestGetClientIP(t *testing.T) {
    tests := []struct {
        name       string
        forwarded  string
        realIP     string
        remoteAddr string
        want       string
    }{
        {"forwarded chain", "203.0.113.5, 10.0.0.1", "", "127.0.0.1:1234", "203.0.113.5"},
        {"real ip header", "", "198.51.100.7", "127.0.0.1:1234", "198.51.100.7"},
        {"remote addr", "", "", "192.0.2.1:5555", "192.0.2.1"},
        {"remote addr without port", "", "", "192.0.2.1", "192.0.2.1"},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            r := httptest.NewRequest("POST", "/", nil)
            r.RemoteAddr = tt.remoteAddr
            if tt.forwarded != "" {
                r.Header.Set("X-Forwarded-For", tt.forwarded)
            }
            if tt.realIP != "" {
                r.Header.Set("X-Real-IP", tt.realIP)
            }
            if got := GetClientIP(r); got != tt.want {
                t.Errorf("GetClientIP() = %q, want %q", got, tt.want)
            }
        })
    }
}
