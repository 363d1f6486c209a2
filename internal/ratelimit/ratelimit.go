// File: internal/ratelimit/ratelimit.go
package ratelimit

import (
    "context"
    "net"
    "net/http"
    "strings"
    "sync"
    "time"

    "github.com/iyunix/go-supportchat/internal/metrics"
    rlrepo "github.com/iyunix/go-supportchat/internal/repository/ratelimit"
)

// Function names sharing the limiter.
const (
    FunctionChatSupport = "chat-support"
    FunctionJobFilter   = "job-filter"
)

// Limiter decides whether one more request from ip to functionName fits in the current window.
// Implementations fail open: a storage problem allows the request.
type Limiter interface {
    Check(ctx context.Context, ip, functionName string) bool
}

// Logger is the logging surface the limiters need
type Logger interface {
    Info(msg string, keysAndValues ...interface{})
    Error(msg string, keysAndValues ...interface{})
    Debug(msg string, keysAndValues ...interface{})
    Warn(msg string, keysAndValues ...interface{})
}

// Config holds rate limiting configuration
type Config struct {
    WindowSize    time.Duration // Time window for rate limiting
    MaxRequests   int           // Maximum requests per window
    CleanupPeriod time.Duration // How often the memory backend drops old entries
}

// DefaultConfig returns the limits applied to public chat endpoints
func DefaultConfig() *Config {
    return &Config{
        WindowSize:    60 * time.Second,
        MaxRequests:   20,
        CleanupPeriod: 5 * time.Minute,
    }
}

// DatabaseRateLimiter keeps windows in the shared database so limits hold across instances
type DatabaseRateLimiter struct {
    repo    rlrepo.RateLimitRepository
    config  *Config
    logger  Logger
    metrics *metrics.Metrics
    now     func() time.Time
}

func NewDatabaseRateLimiter(repo rlrepo.RateLimitRepository, config *Config, logger Logger, m *metrics.Metrics) *DatabaseRateLimiter {
    return &DatabaseRateLimiter{
        repo:    repo,
        config:  config,
        logger:  logger,
        metrics: m,
        now:     time.Now,
    }
}

// WithClock overrides the time source
func (rl *DatabaseRateLimiter) WithClock(now func() time.Time) *DatabaseRateLimiter {
    rl.now = now
    return rl
}

func (rl *DatabaseRateLimiter) Check(ctx context.Context, ip, functionName string) bool {
    allowed, err := rl.repo.Hit(ctx, ip, functionName, rl.now(), rl.config.WindowSize, rl.config.MaxRequests)
    if err != nil {
        rl.logger.Error("rate limit check failed, allowing request",
            "function", functionName, "ip", ip, "error", err)
        rl.metrics.RecordRateLimit(functionName, true)
        return true
    }
    if !allowed {
        rl.logger.Warn("rate limit exceeded", "function", functionName, "ip", ip)
    }
    rl.metrics.RecordRateLimit(functionName, allowed)
    return allowed
}

// Prune removes windows that can no longer affect a decision
func (rl *DatabaseRateLimiter) Prune(ctx context.Context) (int64, error) {
    return rl.repo.PruneExpired(ctx, rl.now().Add(-rl.config.WindowSize))
}

// window tracks requests for one ip/function key
type window struct {
    Count     int
    FirstSeen time.Time
}

// MemoryRateLimiter implements in-memory rate limiting for single-instance deployments
type MemoryRateLimiter struct {
    config  *Config
    windows map[string]*window
    mu      sync.Mutex
    stopCh  chan struct{}
    metrics *metrics.Metrics
    now     func() time.Time
}

// NewMemoryRateLimiter creates a new in-memory rate limiter
func NewMemoryRateLimiter(config *Config, m *metrics.Metrics) *MemoryRateLimiter {
    limiter := &MemoryRateLimiter{
        config:  config,
        windows: make(map[string]*window),
        stopCh:  make(chan struct{}),
        metrics: m,
        now:     time.Now,
    }

    // Start cleanup goroutine
    go limiter.cleanupLoop()

    return limiter
}

// WithClock overrides the time source
func (rl *MemoryRateLimiter) WithClock(now func() time.Time) *MemoryRateLimiter {
    rl.mu.Lock()
    defer rl.mu.Unlock()
    rl.now = now
    return rl
}

func (rl *MemoryRateLimiter) Check(ctx context.Context, ip, functionName string) bool {
    rl.mu.Lock()
    defer rl.mu.Unlock()

    now := rl.now()
    key := functionName + "|" + ip
    w, exists := rl.windows[key]

    // New key or the window has run its course
    if !exists || now.Sub(w.FirstSeen) >= rl.config.WindowSize {
        rl.windows[key] = &window{Count: 1, FirstSeen: now}
        rl.metrics.RecordRateLimit(functionName, true)
        return true
    }

    if w.Count >= rl.config.MaxRequests {
        rl.metrics.RecordRateLimit(functionName, false)
        return false
    }
    w.Count++
    rl.metrics.RecordRateLimit(functionName, true)
    return true
}

// Prune drops expired windows and reports how many were removed
func (rl *MemoryRateLimiter) Prune(ctx context.Context) (int64, error) {
    return rl.cleanup(), nil
}

// cleanupLoop periodically removes old records
func (rl *MemoryRateLimiter) cleanupLoop() {
    ticker := time.NewTicker(rl.config.CleanupPeriod)
    defer ticker.Stop()

    for {
        select {
        case <-ticker.C:
            rl.cleanup()
        case <-rl.stopCh:
            return
        }
    }
}

// cleanup removes expired records
func (rl *MemoryRateLimiter) cleanup() int64 {
    rl.mu.Lock()
    defer rl.mu.Unlock()

    now := rl.now()
    var removed int64
    for key, w := range rl.windows {
        if now.Sub(w.FirstSeen) >= rl.config.WindowSize {
            delete(rl.windows, key)
            removed++
        }
    }
    return removed
}

// Close stops the cleanup goroutine
func (rl *MemoryRateLimiter) Close() {
    close(rl.stopCh)
}

// GetClientIP extracts the real client IP from request
func GetClientIP(r *http.Request) string {
    // Check for forwarded IP (behind proxy/load balancer)
    forwarded := r.Header.Get("X-Forwarded-For")
    if forwarded != "" {
        // Take the first IP in case of multiple
        if ip := parseFirstIP(forwarded); ip != "" {
            return ip
        }
    }

    // Check for real IP header
    realIP := r.Header.Get("X-Real-IP")
    if realIP != "" {
        return realIP
    }

    // Fall back to remote address
    ip, _, err := net.SplitHostPort(r.RemoteAddr)
    if err != nil {
        return r.RemoteAddr
    }
    return ip
}

// parseFirstIP extracts the first valid IP from a comma-separated list
func parseFirstIP(forwarded string) string {
    ips := strings.Split(forwarded, ",")
    if len(ips) > 0 {
        return strings.TrimSpace(ips[0])
    }
    return ""
}
