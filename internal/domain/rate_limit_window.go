// File: internal/domain/rate_limit_window.go
package domain

import "time"

// RateLimitWindow counts requests for one (ip, function) key.
// The unique index keeps at most one live window per key; stale rows are purged lazily.
type RateLimitWindow struct {
    ID           uint      `gorm:"primaryKey"`
    IPAddress    string    `gorm:"not null;size:64;uniqueIndex:ux_rate_limit_key,priority:1"`
    FunctionName string    `gorm:"not null;size:64;uniqueIndex:ux_rate_limit_key,priority:2"`
    WindowStart  time.Time `gorm:"not null;index"`
    RequestCount int       `gorm:"not null;default:0"`
}
