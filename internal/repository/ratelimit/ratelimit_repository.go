// File: internal/repository/ratelimit/ratelimit_repository.go
package ratelimit

import (
    "context"
    "fmt"
    "log"
    "time"

    "gorm.io/gorm"
    "gorm.io/gorm/clause"

    "github.com/iyunix/go-supportchat/internal/domain"
)

type gormRateLimitRepository struct {
    db *gorm.DB
}

func NewRateLimitRepository(db *gorm.DB) RateLimitRepository {
    return &gormRateLimitRepository{db: db}
}

func (r *gormRateLimitRepository) Hit(ctx context.Context, ip, functionName string, now time.Time, window time.Duration, max int) (bool, error) {
    now = now.UTC()
    allowed := false

    err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
        // Drop the key's window once it has run its course.
        if err := tx.Where("ip_address = ? AND function_name = ? AND window_start <= ?", ip, functionName, now.Add(-window)).
            Delete(&domain.RateLimitWindow{}).Error; err != nil {
            return fmt.Errorf("purge stale window: %w", err)
        }

        row := domain.RateLimitWindow{IPAddress: ip, FunctionName: functionName, WindowStart: now}
        if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
            return fmt.Errorf("open window: %w", err)
        }

        // Increment only while under the cap; a zero row count means the window is full.
        result := tx.Model(&domain.RateLimitWindow{}).
            Where("ip_address = ? AND function_name = ? AND request_count < ?", ip, functionName, max).
            UpdateColumn("request_count", gorm.Expr("request_count + ?", 1))
        if result.Error != nil {
            return fmt.Errorf("increment window: %w", result.Error)
        }
        allowed = result.RowsAffected == 1
        return nil
    })
    if err != nil {
        log.Printf("[RateLimitRepository] Error checking %s for %s: %v", functionName, ip, err)
        return false, err
    }
    return allowed, nil
}

func (r *gormRateLimitRepository) PruneExpired(ctx context.Context, cutoff time.Time) (int64, error) {
    result := r.db.WithContext(ctx).
        Where("window_start <= ?", cutoff.UTC()).
        Delete(&domain.RateLimitWindow{})
    if result.Error != nil {
        return 0, fmt.Errorf("prune rate limit windows: %w", result.Error)
    }
    if result.RowsAffected > 0 {
        log.Printf("[RateLimitRepository] Pruned %d expired windows", result.RowsAffected)
    }
    return result.RowsAffected, nil
}
