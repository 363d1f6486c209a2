// File: internal/services/notify/config.go
package notify

import (
    "fmt"
    "time"
)

type Config struct {
    APIKey     string
    APIURL     string
    From       string
    StaffEmail string // empty disables staff notifications
    Timeout    time.Duration
    MaxRetries int
    RetryDelay time.Duration
    QueueSize  int
}

func (c *Config) Validate() error {
    if c.APIKey == "" {
        return fmt.Errorf("EMAIL_API_KEY is required")
    }
    if c.APIURL == "" {
        return fmt.Errorf("EMAIL_API_URL is required")
    }
    if c.From == "" {
        return fmt.Errorf("EMAIL_FROM is required")
    }
    return nil
}

func DefaultConfig() *Config {
    return &Config{
        Timeout:    10 * time.Second,
        MaxRetries: 3,
        RetryDelay: 500 * time.Millisecond,
        QueueSize:  100,
    }
}
