// File: internal/services/chat/config.go
package chat

import (
    "fmt"
    "time"
)

type Config struct {
    SystemPrompt    string        // Prepended to every completion request
    UpstreamTimeout time.Duration // Bound on a single completion call

    MaxMessageLength int // In runes, after trimming
    MaxThreadName    int
}

func (c *Config) Validate() error {
    if c.UpstreamTimeout <= 0 {
        return fmt.Errorf("upstream_timeout must be positive")
    }
    if c.MaxMessageLength <= 0 {
        return fmt.Errorf("max_message_length must be positive")
    }
    if c.MaxThreadName <= 0 {
        return fmt.Errorf("max_thread_name must be positive")
    }
    return nil
}

func DefaultConfig() *Config {
    return &Config{
        SystemPrompt:     "You are a helpful support assistant.",
        UpstreamTimeout:  30 * time.Second,
        MaxMessageLength: 2000,
        MaxThreadName:    100,
    }
}
