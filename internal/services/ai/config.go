// File: internal/services/ai/config.go
package ai

import (
    "fmt"
    "time"
)

type Config struct {
    LLMKey     string
    LLMBaseURL string
    Model      string

    // Timeout bounds a single completion call
    Timeout time.Duration

    // Model Parameters
    Temperature float32
    MaxTokens   int
}

func (c *Config) Validate() error {
    if c.LLMKey == "" {
        return fmt.Errorf("LLM_API_KEY is required")
    }
    if c.Model == "" {
        return fmt.Errorf("CHAT_MODEL is required")
    }
    if c.Timeout <= 0 {
        return fmt.Errorf("timeout must be positive")
    }
    return nil
}

func DefaultConfig() *Config {
    return &Config{
        LLMBaseURL:  "https://api.openai.com/v1",
        Model:       "gpt-4o-mini",
        Timeout:     30 * time.Second,
        Temperature: 0.3,
        MaxTokens:   800,
    }
}
