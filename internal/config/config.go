// File: internal/config/config.go
package config

import (
    "fmt"
    "log"
    "os"
    "strconv"
    "strings"
    "time"

    "github.com/joho/godotenv"
)

type Config struct {
    ServerPort  string
    Environment string
    LogLevel    string

    DatabaseDriver string // "sqlite" or "postgres"
    DatabaseDSN    string

    AdminJWTSecret string
    SecretHashCost int

    LLMAPIKey       string
    LLMBaseURL      string
    ChatModel       string
    SystemPrompt    string
    UpstreamTimeout time.Duration

    RateLimitBackend string // "database" or "memory"
    RateLimitWindow  time.Duration
    RateLimitMax     int

    EmailProvider string // "http" or "log"
    EmailAPIURL   string
    EmailAPIKey   string
    EmailFrom     string
    StaffEmail    string

    // SweepSchedule is a cron spec; empty disables the in-process reaper.
    SweepSchedule string
}

// DefaultSystemPrompt frames the assistant for the website chat widget.
const DefaultSystemPrompt = "You are the support assistant on our company website. " +
    "Answer questions about the company, its services and open positions politely and concisely. " +
    "If you do not know an answer, say so and offer to forward the question to the team."

// Load reads configuration from environment variables or .env file.
func Load() (*Config, error) {
    env := os.Getenv("ENV")
    if strings.ToLower(env) != "production" {
        if err := godotenv.Load(); err != nil {
            log.Println("No .env file found; continuing with environment variables")
        }
    }

    cfg := &Config{
        ServerPort:  getEnv("SERVER_PORT", "8080"),
        Environment: env,
        LogLevel:    getEnv("LOG_LEVEL", "info"),

        DatabaseDriver: strings.ToLower(getEnv("DATABASE_DRIVER", "sqlite")),
        DatabaseDSN:    getEnv("DATABASE_DSN", "supportchat.db"),

        AdminJWTSecret: getEnv("ADMIN_JWT_SECRET", ""),
        SecretHashCost: getEnvAsInt("SECRET_HASH_COST", 10),

        LLMAPIKey:       getEnv("LLM_API_KEY", ""),
        LLMBaseURL:      getEnv("LLM_BASE_URL", "https://api.openai.com/v1"),
        ChatModel:       getEnv("CHAT_MODEL", "gpt-4o-mini"),
        SystemPrompt:    getEnv("SYSTEM_PROMPT", DefaultSystemPrompt),
        UpstreamTimeout: getEnvAsDuration("UPSTREAM_TIMEOUT", 30*time.Second),

        RateLimitBackend: strings.ToLower(getEnv("RATE_LIMIT_BACKEND", "database")),
        RateLimitWindow:  getEnvAsDuration("RATE_LIMIT_WINDOW", 60*time.Second),
        RateLimitMax:     getEnvAsInt("RATE_LIMIT_MAX", 20),

        EmailProvider: strings.ToLower(getEnv("EMAIL_PROVIDER", "log")),
        EmailAPIURL:   getEnv("EMAIL_API_URL", ""),
        EmailAPIKey:   getEnv("EMAIL_API_KEY", ""),
        EmailFrom:     getEnv("EMAIL_FROM", "chat@example.com"),
        StaffEmail:    getEnv("STAFF_EMAIL", ""),

        SweepSchedule: getEnv("SWEEP_SCHEDULE", ""),
    }

    if err := cfg.Validate(); err != nil {
        return nil, err
    }
    return cfg, nil
}

// IsProduction reports whether ENV=production.
func (c *Config) IsProduction() bool {
    return strings.ToLower(c.Environment) == "production"
}

// Validate checks value ranges and, in production, the required secrets.
func (c *Config) Validate() error {
    if c.DatabaseDriver != "sqlite" && c.DatabaseDriver != "postgres" {
        return fmt.Errorf("DATABASE_DRIVER must be sqlite or postgres, got %q", c.DatabaseDriver)
    }
    if c.RateLimitBackend != "database" && c.RateLimitBackend != "memory" {
        return fmt.Errorf("RATE_LIMIT_BACKEND must be database or memory, got %q", c.RateLimitBackend)
    }
    if c.RateLimitMax <= 0 {
        return fmt.Errorf("RATE_LIMIT_MAX must be positive")
    }
    if c.RateLimitWindow <= 0 {
        return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
    }
    if c.UpstreamTimeout <= 0 {
        return fmt.Errorf("UPSTREAM_TIMEOUT must be positive")
    }
    if c.EmailProvider != "http" && c.EmailProvider != "log" {
        return fmt.Errorf("EMAIL_PROVIDER must be http or log, got %q", c.EmailProvider)
    }

    if c.IsProduction() {
        missing := []string{}
        if c.AdminJWTSecret == "" {
            missing = append(missing, "ADMIN_JWT_SECRET")
        }
        if c.LLMAPIKey == "" {
            missing = append(missing, "LLM_API_KEY")
        }
        if c.EmailProvider == "http" && c.EmailAPIURL == "" {
            missing = append(missing, "EMAIL_API_URL")
        }
        if c.EmailProvider == "http" && c.EmailAPIKey == "" {
            missing = append(missing, "EMAIL_API_KEY")
        }
        if len(missing) > 0 {
            return fmt.Errorf("missing required production environment variables: %v", missing)
        }
    }
    return nil
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
    if value, exists := os.LookupEnv(key); exists && value != "" {
        return value
    }
    return defaultValue
}

// getEnvAsInt gets an env var as an integer, with a fallback.
func getEnvAsInt(key string, defaultValue int) int {
    strValue := getEnv(key, "")
    if strValue == "" {
        return defaultValue
    }
    intValue, err := strconv.Atoi(strValue)
    if err != nil {
        log.Printf("Warning: could not parse env var %s as integer. Using default value.", key)
        return defaultValue
    }
    return intValue
}

// getEnvAsDuration accepts Go duration strings ("30s") or plain seconds ("30").
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
    strValue := getEnv(key, "")
    if strValue == "" {
        return defaultValue
    }
    if d, err := time.ParseDuration(strValue); err == nil {
        return d
    }
    if secs, err := strconv.Atoi(strValue); err == nil {
        return time.Duration(secs) * time.Second
    }
    log.Printf("Warning: could not parse env var %s as duration. Using default value.", key)
    return defaultValue
}
