// File: cmd/server/main.go
package main

import (
    "context"
    "log"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/iyunix/go-supportchat/internal/config"
    "github.com/iyunix/go-supportchat/internal/database"
    "github.com/iyunix/go-supportchat/internal/services"
    "github.com/iyunix/go-supportchat/internal/services/ai"
    "github.com/iyunix/go-supportchat/internal/services/notify"
)

func main() {
    cfg, err := config.Load()
    if err != nil {
        log.Fatalf("Configuration error: %v", err)
    }
    logger := services.NewLogger("supportchat")

    db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN, false)
    if err != nil {
        log.Fatalf("DB Error: %v", err)
    }
    if err := database.Migrate(db); err != nil {
        log.Fatalf("DB Migration Error: %v", err)
    }

    aiConfig := ai.DefaultConfig()
    aiConfig.LLMKey = cfg.LLMAPIKey
    aiConfig.LLMBaseURL = cfg.LLMBaseURL
    aiConfig.Model = cfg.ChatModel
    aiConfig.Timeout = cfg.UpstreamTimeout
    if err := aiConfig.Validate(); err != nil {
        if cfg.IsProduction() {
            log.Fatalf("FATAL: Invalid AI configuration: %v", err)
        }
        logger.Warn("AI provider is not configured; replies will fail", "error", err)
    }
    completer := ai.NewOpenAIProvider(aiConfig)

    var emailProvider notify.Provider
    if cfg.EmailProvider == "http" {
        notifyConfig := notify.DefaultConfig()
        notifyConfig.APIKey = cfg.EmailAPIKey
        notifyConfig.APIURL = cfg.EmailAPIURL
        notifyConfig.From = cfg.EmailFrom
        notifyConfig.StaffEmail = cfg.StaffEmail
        if err := notifyConfig.Validate(); err != nil {
            log.Fatalf("FATAL: Invalid e-mail configuration: %v", err)
        }
        emailProvider = notify.NewHTTPProvider(notifyConfig)
    } else {
        emailProvider = notify.NewLogProvider(logger)
    }

    app, err := newApplication(cfg, db, completer, emailProvider, logger)
    if err != nil {
        log.Fatalf("FATAL: Failed to initialize application: %v", err)
    }
    if err := app.startSweeps(); err != nil {
        log.Fatalf("FATAL: %v", err)
    }

    srv := &http.Server{
        Addr:              ":" + cfg.ServerPort,
        Handler:           app.routes(),
        ReadHeaderTimeout: 10 * time.Second,
        // Sends wait on the completion service, so the write timeout sits above it.
        WriteTimeout: cfg.UpstreamTimeout + 15*time.Second,
    }

    logger.Info("server starting",
        "port", cfg.ServerPort,
        "database", cfg.DatabaseDriver,
        "rate_limit_backend", cfg.RateLimitBackend,
        "email_provider", cfg.EmailProvider,
        "sweep_schedule", cfg.SweepSchedule)

    go func() {
        if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
            log.Fatalf("Server startup failed: %v", err)
        }
    }()

    // --- Graceful Shutdown ---
    stop := make(chan os.Signal, 1)
    signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
    <-stop

    logger.Info("shutting down server")
    ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
    defer cancel()

    if err := srv.Shutdown(ctx); err != nil {
        logger.Error("server shutdown failed", "error", err)
    }
    app.shutdown(ctx)
    if err := database.Close(db); err != nil {
        logger.Warn("database close failed", "error", err)
    }
    logger.Info("server stopped")
}
