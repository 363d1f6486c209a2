// File: cmd/server/app.go
package main

import (
    "context"
    "fmt"
    "net/http"
    "time"

    "github.com/gorilla/mux"
    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/promhttp"
    "gorm.io/gorm"

    "github.com/iyunix/go-supportchat/internal/auth"
    "github.com/iyunix/go-supportchat/internal/config"
    "github.com/iyunix/go-supportchat/internal/handlers"
    "github.com/iyunix/go-supportchat/internal/metrics"
    "github.com/iyunix/go-supportchat/internal/middleware"
    "github.com/iyunix/go-supportchat/internal/ratelimit"
    "github.com/iyunix/go-supportchat/internal/repository/conversation"
    "github.com/iyunix/go-supportchat/internal/repository/message"
    rlrepo "github.com/iyunix/go-supportchat/internal/repository/ratelimit"
    "github.com/iyunix/go-supportchat/internal/repository/thread"
    "github.com/iyunix/go-supportchat/internal/services"
    "github.com/iyunix/go-supportchat/internal/services/admin_services"
    "github.com/iyunix/go-supportchat/internal/services/ai"
    "github.com/iyunix/go-supportchat/internal/services/chat"
    "github.com/iyunix/go-supportchat/internal/services/jobfilter"
    "github.com/iyunix/go-supportchat/internal/services/notify"
    "github.com/iyunix/go-supportchat/internal/services/reaper"
)

// limiterBackend is a rate limiter the reaper can also prune.
type limiterBackend interface {
    ratelimit.Limiter
    reaper.WindowPruner
}

// application aggregates all services and handlers
type application struct {
    config     *config.Config
    logger     services.Logger
    registry   *prometheus.Registry
    metrics    *metrics.Metrics
    limiter    limiterBackend
    dispatcher *notify.Dispatcher
    reaper     *reaper.Reaper

    healthHandler *handlers.HealthHandler
    chatHandler   *handlers.ChatHandler
    adminHandler  *handlers.AdminHandler
    jobsHandler   *handlers.JobsHandler
    logHandler    *handlers.LogHandler

    stopSweeps func()
}

// newApplication wires repositories, services and handlers around an open database.
// The completion and e-mail providers are passed in so tests can substitute fakes.
func newApplication(cfg *config.Config, db *gorm.DB, completer ai.CompletionProvider, emailProvider notify.Provider, logger services.Logger) (*application, error) {
    registry := prometheus.NewRegistry()
    m := metrics.NewMetrics(registry)

    // --- Repositories ---
    conversationRepo := conversation.NewConversationRepository(db)
    messageRepo := message.NewMessageRepository(db)
    threadRepo := thread.NewThreadRepository(db)

    // --- Rate limiting ---
    rlConfig := &ratelimit.Config{
        WindowSize:    cfg.RateLimitWindow,
        MaxRequests:   cfg.RateLimitMax,
        CleanupPeriod: ratelimit.DefaultConfig().CleanupPeriod,
    }
    var limiter limiterBackend
    if cfg.RateLimitBackend == "memory" {
        limiter = ratelimit.NewMemoryRateLimiter(rlConfig, m)
    } else {
        limiter = ratelimit.NewDatabaseRateLimiter(rlrepo.NewRateLimitRepository(db), rlConfig, logger, m)
    }

    // --- Notifications ---
    notifyDefaults := notify.DefaultConfig()
    retry := &notify.RetryConfig{MaxAttempts: notifyDefaults.MaxRetries, Delay: notifyDefaults.RetryDelay}
    dispatcher := notify.NewDispatcher(emailProvider, retry, notifyDefaults.QueueSize, logger, m)
    notifier := notify.NewService(emailProvider, dispatcher, retry, cfg.StaffEmail, logger)

    // --- Services ---
    hasher, err := auth.NewSecretHasher(cfg.SecretHashCost)
    if err != nil {
        return nil, fmt.Errorf("secret hasher: %w", err)
    }

    chatConfig := chat.DefaultConfig()
    chatConfig.SystemPrompt = cfg.SystemPrompt
    chatConfig.UpstreamTimeout = cfg.UpstreamTimeout
    chatService, err := chat.NewService(chatConfig, conversationRepo, messageRepo, threadRepo, limiter, completer, notifier, hasher, logger, m)
    if err != nil {
        return nil, fmt.Errorf("chat service: %w", err)
    }

    adminService := admin_services.NewAdminService(conversationRepo, messageRepo, threadRepo, m)
    sweeper := reaper.New(conversationRepo, limiter, logger, m)
    filter := jobfilter.NewService(completer, cfg.UpstreamTimeout, logger)

    sqlDB, err := db.DB()
    if err != nil {
        return nil, fmt.Errorf("database handle: %w", err)
    }

    return &application{
        config:        cfg,
        logger:        logger,
        registry:      registry,
        metrics:       m,
        limiter:       limiter,
        dispatcher:    dispatcher,
        reaper:        sweeper,
        healthHandler: handlers.NewHealthHandler(sqlDB),
        chatHandler:   handlers.NewChatHandler(chatService, logger),
        adminHandler:  handlers.NewAdminHandler(adminService, sweeper, logger),
        jobsHandler:   handlers.NewJobsHandler(filter, logger),
        logHandler:    handlers.NewLogHandler(logger),
    }, nil
}

func (app *application) routes() http.Handler {
    r := mux.NewRouter()

    r.Use(middleware.CORS)
    r.Use(middleware.RecoverPanic(app.logger))
    r.Use(middleware.LoggingMiddleware(app.logger, app.metrics))

    // --- Public Routes ---
    r.HandleFunc("/health", app.healthHandler.Health).Methods(http.MethodGet)
    r.Handle("/metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
    r.HandleFunc("/api/log", app.logHandler.LogFrontendEvent).Methods(http.MethodPost)

    chatRoutes := r.PathPrefix("/api/chat").Subrouter()
    chatRoutes.HandleFunc("/register", app.chatHandler.Register).Methods(http.MethodPost)
    chatRoutes.HandleFunc("/send", app.chatHandler.SendMessage).Methods(http.MethodPost)
    chatRoutes.HandleFunc("/history", app.chatHandler.GetHistory).Methods(http.MethodPost)
    chatRoutes.HandleFunc("/close", app.chatHandler.CloseConversation).Methods(http.MethodPost)
    chatRoutes.HandleFunc("/threads", app.chatHandler.OpenThread).Methods(http.MethodPost)
    chatRoutes.HandleFunc("/export", app.chatHandler.ExportTranscript).Methods(http.MethodPost)

    jobRoutes := r.PathPrefix("/api/jobs").Subrouter()
    jobRoutes.Use(middleware.RateLimitMiddleware(app.limiter, ratelimit.FunctionJobFilter, app.logger))
    jobRoutes.HandleFunc("/filter", app.jobsHandler.Filter).Methods(http.MethodPost)

    // --- Admin Routes ---
    adminRoutes := r.PathPrefix("/api/admin").Subrouter()
    adminRoutes.Use(middleware.RequireAdmin([]byte(app.config.AdminJWTSecret), app.logger))
    adminRoutes.HandleFunc("/sweep", app.adminHandler.Sweep).Methods(http.MethodPost)
    adminRoutes.HandleFunc("/stats", app.adminHandler.Stats).Methods(http.MethodGet)
    adminRoutes.HandleFunc("/conversations/{id}/close", app.adminHandler.CloseConversation).Methods(http.MethodPost)
    adminRoutes.HandleFunc("/conversations/{id}/role", app.adminHandler.ChangeRole).Methods(http.MethodPost)
    adminRoutes.HandleFunc("/conversations/{id}/threads", app.adminHandler.ListThreads).Methods(http.MethodGet)
    adminRoutes.HandleFunc("/threads/{id}/close", app.adminHandler.CloseThread).Methods(http.MethodPost)

    r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.Header().Set("Content-Type", "application/json")
        w.WriteHeader(http.StatusNotFound)
        _, _ = w.Write([]byte(`{"error":"Not Found"}`))
    })
    return r
}

// startSweeps schedules the reaper when SWEEP_SCHEDULE is set.
func (app *application) startSweeps() error {
    if app.config.SweepSchedule == "" {
        return nil
    }
    stop, err := app.reaper.Schedule(app.config.SweepSchedule, time.Minute)
    if err != nil {
        return err
    }
    app.stopSweeps = stop
    return nil
}

// shutdown stops background work: scheduled sweeps, the notification queue and the memory limiter.
func (app *application) shutdown(ctx context.Context) {
    if app.stopSweeps != nil {
        app.stopSweeps()
    }
    if err := app.dispatcher.Close(ctx); err != nil {
        app.logger.Warn("notification queue not fully drained", "error", err)
    }
    if mem, ok := app.limiter.(*ratelimit.MemoryRateLimiter); ok {
        mem.Close()
    }
}
