// File: internal/metrics/metrics.go

// Package metrics provides Prometheus metrics for the support chat service
package metrics

import (
    "time"

    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
    // HTTP request metrics
    HTTPRequestsTotal   *prometheus.CounterVec
    HTTPRequestDuration *prometheus.HistogramVec

    // Conversation metrics
    ConversationsRegistered prometheus.Counter
    ConversationsClosed     *prometheus.CounterVec
    MessagesTotal           *prometheus.CounterVec
    QuotaRejections         prometheus.Counter

    // Rate limiting
    RateLimitDecisions *prometheus.CounterVec

    // Upstream completion calls
    UpstreamRequestsTotal   *prometheus.CounterVec
    UpstreamRequestDuration prometheus.Histogram

    // Notifications
    NotificationsTotal *prometheus.CounterVec

    // Reaper
    SweepExpiredTotal prometheus.Counter
    SweepRunsTotal    *prometheus.CounterVec
}

// NewMetrics creates all metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
    f := promauto.With(reg)
    m := &Metrics{}

    m.HTTPRequestsTotal = f.NewCounterVec(
        prometheus.CounterOpts{
            Name: "supportchat_http_requests_total",
            Help: "Total number of HTTP requests",
        },
        []string{"route", "status"},
    )

    m.HTTPRequestDuration = f.NewHistogramVec(
        prometheus.HistogramOpts{
            Name:    "supportchat_http_request_duration_seconds",
            Help:    "Duration of HTTP requests in seconds",
            Buckets: prometheus.DefBuckets,
        },
        []string{"route"},
    )

    m.ConversationsRegistered = f.NewCounter(
        prometheus.CounterOpts{
            Name: "supportchat_conversations_registered_total",
            Help: "Total number of conversations created",
        },
    )

    m.ConversationsClosed = f.NewCounterVec(
        prometheus.CounterOpts{
            Name: "supportchat_conversations_closed_total",
            Help: "Total number of conversations leaving the active state",
        },
        []string{"status"},
    )

    m.MessagesTotal = f.NewCounterVec(
        prometheus.CounterOpts{
            Name: "supportchat_messages_total",
            Help: "Total number of persisted messages",
        },
        []string{"role"},
    )

    m.QuotaRejections = f.NewCounter(
        prometheus.CounterOpts{
            Name: "supportchat_quota_rejections_total",
            Help: "Total number of messages rejected by the role quota",
        },
    )

    m.RateLimitDecisions = f.NewCounterVec(
        prometheus.CounterOpts{
            Name: "supportchat_rate_limit_decisions_total",
            Help: "Rate limiter decisions by function and outcome",
        },
        []string{"function", "outcome"},
    )

    m.UpstreamRequestsTotal = f.NewCounterVec(
        prometheus.CounterOpts{
            Name: "supportchat_upstream_requests_total",
            Help: "Total number of completion requests",
        },
        []string{"status"},
    )

    m.UpstreamRequestDuration = f.NewHistogram(
        prometheus.HistogramOpts{
            Name:    "supportchat_upstream_request_duration_seconds",
            Help:    "Duration of completion requests in seconds",
            Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 20, 30, 60},
        },
    )

    m.NotificationsTotal = f.NewCounterVec(
        prometheus.CounterOpts{
            Name: "supportchat_notifications_total",
            Help: "Staff notifications by outcome",
        },
        []string{"outcome"},
    )

    m.SweepExpiredTotal = f.NewCounter(
        prometheus.CounterOpts{
            Name: "supportchat_sweep_expired_total",
            Help: "Total number of conversations expired by the reaper",
        },
    )

    m.SweepRunsTotal = f.NewCounterVec(
        prometheus.CounterOpts{
            Name: "supportchat_sweep_runs_total",
            Help: "Reaper runs by status",
        },
        []string{"status"},
    )

    return m
}

// RecordHTTPRequest records a finished HTTP request
func (m *Metrics) RecordHTTPRequest(route string, status string, duration time.Duration) {
    if m == nil {
        return
    }
    m.HTTPRequestsTotal.WithLabelValues(route, status).Inc()
    m.HTTPRequestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

func (m *Metrics) RecordRegistration() {
    if m == nil {
        return
    }
    m.ConversationsRegistered.Inc()
}

func (m *Metrics) RecordClosed(status string) {
    if m == nil {
        return
    }
    m.ConversationsClosed.WithLabelValues(status).Inc()
}

func (m *Metrics) RecordMessage(role string) {
    if m == nil {
        return
    }
    m.MessagesTotal.WithLabelValues(role).Inc()
}

func (m *Metrics) RecordQuotaRejection() {
    if m == nil {
        return
    }
    m.QuotaRejections.Inc()
}

// RecordRateLimit records one limiter decision
func (m *Metrics) RecordRateLimit(function string, allowed bool) {
    if m == nil {
        return
    }
    outcome := "allowed"
    if !allowed {
        outcome = "rejected"
    }
    m.RateLimitDecisions.WithLabelValues(function, outcome).Inc()
}

// RecordUpstream records a completion call
func (m *Metrics) RecordUpstream(status string, duration time.Duration) {
    if m == nil {
        return
    }
    m.UpstreamRequestsTotal.WithLabelValues(status).Inc()
    m.UpstreamRequestDuration.Observe(duration.Seconds())
}

func (m *Metrics) RecordNotification(outcome string) {
    if m == nil {
        return
    }
    m.NotificationsTotal.WithLabelValues(outcome).Inc()
}

// RecordSweep records a reaper run and how many conversations it expired
func (m *Metrics) RecordSweep(expired int64, err error) {
    if m == nil {
        return
    }
    if err != nil {
        m.SweepRunsTotal.WithLabelValues("error").Inc()
        return
    }
    m.SweepRunsTotal.WithLabelValues("ok").Inc()
    m.SweepExpiredTotal.Add(float64(expired))
}
