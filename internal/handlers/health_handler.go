// File: internal/handlers/health_handler.go
package handlers

import (
    "context"
    "net/http"
    "time"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
    PingContext(ctx context.Context) error
}

type HealthHandler struct {
    db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
    return &HealthHandler{db: db}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
    ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
    defer cancel()

    if h.db != nil {
        if err := h.db.PingContext(ctx); err != nil {
            writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "database": "down"})
            return
        }
    }
    writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
