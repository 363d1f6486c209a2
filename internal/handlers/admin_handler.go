// File: internal/handlers/admin_handler.go
package handlers

import (
    "context"
    "errors"
    "net/http"

    "github.com/gorilla/mux"

    "github.com/iyunix/go-supportchat/internal/domain"
    "github.com/iyunix/go-supportchat/internal/dtos"
    "github.com/iyunix/go-supportchat/internal/middleware"
    "github.com/iyunix/go-supportchat/internal/repository/conversation"
    "github.com/iyunix/go-supportchat/internal/repository/thread"
    "github.com/iyunix/go-supportchat/internal/services/admin_services"
    "github.com/iyunix/go-supportchat/internal/services/reaper"
)

type AdminService interface {
    ChangeRole(ctx context.Context, conversationID, role string) (*domain.Conversation, error)
    CloseConversation(ctx context.Context, conversationID string) (bool, error)
    CloseThread(ctx context.Context, threadID string) error
    Threads(ctx context.Context, conversationID string) ([]domain.ConversationThread, error)
    Stats(ctx context.Context) (*admin_services.Stats, error)
}

type Sweeper interface {
    Sweep(ctx context.Context) (reaper.SweepResult, error)
}

type AdminHandler struct {
    adminService AdminService
    sweeper      Sweeper
    logger       Logger
}

func NewAdminHandler(adminService AdminService, sweeper Sweeper, logger Logger) *AdminHandler {
    return &AdminHandler{
        adminService: adminService,
        sweeper:      sweeper,
        logger:       logger,
    }
}

// Sweep runs the timeout reaper once.
func (h *AdminHandler) Sweep(w http.ResponseWriter, r *http.Request) {
    res, err := h.sweeper.Sweep(r.Context())
    if err != nil {
        h.logger.Error("manual sweep failed", "error", err)
        writeError(w, "Sweep failed", http.StatusInternalServerError)
        return
    }
    h.logger.Info("manual sweep", "admin", middleware.AdminSubject(r.Context()), "expired", res.Expired)
    writeJSON(w, http.StatusOK, dtos.SweepResponseDTO{ExpiredCount: res.Expired, PrunedWindows: res.PrunedWindows})
}

func (h *AdminHandler) CloseConversation(w http.ResponseWriter, r *http.Request) {
    id := mux.Vars(r)["id"]

    changed, err := h.adminService.CloseConversation(r.Context(), id)
    if err != nil {
        h.writeAdminError(w, "close conversation", err)
        return
    }
    writeJSON(w, http.StatusOK, dtos.CloseResponseDTO{ConversationID: id, Changed: changed})
}

func (h *AdminHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
    var req dtos.ChangeRoleRequestDTO
    if err := decodeJSON(w, r, &req); err != nil {
        writeError(w, "Invalid request body", http.StatusBadRequest)
        return
    }

    conv, err := h.adminService.ChangeRole(r.Context(), mux.Vars(r)["id"], req.Role)
    if err != nil {
        h.writeAdminError(w, "change role", err)
        return
    }
    h.logger.Info("role changed", "admin", middleware.AdminSubject(r.Context()), "conversation_id", conv.ID, "role", conv.Role)
    writeJSON(w, http.StatusOK, dtos.ToAdminConversation(*conv))
}

func (h *AdminHandler) CloseThread(w http.ResponseWriter, r *http.Request) {
    if err := h.adminService.CloseThread(r.Context(), mux.Vars(r)["id"]); err != nil {
        h.writeAdminError(w, "close thread", err)
        return
    }
    w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) ListThreads(w http.ResponseWriter, r *http.Request) {
    id := mux.Vars(r)["id"]

    threads, err := h.adminService.Threads(r.Context(), id)
    if err != nil {
        h.writeAdminError(w, "list threads", err)
        return
    }
    writeJSON(w, http.StatusOK, dtos.ToThreadList(id, threads))
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
    stats, err := h.adminService.Stats(r.Context())
    if err != nil {
        h.writeAdminError(w, "stats", err)
        return
    }
    writeJSON(w, http.StatusOK, dtos.ToStats(stats.Conversations, stats.Messages))
}

func (h *AdminHandler) writeAdminError(w http.ResponseWriter, action string, err error) {
    switch {
    case errors.Is(err, admin_services.ErrInvalidRole):
        writeError(w, err.Error(), http.StatusBadRequest)
    case errors.Is(err, conversation.ErrConversationNotFound):
        writeError(w, "Conversation not found", http.StatusNotFound)
    case errors.Is(err, thread.ErrThreadNotFound):
        writeError(w, "Thread not found", http.StatusNotFound)
    default:
        h.logger.Error("admin action failed", "action", action, "error", err)
        writeError(w, "Failed to "+action, http.StatusInternalServerError)
    }
}
