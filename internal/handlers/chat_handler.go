// File: internal/handlers/chat_handler.go
package handlers

import (
    "context"
    "fmt"
    "net/http"

    "github.com/iyunix/go-supportchat/internal/domain"
    "github.com/iyunix/go-supportchat/internal/dtos"
    "github.com/iyunix/go-supportchat/internal/ratelimit"
    "github.com/iyunix/go-supportchat/internal/services/chat"
)

// ChatService is the conversation protocol the widget talks to.
type ChatService interface {
    Register(name, email string) (chat.Identity, error)
    SendMessage(ctx context.Context, req chat.SendRequest) (*chat.SendResult, error)
    GetHistory(ctx context.Context, conversationID, secret string, threadID *string) (*chat.HistoryResult, error)
    CloseConversation(ctx context.Context, conversationID, secret string) error
    OpenThread(ctx context.Context, conversationID, secret, name string) (*domain.ConversationThread, error)
    ExportTranscript(ctx context.Context, req chat.ExportRequest) (*chat.ExportResult, error)
}

type ChatHandler struct {
    chatService ChatService
    logger      Logger
}

func NewChatHandler(cs ChatService, logger Logger) *ChatHandler {
    return &ChatHandler{
        chatService: cs,
        logger:      logger,
    }
}

// Register validates the widget's start form. No conversation is created until the first message.
func (h *ChatHandler) Register(w http.ResponseWriter, r *http.Request) {
    var req dtos.RegisterRequestDTO
    if err := decodeJSON(w, r, &req); err != nil {
        writeError(w, "Invalid request body", http.StatusBadRequest)
        return
    }

    identity, err := h.chatService.Register(req.Name, req.Email)
    if err != nil {
        writeServiceError(w, err)
        return
    }
    writeJSON(w, http.StatusOK, dtos.RegisterResponseDTO{Name: identity.Name, Email: identity.Email})
}

// SendMessage handles one user message and returns the assistant reply.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
    var req dtos.SendMessageRequestDTO
    if err := decodeJSON(w, r, &req); err != nil {
        writeError(w, "Invalid request body", http.StatusBadRequest)
        return
    }

    result, err := h.chatService.SendMessage(r.Context(), chat.SendRequest{
        ConversationID: req.ConversationID,
        Secret:         req.Secret,
        Name:           req.Name,
        Email:          req.Email,
        Text:           req.Text,
        ClientIP:       ratelimit.GetClientIP(r),
    })
    if err != nil {
        status, errType := statusFor(err)
        if status >= http.StatusInternalServerError {
            h.logger.Error("send message failed", "status", status, "error", err)
        }
        body := dtos.CreateErrorResponse(errorMessage(err, status), errType)
        if result != nil {
            body.ConversationID = result.ConversationID
            body.Secret = result.Secret
        }
        writeJSON(w, status, body)
        return
    }

    writeJSON(w, http.StatusOK, dtos.SendMessageResponseDTO{
        Reply:          result.Reply,
        ConversationID: result.ConversationID,
        Secret:         result.Secret,
    })
}

// GetHistory returns the message log, optionally narrowed to one thread.
func (h *ChatHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
    var req dtos.HistoryRequestDTO
    if err := decodeJSON(w, r, &req); err != nil {
        writeError(w, "Invalid request body", http.StatusBadRequest)
        return
    }

    history, err := h.chatService.GetHistory(r.Context(), req.ConversationID, req.Secret, req.ThreadID)
    if err != nil {
        writeServiceError(w, err)
        return
    }
    writeJSON(w, http.StatusOK, dtos.HistoryResponseDTO{
        ConversationID: history.Conversation.ID,
        Status:         string(history.Conversation.Status),
        Messages:       dtos.FromMessageSlice(history.Messages),
    })
}

func (h *ChatHandler) CloseConversation(w http.ResponseWriter, r *http.Request) {
    var req dtos.ConversationAuthDTO
    if err := decodeJSON(w, r, &req); err != nil {
        writeError(w, "Invalid request body", http.StatusBadRequest)
        return
    }

    if err := h.chatService.CloseConversation(r.Context(), req.ConversationID, req.Secret); err != nil {
        writeServiceError(w, err)
        return
    }
    w.WriteHeader(http.StatusNoContent)
}

func (h *ChatHandler) OpenThread(w http.ResponseWriter, r *http.Request) {
    var req dtos.OpenThreadRequestDTO
    if err := decodeJSON(w, r, &req); err != nil {
        writeError(w, "Invalid request body", http.StatusBadRequest)
        return
    }

    th, err := h.chatService.OpenThread(r.Context(), req.ConversationID, req.Secret, req.Name)
    if err != nil {
        writeServiceError(w, err)
        return
    }
    writeJSON(w, http.StatusCreated, dtos.FromThread(*th))
}

// ExportTranscript streams the transcript as an attachment, or mails it and answers 202.
func (h *ChatHandler) ExportTranscript(w http.ResponseWriter, r *http.Request) {
    var req dtos.ExportRequestDTO
    if err := decodeJSON(w, r, &req); err != nil {
        writeError(w, "Invalid request body", http.StatusBadRequest)
        return
    }

    result, err := h.chatService.ExportTranscript(r.Context(), chat.ExportRequest{
        ConversationID: req.ConversationID,
        Secret:         req.Secret,
        Format:         req.Format,
        Delivery:       req.Delivery,
    })
    if err != nil {
        writeServiceError(w, err)
        return
    }

    if result.EmailedTo != "" {
        writeJSON(w, http.StatusAccepted, dtos.ExportEmailResponseDTO{
            Message:   "Transcript sent",
            EmailedTo: result.EmailedTo,
        })
        return
    }

    w.Header().Set("Content-Type", result.Format.ContentType())
    w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
    w.WriteHeader(http.StatusOK)
    if _, err := w.Write(result.Content); err != nil {
        h.logger.Warn("failed to write transcript", "error", err)
    }
}
