// File: internal/services/chat/export.go
package chat

import (
    "context"
    "fmt"
    "strings"

    "github.com/iyunix/go-supportchat/internal/policy"
    "github.com/iyunix/go-supportchat/internal/services/notify"
    "github.com/iyunix/go-supportchat/internal/services/transcript"
)

// ExportTranscript renders the conversation for download or mails it to the conversation's address.
func (s *Service) ExportTranscript(ctx context.Context, req ExportRequest) (*ExportResult, error) {
    const op = "export_transcript"

    conv, err := s.authorize(ctx, op, req.ConversationID, req.Secret)
    if err != nil {
        return nil, err
    }
    if !policy.CanExport(conv.Role) {
        return nil, &ChatError{Type: ErrTypeFeatureUnavailable, Operation: op, Message: "transcript export is not available for this conversation", ConversationID: conv.ID}
    }

    format, err := transcript.ParseFormat(req.Format)
    if err != nil {
        return nil, NewValidationError(op, err.Error())
    }
    delivery := Delivery(strings.ToLower(strings.TrimSpace(req.Delivery)))
    if delivery == "" {
        delivery = DeliveryDownload
    }
    if delivery != DeliveryDownload && delivery != DeliveryEmail {
        return nil, NewValidationError(op, fmt.Sprintf("unsupported delivery %q", req.Delivery))
    }

    msgs, err := s.messages.FindByConversationID(ctx, conv.ID, nil)
    if err != nil {
        return nil, NewStorageError(op, "could not load history", err)
    }
    in := transcript.Input{
        UserName:       conv.UserName,
        UserEmail:      conv.UserEmail,
        ConversationID: conv.ID,
        ExportedAt:     s.clock(),
        Messages:       msgs,
    }

    if delivery == DeliveryDownload {
        content, err := transcript.Render(in, format)
        if err != nil {
            return nil, NewStorageError(op, "could not render transcript", err)
        }
        return &ExportResult{
            Format:   format,
            Filename: fmt.Sprintf("chat-transcript-%s.%s", conv.ID, format.Extension()),
            Content:  content,
        }, nil
    }

    html, err := transcript.RenderHTML(in)
    if err != nil {
        return nil, NewStorageError(op, "could not render transcript", err)
    }
    text, err := transcript.Render(in, transcript.FormatText)
    if err != nil {
        return nil, NewStorageError(op, "could not render transcript", err)
    }
    email := notify.Email{
        To:      conv.UserEmail,
        Subject: "Your chat transcript",
        HTML:    html,
        Text:    string(text),
    }
    if err := s.notifier.SendNow(ctx, email); err != nil {
        s.logger.Error("transcript delivery failed", "conversation_id", conv.ID, "error", err)
        return nil, &ChatError{Type: ErrTypeUpstream, Operation: op, Message: "could not deliver transcript", ConversationID: conv.ID, Cause: err}
    }
    s.logger.Info("transcript emailed", "conversation_id", conv.ID)
    return &ExportResult{Format: format, EmailedTo: conv.UserEmail}, nil
}
