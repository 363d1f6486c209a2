// File: internal/services/transcript/transcript.go

// Package transcript renders a conversation log for download or e-mail delivery.
package transcript

import (
    "bytes"
    "encoding/json"
    "fmt"
    "strings"
    "time"

    "github.com/yuin/goldmark"

    "github.com/iyunix/go-supportchat/internal/domain"
)

type Format string

const (
    FormatJSON Format = "json"
    FormatText Format = "text"
)

// AssistantLabel is the sender name shown for assistant messages.
const AssistantLabel = "Support Assistant"

const emptyLog = "No messages in this conversation."

// Input is everything a transcript needs; rendering does no I/O.
type Input struct {
    UserName       string
    UserEmail      string
    ConversationID string
    ExportedAt     time.Time
    Messages       []domain.Message
}

// ParseFormat accepts "json" or "text" (case-insensitive).
func ParseFormat(s string) (Format, error) {
    switch Format(strings.ToLower(strings.TrimSpace(s))) {
    case FormatJSON:
        return FormatJSON, nil
    case FormatText:
        return FormatText, nil
    }
    return "", fmt.Errorf("unsupported transcript format %q", s)
}

// ContentType returns the MIME type for a rendered transcript.
func (f Format) ContentType() string {
    if f == FormatJSON {
        return "application/json"
    }
    return "text/plain; charset=utf-8"
}

// Extension returns the file extension used for downloads.
func (f Format) Extension() string {
    if f == FormatJSON {
        return "json"
    }
    return "txt"
}

type jsonMessage struct {
    ID        uint      `json:"id"`
    Content   string    `json:"content"`
    Role      string    `json:"role"`
    CreatedAt time.Time `json:"createdAt"`
}

type jsonTranscript struct {
    ConversationID string        `json:"conversationId"`
    UserName       string        `json:"userName"`
    UserEmail      string        `json:"userEmail"`
    ExportedAt     time.Time     `json:"exportedAt"`
    MessageCount   int           `json:"messageCount"`
    Messages       []jsonMessage `json:"messages"`
}

// Render produces the transcript bytes in the requested format.
func Render(in Input, format Format) ([]byte, error) {
    switch format {
    case FormatJSON:
        return renderJSON(in)
    case FormatText:
        return []byte(renderText(in)), nil
    }
    return nil, fmt.Errorf("unsupported transcript format %q", format)
}

func renderJSON(in Input) ([]byte, error) {
    out := jsonTranscript{
        ConversationID: in.ConversationID,
        UserName:       in.UserName,
        UserEmail:      in.UserEmail,
        ExportedAt:     in.ExportedAt.UTC(),
        MessageCount:   len(in.Messages),
        Messages:       make([]jsonMessage, 0, len(in.Messages)),
    }
    for _, m := range in.Messages {
        out.Messages = append(out.Messages, jsonMessage{
            ID:        m.ID,
            Content:   m.Content,
            Role:      m.Role,
            CreatedAt: m.CreatedAt.UTC(),
        })
    }
    return json.MarshalIndent(out, "", "  ")
}

func sender(in Input, m domain.Message) string {
    if m.Role == domain.MessageRoleUser {
        return in.UserName
    }
    return AssistantLabel
}

func renderText(in Input) string {
    var b strings.Builder
    b.WriteString("Chat Transcript\n")
    b.WriteString("===============\n\n")
    fmt.Fprintf(&b, "Name: %s\n", in.UserName)
    fmt.Fprintf(&b, "Email: %s\n", in.UserEmail)
    fmt.Fprintf(&b, "Conversation ID: %s\n", in.ConversationID)
    fmt.Fprintf(&b, "Exported: %s\n", in.ExportedAt.UTC().Format(time.RFC3339))
    fmt.Fprintf(&b, "Messages: %d\n\n", len(in.Messages))

    if len(in.Messages) == 0 {
        b.WriteString(emptyLog + "\n")
        return b.String()
    }
    for _, m := range in.Messages {
        fmt.Fprintf(&b, "[%s] %s: %s\n", m.CreatedAt.UTC().Format(time.RFC3339), sender(in, m), m.Content)
    }
    return b.String()
}

// RenderHTML renders the transcript as markdown through goldmark for e-mail bodies.
// Raw HTML inside messages is omitted by the renderer.
func RenderHTML(in Input) (string, error) {
    var md strings.Builder
    md.WriteString("# Chat Transcript\n\n")
    fmt.Fprintf(&md, "- **Name:** %s\n", in.UserName)
    fmt.Fprintf(&md, "- **Email:** %s\n", in.UserEmail)
    fmt.Fprintf(&md, "- **Conversation ID:** %s\n", in.ConversationID)
    fmt.Fprintf(&md, "- **Exported:** %s\n", in.ExportedAt.UTC().Format(time.RFC3339))
    fmt.Fprintf(&md, "- **Messages:** %d\n\n", len(in.Messages))

    if len(in.Messages) == 0 {
        md.WriteString("_" + emptyLog + "_\n")
    }
    for _, m := range in.Messages {
        fmt.Fprintf(&md, "**%s** (%s)\n\n%s\n\n", sender(in, m), m.CreatedAt.UTC().Format(time.RFC3339), m.Content)
    }

    var buf bytes.Buffer
    if err := goldmark.Convert([]byte(md.String()), &buf); err != nil {
        return "", fmt.Errorf("render transcript html: %w", err)
    }
    return buf.String(), nil
}
