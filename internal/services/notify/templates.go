// File: internal/services/notify/templates.go
package notify

import (
    "bytes"
    "fmt"
    "strings"
    "time"

    "github.com/yuin/goldmark"
    "github.com/yuin/goldmark/renderer/html"

    "github.com/iyunix/go-supportchat/internal/domain"
)

// Raw HTML in the source is dropped by goldmark's default renderer, so user text cannot inject markup.
var markdown = goldmark.New(
    goldmark.WithRendererOptions(html.WithHardWraps()),
)

// RenderMarkdown converts a markdown body to HTML for e-mail clients.
func RenderMarkdown(src string) (string, error) {
    var buf bytes.Buffer
    if err := markdown.Convert([]byte(src), &buf); err != nil {
        return "", fmt.Errorf("render markdown: %w", err)
    }
    return buf.String(), nil
}

// NewMessageEmail builds the staff notification for a freshly stored user message.
func NewMessageEmail(to string, conv *domain.Conversation, text string, at time.Time) (Email, error) {
    var b strings.Builder
    fmt.Fprintf(&b, "## New chat message\n\n")
    fmt.Fprintf(&b, "- **Name:** %s\n", conv.UserName)
    fmt.Fprintf(&b, "- **Email:** %s\n", conv.UserEmail)
    fmt.Fprintf(&b, "- **Conversation:** %s\n", conv.ID)
    fmt.Fprintf(&b, "- **Received:** %s\n\n", at.UTC().Format(time.RFC1123))
    fmt.Fprintf(&b, "---\n\n%s\n", text)

    body, err := RenderMarkdown(b.String())
    if err != nil {
        return Email{}, err
    }
    return Email{
        To:      to,
        Subject: fmt.Sprintf("New chat message from %s", conv.UserName),
        HTML:    body,
        Text:    b.String(),
    }, nil
}
