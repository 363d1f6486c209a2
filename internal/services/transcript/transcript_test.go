// File: internal/services/transcript/transcript_test.go
package transcript

import (
    "encoding/json"
    "strings"
    "testing"
    "time"

    "github.com/iyunix/go-supportchat/internal/domain"
)

var exportedAt = time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC)

func sampleInput() Input {
    ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
    return Input{
        UserName:       "Ada",
        UserEmail:      "ada@example.com",
        ConversationID: "c-123",
        ExportedAt:     exportedAt,
        Messages: []domain.Message{
            {ID: 1, Role: domain.MessageRoleUser, Content: "Hi", CreatedAt: ts},
            {ID: 2, Role: domain.MessageRoleAssistant, Content: "Hello! How can I help?", CreatedAt: ts.Add(time.Second)},
        },
    }
}

func TestRender_Text(t *testing.T) {
    out, err := Render(sampleInput(), FormatText)
    if err != nil {
        t.Fatalf("Render() error = %v", err)
    }
    text := string(out)

    for _, want := range []string{
        "Name: Ada",
        "Email: ada@example.com",
        "Conversation ID: c-123",
        "Exported: 2025-03-01T12:30:00Z",
        "Messages: 2",
        "[2025-03-01T12:00:00Z] Ada: Hi",
        "[2025-03-01T12:00:01Z] Support Assistant: Hello! How can I help?",
    } {
        if !strings.Contains(text, want) {
            t.Errorf("text transcript missing %q:\n%s", want, text)
        }
    }
    if strings.Index(text, "Ada: Hi") > strings.Index(text, "Support Assistant:") {
        t.Error("messages out of order")
    }
}

func TestRender_TextEmpty(t *testing.T) {
    in := sampleInput()
    in.Messages = nil
    out, _ := Render(in, FormatText)
    if !strings.Contains(string(out), "No messages in this conversation.") {
        t.Errorf("empty transcript missing placeholder:\n%s", out)
    }
    if !strings.Contains(string(out), "Messages: 0") {
        t.Errorf("empty transcript missing count:\n%s", out)
    }
}

func TestRender_JSON(t *testing.T) {
    out, err := Render(sampleInput(), FormatJSON)
    if err != nil {
        t.Fatalf("Render() error = %v", err)
    }

    var doc struct {
        ConversationID string `json:"conversationId"`
        UserName       string `json:"userName"`
        UserEmail      string `json:"userEmail"`
        ExportedAt     string `json:"exportedAt"`
        MessageCount   int    `json:"messageCount"`
        Messages       []struct {
            ID        uint   `json:"id"`
            Content   string `json:"content"`
            Role      string `json:"role"`
            CreatedAt string `json:"createdAt"`
        } `json:"messages"`
    }
    if err := json.Unmarshal(out, &doc); err != nil {
        t.Fatalf("invalid JSON: %v", err)
    }
    if doc.ConversationID != "c-123" || doc.UserName != "Ada" || doc.MessageCount != 2 {
        t.Errorf("unexpected header: %+v", doc)
    }
    if doc.ExportedAt != "2025-03-01T12:30:00Z" {
        t.Errorf("exportedAt = %s", doc.ExportedAt)
    }
    if len(doc.Messages) != 2 || doc.Messages[1].Role != "assistant" || doc.Messages[0].ID != 1 {
        t.Errorf("unexpected messages: %+v", doc.Messages)
    }
}

func TestRender_JSONEmptyHasArray(t *testing.T) {
    in := sampleInput()
    in.Messages = nil
    out, _ := Render(in, FormatJSON)
    if !strings.Contains(string(out), `"messages": []`) {
        t.Errorf("expected empty messages array, got %s", out)
    }
}

func TestRender_UnknownFormat(t *testing.T) {
    if _, err := Render(sampleInput(), Format("pdf")); err == nil {
        t.Error("expected error for unknown format")
    }
}

func TestParseFormat(t *testing.T) {
    tests := []struct {
        in      string
        want    Format
        wantErr bool
    }{
        {"json", FormatJSON, false},
        {" TEXT ", FormatText, false},
        {"pdf", "", true},
    }
    for _, tt := range tests {
        got, err := ParseFormat(tt.in)
        if (err != nil) != tt.wantErr || got != tt.want {
            t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
        }
    }
}

func TestRenderHTML(t *testing.T) {
    in := sampleInput()
    in.Messages[0].Content = "<img src=x onerror=alert(1)> hello"
    html, err := RenderHTML(in)
    if err != nil {
        t.Fatalf("RenderHTML() error = %v", err)
    }
    if !strings.Contains(html, "<h1>Chat Transcript</h1>") {
        t.Errorf("missing heading: %s", html)
    }
    if strings.Contains(html, "<img") {
        t.Errorf("raw HTML leaked: %s", html)
    }
    if !strings.Contains(html, "Support Assistant") {
        t.Errorf("missing assistant label: %s", html)
    }
}
