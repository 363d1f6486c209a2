// File: internal/services/ai/provider.go
package ai

import "context"

// Message is one turn of chat history sent to the model
type Message struct {
    Role    string // "user" or "assistant"
    Content string
}

// CompletionProvider produces the assistant's next reply for a conversation
type CompletionProvider interface {
    Complete(ctx context.Context, systemPrompt string, messages []Message) (string, error)
}
