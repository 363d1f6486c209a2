// File: internal/services/ai/openai_provider.go
package ai

import (
    "context"
    "errors"
    "net/http"

    openai "github.com/sashabaranov/go-openai"
)

type OpenAIProvider struct {
    config    *Config
    llmClient *openai.Client
}

func NewOpenAIProvider(config *Config) *OpenAIProvider {
    llmConfig := openai.DefaultConfig(config.LLMKey)
    if config.LLMBaseURL != "" {
        llmConfig.BaseURL = config.LLMBaseURL
    }

    return &OpenAIProvider{
        config:    config,
        llmClient: openai.NewClientWithConfig(llmConfig),
    }
}

// Complete sends the system prompt followed by the history and returns the reply text.
func (p *OpenAIProvider) Complete(ctx context.Context, systemPrompt string, messages []Message) (string, error) {
    if len(messages) == 0 {
        return "", &AIError{Type: ErrTypeValidation, Operation: "completion", Message: "no messages to complete"}
    }

    chatMessages := make([]openai.ChatCompletionMessage, 0, len(messages)+1)
    if systemPrompt != "" {
        chatMessages = append(chatMessages, openai.ChatCompletionMessage{
            Role:    openai.ChatMessageRoleSystem,
            Content: systemPrompt,
        })
    }
    for _, m := range messages {
        role := openai.ChatMessageRoleUser
        if m.Role == "assistant" {
            role = openai.ChatMessageRoleAssistant
        }
        chatMessages = append(chatMessages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
    }

    resp, err := p.llmClient.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
        Model:       p.config.Model,
        Messages:    chatMessages,
        Temperature: p.config.Temperature,
        MaxTokens:   p.config.MaxTokens,
    })
    if err != nil {
        return "", p.classify(ctx, err)
    }

    if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
        return "", &AIError{
            Type:      ErrTypeProvider,
            Operation: "completion",
            Model:     p.config.Model,
            Message:   "empty completion response",
        }
    }

    return resp.Choices[0].Message.Content, nil
}

// classify maps client errors onto AIError types.
func (p *OpenAIProvider) classify(ctx context.Context, err error) error {
    if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
        return &AIError{Type: ErrTypeTimeout, Operation: "completion", Model: p.config.Model, Message: "completion timed out", Cause: err}
    }

    var apiErr *openai.APIError
    if errors.As(err, &apiErr) {
        errType := ErrTypeProvider
        if apiErr.HTTPStatusCode == http.StatusTooManyRequests {
            errType = ErrTypeRateLimit
        }
        return &AIError{Type: errType, Code: apiErr.HTTPStatusCode, Operation: "completion", Model: p.config.Model, Message: apiErr.Message, Cause: err}
    }

    var reqErr *openai.RequestError
    if errors.As(err, &reqErr) {
        return &AIError{Type: ErrTypeProvider, Code: reqErr.HTTPStatusCode, Operation: "completion", Model: p.config.Model, Message: "unexpected response", Cause: err}
    }

    return &AIError{Type: ErrTypeNetwork, Operation: "completion", Model: p.config.Model, Message: "failed to create completion", Cause: err}
}

// HealthCheck lists models to prove the key and base URL work.
func (p *OpenAIProvider) HealthCheck(ctx context.Context) error {
    if _, err := p.llmClient.ListModels(ctx); err != nil {
        return p.classify(ctx, err)
    }
    return nil
}
