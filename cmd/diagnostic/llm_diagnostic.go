// File: cmd/diagnostic/llm_diagnostic.go
package main

import (
    "context"
    "flag"
    "fmt"
    "log"
    "time"

    "github.com/iyunix/go-supportchat/internal/config"
    "github.com/iyunix/go-supportchat/internal/services/ai"
)

// Checks that the configured completion service is reachable and answers with the
// configured system prompt.
func main() {
    question := flag.String("q", "What services does your company offer?", "question to send")
    skipModels := flag.Bool("skip-models", false, "skip the model listing check")
    flag.Parse()

    cfg, err := config.Load()
    if err != nil {
        log.Fatalf("Configuration error: %v", err)
    }

    aiConfig := ai.DefaultConfig()
    aiConfig.LLMKey = cfg.LLMAPIKey
    aiConfig.LLMBaseURL = cfg.LLMBaseURL
    aiConfig.Model = cfg.ChatModel
    aiConfig.Timeout = cfg.UpstreamTimeout
    if err := aiConfig.Validate(); err != nil {
        log.Fatalf("Invalid AI configuration: %v", err)
    }

    provider := ai.NewOpenAIProvider(aiConfig)
    fmt.Printf("Base URL: %s\nModel:    %s\n", aiConfig.LLMBaseURL, aiConfig.Model)

    if !*skipModels {
        ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
        err := provider.HealthCheck(ctx)
        cancel()
        if err != nil {
            log.Fatalf("Model listing failed: %v", err)
        }
        fmt.Println("Model listing: ok")
    }

    ctx, cancel := context.WithTimeout(context.Background(), cfg.UpstreamTimeout)
    defer cancel()

    start := time.Now()
    reply, err := provider.Complete(ctx, cfg.SystemPrompt, []ai.Message{{Role: "user", Content: *question}})
    if err != nil {
        if ai.IsTimeout(err) {
            log.Fatalf("Completion timed out after %v", cfg.UpstreamTimeout)
        }
        log.Fatalf("Completion failed: %v", err)
    }

    fmt.Printf("Completion: ok (%v)\n\n%s\n", time.Since(start).Round(time.Millisecond), reply)
}
