// File: internal/services/notify/http_provider.go
package notify

import (
    "bytes"
    "context"
    "encoding/json"
    "io"
    "net/http"
)

// HTTPProvider posts messages to a JSON e-mail API that takes a bearer key.
type HTTPProvider struct {
    config *Config
    client *http.Client
}

func NewHTTPProvider(config *Config) *HTTPProvider {
    return &HTTPProvider{
        config: config,
        client: &http.Client{
            Timeout: config.Timeout,
        },
    }
}

func (p *HTTPProvider) Send(ctx context.Context, email Email) error {
    if email.To == "" {
        return &EmailError{Type: ErrTypeValidation, Message: "recipient is required"}
    }
    payload := map[string]interface{}{
        "from":    p.config.From,
        "to":      []string{email.To},
        "subject": email.Subject,
        "html":    email.HTML,
        "text":    email.Text,
    }
    return p.sendRequest(ctx, payload)
}

func (p *HTTPProvider) sendRequest(ctx context.Context, payload interface{}) error {
    body, err := json.Marshal(payload)
    if err != nil {
        return &EmailError{Type: ErrTypeValidation, Message: "invalid payload", Cause: err}
    }

    req, err := http.NewRequestWithContext(ctx, "POST", p.config.APIURL, bytes.NewBuffer(body))
    if err != nil {
        return &EmailError{Type: ErrTypeNetwork, Message: "failed to create request", Cause: err}
    }

    req.Header.Set("Content-Type", "application/json")
    req.Header.Set("Authorization", "Bearer "+p.config.APIKey)

    resp, err := p.client.Do(req)
    if err != nil {
        return &EmailError{Type: ErrTypeNetwork, Message: "request failed", Cause: err}
    }
    defer resp.Body.Close()

    return p.handleResponse(resp)
}

func (p *HTTPProvider) handleResponse(resp *http.Response) error {
    if resp.StatusCode >= 200 && resp.StatusCode < 300 {
        return nil
    }

    responseBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

    if resp.StatusCode == http.StatusTooManyRequests {
        return &EmailError{
            Type:    ErrTypeRateLimit,
            Code:    resp.StatusCode,
            Message: "rate limit exceeded",
        }
    }
    if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
        return &EmailError{
            Type:    ErrTypeConfig,
            Code:    resp.StatusCode,
            Message: "email API rejected the key",
        }
    }

    return &EmailError{
        Type:    ErrTypeProvider,
        Code:    resp.StatusCode,
        Message: string(responseBody),
    }
}
