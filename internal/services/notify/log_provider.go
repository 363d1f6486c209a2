// File: internal/services/notify/log_provider.go
package notify

import "context"

// LogProvider writes e-mails to the log instead of sending them. Used in development.
type LogProvider struct {
    logger Logger
}

func NewLogProvider(logger Logger) *LogProvider {
    return &LogProvider{logger: logger}
}

func (p *LogProvider) Send(ctx context.Context, email Email) error {
    p.logger.Info("email not sent (log provider)",
        "to", email.To,
        "subject", email.Subject,
        "html_bytes", len(email.HTML))
    return nil
}
