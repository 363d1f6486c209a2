// File: internal/services/chat/service.go
package chat

import (
    "context"
    "errors"
    "regexp"
    "strings"
    "time"
    "unicode/utf8"

    "github.com/google/uuid"

    "github.com/iyunix/go-supportchat/internal/auth"
    "github.com/iyunix/go-supportchat/internal/domain"
    "github.com/iyunix/go-supportchat/internal/metrics"
    "github.com/iyunix/go-supportchat/internal/policy"
    "github.com/iyunix/go-supportchat/internal/ratelimit"
    "github.com/iyunix/go-supportchat/internal/repository/conversation"
    "github.com/iyunix/go-supportchat/internal/repository/message"
    "github.com/iyunix/go-supportchat/internal/repository/thread"
    "github.com/iyunix/go-supportchat/internal/services/ai"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Service runs the conversation lifecycle: register, send, history, close, threads and export.
type Service struct {
    config        *Config
    conversations conversation.ConversationRepository
    messages      message.MessageRepository
    threads       thread.ThreadRepository
    limiter       ratelimit.Limiter
    completer     ai.CompletionProvider
    notifier      Notifier
    hasher        *auth.SecretHasher
    logger        Logger
    metrics       *metrics.Metrics
    now           func() time.Time
}

func NewService(
    config *Config,
    conversations conversation.ConversationRepository,
    messages message.MessageRepository,
    threads thread.ThreadRepository,
    limiter ratelimit.Limiter,
    completer ai.CompletionProvider,
    notifier Notifier,
    hasher *auth.SecretHasher,
    logger Logger,
    m *metrics.Metrics,
) (*Service, error) {
    // Validate dependencies
    if conversations == nil || messages == nil || threads == nil {
        return nil, NewValidationError("constructor", "repositories are required")
    }
    if limiter == nil {
        return nil, NewValidationError("constructor", "rate limiter is required")
    }
    if completer == nil {
        return nil, NewValidationError("constructor", "completion provider is required")
    }
    if notifier == nil {
        return nil, NewValidationError("constructor", "notifier is required")
    }
    if hasher == nil {
        return nil, NewValidationError("constructor", "secret hasher is required")
    }
    if config == nil {
        config = DefaultConfig()
    }
    if err := config.Validate(); err != nil {
        return nil, NewValidationError("config", err.Error())
    }

    return &Service{
        config:        config,
        conversations: conversations,
        messages:      messages,
        threads:       threads,
        limiter:       limiter,
        completer:     completer,
        notifier:      notifier,
        hasher:        hasher,
        logger:        logger,
        metrics:       m,
        now:           time.Now,
    }, nil
}

// WithClock overrides the time source
func (s *Service) WithClock(now func() time.Time) *Service {
    s.now = now
    return s
}

func (s *Service) clock() time.Time {
    return s.now().UTC()
}

// Register validates a name/e-mail pair. It touches no storage.
// Only the name is trimmed; the e-mail must match as given.
func (s *Service) Register(name, email string) (Identity, error) {
    name = strings.TrimSpace(name)

    if name == "" {
        return Identity{}, NewValidationError("register", "name is required")
    }
    if !emailPattern.MatchString(email) {
        return Identity{}, NewValidationError("register", "a valid email address is required")
    }
    return Identity{Name: name, Email: email}, nil
}

// SendMessage stores a user message, asks the model for a reply and stores that too.
// When the completion fails the user message stays persisted; the returned result still
// carries the conversation id (and secret, for a new conversation) alongside the error.
func (s *Service) SendMessage(ctx context.Context, req SendRequest) (*SendResult, error) {
    const op = "send_message"

    text, err := s.validateText(op, req.Text)
    if err != nil {
        return nil, err
    }

    if !s.limiter.Check(ctx, req.ClientIP, ratelimit.FunctionChatSupport) {
        return nil, &ChatError{Type: ErrTypeRateLimitExceeded, Operation: op, Message: "too many requests, please wait a minute"}
    }

    now := s.clock()
    result := &SendResult{}
    var conv *domain.Conversation

    if req.ConversationID == "" {
        identity, err := s.Register(req.Name, req.Email)
        if err != nil {
            return nil, err
        }
        conv, result.Secret, err = s.createConversation(ctx, identity, now)
        if err != nil {
            return nil, err
        }
    } else {
        conv, err = s.authorize(ctx, op, req.ConversationID, req.Secret)
        if err != nil {
            return nil, err
        }
        if err := s.ensureWritable(ctx, op, conv, now); err != nil {
            return nil, err
        }
        if err := s.checkQuota(ctx, op, conv); err != nil {
            return nil, err
        }
        timeoutAt := now.Add(policy.TimeoutDuration(conv.Role))
        if err := s.conversations.Touch(ctx, conv.ID, now, timeoutAt); err != nil {
            if errors.Is(err, conversation.ErrConversationNotFound) {
                // Closed or expired between the check and the update.
                return nil, NewClosedError(op, conv.ID)
            }
            return nil, NewStorageError(op, "could not update conversation", err)
        }
        conv.LastActivityAt = now
        conv.TimeoutAt = timeoutAt
    }
    result.ConversationID = conv.ID

    userMsg := &domain.Message{
        ConversationID: conv.ID,
        ThreadID:       conv.ThreadID,
        Role:           domain.MessageRoleUser,
        Content:        text,
        CreatedAt:      now,
    }
    if _, err := s.messages.Create(ctx, userMsg); err != nil {
        return result, NewStorageError(op, "could not store message", err)
    }
    s.metrics.RecordMessage(domain.MessageRoleUser)
    s.notifier.NotifyNewMessage(conv, text)

    history, err := s.messages.FindByConversationID(ctx, conv.ID, nil)
    if err != nil {
        return result, NewStorageError(op, "could not load history", err)
    }

    reply, err := s.complete(ctx, conv.ID, history)
    if err != nil {
        return result, err
    }

    assistantMsg := &domain.Message{
        ConversationID: conv.ID,
        ThreadID:       conv.ThreadID,
        Role:           domain.MessageRoleAssistant,
        Content:        reply,
        CreatedAt:      s.clock(),
    }
    if _, err := s.messages.Create(ctx, assistantMsg); err != nil {
        return result, NewStorageError(op, "could not store reply", err)
    }
    s.metrics.RecordMessage(domain.MessageRoleAssistant)

    result.Reply = reply
    return result, nil
}

// GetHistory returns the conversation's messages oldest first. A non-nil threadID
// narrows the result to one thread of the conversation.
func (s *Service) GetHistory(ctx context.Context, conversationID, secret string, threadID *string) (*HistoryResult, error) {
    const op = "get_history"

    conv, err := s.authorize(ctx, op, conversationID, secret)
    if err != nil {
        return nil, err
    }

    if threadID != nil {
        th, err := s.threads.FindByID(ctx, *threadID)
        if err != nil && !errors.Is(err, thread.ErrThreadNotFound) {
            return nil, NewStorageError(op, "could not load thread", err)
        }
        if err != nil || th.ConversationID != conv.ID {
            return nil, NewValidationError(op, "unknown thread")
        }
    }

    msgs, err := s.messages.FindByConversationID(ctx, conv.ID, threadID)
    if err != nil {
        return nil, NewStorageError(op, "could not load history", err)
    }
    return &HistoryResult{Conversation: conv, Messages: msgs}, nil
}

// CloseConversation ends an active conversation. Closing a finished one is a no-op.
func (s *Service) CloseConversation(ctx context.Context, conversationID, secret string) error {
    const op = "close_conversation"

    conv, err := s.authorize(ctx, op, conversationID, secret)
    if err != nil {
        return err
    }
    changed, err := s.conversations.Transition(ctx, conv.ID, domain.ConversationClosed, s.clock())
    if err != nil {
        return NewStorageError(op, "could not close conversation", err)
    }
    if changed {
        s.metrics.RecordClosed(string(domain.ConversationClosed))
        s.logger.Info("conversation closed by user", "conversation_id", conv.ID)
    }
    return nil
}

// OpenThread starts a named thread and makes it the conversation's active thread.
func (s *Service) OpenThread(ctx context.Context, conversationID, secret, name string) (*domain.ConversationThread, error) {
    const op = "open_thread"

    conv, err := s.authorize(ctx, op, conversationID, secret)
    if err != nil {
        return nil, err
    }
    if !policy.CanAccessAdvanced(conv.Role) {
        return nil, &ChatError{Type: ErrTypeFeatureUnavailable, Operation: op, Message: "threads are not available for this conversation", ConversationID: conv.ID}
    }
    now := s.clock()
    if err := s.ensureWritable(ctx, op, conv, now); err != nil {
        return nil, err
    }

    name = strings.TrimSpace(name)
    if name == "" {
        return nil, NewValidationError(op, "thread name is required")
    }
    if utf8.RuneCountInString(name) > s.config.MaxThreadName {
        return nil, NewValidationError(op, "thread name is too long")
    }

    th := &domain.ConversationThread{
        ID:             uuid.NewString(),
        ConversationID: conv.ID,
        ThreadName:     name,
        CreatedBy:      conv.UserName,
        CreatedAt:      now,
    }
    if err := s.threads.Create(ctx, th); err != nil {
        return nil, NewStorageError(op, "could not create thread", err)
    }
    if err := s.conversations.SetThread(ctx, conv.ID, th.ID); err != nil {
        return nil, NewStorageError(op, "could not activate thread", err)
    }
    return th, nil
}

// authorize loads the conversation and checks the secret. Unknown ids and wrong secrets
// produce the same error after the same amount of hashing work.
func (s *Service) authorize(ctx context.Context, op, conversationID, secret string) (*domain.Conversation, error) {
    conv, err := s.conversations.FindByID(ctx, conversationID)
    if err != nil {
        if errors.Is(err, conversation.ErrConversationNotFound) {
            s.hasher.Verify("", secret)
            return nil, NewAccessDeniedError(op)
        }
        return nil, NewStorageError(op, "could not load conversation", err)
    }
    if !s.hasher.Verify(conv.SecretHash, secret) {
        s.logger.Warn("secret mismatch", "operation", op, "conversation_id", conversationID)
        return nil, NewAccessDeniedError(op)
    }
    return conv, nil
}

// ensureWritable rejects terminal conversations and expires active ones found past their timeout.
func (s *Service) ensureWritable(ctx context.Context, op string, conv *domain.Conversation, now time.Time) error {
    if !conv.IsActive() {
        return NewClosedError(op, conv.ID)
    }
    if conv.IsPastTimeout(now) {
        changed, err := s.conversations.Transition(ctx, conv.ID, domain.ConversationExpired, now)
        if err != nil {
            s.logger.Error("failed to expire conversation", "conversation_id", conv.ID, "error", err)
        } else if changed {
            s.metrics.RecordClosed(string(domain.ConversationExpired))
        }
        return NewClosedError(op, conv.ID)
    }
    return nil
}

func (s *Service) checkQuota(ctx context.Context, op string, conv *domain.Conversation) error {
    count, err := s.messages.CountByConversationAndRole(ctx, conv.ID, domain.MessageRoleUser)
    if err != nil {
        return NewStorageError(op, "could not count messages", err)
    }
    if policy.QuotaReached(conv.Role, count) {
        s.metrics.RecordQuotaRejection()
        return &ChatError{Type: ErrTypeQuotaExceeded, Operation: op, Message: "message limit reached for this conversation", ConversationID: conv.ID}
    }
    return nil
}

func (s *Service) createConversation(ctx context.Context, identity Identity, now time.Time) (*domain.Conversation, string, error) {
    const op = "create_conversation"

    secret, err := auth.GenerateSecret()
    if err != nil {
        return nil, "", NewStorageError(op, "could not generate secret", err)
    }
    hash, err := s.hasher.Hash(secret)
    if err != nil {
        return nil, "", NewStorageError(op, "could not hash secret", err)
    }

    role := domain.RoleGuest
    conv := &domain.Conversation{
        ID:             uuid.NewString(),
        UserName:       identity.Name,
        UserEmail:      identity.Email,
        Role:           role,
        SecretHash:     hash,
        Status:         domain.ConversationActive,
        CreatedAt:      now,
        LastActivityAt: now,
        TimeoutAt:      now.Add(policy.TimeoutDuration(role)),
    }
    if err := s.conversations.Create(ctx, conv); err != nil {
        return nil, "", NewStorageError(op, "could not create conversation", err)
    }

    s.metrics.RecordRegistration()
    s.logger.Info("conversation created", "conversation_id", conv.ID, "role", role)
    return conv, secret, nil
}

func (s *Service) validateText(op, text string) (string, error) {
    text = strings.TrimSpace(text)
    if text == "" {
        return "", NewValidationError(op, "message cannot be empty")
    }
    if utf8.RuneCountInString(text) > s.config.MaxMessageLength {
        return "", NewValidationError(op, "message is too long")
    }
    return text, nil
}

// complete calls the model with the full history, bounded by UpstreamTimeout.
func (s *Service) complete(ctx context.Context, conversationID string, history []domain.Message) (string, error) {
    const op = "completion"

    turns := make([]ai.Message, 0, len(history))
    for _, m := range history {
        turns = append(turns, ai.Message{Role: m.Role, Content: m.Content})
    }

    cctx, cancel := context.WithTimeout(ctx, s.config.UpstreamTimeout)
    defer cancel()

    start := time.Now()
    reply, err := s.completer.Complete(cctx, s.config.SystemPrompt, turns)
    elapsed := time.Since(start)

    if err != nil {
        if ai.IsTimeout(err) || errors.Is(err, context.DeadlineExceeded) || errors.Is(cctx.Err(), context.DeadlineExceeded) {
            s.metrics.RecordUpstream("timeout", elapsed)
            s.logger.Error("completion timed out", "conversation_id", conversationID, "elapsed", elapsed.String())
            return "", &ChatError{Type: ErrTypeUpstreamTimeout, Operation: op, Message: "the assistant took too long to answer", ConversationID: conversationID, Cause: err}
        }
        s.metrics.RecordUpstream("error", elapsed)
        s.logger.Error("completion failed", "conversation_id", conversationID, "error", err)
        return "", &ChatError{Type: ErrTypeUpstream, Operation: op, Message: "the assistant is unavailable", ConversationID: conversationID, Cause: err}
    }

    reply = strings.TrimSpace(reply)
    if reply == "" {
        s.metrics.RecordUpstream("error", elapsed)
        return "", &ChatError{Type: ErrTypeUpstream, Operation: op, Message: "the assistant returned an empty reply", ConversationID: conversationID}
    }
    s.metrics.RecordUpstream("ok", elapsed)
    return reply, nil
}
