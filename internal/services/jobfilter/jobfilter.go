// File: internal/services/jobfilter/jobfilter.go

// Package jobfilter matches a free-text search against a caller-supplied list of open positions
// by asking the completion service which job ids fit.
package jobfilter

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "strings"
    "time"
    "unicode/utf8"

    "github.com/iyunix/go-supportchat/internal/services/ai"
)

const (
    MaxQueryLength = 500
    MaxJobs        = 200
)

const systemPrompt = "You filter job postings for a careers page. " +
    "You receive a search query and a JSON list of jobs. " +
    "Reply with only a JSON array of the ids of the jobs that match the query, for example [\"a1\",\"b2\"]. " +
    "Reply with [] when nothing matches. Do not add any other text."

// Job is the subset of a posting the model needs to judge relevance.
type Job struct {
    ID          string `json:"id"`
    Title       string `json:"title"`
    Description string `json:"description,omitempty"`
    Location    string `json:"location,omitempty"`
    Type        string `json:"type,omitempty"`
}

type Logger interface {
    Info(msg string, keysAndValues ...interface{})
    Error(msg string, keysAndValues ...interface{})
    Debug(msg string, keysAndValues ...interface{})
    Warn(msg string, keysAndValues ...interface{})
}

type ErrorType string

const (
    ErrTypeValidation      ErrorType = "VALIDATION"
    ErrTypeUpstream        ErrorType = "UPSTREAM"
    ErrTypeUpstreamTimeout ErrorType = "UPSTREAM_TIMEOUT"
)

type FilterError struct {
    Type    ErrorType
    Message string
    Cause   error
}

func (e *FilterError) Error() string {
    if e.Cause != nil {
        return fmt.Sprintf("Job filter %s error: %s (caused by: %v)", e.Type, e.Message, e.Cause)
    }
    return fmt.Sprintf("Job filter %s error: %s", e.Type, e.Message)
}

func (e *FilterError) Unwrap() error {
    return e.Cause
}

// TypeOf returns the ErrorType carried by err, or "" for foreign errors.
func TypeOf(err error) ErrorType {
    var fe *FilterError
    if errors.As(err, &fe) {
        return fe.Type
    }
    return ""
}

type Service struct {
    completer ai.CompletionProvider
    timeout   time.Duration
    logger    Logger
}

func NewService(completer ai.CompletionProvider, timeout time.Duration, logger Logger) *Service {
    return &Service{completer: completer, timeout: timeout, logger: logger}
}

// Filter returns the ids of the jobs matching query, in the order the model listed them.
// Ids the model invents are dropped.
func (s *Service) Filter(ctx context.Context, query string, jobs []Job) ([]string, error) {
    query = strings.TrimSpace(query)
    if err := validate(query, jobs); err != nil {
        return nil, err
    }

    payload, err := json.Marshal(jobs)
    if err != nil {
        return nil, &FilterError{Type: ErrTypeValidation, Message: "jobs could not be encoded", Cause: err}
    }

    if s.timeout > 0 {
        var cancel context.CancelFunc
        ctx, cancel = context.WithTimeout(ctx, s.timeout)
        defer cancel()
    }

    prompt := fmt.Sprintf("Query: %s\n\nJobs: %s", query, payload)
    reply, err := s.completer.Complete(ctx, systemPrompt, []ai.Message{{Role: "user", Content: prompt}})
    if err != nil {
        s.logger.Error("Job filter completion failed", "error", err)
        if ai.IsTimeout(err) || errors.Is(err, context.DeadlineExceeded) {
            return nil, &FilterError{Type: ErrTypeUpstreamTimeout, Message: "completion service timed out", Cause: err}
        }
        return nil, &FilterError{Type: ErrTypeUpstream, Message: "completion service failed", Cause: err}
    }

    ids, err := parseIDs(reply)
    if err != nil {
        s.logger.Warn("Job filter reply was not a JSON id list", "reply", reply)
        return nil, &FilterError{Type: ErrTypeUpstream, Message: "completion service returned a malformed reply", Cause: err}
    }

    known := make(map[string]struct{}, len(jobs))
    for _, j := range jobs {
        known[j.ID] = struct{}{}
    }
    matched := make([]string, 0, len(ids))
    seen := make(map[string]struct{}, len(ids))
    for _, id := range ids {
        if _, ok := known[id]; !ok {
            continue
        }
        if _, dup := seen[id]; dup {
            continue
        }
        seen[id] = struct{}{}
        matched = append(matched, id)
    }

    s.logger.Debug("Job filter matched", "query_length", utf8.RuneCountInString(query), "jobs", len(jobs), "matched", len(matched))
    return matched, nil
}

func validate(query string, jobs []Job) error {
    if query == "" {
        return &FilterError{Type: ErrTypeValidation, Message: "query is required"}
    }
    if utf8.RuneCountInString(query) > MaxQueryLength {
        return &FilterError{Type: ErrTypeValidation, Message: fmt.Sprintf("query must be at most %d characters", MaxQueryLength)}
    }
    if len(jobs) == 0 {
        return &FilterError{Type: ErrTypeValidation, Message: "at least one job is required"}
    }
    if len(jobs) > MaxJobs {
        return &FilterError{Type: ErrTypeValidation, Message: fmt.Sprintf("at most %d jobs are allowed", MaxJobs)}
    }
    for i, j := range jobs {
        if strings.TrimSpace(j.ID) == "" {
            return &FilterError{Type: ErrTypeValidation, Message: fmt.Sprintf("job %d has no id", i)}
        }
    }
    return nil
}

// parseIDs accepts a bare JSON array, optionally wrapped in a markdown code fence.
func parseIDs(reply string) ([]string, error) {
    text := strings.TrimSpace(reply)
    if strings.HasPrefix(text, "```") {
        text = strings.TrimPrefix(text, "```json")
        text = strings.TrimPrefix(text, "```")
        text = strings.TrimSuffix(strings.TrimSpace(text), "```")
        text = strings.TrimSpace(text)
    }

    var ids []string
    if err := json.Unmarshal([]byte(text), &ids); err != nil {
        return nil, err
    }
    return ids, nil
}
