// File: internal/services/jobfilter/jobfilter_test.go
package jobfilter

import (
    "context"
    "errors"
    "reflect"
    "strings"
    "testing"
    "time"

    "github.com/iyunix/go-supportchat/internal/services/ai"
    "github.com/iyunix/go-supportchat/internal/testutil"
)

var jobs = []Job{
    {ID: "go-1", Title: "Go Backend Engineer", Location: "Berlin"},
    {ID: "fe-1", Title: "Frontend Developer", Location: "Remote"},
    {ID: "ds-1", Title: "Data Scientist", Location: "Berlin"},
}

func TestFilter_ReturnsKnownIDs(t *testing.T) {
    tests := []struct {
        name  string
        reply string
        want  []string
    }{
        {"plain array", `["go-1","ds-1"]`, []string{"go-1", "ds-1"}},
        {"code fence", "```json\n[\"fe-1\"]\n```", []string{"fe-1"}},
        {"unknown ids dropped", `["go-1","made-up"]`, []string{"go-1"}},
        {"duplicates collapsed", `["go-1","go-1"]`, []string{"go-1"}},
        {"nothing matches", `[]`, []string{}},
    }

    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            svc := NewService(testutil.StaticReply(tt.reply), time.Second, testutil.NopLogger{})
            got, err := svc.Filter(context.Background(), "  jobs in Berlin ", jobs)
            if err != nil {
                t.Fatalf("Filter() error = %v", err)
            }
            if !reflect.DeepEqual(got, tt.want) {
                t.Errorf("Filter() = %v, want %v", got, tt.want)
            }
        })
    }
}

func TestFilter_SendsQueryAndJobs(t *testing.T) {
    provider := &testutil.MockCompletionProvider{
        CompleteFunc: func(ctx context.Context, prompt string, messages []ai.Message) (string, error) {
            if prompt != systemPrompt {
                t.Errorf("unexpected system prompt %q", prompt)
            }
            return `[]`, nil
        },
    }
    svc := NewService(provider, time.Second, testutil.NopLogger{})
    if _, err := svc.Filter(context.Background(), "remote work", jobs); err != nil {
        t.Fatalf("Filter() error = %v", err)
    }

    if provider.CallCount() != 1 {
        t.Fatalf("expected 1 call, got %d", provider.CallCount())
    }
    content := provider.Calls[0][0].Content
    if !strings.Contains(content, "Query: remote work") || !strings.Contains(content, `"id":"fe-1"`) {
        t.Errorf("prompt missing query or jobs: %s", content)
    }
}

func TestFilter_Validation(t *testing.T) {
    many := make([]Job, MaxJobs+1)
    for i := range many {
        many[i] = Job{ID: string(rune('a' + i%26)), Title: "x"}
    }

    tests := []struct {
        name  string
        query string
        jobs  []Job
    }{
        {"blank query", "   ", jobs},
        {"query too long", strings.Repeat("ж", MaxQueryLength+1), jobs},
        {"no jobs", "go", nil},
        {"too many jobs", "go", many},
        {"job without id", "go", []Job{{ID: " ", Title: "x"}}},
    }

    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            provider := testutil.StaticReply(`[]`)
            svc := NewService(provider, time.Second, testutil.NopLogger{})
            _, err := svc.Filter(context.Background(), tt.query, tt.jobs)
            if TypeOf(err) != ErrTypeValidation {
                t.Fatalf("expected validation error, got %v", err)
            }
            if provider.CallCount() != 0 {
                t.Error("completion service should not be called on invalid input")
            }
        })
    }

    svc := NewService(testutil.StaticReply(`[]`), time.Second, testutil.NopLogger{})
    if _, err := svc.Filter(context.Background(), strings.Repeat("ж", MaxQueryLength), jobs); err != nil {
        t.Errorf("query of exactly %d runes rejected: %v", MaxQueryLength, err)
    }
}

func TestFilter_UpstreamFailures(t *testing.T) {
    t.Run("malformed reply", func(t *testing.T) {
        svc := NewService(testutil.StaticReply("I think go-1 fits."), time.Second, testutil.NopLogger{})
        _, err := svc.Filter(context.Background(), "go", jobs)
        if TypeOf(err) != ErrTypeUpstream {
            t.Fatalf("expected upstream error, got %v", err)
        }
    })

    t.Run("provider error", func(t *testing.T) {
        provider := &testutil.MockCompletionProvider{
            CompleteFunc: func(ctx context.Context, prompt string, messages []ai.Message) (string, error) {
                return "", errors.New("boom")
            },
        }
        svc := NewService(provider, time.Second, testutil.NopLogger{})
        _, err := svc.Filter(context.Background(), "go", jobs)
        if TypeOf(err) != ErrTypeUpstream {
            t.Fatalf("expected upstream error, got %v", err)
        }
    })

    t.Run("timeout", func(t *testing.T) {
        svc := NewService(testutil.SlowReply(time.Second), 10*time.Millisecond, testutil.NopLogger{})
        _, err := svc.Filter(context.Background(), "go", jobs)
        if TypeOf(err) != ErrTypeUpstreamTimeout {
            t.Fatalf("expected timeout error, got %v", err)
        }
    })
}
