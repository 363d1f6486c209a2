// File: internal/services/reaper/reaper_test.go
package reaper

import (
    "context"
    "errors"
    "testing"
    "time"

    "github.com/google/uuid"

    "github.com/iyunix/go-supportchat/internal/domain"
    "github.com/iyunix/go-supportchat/internal/policy"
    "github.com/iyunix/go-supportchat/internal/repository/conversation"
    "github.com/iyunix/go-supportchat/internal/testutil"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type stubPruner struct {
    n   int64
    err error
}

func (p stubPruner) Prune(ctx context.Context) (int64, error) { return p.n, p.err }

func seed(t *testing.T, repo conversation.ConversationRepository, role domain.Role, lastActivity time.Time) string {
    t.Helper()
    conv := &domain.Conversation{
        ID:             uuid.NewString(),
        UserName:       "Ada",
        UserEmail:      "ada@example.com",
        Role:           role,
        SecretHash:     "hash",
        Status:         domain.ConversationActive,
        LastActivityAt: lastActivity,
        TimeoutAt:      lastActivity.Add(policy.TimeoutDuration(role)),
    }
    if err := repo.Create(context.Background(), conv); err != nil {
        t.Fatalf("Create() error = %v", err)
    }
    return conv.ID
}

func TestSweep_ExpiresOnlyIdleConversations(t *testing.T) {
    repo := conversation.NewConversationRepository(testutil.NewTestDB(t))
    ctx := context.Background()

    idleGuest := seed(t, repo, domain.RoleGuest, now.Add(-16*time.Minute))
    freshGuest := seed(t, repo, domain.RoleGuest, now.Add(-14*time.Minute))
    // 40 minutes idle is past the guest window but inside premium's hour.
    premium := seed(t, repo, domain.RolePremium, now.Add(-40*time.Minute))

    r := New(repo, stubPruner{n: 3}, testutil.NopLogger{}, nil).WithClock(func() time.Time { return now })

    res, err := r.Sweep(ctx)
    if err != nil {
        t.Fatalf("Sweep() error = %v", err)
    }
    if res.Expired != 1 {
        t.Errorf("Expired = %d, want 1", res.Expired)
    }
    if res.PrunedWindows != 3 {
        t.Errorf("PrunedWindows = %d, want 3", res.PrunedWindows)
    }

    want := map[string]domain.ConversationStatus{
        idleGuest:  domain.ConversationExpired,
        freshGuest: domain.ConversationActive,
        premium:    domain.ConversationActive,
    }
    for id, status := range want {
        conv, _ := repo.FindByID(ctx, id)
        if conv.Status != status {
            t.Errorf("conversation %s status = %s, want %s", id, conv.Status, status)
        }
    }

    // Second run with no new activity changes nothing.
    res, err = r.Sweep(ctx)
    if err != nil {
        t.Fatalf("second Sweep() error = %v", err)
    }
    if res.Expired != 0 {
        t.Errorf("second sweep expired %d, want 0", res.Expired)
    }
}

func TestSweep_PruneFailureIsNotFatal(t *testing.T) {
    repo := conversation.NewConversationRepository(testutil.NewTestDB(t))
    seed(t, repo, domain.RoleGuest, now.Add(-time.Hour))

    r := New(repo, stubPruner{err: errors.New("locked")}, testutil.NopLogger{}, nil).WithClock(func() time.Time { return now })
    res, err := r.Sweep(context.Background())
    if err != nil {
        t.Fatalf("Sweep() error = %v", err)
    }
    if res.Expired != 1 {
        t.Errorf("Expired = %d, want 1", res.Expired)
    }
}

func TestSchedule_RejectsBadSpec(t *testing.T) {
    repo := conversation.NewConversationRepository(testutil.NewTestDB(t))
    r := New(repo, nil, testutil.NopLogger{}, nil)
    if _, err := r.Schedule("not a schedule", time.Second); err == nil {
        t.Error("expected error for invalid cron spec")
    }

    stop, err := r.Schedule("@every 1h", time.Second)
    if err != nil {
        t.Fatalf("Schedule() error = %v", err)
    }
    stop()
}
