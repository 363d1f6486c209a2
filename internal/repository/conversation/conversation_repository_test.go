// File: internal/repository/conversation/conversation_repository_test.go
package conversation

import (
    "context"
    "errors"
    "testing"
    "time"

    "github.com/google/uuid"

    "github.com/iyunix/go-supportchat/internal/domain"
    "github.com/iyunix/go-supportchat/internal/testutil"
)

var baseTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newConversation(timeoutAt time.Time) *domain.Conversation {
    return &domain.Conversation{
        ID:             uuid.NewString(),
        UserName:       "Ada",
        UserEmail:      "ada@example.com",
        Role:           domain.RoleGuest,
        SecretHash:     "hash",
        Status:         domain.ConversationActive,
        LastActivityAt: baseTime,
        TimeoutAt:      timeoutAt,
    }
}

func TestCreateAndFind(t *testing.T) {
    repo := NewConversationRepository(testutil.NewTestDB(t))
    ctx := context.Background()

    conv := newConversation(baseTime.Add(15 * time.Minute))
    if err := repo.Create(ctx, conv); err != nil {
        t.Fatalf("Create() error = %v", err)
    }

    got, err := repo.FindByID(ctx, conv.ID)
    if err != nil {
        t.Fatalf("FindByID() error = %v", err)
    }
    if got.UserEmail != "ada@example.com" || got.Status != domain.ConversationActive {
        t.Errorf("unexpected conversation: %+v", got)
    }
    if !got.TimeoutAt.Equal(conv.TimeoutAt) {
        t.Errorf("TimeoutAt = %v, want %v", got.TimeoutAt, conv.TimeoutAt)
    }

    if _, err := repo.FindByID(ctx, uuid.NewString()); !errors.Is(err, ErrConversationNotFound) {
        t.Errorf("expected ErrConversationNotFound, got %v", err)
    }
}

func TestCreate_RequiresSecretHash(t *testing.T) {
    repo := NewConversationRepository(testutil.NewTestDB(t))
    conv := newConversation(baseTime)
    conv.SecretHash = ""
    if err := repo.Create(context.Background(), conv); err == nil {
        t.Error("expected error without secret hash")
    }
}

func TestTransition(t *testing.T) {
    repo := NewConversationRepository(testutil.NewTestDB(t))
    ctx := context.Background()

    conv := newConversation(baseTime.Add(time.Hour))
    if err := repo.Create(ctx, conv); err != nil {
        t.Fatalf("Create() error = %v", err)
    }

    changed, err := repo.Transition(ctx, conv.ID, domain.ConversationClosed, baseTime)
    if err != nil || !changed {
        t.Fatalf("first Transition() = %v, %v; want true, nil", changed, err)
    }
    changed, err = repo.Transition(ctx, conv.ID, domain.ConversationExpired, baseTime)
    if err != nil || changed {
        t.Fatalf("second Transition() = %v, %v; want false, nil", changed, err)
    }

    got, _ := repo.FindByID(ctx, conv.ID)
    if got.Status != domain.ConversationClosed {
        t.Errorf("Status = %s, want closed", got.Status)
    }
    if got.ClosedAt == nil {
        t.Error("ClosedAt not set")
    }

    if _, err := repo.Transition(ctx, "missing", domain.ConversationClosed, baseTime); !errors.Is(err, ErrConversationNotFound) {
        t.Errorf("expected ErrConversationNotFound, got %v", err)
    }
}

func TestTouch_OnlyActive(t *testing.T) {
    repo := NewConversationRepository(testutil.NewTestDB(t))
    ctx := context.Background()

    conv := newConversation(baseTime.Add(15 * time.Minute))
    _ = repo.Create(ctx, conv)

    later := baseTime.Add(5 * time.Minute)
    if err := repo.Touch(ctx, conv.ID, later, later.Add(15*time.Minute)); err != nil {
        t.Fatalf("Touch() error = %v", err)
    }
    got, _ := repo.FindByID(ctx, conv.ID)
    if !got.TimeoutAt.Equal(later.Add(15 * time.Minute)) {
        t.Errorf("TimeoutAt = %v", got.TimeoutAt)
    }

    _, _ = repo.Transition(ctx, conv.ID, domain.ConversationClosed, later)
    if err := repo.Touch(ctx, conv.ID, later, later); !errors.Is(err, ErrConversationNotFound) {
        t.Errorf("Touch on closed conversation: got %v", err)
    }
}

func TestExpireIdle(t *testing.T) {
    repo := NewConversationRepository(testutil.NewTestDB(t))
    ctx := context.Background()

    idle := newConversation(baseTime.Add(-time.Minute))
    fresh := newConversation(baseTime.Add(time.Minute))
    closed := newConversation(baseTime.Add(-time.Hour))
    for _, c := range []*domain.Conversation{idle, fresh, closed} {
        if err := repo.Create(ctx, c); err != nil {
            t.Fatalf("Create() error = %v", err)
        }
    }
    _, _ = repo.Transition(ctx, closed.ID, domain.ConversationClosed, baseTime.Add(-2*time.Hour))

    n, err := repo.ExpireIdle(ctx, baseTime)
    if err != nil {
        t.Fatalf("ExpireIdle() error = %v", err)
    }
    if n != 1 {
        t.Errorf("expired %d conversations, want 1", n)
    }

    got, _ := repo.FindByID(ctx, idle.ID)
    if got.Status != domain.ConversationExpired {
        t.Errorf("idle status = %s, want expired", got.Status)
    }
    got, _ = repo.FindByID(ctx, fresh.ID)
    if got.Status != domain.ConversationActive {
        t.Errorf("fresh status = %s, want active", got.Status)
    }
    got, _ = repo.FindByID(ctx, closed.ID)
    if got.Status != domain.ConversationClosed {
        t.Errorf("closed status = %s, want closed", got.Status)
    }

    // Idempotent.
    n, err = repo.ExpireIdle(ctx, baseTime)
    if err != nil || n != 0 {
        t.Errorf("second ExpireIdle() = %d, %v; want 0, nil", n, err)
    }

    active, _ := repo.CountByStatus(ctx, domain.ConversationActive)
    if active != 1 {
        t.Errorf("active count = %d, want 1", active)
    }
}

func TestThreadPointer(t *testing.T) {
    repo := NewConversationRepository(testutil.NewTestDB(t))
    ctx := context.Background()

    conv := newConversation(baseTime.Add(time.Hour))
    _ = repo.Create(ctx, conv)

    if err := repo.SetThread(ctx, conv.ID, "t-1"); err != nil {
        t.Fatalf("SetThread() error = %v", err)
    }
    // Clearing a different thread leaves the pointer alone.
    _ = repo.ClearThread(ctx, conv.ID, "t-2")
    got, _ := repo.FindByID(ctx, conv.ID)
    if got.ThreadID == nil || *got.ThreadID != "t-1" {
        t.Fatalf("ThreadID = %v, want t-1", got.ThreadID)
    }

    _ = repo.ClearThread(ctx, conv.ID, "t-1")
    got, _ = repo.FindByID(ctx, conv.ID)
    if got.ThreadID != nil {
        t.Errorf("ThreadID = %v, want nil", *got.ThreadID)
    }
}

func TestUpdateRole(t *testing.T) {
    repo := NewConversationRepository(testutil.NewTestDB(t))
    ctx := context.Background()

    conv := newConversation(baseTime.Add(15 * time.Minute))
    _ = repo.Create(ctx, conv)

    if err := repo.UpdateRole(ctx, conv.ID, domain.RolePremium, baseTime.Add(time.Hour)); err != nil {
        t.Fatalf("UpdateRole() error = %v", err)
    }
    got, _ := repo.FindByID(ctx, conv.ID)
    if got.Role != domain.RolePremium || !got.TimeoutAt.Equal(baseTime.Add(time.Hour)) {
        t.Errorf("unexpected role/timeout: %s %v", got.Role, got.TimeoutAt)
    }
    if err := repo.UpdateRole(ctx, "missing", domain.RoleUser, baseTime); !errors.Is(err, ErrConversationNotFound) {
        t.Errorf("expected ErrConversationNotFound, got %v", err)
    }
}
