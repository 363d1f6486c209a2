// File: internal/dtos/dtos_test.go
package dtos

import (
    "testing"
    "time"

    "github.com/iyunix/go-supportchat/internal/domain"
)

func TestFromMessageSlice_EmptyIsNotNil(t *testing.T) {
    got := FromMessageSlice(nil)
    if got == nil || len(got) != 0 {
        t.Errorf("expected empty non-nil slice, got %#v", got)
    }
}

func TestFromMessage_FormatsUTC(t *testing.T) {
    loc := time.FixedZone("CET", 3600)
    m := domain.Message{ID: 7, Role: domain.MessageRoleUser, Content: "hi", CreatedAt: time.Date(2025, 1, 2, 13, 0, 0, 0, loc)}

    dto := FromMessage(m)
    if dto.CreatedAt != "2025-01-02T12:00:00Z" {
        t.Errorf("CreatedAt = %s", dto.CreatedAt)
    }
    if dto.ID != 7 || dto.Content != "hi" || dto.Role != "user" {
        t.Errorf("unexpected dto %+v", dto)
    }
}

func TestFromThread_ClosedAt(t *testing.T) {
    closed := time.Date(2025, 1, 2, 12, 0, 0, 0, time.UTC)
    dto := FromThread(domain.ConversationThread{ID: "t1", ThreadName: "Billing", ClosedAt: &closed})
    if dto.Name != "Billing" || dto.ClosedAt == nil || *dto.ClosedAt != "2025-01-02T12:00:00Z" {
        t.Errorf("unexpected dto %+v", dto)
    }
    if FromThread(domain.ConversationThread{ID: "t2"}).ClosedAt != nil {
        t.Error("open thread should have no closedAt")
    }
}

func TestToStats(t *testing.T) {
    got := ToStats(map[domain.ConversationStatus]int64{domain.ConversationActive: 2, domain.ConversationExpired: 5}, 40)
    if got.Active != 2 || got.Closed != 0 || got.Expired != 5 || got.Messages != 40 {
        t.Errorf("unexpected stats %+v", got)
    }
}

func TestToThreadList_Empty(t *testing.T) {
    got := ToThreadList("c1", nil)
    if got.Threads == nil || len(got.Threads) != 0 {
        t.Errorf("expected an empty, non-nil list, got %#v", got.Threads)
    }
}
