// File: internal/policy/policy.go

// Package policy maps a conversation role to the limits and features it is entitled to.
// Everything here is a pure lookup with no I/O.
package policy

import (
    "fmt"
    "strings"
    "time"

    "github.com/iyunix/go-supportchat/internal/domain"
)

// Unlimited is the MessageLimit sentinel for roles without a message cap.
const Unlimited = -1

type limits struct {
    messageLimit      int
    timeoutMinutes    int
    canExport         bool
    canAccessAdvanced bool
}

var roleLimits = map[domain.Role]limits{
    domain.RoleGuest:   {messageLimit: 10, timeoutMinutes: 15},
    domain.RoleUser:    {messageLimit: 50, timeoutMinutes: 30, canExport: true},
    domain.RolePremium: {messageLimit: 500, timeoutMinutes: 60, canExport: true, canAccessAdvanced: true},
    domain.RoleAdmin:   {messageLimit: Unlimited, timeoutMinutes: 60, canExport: true, canAccessAdvanced: true},
}

// lookup falls back to guest limits for unknown roles.
func lookup(role domain.Role) limits {
    if l, ok := roleLimits[role]; ok {
        return l
    }
    return roleLimits[domain.RoleGuest]
}

// MessageLimit returns how many user messages a conversation may hold, or Unlimited.
func MessageLimit(role domain.Role) int {
    return lookup(role).messageLimit
}

func TimeoutMinutes(role domain.Role) int {
    return lookup(role).timeoutMinutes
}

// TimeoutDuration is TimeoutMinutes as a time.Duration.
func TimeoutDuration(role domain.Role) time.Duration {
    return time.Duration(TimeoutMinutes(role)) * time.Minute
}

func CanExport(role domain.Role) bool {
    return lookup(role).canExport
}

func CanAccessAdvanced(role domain.Role) bool {
    return lookup(role).canAccessAdvanced
}

// QuotaReached reports whether a conversation holding count user messages is at its cap.
func QuotaReached(role domain.Role, count int64) bool {
    limit := MessageLimit(role)
    if limit == Unlimited {
        return false
    }
    return count >= int64(limit)
}

// ParseRole validates a role name coming from an admin request.
func ParseRole(s string) (domain.Role, error) {
    role := domain.Role(strings.ToLower(strings.TrimSpace(s)))
    if _, ok := roleLimits[role]; !ok {
        return "", fmt.Errorf("unknown role %q", s)
    }
    return role, nil
}
