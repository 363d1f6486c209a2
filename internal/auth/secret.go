// File: internal/auth/secret.go
package auth

import (
    "crypto/rand"
    "encoding/base64"
    "fmt"

    "golang.org/x/crypto/bcrypt"
)

// secretBytes is the entropy of a conversation secret (256 bits).
const secretBytes = 32

// GenerateSecret returns a fresh URL-safe conversation secret.
func GenerateSecret() (string, error) {
    buf := make([]byte, secretBytes)
    if _, err := rand.Read(buf); err != nil {
        return "", fmt.Errorf("failed to read random bytes: %w", err)
    }
    return base64.RawURLEncoding.EncodeToString(buf), nil
}

// SecretHasher hashes and verifies conversation secrets with bcrypt.
type SecretHasher struct {
    cost  int
    dummy []byte
}

// NewSecretHasher builds a hasher; cost outside bcrypt's range falls back to the default.
func NewSecretHasher(cost int) (*SecretHasher, error) {
    if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
        cost = bcrypt.DefaultCost
    }
    // Verifying against a dummy hash keeps the unknown-id path as slow as a wrong secret.
    dummy, err := bcrypt.GenerateFromPassword([]byte("unknown-conversation"), cost)
    if err != nil {
        return nil, fmt.Errorf("failed to prepare secret hasher: %w", err)
    }
    return &SecretHasher{cost: cost, dummy: dummy}, nil
}

// Hash returns the bcrypt hash to persist for secret.
func (h *SecretHasher) Hash(secret string) (string, error) {
    hashed, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
    if err != nil {
        return "", err
    }
    return string(hashed), nil
}

// Verify compares secret against hash in constant time. An empty hash is compared
// against the dummy hash and always fails.
func (h *SecretHasher) Verify(hash, secret string) bool {
    if hash == "" {
        _ = bcrypt.CompareHashAndPassword(h.dummy, []byte(secret))
        return false
    }
    return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
