// File: internal/middleware/auth.go
package middleware

import (
    "net/http"
    "strings"
)

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(r *http.Request) (string, bool) {
    header := r.Header.Get("Authorization")
    const prefix = "bearer "
    if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
        return "", false
    }
    token := strings.TrimSpace(header[len(prefix):])
    return token, token != ""
}
