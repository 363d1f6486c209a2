// File: internal/middleware/admin_middleware.go
package middleware

import (
    "context"
    "encoding/json"
    "net/http"

    "github.com/iyunix/go-supportchat/internal/auth"
)

// RequireAdmin checks for an HS256 bearer token carrying role=admin.
// The token subject is stored in the request context under AdminSubjectKey.
func RequireAdmin(secretKey []byte, logger Logger) func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            token, ok := bearerToken(r)
            if !ok {
                logger.Warn("admin route without bearer token", "path", r.URL.Path)
                unauthorized(w)
                return
            }

            subject, err := auth.ValidateAdminToken(token, secretKey)
            if err != nil {
                logger.Warn("admin token rejected", "path", r.URL.Path, "error", err)
                unauthorized(w)
                return
            }

            logger.Debug("admin access granted", "subject", subject, "path", r.URL.Path)
            ctx := context.WithValue(r.Context(), AdminSubjectKey, subject)
            next.ServeHTTP(w, r.WithContext(ctx))
        })
    }
}

func unauthorized(w http.ResponseWriter) {
    w.Header().Set("WWW-Authenticate", `Bearer realm="admin"`)
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(http.StatusUnauthorized)
    json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
}
