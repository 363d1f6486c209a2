// File: internal/middleware/ratelimit.go
package middleware

import (
    "encoding/json"
    "net/http"

    "github.com/iyunix/go-supportchat/internal/ratelimit"
)

// RateLimitMiddleware applies the shared per-IP limiter to a whole route under functionName.
func RateLimitMiddleware(limiter ratelimit.Limiter, functionName string, logger Logger) func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            clientIP := ratelimit.GetClientIP(r)

            if !limiter.Check(r.Context(), clientIP, functionName) {
                logger.Warn("rate limited", "function", functionName, "client_ip", clientIP)

                w.Header().Set("Content-Type", "application/json")
                w.WriteHeader(http.StatusTooManyRequests)
                json.NewEncoder(w).Encode(map[string]string{
                    "error": "Too many requests. Please try again later.",
                    "type":  "RATE_LIMIT_EXCEEDED",
                })
                return
            }

            next.ServeHTTP(w, r)
        })
    }
}
