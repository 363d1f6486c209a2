// File: internal/middleware/logger.go
package middleware

import (
    "net/http"
    "strconv"
    "time"

    "github.com/gorilla/mux"

    "github.com/iyunix/go-supportchat/internal/metrics"
    "github.com/iyunix/go-supportchat/internal/ratelimit"
)

// LoggingMiddleware logs each request and records it in the HTTP metrics.
// Routes are labelled by their mux template so ids do not explode metric cardinality.
func LoggingMiddleware(logger Logger, m *metrics.Metrics) func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            start := time.Now()
            wrapper := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

            next.ServeHTTP(wrapper, r)

            duration := time.Since(start)
            route := routeTemplate(r)
            m.RecordHTTPRequest(route, strconv.Itoa(wrapper.statusCode), duration)

            logger.Info("request",
                "method", r.Method,
                "route", route,
                "status", wrapper.statusCode,
                "bytes", wrapper.bytes,
                "client_ip", ratelimit.GetClientIP(r),
                "duration_ms", duration.Milliseconds(),
            )
        })
    }
}

func routeTemplate(r *http.Request) string {
    if route := mux.CurrentRoute(r); route != nil {
        if tpl, err := route.GetPathTemplate(); err == nil {
            return tpl
        }
    }
    return "unmatched"
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
    http.ResponseWriter
    statusCode  int
    bytes       int
    wroteHeader bool
}

func (rw *responseWriter) WriteHeader(code int) {
    if !rw.wroteHeader {
        rw.statusCode = code
        rw.wroteHeader = true
    }
    rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
    rw.wroteHeader = true
    n, err := rw.ResponseWriter.Write(b)
    rw.bytes += n
    return n, err
}
