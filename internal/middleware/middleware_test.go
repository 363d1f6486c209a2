// File: internal/middleware/middleware_test.go
package middleware

import (
    "context"
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/gorilla/mux"
    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/testutil"

    "github.com/iyunix/go-supportchat/internal/auth"
    "github.com/iyunix/go-supportchat/internal/metrics"
    "github.com/iyunix/go-supportchat/internal/ratelimit"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Error(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Warn(msg string, keysAndValues ...interface{})  {}

type fakeLimiter struct {
    allow bool
    calls []string
}

func (f *fakeLimiter) Check(ctx context.Context, ip, functionName string) bool {
    f.calls = append(f.calls, functionName+"|"+ip)
    return f.allow
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    w.WriteHeader(http.StatusOK)
})

func TestRequireAdmin(t *testing.T) {
    secret := []byte("test-secret")
    valid, err := auth.GenerateAdminJWT("ops@example.com", secret, time.Hour)
    if err != nil {
        t.Fatalf("GenerateAdminJWT() error = %v", err)
    }
    forged, _ := auth.GenerateAdminJWT("ops@example.com", []byte("other"), time.Hour)

    var gotSubject string
    handler := RequireAdmin(secret, nopLogger{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        gotSubject = AdminSubject(r.Context())
        w.WriteHeader(http.StatusOK)
    }))

    tests := []struct {
        name   string
        header string
        want   int
    }{
        {"valid token", "Bearer " + valid, http.StatusOK},
        {"lowercase scheme", "bearer " + valid, http.StatusOK},
        {"missing header", "", http.StatusUnauthorized},
        {"wrong scheme", "Basic " + valid, http.StatusUnauthorized},
        {"wrong key", "Bearer " + forged, http.StatusUnauthorized},
        {"garbage", "Bearer not-a-jwt", http.StatusUnauthorized},
    }

    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            gotSubject = ""
            req := httptest.NewRequest(http.MethodPost, "/api/admin/sweep", nil)
            if tt.header != "" {
                req.Header.Set("Authorization", tt.header)
            }
            rec := httptest.NewRecorder()
            handler.ServeHTTP(rec, req)

            if rec.Code != tt.want {
                t.Fatalf("status = %d, want %d", rec.Code, tt.want)
            }
            if tt.want == http.StatusOK && gotSubject != "ops@example.com" {
                t.Errorf("subject = %q", gotSubject)
            }
        })
    }
}

func TestRateLimitMiddleware(t *testing.T) {
    limiter := &fakeLimiter{allow: false}
    handler := RateLimitMiddleware(limiter, ratelimit.FunctionJobFilter, nopLogger{})(okHandler)

    req := httptest.NewRequest(http.MethodPost, "/api/jobs/filter", nil)
    req.RemoteAddr = "203.0.113.9:5555"
    rec := httptest.NewRecorder()
    handler.ServeHTTP(rec, req)

    if rec.Code != http.StatusTooManyRequests {
        t.Fatalf("status = %d, want 429", rec.Code)
    }
    if len(limiter.calls) != 1 || limiter.calls[0] != "job-filter|203.0.113.9" {
        t.Errorf("unexpected limiter calls %v", limiter.calls)
    }

    limiter.allow = true
    rec = httptest.NewRecorder()
    handler.ServeHTTP(rec, req)
    if rec.Code != http.StatusOK {
        t.Errorf("status = %d, want 200", rec.Code)
    }
}

func TestRecoverPanic(t *testing.T) {
    handler := RecoverPanic(nopLogger{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        panic("boom")
    }))

    rec := httptest.NewRecorder()
    handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
    if rec.Code != http.StatusInternalServerError {
        t.Errorf("status = %d, want 500", rec.Code)
    }
}

func TestLoggingMiddleware_RecordsRouteTemplate(t *testing.T) {
    m := metrics.NewMetrics(prometheus.NewRegistry())

    r := mux.NewRouter()
    r.Use(LoggingMiddleware(nopLogger{}, m))
    r.HandleFunc("/api/admin/conversations/{id}/close", func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusNoContent)
    }).Methods(http.MethodPost)

    for _, id := range []string{"a", "b"} {
        rec := httptest.NewRecorder()
        r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/conversations/"+id+"/close", nil))
    }

    got := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("/api/admin/conversations/{id}/close", "204"))
    if got != 2 {
        t.Errorf("requests counted = %v, want 2", got)
    }
}

func TestCORS_Preflight(t *testing.T) {
    rec := httptest.NewRecorder()
    CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        t.Error("preflight should not reach the handler")
    })).ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/chat/send", nil))

    if rec.Code != http.StatusOK || rec.Header().Get("Access-Control-Allow-Origin") != "*" {
        t.Errorf("unexpected preflight response %d %v", rec.Code, rec.Header())
    }
}
