package app

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"slotlink/pkg/client"
	"slotlink/pkg/config"
	httputil "slotlink/pkg/http"
	"slotlink/pkg/logger"
	"slotlink/pkg/middleware"

	"github.com/julienschmidt/httprouter"
)

type echoHandler struct{}

func (echoHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/echo", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		_ = httputil.WriteCreated(w, map[string]string{"ok": "yes"})
	})
	router.GET("/api/v1/echo", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		_ = httputil.WriteSuccess(w, map[string]string{"ok": "yes"})
	})
}

func testConfig() *config.Config {
	return &config.Config{
		Port:               "8080",
		CORSAllowedOrigins: []string{"https://app.example.com"},
		RateLimitRequests:  2,
		RateLimitWindow:    time.Minute,
		RequestTimeout:     time.Second,
		IdempotencyTTL:     time.Minute,
		MaxRequestSize:     1024,
		ReadTimeout:        time.Second,
		WriteTimeout:       time.Second,
		IdleTimeout:        time.Second,
		ShutdownTimeout:    time.Second,
		Log:                logger.Discard(),
		Client:             client.NewClient(),
	}
}

func newTestApp(t *testing.T) http.Handler {
	t.Helper()
	a := NewApplication(testConfig())
	a.SetApp(echoHandler{})
	t.Cleanup(a.Stop)
	return a.Handler()
}

func TestApplication_Routes(t *testing.T) {
	h := newTestApp(t)

	tests := []struct {
		name        string
		method      string
		path        string
		contentType string
		wantStatus  int
	}{
		{name: "health", method: http.MethodGet, path: "/health", wantStatus: http.StatusOK},
		{name: "ready without dependencies", method: http.MethodGet, path: "/ready", wantStatus: http.StatusOK},
		{name: "api get", method: http.MethodGet, path: "/api/v1/echo", wantStatus: http.StatusOK},
		{name: "api post", method: http.MethodPost, path: "/api/v1/echo", contentType: "application/json", wantStatus: http.StatusCreated},
		{name: "api post wrong content type", method: http.MethodPost, path: "/api/v1/echo", contentType: "text/plain", wantStatus: http.StatusUnsupportedMediaType},
		{name: "unknown route", method: http.MethodGet, path: "/api/v1/nope", wantStatus: http.StatusNotFound},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(`{}`))
			req.RemoteAddr = fmt.Sprintf("192.0.2.%d:1000", i+1)
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if rec.Header().Get(middleware.RequestIDHeader) == "" {
				t.Error("response is missing the request id header")
			}
		})
	}
}

func TestApplication_RateLimit(t *testing.T) {
	h := newTestApp(t)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/echo", nil)
		req.RemoteAddr = "198.51.100.9:1000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	want := []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}
	for i := range want {
		if codes[i] != want[i] {
			t.Errorf("request %d status = %d, want %d", i+1, codes[i], want[i])
		}
	}
}

func TestApplication_CORS(t *testing.T) {
	h := newTestApp(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/echo", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Errorf("Access-Control-Allow-Origin = %q, want https://app.example.com", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/echo", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Access-Control-Allow-Origin = %q for disallowed origin, want empty", got)
	}
}
