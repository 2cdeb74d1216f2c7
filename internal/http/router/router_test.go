package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"snipstash/internal/http/handler"
	"snipstash/internal/repository/fake"
	"snipstash/internal/service"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewService(fake.NewSnippetRepository(), service.RealClock{})
	return NewRouter(handler.NewHandler(svc), handler.NewHealthHandler(nil, nil))
}

func TestRouter_RoutesBasic(t *testing.T) {
	r := newTestRouter()

	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		expected int
	}{
		{"ping", http.MethodGet, "/api/v1/ping", "", http.StatusOK},
		{"liveness", http.MethodGet, "/api/v1/livez", "", http.StatusOK},
		{"readiness no deps", http.MethodGet, "/api/v1/readyz", "", http.StatusOK},
		{"list empty", http.MethodGet, "/api/v1/snippets", "", http.StatusOK},
		{"languages", http.MethodGet, "/api/v1/languages", "", http.StatusOK},
		{"create no body", http.MethodPost, "/api/v1/snippets", "", http.StatusBadRequest},
		{"delete bad id", http.MethodDelete, "/api/v1/snippets/abc", "", http.StatusBadRequest},
		{"unknown path", http.MethodGet, "/api/v1/nope", "", http.StatusNotFound},
		{"wrong version", http.MethodGet, "/api/v2/snippets", "", http.StatusNotFound},
		{"put not wired", http.MethodPut, "/api/v1/snippets/1", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if tt.body != "" {
				req = httptest.NewRequest(tt.method, tt.path, bytes.NewBufferString(tt.body))
				req.Header.Set("Content-Type", "application/json")
			} else {
				req = httptest.NewRequest(tt.method, tt.path, nil)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.expected {
				t.Fatalf("want %d, got %d", tt.expected, w.Code)
			}
		})
	}
}

func TestRouter_RequestIDHeadersSet(t *testing.T) {
	r := newTestRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected X-Request-ID header")
	}
	if w.Header().Get("X-Client-ID") == "" {
		t.Fatalf("expected X-Client-ID header")
	}
}

func TestRouter_PanicRecovered(t *testing.T) {
	r := newTestRouter()
	r.GET("/api/v1/panic", func(*gin.Context) { panic("test panic") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/panic", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("want 500, got %d", w.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if errObj, ok := resp["error"].(map[string]any); !ok || errObj["code"] != "internal_error" {
		t.Fatalf("unexpected body: %v", resp)
	}
}
