package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRequestID_SetsHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	if got := w.Header().Get(headerRequestID); got == "" {
		t.Fatalf("%s header should be set", headerRequestID)
	}
	if got := w.Header().Get(headerClientID); got == "" {
		t.Fatalf("%s header should be set", headerClientID)
	}
}

func TestRequestID_PropagatesProvided(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(headerRequestID, "rid-xyz")
	req.Header.Set(headerClientID, "cid-xyz")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get(headerRequestID) != "rid-xyz" || w.Header().Get(headerClientID) != "cid-xyz" {
		t.Fatalf("did not propagate provided headers: %s %s", w.Header().Get(headerRequestID), w.Header().Get(headerClientID))
	}
}

func TestRequestID_GeneratesUniqueIDs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	ids := make(map[string]bool)
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		id := w.Header().Get(headerRequestID)
		if id == "" || ids[id] {
			t.Fatalf("request id not unique: %q", id)
		}
		ids[id] = true
	}
}
