package security

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestLimiterBurstThenReject(t *testing.T) {
	l := NewLimiter(2, time.Minute)
	if !l.Allow("1.1.1.1") || !l.Allow("1.1.1.1") {
		t.Fatal("burst requests rejected")
	}
	if l.Allow("1.1.1.1") {
		t.Fatal("third request within the window allowed")
	}
	if !l.Allow("2.2.2.2") {
		t.Fatal("other visitor rejected")
	}
}

func TestLimiterUpdateResetsVisitors(t *testing.T) {
	l := NewLimiter(1, time.Minute)
	l.Allow("a")
	if l.Allow("a") {
		t.Fatal("second request allowed with limit 1")
	}
	l.Update(5, time.Minute)
	for i := 0; i < 5; i++ {
		if !l.Allow("a") {
			t.Fatalf("request %d rejected after raising the limit", i+1)
		}
	}
}

func TestLimiterCleanupDropsIdleVisitors(t *testing.T) {
	l := NewLimiter(10, time.Minute)
	now := time.Now()
	l.now = func() time.Time { return now }
	l.Allow("idle")

	now = now.Add(5 * time.Minute)
	l.Allow("fresh")
	l.Cleanup()

	if l.size() != 1 {
		t.Fatalf("visitors after cleanup = %d, want 1", l.size())
	}
}

func TestMiddlewareAndHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS([]string{"http://allowed.test"}), Secure(), NewLimiter(1, time.Minute).Middleware())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://allowed.test")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "http://allowed.test" {
		t.Fatalf("allow origin = %q", w.Header().Get("Access-Control-Allow-Origin"))
	}
	if w.Header().Get("X-Frame-Options") != "DENY" {
		t.Fatal("secure headers missing")
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", w.Code)
	}
}
