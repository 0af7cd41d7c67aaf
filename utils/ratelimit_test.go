package utils

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestLimiterStore_EvictsIdleClients(t *testing.T) {
	store := newLimiterStore(60)
	start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 100; i++ {
		store.get(fmt.Sprintf("10.0.0.%d", i), start)
	}
	if store.size() != 100 {
		t.Fatalf("expected 100 limiters, got %d", store.size())
	}

	store.get("10.0.0.1", start.Add(4*time.Minute))
	store.get("192.168.1.1", start.Add(limiterIdleTTL+time.Second))
	if got := store.size(); got != 2 {
		t.Fatalf("expected idle clients evicted leaving 2, got %d", got)
	}
}

func TestLimiterStore_KeepsActiveClientState(t *testing.T) {
	store := newLimiterStore(2)
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	l := store.get("10.0.0.1", now)
	if store.get("10.0.0.1", now.Add(time.Second)) != l {
		t.Fatal("expected the same limiter for an active client")
	}
}

func TestRateLimitMiddleware_RejectsOverLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimitMiddleware(2))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.9:1234"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("expected [200 200 429], got %v", codes)
	}
}
