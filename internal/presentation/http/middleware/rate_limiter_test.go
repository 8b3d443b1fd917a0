package middleware

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func TestUserRateLimiter(t *testing.T) {
	rl := NewUserRateLimiter(RateLimiterConfig{Requests: 2, Window: time.Hour})

	r := gin.New()
	r.GET("/ping",
		func(c *gin.Context) {
			if id, err := uuid.Parse(c.GetHeader("X-User")); err == nil {
				c.Set("user_id", id)
			}
			c.Next()
		},
		rl.Middleware(),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	alice := map[string]string{"X-User": uuid.NewString()}
	bob := map[string]string{"X-User": uuid.NewString()}

	for i := 0; i < 2; i++ {
		if w := perform(r, http.MethodGet, "/ping", "", alice); w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, w.Code)
		}
	}

	w := perform(r, http.MethodGet, "/ping", "", alice)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("third request: status = %d, want 429", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("missing Retry-After header")
	}
	if got := w.Header().Get("X-RateLimit-Limit"); got != "2" {
		t.Errorf("X-RateLimit-Limit = %q, want 2", got)
	}

	if w := perform(r, http.MethodGet, "/ping", "", bob); w.Code != http.StatusOK {
		t.Errorf("other user: status = %d, want 200", w.Code)
	}

	for i := 0; i < 5; i++ {
		if w := perform(r, http.MethodGet, "/ping", "", nil); w.Code != http.StatusOK {
			t.Fatalf("anonymous request: status = %d, want 200", w.Code)
		}
	}
}

func TestUserRateLimiterCleanup(t *testing.T) {
	rl := NewUserRateLimiter(RateLimiterConfig{Requests: 10, Window: time.Minute, EntryTTL: time.Minute})
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	idle, active := uuid.New(), uuid.New()
	rl.getLimiter(idle)
	now = now.Add(50 * time.Second)
	rl.getLimiter(active)
	now = now.Add(20 * time.Second)

	if removed := rl.Cleanup(); removed != 1 {
		t.Fatalf("Cleanup() = %d, want 1", removed)
	}
	if _, ok := rl.limiters[active]; !ok {
		t.Error("active user's bucket was removed")
	}
	if got := rl.Stats()["active_users"]; got != 1 {
		t.Errorf("active_users = %v, want 1", got)
	}
}
