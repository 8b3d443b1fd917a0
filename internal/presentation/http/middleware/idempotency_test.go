package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/restaurant-pos/internal/domain/entity"
	"github.com/sangkips/restaurant-pos/internal/infrastructure/repository/memory"
)

const checkoutPath = "/orders/:id/checkout"

type idempotencyFixture struct {
	store  *memory.Store
	router *gin.Engine
	user   uuid.UUID
	calls  int
	status int
}

func newIdempotencyFixture(t *testing.T, cfg IdempotencyConfig) *idempotencyFixture {
	t.Helper()
	f := &idempotencyFixture{store: memory.New(), user: uuid.New(), status: http.StatusCreated}
	cfg.Repo = f.store.IdempotencyRepository()

	f.router = gin.New()
	f.router.POST(checkoutPath, withUser(f.user), Idempotency(cfg), func(c *gin.Context) {
		f.calls++
		body, _ := io.ReadAll(c.Request.Body)
		c.JSON(f.status, gin.H{"call": f.calls, "body": string(body)})
	})
	return f
}

func (f *idempotencyFixture) post(body, key string) *httptestResult {
	return f.postTo("/orders/42/checkout", body, key)
}

func (f *idempotencyFixture) postTo(path, body, key string) *httptestResult {
	headers := map[string]string{}
	if key != "" {
		headers[IdempotencyKeyHeader] = key
	}
	w := perform(f.router, http.MethodPost, path, body, headers)
	return &httptestResult{code: w.Code, body: w.Body.String(), replayed: w.Header().Get(IdempotencyReplayedHeader)}
}

type httptestResult struct {
	code     int
	body     string
	replayed string
}

func TestIdempotency_ReplaysStoredResponse(t *testing.T) {
	f := newIdempotencyFixture(t, IdempotencyConfig{})
	body := `{"type":"boleta"}`

	first := f.post(body, "key-1")
	if first.code != http.StatusCreated || first.replayed != "" {
		t.Fatalf("first = %d replayed=%q", first.code, first.replayed)
	}

	second := f.post(body, "key-1")
	if second.code != http.StatusCreated {
		t.Fatalf("second status = %d, want 201", second.code)
	}
	if second.replayed != "true" {
		t.Errorf("%s = %q, want true", IdempotencyReplayedHeader, second.replayed)
	}
	if second.body != first.body {
		t.Errorf("replayed body = %s, want %s", second.body, first.body)
	}
	if f.calls != 1 {
		t.Errorf("handler calls = %d, want 1", f.calls)
	}
}

func TestIdempotency_HandlerStillSeesBody(t *testing.T) {
	f := newIdempotencyFixture(t, IdempotencyConfig{})
	res := f.post(`{"a":1}`, "key-1")
	if want := `{"body":"{\"a\":1}","call":1}`; res.body != want {
		t.Errorf("body = %s, want %s", res.body, want)
	}
}

func TestIdempotency_WithoutKey(t *testing.T) {
	f := newIdempotencyFixture(t, IdempotencyConfig{})
	f.post(`{}`, "")
	f.post(`{}`, "")
	if f.calls != 2 {
		t.Errorf("handler calls = %d, want 2", f.calls)
	}
	if n := f.store.IdempotencyKeys(); n != 0 {
		t.Errorf("stored keys = %d, want 0", n)
	}
}

func TestIdempotency_RequiredKey(t *testing.T) {
	f := newIdempotencyFixture(t, IdempotencyConfig{Required: true})
	if res := f.post(`{}`, ""); res.code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", res.code)
	}
	if f.calls != 0 {
		t.Errorf("handler calls = %d, want 0", f.calls)
	}
}

func TestIdempotency_DifferentBodyIsRejected(t *testing.T) {
	f := newIdempotencyFixture(t, IdempotencyConfig{})
	f.post(`{"amount":10}`, "key-1")

	res := f.post(`{"amount":20}`, "key-1")
	if res.code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", res.code)
	}
	if f.calls != 1 {
		t.Errorf("handler calls = %d, want 1", f.calls)
	}
}

func TestIdempotency_OtherOrderIsRejected(t *testing.T) {
	f := newIdempotencyFixture(t, IdempotencyConfig{})
	body := `{"type":"boleta","payments":[{"method":"cash","amount":10}]}`

	if res := f.postTo("/orders/41/checkout", body, "key-1"); res.code != http.StatusCreated {
		t.Fatalf("first order = %d, want 201", res.code)
	}

	res := f.postTo("/orders/42/checkout", body, "key-1")
	if res.code != http.StatusUnprocessableEntity {
		t.Fatalf("second order = %d replayed=%q, want 422", res.code, res.replayed)
	}
	if res.replayed != "" {
		t.Error("response of the first order was replayed")
	}
	if f.calls != 1 {
		t.Errorf("handler calls = %d, want 1", f.calls)
	}
}

func TestIdempotency_FailuresAreNotStored(t *testing.T) {
	f := newIdempotencyFixture(t, IdempotencyConfig{})
	f.status = http.StatusConflict
	if res := f.post(`{}`, "key-1"); res.code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", res.code)
	}

	f.status = http.StatusCreated
	res := f.post(`{}`, "key-1")
	if res.code != http.StatusCreated || res.replayed != "" {
		t.Fatalf("retry = %d replayed=%q, want a fresh 201", res.code, res.replayed)
	}
	if f.calls != 2 {
		t.Errorf("handler calls = %d, want 2", f.calls)
	}
}

func TestIdempotency_StoreFailureKeepsResponse(t *testing.T) {
	f := newIdempotencyFixture(t, IdempotencyConfig{})
	f.store.FailOn(memory.OpCreateIdempotency, errors.New("disk full"))

	if res := f.post(`{}`, "key-1"); res.code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", res.code)
	}
	if n := f.store.IdempotencyKeys(); n != 0 {
		t.Errorf("stored keys = %d, want 0", n)
	}
}

func TestIdempotency_ScopedPerUser(t *testing.T) {
	f := newIdempotencyFixture(t, IdempotencyConfig{})
	other := uuid.New()
	if err := f.store.IdempotencyRepository().Create(context.Background(), &entity.IdempotencyKey{
		Key:          "key-1",
		UserID:       other,
		Endpoint:     http.MethodPost + " /orders/42/checkout",
		ResponseCode: http.StatusCreated,
		ResponseBody: `{"other":true}`,
		ExpiresAt:    time.Now().Add(time.Hour),
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	res := f.post(`{}`, "key-1")
	if res.replayed != "" || f.calls != 1 {
		t.Fatalf("another user's key was replayed: %s", res.body)
	}
}

func TestIdempotency_ExpiredKeyIsIgnored(t *testing.T) {
	f := newIdempotencyFixture(t, IdempotencyConfig{})
	if err := f.store.IdempotencyRepository().Create(context.Background(), &entity.IdempotencyKey{
		Key:          "key-1",
		UserID:       f.user,
		Endpoint:     http.MethodPost + " /orders/42/checkout",
		RequestHash:  hashBody([]byte(`{"old":true}`)),
		ResponseCode: http.StatusCreated,
		ResponseBody: `{"old":true}`,
		ExpiresAt:    time.Now().Add(-time.Minute),
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	res := f.post(`{"new":true}`, "key-1")
	if res.code != http.StatusCreated || res.replayed != "" {
		t.Fatalf("expired key: %d replayed=%q", res.code, res.replayed)
	}

	// The fresh response replaces the stale row and protects later retries.
	retry := f.post(`{"new":true}`, "key-1")
	if retry.replayed != "true" || retry.body != res.body {
		t.Fatalf("retry = %d replayed=%q %s, want replay of %s", retry.code, retry.replayed, retry.body, res.body)
	}
	if f.calls != 1 {
		t.Errorf("handler calls = %d, want 1", f.calls)
	}
	if n := f.store.IdempotencyKeys(); n != 1 {
		t.Errorf("stored keys = %d, want 1", n)
	}
}

func TestIdempotency_RequiresUser(t *testing.T) {
	r := gin.New()
	r.POST("/x", Idempotency(IdempotencyConfig{Repo: memory.New().IdempotencyRepository()}),
		func(c *gin.Context) { c.Status(http.StatusOK) })

	w := perform(r, http.MethodPost, "/x", `{}`, map[string]string{IdempotencyKeyHeader: "k"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}
