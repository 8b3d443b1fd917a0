package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/sangkips/restaurant-pos/pkg/logger"
)

func TestLoggerMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger.InitWithWriter(&buf, "debug", "json")

	r := gin.New()
	r.Use(LoggerMiddleware())
	r.GET("/orders/:id", func(c *gin.Context) {
		zerolog.Ctx(c.Request.Context()).Info().Msg("inside handler")
		c.Status(http.StatusNotFound)
	})

	w := perform(r, http.MethodGet, "/orders/7?x=1", "", map[string]string{RequestIDHeader: "req-123"})
	if got := w.Header().Get(RequestIDHeader); got != "req-123" {
		t.Errorf("%s = %q, want req-123", RequestIDHeader, got)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d log lines, want 2:\n%s", len(lines), buf.String())
	}

	var inner, access map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &inner); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &access); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if inner["request_id"] != "req-123" {
		t.Errorf("handler log request_id = %v, want req-123", inner["request_id"])
	}
	if access["level"] != "warn" {
		t.Errorf("level = %v, want warn for a 404", access["level"])
	}
	if access["path"] != "/orders/7?x=1" {
		t.Errorf("path = %v", access["path"])
	}
	if access["status_code"] != float64(http.StatusNotFound) {
		t.Errorf("status_code = %v", access["status_code"])
	}
}

func TestLoggerMiddlewareGeneratesRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger.InitWithWriter(&buf, "info", "json")

	r := gin.New()
	r.Use(LoggerMiddleware())
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := perform(r, http.MethodGet, "/health", "", nil)
	if w.Header().Get(RequestIDHeader) == "" {
		t.Error("no request id assigned")
	}
}
