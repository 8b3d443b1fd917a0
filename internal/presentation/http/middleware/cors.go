package middleware

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sangkips/restaurant-pos/internal/config"
)

// Headers the till front end reads from API responses.
var exposedHeaders = []string{
	"Content-Length",
	"Content-Type",
	"Location",
	"Retry-After",
	"X-RateLimit-Limit",
	"X-RateLimit-Remaining",
	IdempotencyReplayedHeader,
}

// Headers the till must always be allowed to send.
var requiredHeaders = []string{"Authorization", "Content-Type", IdempotencyKeyHeader}

// CORSMiddleware lets the POS front end call the API from the browser.
// Unset origins fall back to the local front end dev servers.
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	return cors.New(corsConfig(cfg))
}

func corsConfig(cfg *config.CORSConfig) cors.Config {
	c := cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     cfg.AllowedMethods,
		ExposeHeaders:    exposedHeaders,
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if len(c.AllowOrigins) == 0 {
		c.AllowOrigins = []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		}
	}

	// The API only reads, creates and patches.
	if len(c.AllowMethods) == 0 {
		c.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions}
	}

	c.AllowHeaders = append([]string{"Accept", "Origin", "X-Request-ID"}, cfg.AllowedHeaders...)
	for _, h := range requiredHeaders {
		if !slices.Contains(c.AllowHeaders, h) {
			c.AllowHeaders = append(c.AllowHeaders, h)
		}
	}
	return c
}
