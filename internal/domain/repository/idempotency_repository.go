package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/restaurant-pos/internal/domain/entity"
)

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// GetByKey retrieves an idempotency key by its key string and user ID
	GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error)
	// Create stores a new idempotency key. An unexpired (key, user) pair is
	// left untouched; an expired one is replaced.
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	// DeleteExpired removes keys that expired before the given instant and returns how many.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
