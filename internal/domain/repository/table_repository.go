package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/restaurant-pos/internal/domain/enum"
)

// TableRepository defines the interface for dining table operations
type TableRepository interface {
	// UpdateStatus sets the table occupancy and reports whether the table exists.
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.TableStatus) (bool, error)
}
