package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/restaurant-pos/internal/domain/entity"
)

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	// GetWithDetails returns the sale with customer, order, table, staff user,
	// items and payments loaded, or nil when absent.
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
}

// ReceiptSequenceRepository allocates receipt numbers per series
type ReceiptSequenceRepository interface {
	// Next locks the series counter and returns the next unused number,
	// recording it as consumed. Must run inside a transaction.
	Next(ctx context.Context, series string) (uint, error)
}
