package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/restaurant-pos/internal/domain/entity"
	"github.com/sangkips/restaurant-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	// GetWithItems returns the order with its items and their products, or nil when absent.
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	// GetForUpdate reads the order row under an exclusive row lock. Must run inside a transaction.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	// MarkPaid sets the order status to paid and caches its total.
	MarkPaid(ctx context.Context, id uuid.UUID, total decimal.Decimal) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error
}
