package repository

import (
	"context"

	"github.com/sangkips/restaurant-pos/internal/domain/entity"
)

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	// CreateBatch inserts the payments in slice order.
	CreateBatch(ctx context.Context, payments []entity.Payment) error
}
