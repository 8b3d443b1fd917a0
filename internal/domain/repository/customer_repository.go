package repository

import (
	"context"

	"github.com/sangkips/restaurant-pos/internal/domain/entity"
)

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	// CreateIfAbsent inserts the customer unless its document number is already
	// registered. It reports whether a row was inserted.
	CreateIfAbsent(ctx context.Context, customer *entity.Customer) (bool, error)
	// GetByDocNumber looks up a customer by exact document number, soft-deleted rows included.
	GetByDocNumber(ctx context.Context, docNumber string) (*entity.Customer, error)
}
