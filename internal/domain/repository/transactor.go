package repository

import (
	"context"
	"errors"
)

// ErrDuplicateKey is returned when a write violates a unique constraint.
var ErrDuplicateKey = errors.New("duplicate key")

// Transactor runs a function inside a single database transaction.
//
// Repositories called with the context passed to fn take part in the
// transaction. The transaction commits when fn returns nil and rolls back
// when fn returns an error or panics.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
