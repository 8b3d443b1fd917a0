package repository

import (
	"context"
	"errors"

	"github.com/sangkips/restaurant-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/restaurant-pos/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return translateError(conn(ctx, r.db).Create(customer).Error)
}

func (r *customerRepository) CreateIfAbsent(ctx context.Context, customer *entity.Customer) (bool, error) {
	result := conn(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "doc_number"}},
			DoNothing: true,
		}).
		Create(customer)
	if result.Error != nil {
		return false, translateError(result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *customerRepository) GetByDocNumber(ctx context.Context, docNumber string) (*entity.Customer, error) {
	var customer entity.Customer
	err := conn(ctx, r.db).
		Scopes(WithDeleted).
		First(&customer, "doc_number = ?", docNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}
