package service

import (
	"context"
	"errors"
	"strings"

	"github.com/sangkips/restaurant-pos/internal/domain/entity"
	"github.com/sangkips/restaurant-pos/internal/domain/enum"
	"github.com/sangkips/restaurant-pos/internal/domain/repository"
	"github.com/sangkips/restaurant-pos/pkg/apperror"
)

// CustomerService handles customer lookup and registration at the counter
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CustomerSearchResult is the outcome of a document number lookup
type CustomerSearchResult struct {
	Found    bool             `json:"found"`
	Customer *entity.Customer `json:"customer"`
}

type docNumberQuery struct {
	DocNumber string `json:"doc_number" validate:"required,max=20"`
}

// SearchByDocNumber looks up a customer by exact document number. A miss is
// not an error.
func (s *CustomerService) SearchByDocNumber(ctx context.Context, docNumber string) (*CustomerSearchResult, error) {
	q := docNumberQuery{DocNumber: strings.TrimSpace(docNumber)}
	if fields := validateStruct(q); len(fields) > 0 {
		return nil, apperror.NewValidationError(fields)
	}

	customer, err := s.customerRepo.GetByDocNumber(ctx, q.DocNumber)
	if err != nil {
		return nil, err
	}
	return &CustomerSearchResult{Found: customer != nil, Customer: customer}, nil
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	DocType   enum.DocType `json:"doc_type" validate:"required,doc_type"`
	DocNumber string       `json:"doc_number" validate:"required,max=20"`
	Name      string       `json:"name" validate:"required,max=255"`
	Email     string       `json:"email" validate:"omitempty,max=255,email"`
	Phone     string       `json:"phone" validate:"omitempty,max=50"`
	Address   string       `json:"address" validate:"omitempty,max=255"`
}

// CreateCustomer registers a new customer. The document number must not be
// registered yet.
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	input.DocNumber = strings.TrimSpace(input.DocNumber)
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Address = strings.TrimSpace(input.Address)

	if fields := validateStruct(input); len(fields) > 0 {
		return nil, apperror.NewValidationError(fields)
	}

	existing, err := s.customerRepo.GetByDocNumber(ctx, input.DocNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A customer with this document number already exists")
	}

	customer := &entity.Customer{
		Name:      input.Name,
		DocType:   input.DocType,
		DocNumber: input.DocNumber,
		Email:     optional(input.Email),
		Phone:     optional(input.Phone),
		Address:   optional(input.Address),
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperror.NewConflictError("A customer with this document number already exists")
		}
		return nil, err
	}

	return customer, nil
}
