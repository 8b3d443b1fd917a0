package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sangkips/restaurant-pos/internal/domain/entity"
	"github.com/sangkips/restaurant-pos/internal/domain/enum"
	"github.com/sangkips/restaurant-pos/internal/domain/repository"
	"github.com/sangkips/restaurant-pos/pkg/apperror"
	"github.com/shopspring/decimal"
)

// CheckoutService turns an open order into a paid sale
type CheckoutService struct {
	tx           repository.Transactor
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	paymentRepo  repository.PaymentRepository
	saleRepo     repository.SaleRepository
	sequenceRepo repository.ReceiptSequenceRepository
	tableRepo    repository.TableRepository
	now          func() time.Time
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	tx repository.Transactor,
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	paymentRepo repository.PaymentRepository,
	saleRepo repository.SaleRepository,
	sequenceRepo repository.ReceiptSequenceRepository,
	tableRepo repository.TableRepository,
) *CheckoutService {
	return &CheckoutService{
		tx:           tx,
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		paymentRepo:  paymentRepo,
		saleRepo:     saleRepo,
		sequenceRepo: sequenceRepo,
		tableRepo:    tableRepo,
		now:          time.Now,
	}
}

// CheckoutInput represents the checkout request for an order
type CheckoutInput struct {
	OrderID  uuid.UUID        `json:"-"`
	UserID   uuid.UUID        `json:"-"`
	Type     enum.ReceiptType `json:"type" validate:"required,receipt_type"`
	Customer *CustomerInput   `json:"customer" validate:"omitempty"`
	Payments []PaymentInput   `json:"payments" validate:"required,min=1,dive"`
}

// CustomerInput identifies the receipt holder. An empty document number
// means the sale is issued without a customer.
type CustomerInput struct {
	DocType   enum.DocType `json:"doc_type" validate:"omitempty,doc_type"`
	DocNumber string       `json:"doc_number" validate:"omitempty,max=20"`
	Name      string       `json:"name" validate:"omitempty,max=255"`
	Email     string       `json:"email" validate:"omitempty,max=255,email"`
	Phone     string       `json:"phone" validate:"omitempty,max=50"`
	Address   string       `json:"address" validate:"omitempty,max=255"`
}

// PaymentInput is one tender line of a checkout
type PaymentInput struct {
	Method    enum.PaymentMethod `json:"method" validate:"required,payment_method"`
	Amount    decimal.Decimal    `json:"amount" validate:"-"`
	Reference *string            `json:"reference" validate:"omitempty,max=100"`
}

func (in *CheckoutInput) normalize() {
	if c := in.Customer; c != nil {
		c.DocNumber = strings.TrimSpace(c.DocNumber)
		c.Name = strings.TrimSpace(c.Name)
		c.Email = strings.TrimSpace(c.Email)
		c.Phone = strings.TrimSpace(c.Phone)
		c.Address = strings.TrimSpace(c.Address)
	}
	for i := range in.Payments {
		p := &in.Payments[i]
		if p.Reference != nil {
			ref := strings.TrimSpace(*p.Reference)
			if ref == "" {
				p.Reference = nil
			} else {
				p.Reference = &ref
			}
		}
	}
}

// validate checks the raw amounts, so a sub-cent amount is rejected rather
// than rounded up to the minimum.
func (in *CheckoutInput) validate() error {
	fields := validateStruct(in)
	for i, p := range in.Payments {
		if p.Amount.LessThan(minPaymentAmount) {
			fields = append(fields, apperror.FieldError{
				Field:   fmt.Sprintf("payments[%d].amount", i),
				Message: "must be at least " + minPaymentAmount.StringFixed(2),
			})
		}
	}
	if len(fields) > 0 {
		return apperror.NewValidationError(fields)
	}
	return nil
}

// payments builds the payment rows of the checkout with amounts rounded to cents.
func (in *CheckoutInput) payments(paidAt time.Time) []entity.Payment {
	payments := make([]entity.Payment, 0, len(in.Payments))
	for _, p := range in.Payments {
		payments = append(payments, entity.Payment{
			OrderID:   in.OrderID,
			UserID:    in.UserID,
			Method:    p.Method,
			Amount:    p.Amount.Round(2),
			Reference: p.Reference,
			PaidAt:    paidAt,
		})
	}
	return payments
}

// ensurePayable rejects orders that already reached a terminal state.
func ensurePayable(status enum.OrderStatus) error {
	switch status {
	case enum.OrderStatusPaid:
		return apperror.ErrOrderAlreadyPaid
	case enum.OrderStatusCancelled:
		return apperror.ErrOrderCancelled
	}
	return nil
}

// Checkout validates the request, reconciles the payments against the order
// total and, in a single transaction, records the payments, issues the next
// receipt number of the series, creates the sale, marks the order paid and
// frees its table.
func (s *CheckoutService) Checkout(ctx context.Context, input *CheckoutInput) (*entity.Sale, error) {
	input.normalize()
	if err := input.validate(); err != nil {
		return nil, err
	}

	order, err := s.orderRepo.GetWithItems(ctx, input.OrderID)
	if err != nil {
		return nil, s.fail(ctx, input, err)
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if err := ensurePayable(order.Status); err != nil {
		return nil, err
	}
	if !WithinTolerance(entity.SumPayments(input.payments(s.now())), order.ItemsTotal()) {
		return nil, apperror.ErrPaymentMismatch
	}

	var sale *entity.Sale
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var txErr error
		sale, txErr = s.settle(ctx, input)
		return txErr
	})
	if err != nil {
		if apperror.IsAppError(err) {
			return nil, err
		}
		return nil, s.fail(ctx, input, err)
	}

	zerolog.Ctx(ctx).Info().
		Str("order_id", input.OrderID.String()).
		Str("sale_id", sale.ID.String()).
		Str("receipt", sale.ReceiptNumber()).
		Str("total", sale.Total.StringFixed(2)).
		Msg("Checkout completed")

	return sale, nil
}

// settle performs the checkout writes. It must run inside a transaction.
func (s *CheckoutService) settle(ctx context.Context, input *CheckoutInput) (*entity.Sale, error) {
	// Serialize checkouts of the same order, then re-read the state and the
	// items that the lock now protects.
	locked, err := s.orderRepo.GetForUpdate(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if locked == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if err := ensurePayable(locked.Status); err != nil {
		return nil, err
	}
	order, err := s.orderRepo.GetWithItems(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	now := s.now()
	payments := input.payments(now)
	total := order.ItemsTotal()
	if !WithinTolerance(entity.SumPayments(payments), total) {
		return nil, apperror.ErrPaymentMismatch
	}

	customerID, err := s.resolveCustomer(ctx, input.Customer)
	if err != nil {
		return nil, err
	}

	if err := s.paymentRepo.CreateBatch(ctx, payments); err != nil {
		return nil, fmt.Errorf("insert payments: %w", err)
	}

	series := input.Type.Series()
	number, err := s.sequenceRepo.Next(ctx, series)
	if err != nil {
		return nil, fmt.Errorf("allocate %s number: %w", series, err)
	}

	subtotal, tax := SplitTax(total)
	sale := &entity.Sale{
		OrderID:     order.ID,
		CustomerID:  customerID,
		ReceiptType: input.Type,
		Series:      series,
		Number:      number,
		Subtotal:    subtotal,
		Tax:         tax,
		Total:       total,
		Status:      enum.SaleStatusPaid,
		IssuedAt:    now,
	}
	if err := s.saleRepo.Create(ctx, sale); err != nil {
		return nil, fmt.Errorf("insert sale %s: %w", sale.ReceiptNumber(), err)
	}

	if err := s.orderRepo.MarkPaid(ctx, order.ID, total); err != nil {
		return nil, fmt.Errorf("mark order paid: %w", err)
	}

	if order.TableID != nil {
		found, err := s.tableRepo.UpdateStatus(ctx, *order.TableID, enum.TableStatusFree)
		if err != nil {
			return nil, fmt.Errorf("free table: %w", err)
		}
		if !found {
			zerolog.Ctx(ctx).Warn().
				Str("order_id", order.ID.String()).
				Str("table_id", order.TableID.String()).
				Msg("Order references a missing table")
		}
	}

	return sale, nil
}

// resolveCustomer returns the id of the customer registered under the
// document number, registering a new one when none exists. A stored customer
// is never modified by checkout.
func (s *CheckoutService) resolveCustomer(ctx context.Context, in *CustomerInput) (*uuid.UUID, error) {
	if in == nil || in.DocNumber == "" {
		return nil, nil
	}

	existing, err := s.customerRepo.GetByDocNumber(ctx, in.DocNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &existing.ID, nil
	}

	customer := newCustomer(in)
	created, err := s.customerRepo.CreateIfAbsent(ctx, customer)
	if err != nil {
		return nil, fmt.Errorf("insert customer: %w", err)
	}
	if created {
		return &customer.ID, nil
	}

	// Registered concurrently by another checkout.
	existing, err = s.customerRepo.GetByDocNumber(ctx, in.DocNumber)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("customer %s not found after conflicting insert", in.DocNumber)
	}
	return &existing.ID, nil
}

func newCustomer(in *CustomerInput) *entity.Customer {
	docType := in.DocType
	if !docType.IsValid() {
		docType = enum.InferDocType(in.DocNumber)
	}
	name := in.Name
	if name == "" {
		name = entity.DefaultCustomerName
	}
	return &entity.Customer{
		Name:      name,
		DocType:   docType,
		DocNumber: in.DocNumber,
		Email:     optional(in.Email),
		Phone:     optional(in.Phone),
		Address:   optional(in.Address),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// fail logs a storage failure with its cause and hides it behind the generic
// checkout error.
func (s *CheckoutService) fail(ctx context.Context, input *CheckoutInput, err error) error {
	zerolog.Ctx(ctx).Error().
		Err(err).
		Str("order_id", input.OrderID.String()).
		Str("receipt_type", input.Type.String()).
		Str("user_id", input.UserID.String()).
		Msg("Checkout transaction failed")
	return apperror.Wrap(apperror.ErrCheckoutFailed, err)
}
