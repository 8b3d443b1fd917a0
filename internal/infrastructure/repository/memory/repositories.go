package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/restaurant-pos/internal/domain/entity"
	"github.com/sangkips/restaurant-pos/internal/domain/enum"
	domainRepo "github.com/sangkips/restaurant-pos/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// OrderRepository returns an order repository backed by the store.
func (s *Store) OrderRepository() domainRepo.OrderRepository { return &orderRepository{s} }

// CustomerRepository returns a customer repository backed by the store.
func (s *Store) CustomerRepository() domainRepo.CustomerRepository { return &customerRepository{s} }

// PaymentRepository returns a payment repository backed by the store.
func (s *Store) PaymentRepository() domainRepo.PaymentRepository { return &paymentRepository{s} }

// SaleRepository returns a sale repository backed by the store.
func (s *Store) SaleRepository() domainRepo.SaleRepository { return &saleRepository{s} }

// ReceiptSequenceRepository returns a receipt numbering repository backed by the store.
func (s *Store) ReceiptSequenceRepository() domainRepo.ReceiptSequenceRepository {
	return &sequenceRepository{s}
}

// TableRepository returns a table repository backed by the store.
func (s *Store) TableRepository() domainRepo.TableRepository { return &tableRepository{s} }

// IdempotencyRepository returns an idempotency key repository backed by the store.
func (s *Store) IdempotencyRepository() domainRepo.IdempotencyRepository {
	return &idempotencyRepository{s}
}

type orderRepository struct{ s *Store }

// loadOrder attaches table and user. Must be called with s.mu held.
func (s *Store) loadOrder(o entity.Order) *entity.Order {
	o = copyOrder(o)
	if o.TableID != nil {
		if t, ok := s.data.tables[*o.TableID]; ok {
			o.Table = &t
		}
	}
	if u, ok := s.data.users[o.UserID]; ok {
		o.User = &u
	}
	return &o
}

func (r *orderRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.data.orders[id]
	if !ok {
		return nil, nil
	}
	return r.s.loadOrder(o), nil
}

func (r *orderRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	if !inTx(ctx) {
		return nil, ErrNoTransaction
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.data.orders[id]
	if !ok {
		return nil, nil
	}
	o = copyOrder(o)
	return &o, nil
}

func (r *orderRepository) MarkPaid(ctx context.Context, id uuid.UUID, total decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.injected(OpMarkOrderPaid); err != nil {
		return err
	}
	o, ok := r.s.data.orders[id]
	if !ok {
		return nil
	}
	o.Status = enum.OrderStatusPaid
	o.Total = total
	r.s.data.orders[id] = o
	return nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.injected(OpUpdateOrderStatus); err != nil {
		return err
	}
	if o, ok := r.s.data.orders[id]; ok {
		o.Status = status
		r.s.data.orders[id] = o
	}
	return nil
}

type customerRepository struct{ s *Store }

// docNumberTaken must be called with s.mu held.
func (s *Store) docNumberTaken(docNumber string) bool {
	for _, c := range s.data.customers {
		if c.DocNumber == docNumber {
			return true
		}
	}
	return false
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.injected(OpCreateCustomer); err != nil {
		return err
	}
	if r.s.docNumberTaken(customer.DocNumber) {
		return fmt.Errorf("%w: customers.doc_number %q", domainRepo.ErrDuplicateKey, customer.DocNumber)
	}
	r.s.insertCustomer(customer)
	return nil
}

func (r *customerRepository) CreateIfAbsent(ctx context.Context, customer *entity.Customer) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.injected(OpCreateCustomer); err != nil {
		return false, err
	}
	if r.s.docNumberTaken(customer.DocNumber) {
		return false, nil
	}
	r.s.insertCustomer(customer)
	return true, nil
}

// insertCustomer must be called with s.mu held.
func (s *Store) insertCustomer(customer *entity.Customer) {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	now := time.Now()
	customer.CreatedAt = now
	customer.UpdatedAt = now
	s.data.customers[customer.ID] = *customer
}

func (r *customerRepository) GetByDocNumber(ctx context.Context, docNumber string) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.data.customers {
		if c.DocNumber == docNumber {
			return &c, nil
		}
	}
	return nil, nil
}

type paymentRepository struct{ s *Store }

func (r *paymentRepository) CreateBatch(ctx context.Context, payments []entity.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.injected(OpCreatePayments); err != nil {
		return err
	}
	for i := range payments {
		if payments[i].ID == uuid.Nil {
			payments[i].ID = uuid.New()
		}
		r.s.data.payments = append(r.s.data.payments, payments[i])
	}
	return nil
}

// paymentsFor must be called with s.mu held.
func (s *Store) paymentsFor(orderID uuid.UUID) []entity.Payment {
	var out []entity.Payment
	for _, p := range s.data.payments {
		if p.OrderID == orderID {
			out = append(out, p)
		}
	}
	return out
}

type saleRepository struct{ s *Store }

func (r *saleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.injected(OpCreateSale); err != nil {
		return err
	}
	for _, existing := range r.s.data.sales {
		if existing.Series == sale.Series && existing.Number == sale.Number {
			return fmt.Errorf("%w: sales (%s, %d)", domainRepo.ErrDuplicateKey, sale.Series, sale.Number)
		}
	}
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	stored := *sale
	stored.Order = nil
	stored.Customer = nil
	r.s.data.sales = append(r.s.data.sales, stored)
	return nil
}

func (r *saleRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sale := range r.s.data.sales {
		if sale.ID != id {
			continue
		}
		if o, ok := r.s.data.orders[sale.OrderID]; ok {
			sale.Order = r.s.loadOrder(o)
			sale.Order.Payments = r.s.paymentsFor(o.ID)
		}
		if sale.CustomerID != nil {
			if c, ok := r.s.data.customers[*sale.CustomerID]; ok {
				sale.Customer = &c
			}
		}
		return &sale, nil
	}
	return nil, nil
}

// maxNumber must be called with s.mu held.
func (s *Store) maxNumber(series string) uint {
	var n uint
	for _, sale := range s.data.sales {
		if sale.Series == series && sale.Number > n {
			n = sale.Number
		}
	}
	return n
}

type sequenceRepository struct{ s *Store }

func (r *sequenceRepository) Next(ctx context.Context, series string) (uint, error) {
	if !inTx(ctx) {
		return 0, ErrNoTransaction
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.injected(OpNextNumber); err != nil {
		return 0, err
	}
	next := max(r.s.data.sequences[series], r.s.maxNumber(series)) + 1
	r.s.data.sequences[series] = next
	return next, nil
}

type tableRepository struct{ s *Store }

func (r *tableRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.TableStatus) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.injected(OpUpdateTableStatus); err != nil {
		return false, err
	}
	t, ok := r.s.data.tables[id]
	if !ok {
		return false, nil
	}
	t.Status = status
	r.s.data.tables[id] = t
	return true, nil
}

type idempotencyRepository struct{ s *Store }

func idempotencyMapKey(key string, userID uuid.UUID) string {
	return userID.String() + "|" + key
}

func (r *idempotencyRepository) GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ikey, ok := r.s.data.idempotency[idempotencyMapKey(key, userID)]
	if !ok {
		return nil, nil
	}
	return &ikey, nil
}

func (r *idempotencyRepository) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.injected(OpCreateIdempotency); err != nil {
		return err
	}
	k := idempotencyMapKey(ikey.Key, ikey.UserID)
	if existing, ok := r.s.data.idempotency[k]; ok && !existing.IsExpired() {
		return nil
	}
	if ikey.ID == uuid.Nil {
		ikey.ID = uuid.New()
	}
	if ikey.CreatedAt.IsZero() {
		ikey.CreatedAt = time.Now()
	}
	r.s.data.idempotency[k] = *ikey
	return nil
}

func (r *idempotencyRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.injected(OpDeleteIdempotency); err != nil {
		return 0, err
	}
	var expired []string
	for k, v := range r.s.data.idempotency {
		if v.ExpiresAt.Before(before) {
			expired = append(expired, k)
		}
	}
	for _, k := range expired {
		delete(r.s.data.idempotency, k)
	}
	return int64(len(expired)), nil
}
