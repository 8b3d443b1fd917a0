// Package memory provides in-process implementations of the domain
// repositories. Transactions are serialized and roll back by restoring a
// snapshot, which makes the package suitable for exercising services without
// a database.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/sangkips/restaurant-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/restaurant-pos/internal/domain/repository"
)

// ErrNoTransaction is returned by operations that require a transaction.
var ErrNoTransaction = errors.New("memory: operation requires a transaction")

// Operation names accepted by FailOn.
const (
	OpCreateCustomer    = "customers.create"
	OpCreatePayments    = "payments.create"
	OpNextNumber        = "sequences.next"
	OpCreateSale        = "sales.create"
	OpMarkOrderPaid     = "orders.mark_paid"
	OpUpdateOrderStatus = "orders.update_status"
	OpUpdateTableStatus = "tables.update_status"
	OpCreateIdempotency = "idempotency.create"
	OpDeleteIdempotency = "idempotency.delete_expired"
)

type txKey struct{}

type state struct {
	users       map[uuid.UUID]entity.User
	tables      map[uuid.UUID]entity.Table
	orders      map[uuid.UUID]entity.Order
	customers   map[uuid.UUID]entity.Customer
	payments    []entity.Payment
	sales       []entity.Sale
	sequences   map[string]uint
	idempotency map[string]entity.IdempotencyKey
}

func newState() state {
	return state{
		users:       make(map[uuid.UUID]entity.User),
		tables:      make(map[uuid.UUID]entity.Table),
		orders:      make(map[uuid.UUID]entity.Order),
		customers:   make(map[uuid.UUID]entity.Customer),
		sequences:   make(map[string]uint),
		idempotency: make(map[string]entity.IdempotencyKey),
	}
}

func (s state) clone() state {
	c := newState()
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.tables {
		c.tables[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = copyOrder(v)
	}
	for k, v := range s.customers {
		c.customers[k] = v
	}
	for k, v := range s.sequences {
		c.sequences[k] = v
	}
	for k, v := range s.idempotency {
		c.idempotency[k] = v
	}
	c.payments = append([]entity.Payment(nil), s.payments...)
	c.sales = append([]entity.Sale(nil), s.sales...)
	return c
}

func copyOrder(o entity.Order) entity.Order {
	o.Items = append([]entity.OrderItem(nil), o.Items...)
	o.Table = nil
	o.User = nil
	o.Payments = nil
	return o
}

// Store holds the in-memory dataset shared by all repositories it hands out.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex
	data state
	fail map[string]error
}

// New creates an empty store.
func New() *Store {
	return &Store{
		data: newState(),
		fail: make(map[string]error),
	}
}

// FailOn makes every subsequent call of op return err. A nil err clears it.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.fail, op)
		return
	}
	s.fail[op] = err
}

// injected must be called with s.mu held.
func (s *Store) injected(op string) error {
	return s.fail[op]
}

func inTx(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(bool)
	return ok
}

// WithinTransaction implements domainRepo.Transactor. Transactions run one at
// a time; on error or panic the dataset is restored to its state at begin.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if inTx(ctx) {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.data.clone()
	s.mu.Unlock()

	rollback := func() {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
	}

	defer func() {
		if p := recover(); p != nil {
			rollback()
			panic(p)
		}
	}()

	if err = fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		rollback()
	}
	return err
}

// Transactor returns the store as a domain transactor.
func (s *Store) Transactor() domainRepo.Transactor {
	return s
}

// AddUser seeds a staff user.
func (s *Store) AddUser(u entity.User) entity.User {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.users[u.ID] = u
	return u
}

// AddTable seeds a dining table.
func (s *Store) AddTable(t entity.Table) entity.Table {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.tables[t.ID] = t
	return t
}

// AddOrder seeds an order together with its items.
func (s *Store) AddOrder(o entity.Order) entity.Order {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	for i := range o.Items {
		if o.Items[i].ID == uuid.Nil {
			o.Items[i].ID = uuid.New()
		}
		o.Items[i].OrderID = o.ID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.orders[o.ID] = copyOrder(o)
	return o
}

// AddCustomer seeds a customer.
func (s *Store) AddCustomer(c entity.Customer) entity.Customer {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.customers[c.ID] = c
	return c
}

// Order returns the stored order without relations.
func (s *Store) Order(id uuid.UUID) (entity.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.data.orders[id]
	return copyOrder(o), ok
}

// Table returns the stored table.
func (s *Store) Table(id uuid.UUID) (entity.Table, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.data.tables[id]
	return t, ok
}

// Customers returns all stored customers.
func (s *Store) Customers() []entity.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Customer, 0, len(s.data.customers))
	for _, c := range s.data.customers {
		out = append(out, c)
	}
	return out
}

// Payments returns all stored payments in insertion order.
func (s *Store) Payments() []entity.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Payment(nil), s.data.payments...)
}

// Sales returns all stored sales in insertion order.
func (s *Store) Sales() []entity.Sale {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Sale(nil), s.data.sales...)
}

// IdempotencyKeys returns the number of stored idempotency keys.
func (s *Store) IdempotencyKeys() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.idempotency)
}
