package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/restaurant-pos/internal/domain/entity"
	"github.com/sangkips/restaurant-pos/internal/domain/enum"
	"github.com/sangkips/restaurant-pos/internal/infrastructure/repository/memory"
	"github.com/sangkips/restaurant-pos/pkg/apperror"
)

func newOrderService(store *memory.Store) *OrderService {
	return NewOrderService(store.Transactor(), store.OrderRepository(), store.TableRepository())
}

func TestOrderService_GetOrder(t *testing.T) {
	f := newCheckoutFixture(t)
	svc := newOrderService(f.store)
	order := f.addOrder(enum.OrderStatusInProgress, "12.00", "3.50")

	got, err := svc.GetOrder(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("GetOrder() error = %v", err)
	}
	if len(got.Items) != 2 {
		t.Errorf("items = %d, want 2", len(got.Items))
	}
	if !got.ItemsTotal().Equal(dec("15.50")) {
		t.Errorf("ItemsTotal() = %s, want 15.50", got.ItemsTotal())
	}
	if got.Table == nil || got.Table.ID != f.table.ID {
		t.Errorf("table not loaded")
	}

	_, err = svc.GetOrder(context.Background(), uuid.New())
	if code := apperror.GetAppError(err).Code; code != http.StatusNotFound {
		t.Errorf("missing order code = %d, want 404", code)
	}
}

func TestOrderService_CancelOrder(t *testing.T) {
	tests := []struct {
		name     string
		status   enum.OrderStatus
		wantCode int
	}{
		{"pending", enum.OrderStatusPending, 0},
		{"served", enum.OrderStatusServed, 0},
		{"paid", enum.OrderStatusPaid, http.StatusConflict},
		{"already cancelled", enum.OrderStatusCancelled, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCheckoutFixture(t)
			svc := newOrderService(f.store)
			order := f.addOrder(tt.status, "10.00")

			err := svc.CancelOrder(context.Background(), order.ID)
			stored, _ := f.store.Order(order.ID)
			table, _ := f.store.Table(f.table.ID)

			if tt.wantCode != 0 {
				if code := apperror.GetAppError(err).Code; code != tt.wantCode {
					t.Fatalf("code = %d, want %d (err = %v)", code, tt.wantCode, err)
				}
				if stored.Status != tt.status {
					t.Errorf("status = %v, want unchanged %v", stored.Status, tt.status)
				}
				if table.Status != enum.TableStatusOccupied {
					t.Errorf("table status = %v, want occupied", table.Status)
				}
				return
			}

			if err != nil {
				t.Fatalf("CancelOrder() error = %v", err)
			}
			if stored.Status != enum.OrderStatusCancelled {
				t.Errorf("status = %v, want cancelled", stored.Status)
			}
			if table.Status != enum.TableStatusFree {
				t.Errorf("table status = %v, want free", table.Status)
			}
		})
	}
}

func TestOrderService_CancelOrderRollsBack(t *testing.T) {
	f := newCheckoutFixture(t)
	svc := newOrderService(f.store)
	order := f.addOrder(enum.OrderStatusServed, "10.00")

	cause := errors.New("deadlock detected")
	f.store.FailOn(memory.OpUpdateTableStatus, cause)

	if err := svc.CancelOrder(context.Background(), order.ID); !errors.Is(err, cause) {
		t.Fatalf("CancelOrder() error = %v, want %v", err, cause)
	}
	stored, _ := f.store.Order(order.ID)
	if stored.Status != enum.OrderStatusServed {
		t.Errorf("status = %v, want served", stored.Status)
	}
}

func TestOrderService_CancelledOrderCannotBeCheckedOut(t *testing.T) {
	f := newCheckoutFixture(t)
	order := f.addOrder(enum.OrderStatusPending, "10.00")

	if err := newOrderService(f.store).CancelOrder(context.Background(), order.ID); err != nil {
		t.Fatalf("CancelOrder() error = %v", err)
	}
	_, err := f.service.Checkout(context.Background(), f.input(order.ID, enum.ReceiptTypeBoleta, "10.00"))
	if !errors.Is(err, apperror.ErrOrderCancelled) {
		t.Errorf("Checkout() error = %v, want cancelled", err)
	}
}

func TestOrderService_CancelTablelessOrder(t *testing.T) {
	store := memory.New()
	user := store.AddUser(entity.User{Name: "Luis"})
	order := store.AddOrder(entity.Order{UserID: user.ID, Status: enum.OrderStatusPending})

	if err := newOrderService(store).CancelOrder(context.Background(), order.ID); err != nil {
		t.Fatalf("CancelOrder() error = %v", err)
	}
}
