package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sangkips/restaurant-pos/internal/domain/entity"
	"github.com/sangkips/restaurant-pos/internal/domain/enum"
	"github.com/sangkips/restaurant-pos/internal/domain/repository"
	"github.com/sangkips/restaurant-pos/pkg/apperror"
)

// OrderService handles order lookup and cancellation
type OrderService struct {
	tx        repository.Transactor
	orderRepo repository.OrderRepository
	tableRepo repository.TableRepository
}

// NewOrderService creates a new order service
func NewOrderService(
	tx repository.Transactor,
	orderRepo repository.OrderRepository,
	tableRepo repository.TableRepository,
) *OrderService {
	return &OrderService{
		tx:        tx,
		orderRepo: orderRepo,
		tableRepo: tableRepo,
	}
}

// GetOrder retrieves an order with its items
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// CancelOrder cancels an unpaid order and frees its table
func (s *OrderService) CancelOrder(ctx context.Context, orderID uuid.UUID) error {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		order, err := s.orderRepo.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Order")
		}

		switch order.Status {
		case enum.OrderStatusPaid:
			return apperror.NewConflictError("A paid order cannot be cancelled")
		case enum.OrderStatusCancelled:
			return apperror.NewConflictError("Order is already cancelled")
		}

		if err := s.orderRepo.UpdateStatus(ctx, orderID, enum.OrderStatusCancelled); err != nil {
			return fmt.Errorf("cancel order: %w", err)
		}
		if order.TableID != nil {
			if _, err := s.tableRepo.UpdateStatus(ctx, *order.TableID, enum.TableStatusFree); err != nil {
				return fmt.Errorf("free table: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		if apperror.IsAppError(err) {
			return err
		}
		zerolog.Ctx(ctx).Error().Err(err).Str("order_id", orderID.String()).Msg("Order cancellation failed")
		return err
	}

	zerolog.Ctx(ctx).Info().Str("order_id", orderID.String()).Msg("Order cancelled")
	return nil
}
