package services

import (
	"context"
	"fmt"

	"github.com/amalbenali/glowshop/app/models"
	"github.com/amalbenali/glowshop/app/repositories"
)

type OrderService struct {
	orderRepo repositories.OrderRepository
}

func NewOrderService(orderRepo repositories.OrderRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo}
}

func (s *OrderService) GetByID(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, &PersistenceError{Op: "load order", Err: err}
	}
	if order == nil {
		return nil, fmt.Errorf("%w: order %s", ErrNotFound, orderID)
	}
	return order, nil
}

func (s *OrderService) ListForUser(ctx context.Context, userID string) ([]models.Order, error) {
	orders, err := s.orderRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, &PersistenceError{Op: "list orders", Err: err}
	}
	return orders, nil
}

func (s *OrderService) ListAll(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orderRepo.GetAllOrders(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: "list orders", Err: err}
	}
	return orders, nil
}

// SetStatus moves an order to a new status. Any status may move to any
// other; only membership in the enumerated set is checked. The write is
// conditional on the lock version read here, so two admins racing on the
// same order cannot silently overwrite each other.
func (s *OrderService) SetStatus(ctx context.Context, orderID, status string) (*models.Order, error) {
	if !models.IsValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, &PersistenceError{Op: "load order", Err: err}
	}
	if order == nil {
		return nil, fmt.Errorf("%w: order %s", ErrNotFound, orderID)
	}

	updated, err := s.orderRepo.UpdateStatus(ctx, orderID, status, order.LockVersion)
	if err != nil {
		return nil, &PersistenceError{Op: "update order status", Err: err}
	}
	if !updated {
		return nil, ErrStatusConflict
	}

	order.Status = status
	order.LockVersion++
	return order, nil
}
