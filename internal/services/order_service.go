package services

import (
	"context"
	"fmt"
	"sort"

	"apotek/internal/models"
	"apotek/internal/repositories"
)

// OrderService serves a patient's order history.
type OrderService struct {
	orderRepo repositories.OrderRepository
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
	}
}

// History lists the orders of a patient, newest first.
func (s *OrderService) History(ctx context.Context, patientID string) ([]models.Order, error) {
	orders, err := s.orderRepo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders, nil
}

// GetOrder returns one order, hiding orders that belong to another patient.
func (s *OrderService) GetOrder(ctx context.Context, patientID, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.PatientID != patientID {
		return nil, fmt.Errorf("order with ID %s: %w", orderID, repositories.ErrOrderNotFound)
	}
	return order, nil
}
