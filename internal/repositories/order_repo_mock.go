package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"apotek/internal/models"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
type MockOrderRepository struct {
	orders map[string]models.Order
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]models.Order),
	}
}

// Create stores a new order and returns the stored copy.
func (r *MockOrderRepository) Create(_ context.Context, order *models.Order) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := *order
	if created.ID == "" {
		created.ID = uuid.New().String()
	}
	if created.Status == "" {
		created.Status = models.OrderStatusPending
	}
	now := time.Now()
	created.CreatedAt = now
	created.UpdatedAt = now
	created.Items = append([]models.OrderItem(nil), order.Items...)
	r.orders[created.ID] = created
	return &created, nil
}

// Update applies the non-empty fields of update to an order.
func (r *MockOrderRepository) Update(_ context.Context, id string, update models.OrderUpdate) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with ID %s: %w", id, ErrOrderNotFound)
	}
	if update.Status != "" {
		order.Status = update.Status
	}
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return &order, nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(_ context.Context, id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with ID %s: %w", id, ErrOrderNotFound)
	}
	return &order, nil
}

// ListByPatient returns the orders placed by a patient, newest first.
func (r *MockOrderRepository) ListByPatient(_ context.Context, patientID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Order, 0)
	for _, o := range r.orders {
		if o.PatientID == patientID {
			list = append(list, o)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}
