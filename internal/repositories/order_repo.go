package repositories

import (
	"context"

	"apotek/internal/models"
)

// OrderRepository defines the backend order operations used by the storefront.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	Update(ctx context.Context, id string, update models.OrderUpdate) (*models.Order, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	ListByPatient(ctx context.Context, patientID string) ([]models.Order, error)
}
