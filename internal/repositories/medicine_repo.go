package repositories

import (
	"context"

	"apotek/internal/models"
)

// MedicineRepository defines read access to the medicine catalog.
type MedicineRepository interface {
	GetAll(ctx context.Context) ([]models.Medicine, error)
	GetByID(ctx context.Context, id string) (*models.Medicine, error)
}
