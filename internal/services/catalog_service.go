package services

import (
	"context"
	"fmt"

	"apotek/internal/models"
	"apotek/internal/repositories"
)

// CatalogService handles the read-only medicine catalog and adding from it to a cart.
type CatalogService struct {
	repo repositories.MedicineRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo repositories.MedicineRepository) *CatalogService {
	return &CatalogService{
		repo: repo,
	}
}

// GetAllMedicines retrieves the full catalog.
func (s *CatalogService) GetAllMedicines(ctx context.Context) ([]models.Medicine, error) {
	return s.repo.GetAll(ctx)
}

// GetMedicineByID retrieves a single medicine.
func (s *CatalogService) GetMedicineByID(ctx context.Context, id string) (*models.Medicine, error) {
	return s.repo.GetByID(ctx, id)
}

// AddToCart fetches the current medicine record and adds one unit to the cart.
// Returns ErrOutOfStock when the cart already holds all available units.
func (s *CatalogService) AddToCart(ctx context.Context, store *CartStore, medicineID string) (*models.Medicine, error) {
	m, err := s.repo.GetByID(ctx, medicineID)
	if err != nil {
		return nil, err
	}
	if store.Quantity(m.ID) >= m.StockQuantity {
		return m, fmt.Errorf("%s: %w", m.Name, ErrOutOfStock)
	}
	if err := store.AddItem(ctx, *m); err != nil {
		return m, err
	}
	return m, nil
}
