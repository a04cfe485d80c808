package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"apotek/internal/models"

	"github.com/google/uuid"
)

// MockMedicineRepository is an in-memory implementation of MedicineRepository.
type MockMedicineRepository struct {
	medicines map[string]models.Medicine
	mu        sync.RWMutex
}

// NewMockMedicineRepository creates a new instance of MockMedicineRepository.
func NewMockMedicineRepository() *MockMedicineRepository {
	return &MockMedicineRepository{
		medicines: make(map[string]models.Medicine),
	}
}

// GetAll returns all medicines ordered by name.
func (r *MockMedicineRepository) GetAll(_ context.Context) ([]models.Medicine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Medicine, 0, len(r.medicines))
	for _, m := range r.medicines {
		list = append(list, m)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

// GetByID returns a medicine by its ID.
func (r *MockMedicineRepository) GetByID(_ context.Context, id string) (*models.Medicine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.medicines[id]
	if !ok {
		return nil, fmt.Errorf("medicine with ID %s: %w", id, ErrMedicineNotFound)
	}
	return &m, nil
}

// Create adds a medicine. Used for seeding the local catalog.
func (r *MockMedicineRepository) Create(m *models.Medicine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.Price.IsNegative() || m.StockQuantity < 0 {
		return fmt.Errorf("medicine %s has negative price or stock", m.Name)
	}
	r.medicines[m.ID] = *m
	return nil
}

// SetStock overwrites the stock count of a medicine.
func (r *MockMedicineRepository) SetStock(id string, stock int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.medicines[id]
	if !ok {
		return fmt.Errorf("medicine with ID %s: %w", id, ErrMedicineNotFound)
	}
	m.StockQuantity = stock
	r.medicines[id] = m
	return nil
}
