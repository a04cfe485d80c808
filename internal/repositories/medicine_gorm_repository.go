package repositories

import (
	"context"
	"errors"
	"fmt"

	"apotek/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMMedicineRepository is a GORM implementation of MedicineRepository. It backs the
// local catalog when no pharmacy backend is configured but a database is.
type GORMMedicineRepository struct {
	db *gorm.DB
}

// NewGORMMedicineRepository creates a new GORMMedicineRepository and migrates its table.
func NewGORMMedicineRepository(db *gorm.DB) (*GORMMedicineRepository, error) {
	if err := db.AutoMigrate(&models.Medicine{}); err != nil {
		return nil, fmt.Errorf("failed to migrate medicines: %w", err)
	}
	return &GORMMedicineRepository{db: db}, nil
}

// GetAll retrieves all medicines ordered by name.
func (r *GORMMedicineRepository) GetAll(ctx context.Context) ([]models.Medicine, error) {
	var medicines []models.Medicine
	if err := r.db.WithContext(ctx).Order("name").Find(&medicines).Error; err != nil {
		return nil, fmt.Errorf("failed to get all medicines: %w", err)
	}
	return medicines, nil
}

// GetByID retrieves a single medicine by its ID.
func (r *GORMMedicineRepository) GetByID(ctx context.Context, id string) (*models.Medicine, error) {
	var medicine models.Medicine
	if err := r.db.WithContext(ctx).First(&medicine, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("medicine with ID %s: %w", id, ErrMedicineNotFound)
		}
		return nil, fmt.Errorf("failed to get medicine by ID %s: %w", id, err)
	}
	return &medicine, nil
}

// Count returns the number of catalog entries.
func (r *GORMMedicineRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Medicine{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count medicines: %w", err)
	}
	return n, nil
}

// Create adds a medicine.
func (r *GORMMedicineRepository) Create(m *models.Medicine) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.Price.IsNegative() || m.StockQuantity < 0 {
		return fmt.Errorf("medicine %s has negative price or stock", m.Name)
	}
	if err := r.db.Create(m).Error; err != nil {
		return fmt.Errorf("failed to create medicine: %w", err)
	}
	return nil
}

// SetStock overwrites the stock count of a medicine.
func (r *GORMMedicineRepository) SetStock(id string, stock int) error {
	res := r.db.Model(&models.Medicine{}).Where("id = ?", id).Update("stock_quantity", stock)
	if res.Error != nil {
		return fmt.Errorf("failed to update stock: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("medicine with ID %s: %w", id, ErrMedicineNotFound)
	}
	return nil
}
