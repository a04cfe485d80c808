package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartSnapshot is one persisted cart, stored as the raw JSON line list.
type CartSnapshot struct {
	CartKey   string `gorm:"primaryKey;type:varchar(255)"`
	Data      string `gorm:"type:text"`
	UpdatedAt time.Time
}

// GORMCartStorage is a GORM implementation of CartStorage.
type GORMCartStorage struct {
	db *gorm.DB
}

// NewGORMCartStorage creates a new GORMCartStorage and migrates its table.
func NewGORMCartStorage(db *gorm.DB) (*GORMCartStorage, error) {
	if err := db.AutoMigrate(&CartSnapshot{}); err != nil {
		return nil, fmt.Errorf("failed to migrate cart snapshots: %w", err)
	}
	return &GORMCartStorage{db: db}, nil
}

// Load retrieves the snapshot stored under key.
func (s *GORMCartStorage) Load(ctx context.Context, key string) ([]byte, error) {
	var snap CartSnapshot
	if err := s.db.WithContext(ctx).First(&snap, "cart_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load cart %s: %w", key, err)
	}
	return []byte(snap.Data), nil
}

// Save writes the snapshot under key, replacing any previous one.
func (s *GORMCartStorage) Save(ctx context.Context, key string, data []byte) error {
	snap := CartSnapshot{CartKey: key, Data: string(data), UpdatedAt: time.Now()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cart_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&snap).Error
	if err != nil {
		return fmt.Errorf("failed to save cart %s: %w", key, err)
	}
	return nil
}
