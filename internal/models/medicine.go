package models

import "github.com/shopspring/decimal"

// Medicine represents a catalog entry served by the pharmacy backend.
type Medicine struct {
	ID                   string          `json:"id" gorm:"primaryKey;type:varchar(64)" validate:"required"`
	Name                 string          `json:"name" validate:"required"`
	Description          string          `json:"description,omitempty"`
	Price                decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	StockQuantity        int             `json:"stock_quantity" validate:"gte=0"`
	PrescriptionRequired bool            `json:"prescription_required"`
	Form                 string          `json:"form,omitempty"`     // e.g. "tablet", "syrup"
	Strength             string          `json:"strength,omitempty"` // e.g. "500mg"
	Manufacturer         string          `json:"manufacturer,omitempty"`
	Category             string          `json:"category,omitempty"`
}

// InStock reports whether at least one unit can still be added to a cart.
func (m Medicine) InStock() bool {
	return m.StockQuantity > 0
}
