package models

import "github.com/shopspring/decimal"

// CartLine pairs a medicine with the quantity requested by the shopper.
type CartLine struct {
	Medicine Medicine `json:"medicine"`
	Quantity int      `json:"quantity"`
}

// Subtotal is the unit price multiplied by the quantity.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Medicine.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
