package repositories

import (
	"context"

	"apotek/internal/models"

	"github.com/shopspring/decimal"
)

// PaymentGateway creates payment records and drives them to a terminal status.
type PaymentGateway interface {
	CreatePayment(ctx context.Context, orderID string, amount decimal.Decimal, method models.PaymentMethod) (*models.Payment, error)
	ProcessPayment(ctx context.Context, paymentID string) (*models.Payment, error)
}
