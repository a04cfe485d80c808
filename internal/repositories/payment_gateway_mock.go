package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"apotek/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MockPaymentGateway simulates payment processing in memory. Payments complete unless
// their method is listed as declined.
type MockPaymentGateway struct {
	payments map[string]models.Payment
	declined map[models.PaymentMethod]bool
	mu       sync.RWMutex
}

// NewMockPaymentGateway creates a gateway that declines the given methods.
func NewMockPaymentGateway(declined ...models.PaymentMethod) *MockPaymentGateway {
	g := &MockPaymentGateway{
		payments: make(map[string]models.Payment),
		declined: make(map[models.PaymentMethod]bool),
	}
	for _, m := range declined {
		g.declined[m] = true
	}
	return g
}

// CreatePayment stores a pending payment for an order.
func (g *MockPaymentGateway) CreatePayment(_ context.Context, orderID string, amount decimal.Decimal, method models.PaymentMethod) (*models.Payment, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	p := models.Payment{
		ID:        uuid.New().String(),
		OrderID:   orderID,
		Amount:    amount,
		Method:    method,
		Status:    models.PaymentStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	g.payments[p.ID] = p
	return &p, nil
}

// ProcessPayment moves a payment to completed or failed.
func (g *MockPaymentGateway) ProcessPayment(_ context.Context, paymentID string) (*models.Payment, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.payments[paymentID]
	if !ok {
		return nil, fmt.Errorf("payment with ID %s: %w", paymentID, ErrPaymentNotFound)
	}
	if p.Status != models.PaymentStatusPending {
		return &p, nil
	}
	if g.declined[p.Method] {
		p.Status = models.PaymentStatusFailed
	} else {
		p.Status = models.PaymentStatusCompleted
		p.TransactionID = "TXN-" + uuid.New().String()
	}
	p.UpdatedAt = time.Now()
	g.payments[paymentID] = p
	return &p, nil
}
