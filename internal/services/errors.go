package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"apotek/internal/models"
)

var (
	ErrOrderCreation      = errors.New("order creation failed")
	ErrPaymentCreation    = errors.New("payment creation failed")
	ErrPaymentProcessing  = errors.New("payment processing failed")
	ErrOrderUpdate        = errors.New("order status update failed")
	ErrCheckoutInProgress = errors.New("checkout already in progress")
	ErrOutOfStock         = errors.New("medicine is out of stock")
	ErrInvalidToken       = errors.New("invalid token")
)

// Validation sections, reported in the order they are checked.
const (
	SectionAddress = "address"
	SectionPayment = "payment"
	SectionCart    = "cart"
)

// ValidationError is a failed checkout precondition. No backend call has been made.
type ValidationError struct {
	Section string
	Fields  map[string]string // field name -> problem
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+" "+e.Fields[name])
	}
	return fmt.Sprintf("invalid %s: %s", e.Section, strings.Join(parts, ", "))
}

// PaymentDeclinedError means the backend processed the payment but did not complete it.
// The order has been cancelled and the cart left intact.
type PaymentDeclinedError struct {
	OrderID string
	Status  models.PaymentStatus
}

func (e *PaymentDeclinedError) Error() string {
	return fmt.Sprintf("payment for order %s was not completed (status %s)", e.OrderID, e.Status)
}
