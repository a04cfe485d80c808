package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod identifies the active variant of a PaymentSelection.
type PaymentMethod string

const (
	PaymentMethodCOD  PaymentMethod = "cod"
	PaymentMethodUPI  PaymentMethod = "upi"
	PaymentMethodCard PaymentMethod = "card"
)

// PaymentSelection is the payment choice made at checkout. Exactly one variant is active:
// CashOnDelivery, UPIPayment or CardPayment.
type PaymentSelection interface {
	Method() PaymentMethod
	isPaymentSelection()
}

// CashOnDelivery needs no further details.
type CashOnDelivery struct{}

// UPIPayment carries the payer's UPI id (for example "name@bank").
type UPIPayment struct {
	ID string `json:"upi_id" validate:"required,contains=@"`
}

// CardPayment carries the card details entered by the shopper.
type CardPayment struct {
	Number string `json:"card_number" validate:"required,cardnumber"`
	Expiry string `json:"expiry" validate:"required,expiry"` // MM/YY
	CVV    string `json:"cvv" validate:"required,cvv"`
	Holder string `json:"card_holder" validate:"required"`
}

func (CashOnDelivery) Method() PaymentMethod { return PaymentMethodCOD }
func (UPIPayment) Method() PaymentMethod     { return PaymentMethodUPI }
func (CardPayment) Method() PaymentMethod    { return PaymentMethodCard }

func (CashOnDelivery) isPaymentSelection() {}
func (UPIPayment) isPaymentSelection()     {}
func (CardPayment) isPaymentSelection()    {}

// PaymentStatus is the backend-reported state of a payment record.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Payment is the backend payment record attached to an order.
type Payment struct {
	ID            string          `json:"id"`
	OrderID       string          `json:"order_id"`
	Amount        decimal.Decimal `json:"amount"`
	Method        PaymentMethod   `json:"method"`
	Status        PaymentStatus   `json:"status"`
	TransactionID string          `json:"transaction_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
