package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"apotek/internal/models"
	"apotek/internal/repositories"
	"apotek/pkg/rabbitmq"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// OrderEventPublisher publishes order lifecycle events. *rabbitmq.Client implements it.
type OrderEventPublisher interface {
	PublishOrderEvent(event rabbitmq.OrderEvent) error
}

// CheckoutRequest is the submitted checkout form.
type CheckoutRequest struct {
	Address models.Address
	Payment models.PaymentSelection
	Patient models.Patient
}

// CheckoutResult is returned when the order has been booked.
type CheckoutResult struct {
	Order   *models.Order
	Payment *models.Payment
}

// CheckoutService turns a cart, an address and a payment selection into a booked order.
type CheckoutService struct {
	orders        repositories.OrderRepository
	payments      repositories.PaymentGateway
	events        OrderEventPublisher // may be nil
	validate      *validator.Validate
	nominalAmount decimal.Decimal
	log           logrus.FieldLogger

	mu       sync.Mutex
	inFlight map[string]bool
}

// NewCheckoutService creates a CheckoutService. Payments are created for nominalAmount.
func NewCheckoutService(orders repositories.OrderRepository, payments repositories.PaymentGateway, events OrderEventPublisher, nominalAmount decimal.Decimal, log logrus.FieldLogger) *CheckoutService {
	return &CheckoutService{
		orders:        orders,
		payments:      payments,
		events:        events,
		validate:      newCheckoutValidator(),
		nominalAmount: nominalAmount,
		log:           log,
		inFlight:      make(map[string]bool),
	}
}

// Checkout validates the request and then runs the order placement sequence:
//
//  1. create the order as pending
//  2. create a pending payment for it
//  3. process the payment
//  4. book the order and take the ordered lines out of the cart, or cancel the order and
//     keep the cart
//
// Validation failures return *ValidationError before any backend call. A second call for
// the same cart while one is running returns ErrCheckoutInProgress. Nothing is retried.
func (s *CheckoutService) Checkout(ctx context.Context, store *CartStore, req CheckoutRequest) (*CheckoutResult, error) {
	if err := s.validateCheckout(store, req); err != nil {
		return nil, err
	}

	if !s.begin(store.Key()) {
		return nil, ErrCheckoutInProgress
	}
	defer s.end(store.Key())

	log := s.log.WithFields(logrus.Fields{"cart": store.Key(), "patient": req.Patient.ID})
	method := req.Payment.Method()

	lines := store.Lines()
	order, err := s.createOrder(ctx, lines, req)
	if err != nil {
		log.WithError(err).Error("order creation failed")
		return nil, fmt.Errorf("%w: %w", ErrOrderCreation, err)
	}
	log = log.WithField("order", order.ID)

	payment, err := s.payments.CreatePayment(ctx, order.ID, s.nominalAmount, method)
	if err != nil {
		log.WithError(err).Error("payment creation failed")
		s.compensate(ctx, log, order)
		return nil, fmt.Errorf("%w: %w", ErrPaymentCreation, err)
	}
	log = log.WithField("payment", payment.ID)

	processed, err := s.payments.ProcessPayment(ctx, payment.ID)
	if err != nil {
		log.WithError(err).Error("payment processing failed")
		s.compensate(ctx, log, order)
		return nil, fmt.Errorf("%w: %w", ErrPaymentProcessing, err)
	}

	if processed.Status != models.PaymentStatusCompleted {
		log.WithField("status", processed.Status).Warn("payment declined, cancelling order")
		s.compensate(ctx, log, order)
		return nil, &PaymentDeclinedError{OrderID: order.ID, Status: processed.Status}
	}

	booked, err := s.orders.Update(ctx, order.ID, models.OrderUpdate{Status: models.OrderStatusBooked})
	// The payment went through, so the ordered lines leave the cart even if booking failed.
	if clearErr := store.Deduct(ctx, lines); clearErr != nil {
		log.WithError(clearErr).Error("failed to clear cart after payment")
	}
	if err != nil {
		log.WithError(err).Error("payment completed but order could not be booked")
		return nil, fmt.Errorf("%w: order %s: %w", ErrOrderUpdate, order.ID, err)
	}

	s.publish(log, rabbitmq.EventOrderBooked, booked)
	log.Info("order booked")
	return &CheckoutResult{Order: booked, Payment: processed}, nil
}

func (s *CheckoutService) createOrder(ctx context.Context, lines []models.CartLine, req CheckoutRequest) (*models.Order, error) {
	address, err := req.Address.Trimmed().Serialize()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize address: %w", err)
	}

	items := make([]models.OrderItem, 0, len(lines))
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
		items = append(items, models.OrderItem{
			MedicineID: l.Medicine.ID,
			Name:       l.Medicine.Name,
			Quantity:   l.Quantity,
			Price:      l.Medicine.Price,
		})
	}

	return s.orders.Create(ctx, &models.Order{
		PatientID:       req.Patient.ID,
		PatientName:     req.Patient.Name,
		PatientEmail:    req.Patient.Email,
		Items:           items,
		TotalAmount:     total,
		Status:          models.OrderStatusPending,
		DeliveryAddress: address,
		PaymentMethod:   req.Payment.Method(),
	})
}

// compensate cancels an order whose payment did not complete. Failures are logged for
// manual reconciliation.
func (s *CheckoutService) compensate(ctx context.Context, log logrus.FieldLogger, order *models.Order) {
	cancelled, err := s.orders.Update(ctx, order.ID, models.OrderUpdate{Status: models.OrderStatusCancelled})
	if err != nil {
		log.WithError(err).Error("failed to cancel order, left pending")
		return
	}
	s.publish(log, rabbitmq.EventOrderCancelled, cancelled)
}

func (s *CheckoutService) publish(log logrus.FieldLogger, eventType string, order *models.Order) {
	if s.events == nil || order == nil {
		return
	}
	event := rabbitmq.OrderEvent{
		Type:       eventType,
		OrderID:    order.ID,
		PatientID:  order.PatientID,
		Status:     string(order.Status),
		Total:      order.TotalAmount,
		OccurredAt: time.Now(),
	}
	if err := s.events.PublishOrderEvent(event); err != nil {
		log.WithError(err).Warn("failed to publish order event")
	}
}

func (s *CheckoutService) begin(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[key] {
		return false
	}
	s.inFlight[key] = true
	return true
}

func (s *CheckoutService) end(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, key)
}
