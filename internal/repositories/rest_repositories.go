package repositories

import (
	"context"
	"fmt"
	"net/http"

	"apotek/internal/models"

	"github.com/shopspring/decimal"
)

// RESTMedicineRepository reads the catalog from the backend.
type RESTMedicineRepository struct {
	client *RESTClient
}

func NewRESTMedicineRepository(client *RESTClient) *RESTMedicineRepository {
	return &RESTMedicineRepository{client: client}
}

func (r *RESTMedicineRepository) GetAll(ctx context.Context) ([]models.Medicine, error) {
	var medicines []models.Medicine
	if err := r.client.do(ctx, http.MethodGet, "/api/medicines", nil, &medicines); err != nil {
		return nil, fmt.Errorf("failed to get medicines: %w", err)
	}
	return medicines, nil
}

func (r *RESTMedicineRepository) GetByID(ctx context.Context, id string) (*models.Medicine, error) {
	var m models.Medicine
	if err := r.client.do(ctx, http.MethodGet, "/api/medicines/"+escape(id), nil, &m); err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("medicine with ID %s: %w", id, ErrMedicineNotFound)
		}
		return nil, fmt.Errorf("failed to get medicine %s: %w", id, err)
	}
	return &m, nil
}

// RESTOrderRepository manages orders through the backend.
type RESTOrderRepository struct {
	client *RESTClient
}

func NewRESTOrderRepository(client *RESTClient) *RESTOrderRepository {
	return &RESTOrderRepository{client: client}
}

func (r *RESTOrderRepository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	var created models.Order
	if err := r.client.do(ctx, http.MethodPost, "/api/orders", order, &created); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return &created, nil
}

func (r *RESTOrderRepository) Update(ctx context.Context, id string, update models.OrderUpdate) (*models.Order, error) {
	var updated models.Order
	if err := r.client.do(ctx, http.MethodPut, "/api/orders/"+escape(id), update, &updated); err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("order with ID %s: %w", id, ErrOrderNotFound)
		}
		return nil, fmt.Errorf("failed to update order %s: %w", id, err)
	}
	return &updated, nil
}

func (r *RESTOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := r.client.do(ctx, http.MethodGet, "/api/orders/"+escape(id), nil, &order); err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("order with ID %s: %w", id, ErrOrderNotFound)
		}
		return nil, fmt.Errorf("failed to get order %s: %w", id, err)
	}
	return &order, nil
}

func (r *RESTOrderRepository) ListByPatient(ctx context.Context, patientID string) ([]models.Order, error) {
	var orders []models.Order
	if err := r.client.do(ctx, http.MethodGet, "/api/orders/patient/"+escape(patientID), nil, &orders); err != nil {
		return nil, fmt.Errorf("failed to list orders for patient %s: %w", patientID, err)
	}
	return orders, nil
}

// RESTPaymentGateway creates and processes payments through the backend.
type RESTPaymentGateway struct {
	client *RESTClient
}

func NewRESTPaymentGateway(client *RESTClient) *RESTPaymentGateway {
	return &RESTPaymentGateway{client: client}
}

type createPaymentRequest struct {
	OrderID string               `json:"order_id"`
	Amount  decimal.Decimal      `json:"amount"`
	Method  models.PaymentMethod `json:"method"`
	Status  models.PaymentStatus `json:"status"`
}

func (g *RESTPaymentGateway) CreatePayment(ctx context.Context, orderID string, amount decimal.Decimal, method models.PaymentMethod) (*models.Payment, error) {
	req := createPaymentRequest{OrderID: orderID, Amount: amount, Method: method, Status: models.PaymentStatusPending}
	var p models.Payment
	if err := g.client.do(ctx, http.MethodPost, "/api/payments", req, &p); err != nil {
		return nil, fmt.Errorf("failed to create payment for order %s: %w", orderID, err)
	}
	return &p, nil
}

func (g *RESTPaymentGateway) ProcessPayment(ctx context.Context, paymentID string) (*models.Payment, error) {
	var p models.Payment
	if err := g.client.do(ctx, http.MethodPost, "/api/payments/"+escape(paymentID)+"/process", nil, &p); err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("payment with ID %s: %w", paymentID, ErrPaymentNotFound)
		}
		return nil, fmt.Errorf("failed to process payment %s: %w", paymentID, err)
	}
	return &p, nil
}

// RESTDocumentScanner sends prescriptions to the backend scanning endpoint.
type RESTDocumentScanner struct {
	client *RESTClient
}

func NewRESTDocumentScanner(client *RESTClient) *RESTDocumentScanner {
	return &RESTDocumentScanner{client: client}
}

func (s *RESTDocumentScanner) Scan(ctx context.Context, document []byte) (*models.ScannedPrescription, error) {
	req := struct {
		Document []byte `json:"document"`
	}{Document: document}
	var result models.ScannedPrescription
	if err := s.client.do(ctx, http.MethodPost, "/api/prescriptions/scan", req, &result); err != nil {
		return nil, fmt.Errorf("failed to scan prescription: %w", err)
	}
	return &result, nil
}
