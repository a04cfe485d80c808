package repositories_test

import (
	"context"
	"testing"
	"time"

	"apotek/internal/models"
	"apotek/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockMedicineRepository(t *testing.T) {
	repo := repositories.NewMockMedicineRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(&models.Medicine{ID: "b", Name: "Cetirizine", Price: decimal.RequireFromString("18.75"), StockQuantity: 3}))
	require.NoError(t, repo.Create(&models.Medicine{ID: "a", Name: "Amoxicillin", Price: decimal.RequireFromString("45"), StockQuantity: 1}))
	assert.Error(t, repo.Create(&models.Medicine{Name: "Broken", StockQuantity: -1}))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Amoxicillin", all[0].Name)

	require.NoError(t, repo.SetStock("b", 0))
	m, err := repo.GetByID(ctx, "b")
	require.NoError(t, err)
	assert.False(t, m.InStock())

	_, err = repo.GetByID(ctx, "zzz")
	assert.ErrorIs(t, err, repositories.ErrMedicineNotFound)
	assert.ErrorIs(t, repo.SetStock("zzz", 1), repositories.ErrMedicineNotFound)
}

func TestMockOrderRepository(t *testing.T) {
	repo := repositories.NewMockOrderRepository()
	ctx := context.Background()

	first, err := repo.Create(ctx, &models.Order{PatientID: "p-1"})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, models.OrderStatusPending, first.Status)

	time.Sleep(time.Millisecond)
	second, err := repo.Create(ctx, &models.Order{PatientID: "p-1"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &models.Order{PatientID: "p-2"})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, first.ID, models.OrderUpdate{Status: models.OrderStatusBooked})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusBooked, updated.Status)

	list, err := repo.ListByPatient(ctx, "p-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)

	_, err = repo.Update(ctx, "missing", models.OrderUpdate{Status: models.OrderStatusCancelled})
	assert.ErrorIs(t, err, repositories.ErrOrderNotFound)
	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, repositories.ErrOrderNotFound)
}

func TestMockPaymentGateway(t *testing.T) {
	gateway := repositories.NewMockPaymentGateway(models.PaymentMethodCard)
	ctx := context.Background()
	amount := decimal.RequireFromString("100.00")

	upi, err := gateway.CreatePayment(ctx, "ord-1", amount, models.PaymentMethodUPI)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, upi.Status)
	assert.True(t, upi.Amount.Equal(amount))

	processed, err := gateway.ProcessPayment(ctx, upi.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, processed.Status)
	assert.NotEmpty(t, processed.TransactionID)

	again, err := gateway.ProcessPayment(ctx, upi.ID)
	require.NoError(t, err)
	assert.Equal(t, processed.TransactionID, again.TransactionID)

	card, err := gateway.CreatePayment(ctx, "ord-2", amount, models.PaymentMethodCard)
	require.NoError(t, err)
	declined, err := gateway.ProcessPayment(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusFailed, declined.Status)

	_, err = gateway.ProcessPayment(ctx, "missing")
	assert.ErrorIs(t, err, repositories.ErrPaymentNotFound)
}

func TestCatalogScanner(t *testing.T) {
	catalog := repositories.NewMockMedicineRepository()
	require.NoError(t, catalog.Create(&models.Medicine{ID: "med-1", Name: "Paracetamol", StockQuantity: 10}))
	require.NoError(t, catalog.Create(&models.Medicine{ID: "med-2", Name: "Cough Syrup", StockQuantity: 10}))
	scanner := repositories.NewCatalogScanner(catalog)

	result, err := scanner.Scan(context.Background(), []byte("Dr. Mehta\nPARACETAMOL 500mg X 2\ncough syrup 5ml\nrest"))

	require.NoError(t, err)
	assert.Equal(t, []models.PrescriptionLine{
		{MedicineID: "med-1", Name: "Paracetamol", Quantity: 2},
		{MedicineID: "med-2", Name: "Cough Syrup", Quantity: 1},
	}, result.Lines)
	assert.Contains(t, result.RawText, "Dr. Mehta")
}

func TestMemoryCartStorage(t *testing.T) {
	storage := repositories.NewMemoryCartStorage()
	ctx := context.Background()

	data, err := storage.Load(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, data)

	in := []byte(`[]`)
	require.NoError(t, storage.Save(ctx, "k", in))
	in[0] = 'x'

	data, err = storage.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), data)
}
