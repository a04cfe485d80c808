package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apotek/internal/config"
	"apotek/internal/models"
)

func newTestApp(t *testing.T, overrides map[string]string) *fiber.App {
	t.Helper()

	// Initialize Viper for tests
	v := viper.New()
	config.SetDefaults(v)
	v.Set("CART_STORAGE_DRIVER", "memory")
	v.Set("JWT_SECRET", "test_jwt_secret")
	for k, val := range overrides {
		v.Set(k, val)
	}
	cfg, err := config.FromViper(v)
	require.NoError(t, err)

	log := logrus.New()
	log.Out = io.Discard

	app, cleanup, err := NewApp(cfg, log)
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return app
}

func TestHealthCheck(t *testing.T) {
	app := newTestApp(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "mock", body["backend"])
	assert.Equal(t, false, body["events"])
}

func TestNewApp_UnknownStorageDriver(t *testing.T) {
	cfg := &config.Config{CartStorageDriver: "redis"}

	_, _, err := NewApp(cfg, logrus.New())

	assert.Error(t, err)
}

func TestNewApp_SQLiteCatalogIsSeeded(t *testing.T) {
	app := newTestApp(t, map[string]string{
		"CART_STORAGE_DRIVER": "sqlite",
		"CART_STORAGE_DSN":    "file:apotek_main_test?mode=memory&cache=shared",
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/medicines/med-2", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var m models.Medicine
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	assert.Equal(t, "Amoxicillin", m.Name)
	assert.True(t, m.PrescriptionRequired)
}

func TestEndToEndCheckout(t *testing.T) {
	app := newTestApp(t, map[string]string{"PAYMENT_DECLINE_METHODS": "card"})

	var session *http.Cookie
	call := func(method, path string, body interface{}) (*http.Response, map[string]interface{}) {
		t.Helper()
		var reader io.Reader
		if body != nil {
			b, err := json.Marshal(body)
			require.NoError(t, err)
			reader = bytes.NewReader(b)
		}
		req := httptest.NewRequest(method, path, reader)
		req.Header.Set("Content-Type", "application/json")
		if session != nil {
			req.AddCookie(session)
		}
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		for _, c := range resp.Cookies() {
			if c.Name == "pharmacy_session" {
				session = c
			}
		}
		var decoded map[string]interface{}
		_ = json.NewDecoder(resp.Body).Decode(&decoded)
		return resp, decoded
	}

	resp, cart := call(http.MethodPost, "/api/v1/cart/items", map[string]string{"medicine_id": "med-1"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotNil(t, session)
	call(http.MethodPost, "/api/v1/cart/items", map[string]string{"medicine_id": "med-1"})
	_, cart = call(http.MethodGet, "/api/v1/cart", nil)
	assert.Equal(t, "51.00", cart["total_price"])

	address := map[string]string{
		"name": "Asha Rao", "phone": "9845000000", "email": "asha@example.com",
		"street": "12 MG Road", "city": "Bengaluru", "state": "Karnataka", "postal_code": "560001",
	}

	resp, body := call(http.MethodPost, "/api/v1/checkout", map[string]interface{}{
		"address": address,
		"payment": map[string]string{"method": "card", "card_number": "4111111111111111", "expiry": "12/29", "cvv": "123", "card_holder": "Asha Rao"},
	})
	assert.Equal(t, http.StatusPaymentRequired, resp.StatusCode)
	assert.Equal(t, "/checkout", body["next"])

	resp, body = call(http.MethodPost, "/api/v1/checkout", map[string]interface{}{
		"address": address,
		"payment": map[string]string{"method": "cod"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	order := body["order"].(map[string]interface{})
	assert.Equal(t, "booked", order["status"])
	total, err := decimal.NewFromString(order["total_amount"].(string))
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("51.00")))

	_, cart = call(http.MethodGet, "/api/v1/cart", nil)
	assert.Empty(t, cart["lines"])

	resp, _ = call(http.MethodGet, "/api/v1/orders/"+order["id"].(string), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
