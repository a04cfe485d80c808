package handlers

import (
	"errors"
	"strings"

	"apotek/internal/middleware"
	"apotek/internal/models"
	"apotek/internal/navigation"
	"apotek/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// CheckoutHandler submits the checkout form to the checkout sequence.
type CheckoutHandler struct {
	carts    *services.CartStores
	checkout *services.CheckoutService
	log      logrus.FieldLogger
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(carts *services.CartStores, checkout *services.CheckoutService, log logrus.FieldLogger) *CheckoutHandler {
	return &CheckoutHandler{carts: carts, checkout: checkout, log: log}
}

// RegisterRoutes registers the checkout route.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/checkout", h.HandleCheckout)
}

type paymentForm struct {
	Method     string `json:"method"`
	UPIID      string `json:"upi_id"`
	CardNumber string `json:"card_number"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
	CardHolder string `json:"card_holder"`
}

type checkoutForm struct {
	Address models.Address `json:"address"`
	Payment paymentForm    `json:"payment"`
}

// selection converts the submitted payment fields into the chosen variant.
// An empty method means none was chosen.
func (f paymentForm) selection() (models.PaymentSelection, error) {
	switch models.PaymentMethod(strings.ToLower(strings.TrimSpace(f.Method))) {
	case "":
		return nil, nil
	case models.PaymentMethodCOD:
		return models.CashOnDelivery{}, nil
	case models.PaymentMethodUPI:
		return models.UPIPayment{ID: strings.TrimSpace(f.UPIID)}, nil
	case models.PaymentMethodCard:
		return models.CardPayment{
			Number: strings.TrimSpace(f.CardNumber),
			Expiry: strings.TrimSpace(f.Expiry),
			CVV:    strings.TrimSpace(f.CVV),
			Holder: strings.TrimSpace(f.CardHolder),
		}, nil
	}
	return nil, &services.ValidationError{
		Section: services.SectionPayment,
		Fields:  map[string]string{"method": "is not supported"},
	}
}

// HandleCheckout places an order from the session cart.
func (h *CheckoutHandler) HandleCheckout(c *fiber.Ctx) error {
	var form checkoutForm
	if err := c.BodyParser(&form); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	payment, err := form.Payment.selection()
	if err != nil {
		return h.renderError(c, err)
	}

	store := h.carts.For(c.UserContext(), middleware.SessionID(c))
	result, err := h.checkout.Checkout(c.UserContext(), store, services.CheckoutRequest{
		Address: form.Address,
		Payment: payment,
		Patient: middleware.Patient(c),
	})
	if err != nil {
		return h.renderError(c, err)
	}

	next := navigation.Next(navigation.Checkout{}, navigation.CheckoutSucceeded{OrderID: result.Order.ID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Order placed successfully",
		"order":   result.Order,
		"payment": result.Payment,
		"next":    next.Path(),
	})
}

// renderError turns checkout errors into messages for the shopper.
func (h *CheckoutHandler) renderError(c *fiber.Ctx, err error) error {
	next := navigation.Next(navigation.Checkout{}, navigation.CheckoutFailed{}).Path()

	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "Please correct the highlighted fields",
			"section": verr.Section,
			"errors":  verr.Fields,
			"next":    next,
		})
	}

	var declined *services.PaymentDeclinedError
	if errors.As(err, &declined) {
		return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{
			"message":  "Payment was not completed. Your order was cancelled and your cart kept; please try again with different payment details.",
			"order_id": declined.OrderID,
			"status":   declined.Status,
			"next":     next,
		})
	}

	if errors.Is(err, services.ErrCheckoutInProgress) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Your order is already being placed",
			"next":    next,
		})
	}

	h.log.WithError(err).Error("checkout failed")
	status, message := fiber.StatusInternalServerError, "Could not place order, please try again"
	switch {
	case errors.Is(err, services.ErrOrderCreation):
		status, message = fiber.StatusBadGateway, "Could not create your order, please try again"
	case errors.Is(err, services.ErrPaymentCreation):
		status, message = fiber.StatusBadGateway, "Could not start the payment, please try again"
	case errors.Is(err, services.ErrPaymentProcessing):
		status, message = fiber.StatusBadGateway, "Could not process the payment, please try again"
	case errors.Is(err, services.ErrOrderUpdate):
		status, message = fiber.StatusBadGateway, "Payment received but the order could not be confirmed; please contact the pharmacy"
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
		"next":    next,
	})
}
