package handlers

import (
	"errors"
	"fmt"

	"apotek/internal/middleware"
	"apotek/internal/repositories"
	"apotek/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// OrderHandler handles HTTP requests for the patient's orders.
type OrderHandler struct {
	service *services.OrderService
	log     logrus.FieldLogger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService, log logrus.FieldLogger) *OrderHandler {
	return &OrderHandler{
		service: service,
		log:     log,
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
}

// HandleGetOrders lists the orders of the current patient.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	patient := middleware.Patient(c)
	orders, err := h.service.History(c.UserContext(), patient.ID)
	if err != nil {
		h.log.WithError(err).WithField("patient", patient.ID).Error("could not list orders")
		return errorJSON(c, fiber.StatusBadGateway, "Could not retrieve orders", err)
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order of the current patient.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.service.GetOrder(c.UserContext(), middleware.Patient(c).ID, orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return errorJSON(c, fiber.StatusNotFound, fmt.Sprintf("Order with ID %s not found", orderID), nil)
		}
		h.log.WithError(err).WithField("order", orderID).Error("could not get order")
		return errorJSON(c, fiber.StatusBadGateway, "Could not retrieve order", err)
	}
	return c.JSON(order)
}
