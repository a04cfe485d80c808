package handlers

import (
	"errors"
	"fmt"

	"apotek/internal/middleware"
	"apotek/internal/navigation"
	"apotek/internal/repositories"
	"apotek/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// CartHandler exposes the session cart's mutation API.
type CartHandler struct {
	carts   *services.CartStores
	catalog *services.CatalogService
	log     logrus.FieldLogger
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(carts *services.CartStores, catalog *services.CatalogService, log logrus.FieldLogger) *CartHandler {
	return &CartHandler{carts: carts, catalog: catalog, log: log}
}

// RegisterRoutes registers the cart routes.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	routes := router.Group("/cart")
	routes.Get("/", h.HandleGetCart)
	routes.Delete("/", h.HandleClearCart)
	routes.Post("/items", h.HandleAddItem)
	routes.Put("/items/:id", h.HandleSetQuantity)
	routes.Delete("/items/:id", h.HandleRemoveItem)
}

func (h *CartHandler) store(c *fiber.Ctx) *services.CartStore {
	return h.carts.For(c.UserContext(), middleware.SessionID(c))
}

// HandleGetCart renders the cart with its totals.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	return c.JSON(newCartView(h.store(c), nil))
}

// HandleAddItem adds one unit of a medicine to the cart.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var body struct {
		MedicineID string `json:"medicine_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if body.MedicineID == "" {
		return errorJSON(c, fiber.StatusBadRequest, "medicine_id is required", nil)
	}

	store := h.store(c)
	if _, err := h.catalog.AddToCart(c.UserContext(), store, body.MedicineID); err != nil {
		switch {
		case errors.Is(err, repositories.ErrMedicineNotFound):
			return errorJSON(c, fiber.StatusNotFound, fmt.Sprintf("Medicine with ID %s not found", body.MedicineID), nil)
		case errors.Is(err, services.ErrOutOfStock):
			return errorJSON(c, fiber.StatusConflict, "No more stock available for this medicine", err)
		}
		h.log.WithError(err).WithField("medicine", body.MedicineID).Error("could not add to cart")
		return errorJSON(c, fiber.StatusInternalServerError, "Could not add medicine to cart", err)
	}

	next := navigation.Next(returnTo(c, navigation.Catalog{}), navigation.ItemAdded{})
	return c.Status(fiber.StatusCreated).JSON(newCartView(store, next))
}

// HandleSetQuantity replaces the quantity of a line; zero or less removes it.
func (h *CartHandler) HandleSetQuantity(c *fiber.Ctx) error {
	var body struct {
		Quantity *int `json:"quantity"`
	}
	if err := c.BodyParser(&body); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if body.Quantity == nil {
		return errorJSON(c, fiber.StatusBadRequest, "quantity is required", nil)
	}

	store := h.store(c)
	if err := store.SetQuantity(c.UserContext(), c.Params("id"), *body.Quantity); err != nil {
		h.log.WithError(err).Error("could not update cart quantity")
		return errorJSON(c, fiber.StatusInternalServerError, "Could not update cart", err)
	}
	return c.JSON(newCartView(store, returnTo(c, navigation.Cart{})))
}

// HandleRemoveItem deletes a line from the cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	store := h.store(c)
	if err := store.RemoveItem(c.UserContext(), c.Params("id")); err != nil {
		h.log.WithError(err).Error("could not remove cart item")
		return errorJSON(c, fiber.StatusInternalServerError, "Could not update cart", err)
	}
	return c.JSON(newCartView(store, returnTo(c, navigation.Cart{})))
}

// HandleClearCart empties the cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	store := h.store(c)
	if err := store.Clear(c.UserContext()); err != nil {
		h.log.WithError(err).Error("could not clear cart")
		return errorJSON(c, fiber.StatusInternalServerError, "Could not clear cart", err)
	}
	next := navigation.Next(returnTo(c, navigation.Cart{}), navigation.CartCleared{})
	return c.JSON(newCartView(store, next))
}
