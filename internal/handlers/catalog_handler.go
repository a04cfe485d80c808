package handlers

import (
	"errors"
	"fmt"

	"apotek/internal/repositories"
	"apotek/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// CatalogHandler serves the read-only medicine catalog.
type CatalogHandler struct {
	service *services.CatalogService
	log     logrus.FieldLogger
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.CatalogService, log logrus.FieldLogger) *CatalogHandler {
	return &CatalogHandler{service: service, log: log}
}

// RegisterRoutes registers the catalog routes.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	routes := router.Group("/medicines")
	routes.Get("/", h.HandleGetMedicines)
	routes.Get("/:id", h.HandleGetMedicineByID)
}

// HandleGetMedicines lists the catalog.
func (h *CatalogHandler) HandleGetMedicines(c *fiber.Ctx) error {
	medicines, err := h.service.GetAllMedicines(c.UserContext())
	if err != nil {
		h.log.WithError(err).Error("could not list medicines")
		return errorJSON(c, fiber.StatusBadGateway, "Could not retrieve medicines", err)
	}
	return c.JSON(medicines)
}

// HandleGetMedicineByID returns one medicine.
func (h *CatalogHandler) HandleGetMedicineByID(c *fiber.Ctx) error {
	id := c.Params("id")
	medicine, err := h.service.GetMedicineByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrMedicineNotFound) {
			return errorJSON(c, fiber.StatusNotFound, fmt.Sprintf("Medicine with ID %s not found", id), nil)
		}
		h.log.WithError(err).WithField("medicine", id).Error("could not get medicine")
		return errorJSON(c, fiber.StatusBadGateway, "Could not retrieve medicine", err)
	}
	return c.JSON(medicine)
}
