package handlers

import (
	"io"

	"apotek/internal/middleware"
	"apotek/internal/navigation"
	"apotek/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// PrescriptionHandler accepts prescription uploads.
type PrescriptionHandler struct {
	service *services.PrescriptionService
	carts   *services.CartStores
	log     logrus.FieldLogger
}

// NewPrescriptionHandler creates a new PrescriptionHandler.
func NewPrescriptionHandler(service *services.PrescriptionService, carts *services.CartStores, log logrus.FieldLogger) *PrescriptionHandler {
	return &PrescriptionHandler{service: service, carts: carts, log: log}
}

// RegisterRoutes registers the prescription routes.
func (h *PrescriptionHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/prescriptions/scan", h.HandleScan)
}

// documentFrom reads the "document" multipart file, or the raw body otherwise.
func documentFrom(c *fiber.Ctx) ([]byte, error) {
	fh, err := c.FormFile("document")
	if err != nil {
		return c.Body(), nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// HandleScan scans a prescription; with add_to_cart=true the recognised medicines are
// added to the session cart.
func (h *PrescriptionHandler) HandleScan(c *fiber.Ctx) error {
	doc, err := documentFrom(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Could not read prescription upload", err)
	}
	if len(doc) == 0 {
		return errorJSON(c, fiber.StatusBadRequest, "Prescription document is required", nil)
	}

	if !c.QueryBool("add_to_cart") {
		scanned, err := h.service.Scan(c.UserContext(), doc)
		if err != nil {
			h.log.WithError(err).Error("prescription scan failed")
			return errorJSON(c, fiber.StatusBadGateway, "Could not scan prescription", err)
		}
		return c.JSON(fiber.Map{"prescription": scanned})
	}

	store := h.carts.For(c.UserContext(), middleware.SessionID(c))
	scanned, skipped, err := h.service.ScanIntoCart(c.UserContext(), store, doc)
	if err != nil {
		h.log.WithError(err).Error("prescription scan into cart failed")
		return errorJSON(c, fiber.StatusBadGateway, "Could not scan prescription", err)
	}
	next := navigation.Next(navigation.PrescriptionScan{}, navigation.PrescriptionScanned{})
	return c.JSON(fiber.Map{
		"prescription": scanned,
		"skipped":      skipped,
		"cart":         newCartView(store, next),
	})
}
