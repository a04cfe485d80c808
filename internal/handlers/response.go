package handlers

import (
	"apotek/internal/models"
	"apotek/internal/navigation"
	"apotek/internal/services"

	"github.com/gofiber/fiber/v2"
)

// cartView is the cart as rendered to the browser. Totals are derived on every render.
type cartView struct {
	Lines      []models.CartLine `json:"lines"`
	TotalItems int               `json:"total_items"`
	TotalPrice string            `json:"total_price"`
	Next       string            `json:"next,omitempty"`
}

func newCartView(store *services.CartStore, next navigation.Route) cartView {
	v := cartView{
		Lines:      store.Lines(),
		TotalItems: store.TotalItemCount(),
		TotalPrice: store.TotalPrice().StringFixed(2),
	}
	if next != nil {
		v.Next = next.Path()
	}
	return v
}

// returnTo reads the return_to query parameter, falling back when it names no known view.
func returnTo(c *fiber.Ctx, fallback navigation.Route) navigation.Route {
	raw := c.Query("return_to")
	if raw == "" {
		return fallback
	}
	if _, unknown := navigation.Parse(raw).(navigation.NotFound); unknown {
		return fallback
	}
	return navigation.Parse(raw)
}

func errorJSON(c *fiber.Ctx, status int, message string, err error) error {
	body := fiber.Map{"message": message}
	if err != nil {
		body["error"] = err.Error()
	}
	return c.Status(status).JSON(body)
}
