// Package navigation models the storefront's views as a closed set of routes and the
// events that move a session between them.
package navigation

import (
	"net/url"
	"strings"
)

// Route is one of the storefront views. The set is closed: Catalog, MedicineDetail, Cart,
// Checkout, OrderConfirmation, OrderHistory, PrescriptionScan and NotFound.
type Route interface {
	Path() string
	isRoute()
}

type (
	Catalog           struct{}
	MedicineDetail    struct{ ID string }
	Cart              struct{}
	Checkout          struct{}
	OrderConfirmation struct{ OrderID string }
	OrderHistory      struct{}
	PrescriptionScan  struct{}
	NotFound          struct{ RequestedPath string }
)

func (Catalog) Path() string             { return "/medicines" }
func (r MedicineDetail) Path() string    { return "/medicines/" + url.PathEscape(r.ID) }
func (Cart) Path() string                { return "/cart" }
func (Checkout) Path() string            { return "/checkout" }
func (r OrderConfirmation) Path() string { return "/orders/" + url.PathEscape(r.OrderID) }
func (OrderHistory) Path() string        { return "/orders" }
func (PrescriptionScan) Path() string    { return "/prescriptions/scan" }
func (r NotFound) Path() string          { return r.RequestedPath }

func (Catalog) isRoute()           {}
func (MedicineDetail) isRoute()    {}
func (Cart) isRoute()              {}
func (Checkout) isRoute()          {}
func (OrderConfirmation) isRoute() {}
func (OrderHistory) isRoute()      {}
func (PrescriptionScan) isRoute()  {}
func (NotFound) isRoute()          {}

// Parse maps a path to its route. Unknown paths yield NotFound.
func Parse(path string) Route {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return Catalog{}
	}
	parts := strings.Split(trimmed, "/")
	for i, p := range parts {
		unescaped, err := url.PathUnescape(p)
		if err != nil {
			return NotFound{RequestedPath: path}
		}
		parts[i] = unescaped
	}

	switch {
	case len(parts) == 1 && parts[0] == "medicines":
		return Catalog{}
	case len(parts) == 2 && parts[0] == "medicines" && parts[1] != "":
		return MedicineDetail{ID: parts[1]}
	case len(parts) == 1 && parts[0] == "cart":
		return Cart{}
	case len(parts) == 1 && parts[0] == "checkout":
		return Checkout{}
	case len(parts) == 1 && parts[0] == "orders":
		return OrderHistory{}
	case len(parts) == 2 && parts[0] == "orders" && parts[1] != "":
		return OrderConfirmation{OrderID: parts[1]}
	case len(parts) == 2 && parts[0] == "prescriptions" && parts[1] == "scan":
		return PrescriptionScan{}
	}
	return NotFound{RequestedPath: path}
}

// Event is something that happened in a view and may move the session elsewhere.
type Event interface {
	isEvent()
}

type (
	// Navigate is an explicit request to show another view.
	Navigate struct{ To Route }
	// ItemAdded follows an add-to-cart from the catalog or a detail page.
	ItemAdded struct{}
	// CartCleared follows emptying the cart.
	CartCleared struct{}
	// CheckoutSucceeded follows a booked order.
	CheckoutSucceeded struct{ OrderID string }
	// CheckoutFailed follows any checkout error; the shopper stays to retry.
	CheckoutFailed struct{}
	// PrescriptionScanned follows a scan that filled the cart.
	PrescriptionScanned struct{}
)

func (Navigate) isEvent()            {}
func (ItemAdded) isEvent()           {}
func (CartCleared) isEvent()         {}
func (CheckoutSucceeded) isEvent()   {}
func (CheckoutFailed) isEvent()      {}
func (PrescriptionScanned) isEvent() {}

// Next returns the route a session moves to after event while showing current.
func Next(current Route, event Event) Route {
	switch e := event.(type) {
	case Navigate:
		if e.To == nil {
			return current
		}
		return e.To
	case ItemAdded:
		return current
	case CartCleared:
		if _, ok := current.(Checkout); ok {
			return Cart{}
		}
		return current
	case CheckoutSucceeded:
		return OrderConfirmation{OrderID: e.OrderID}
	case CheckoutFailed:
		return Checkout{}
	case PrescriptionScanned:
		return Cart{}
	}
	return current
}
