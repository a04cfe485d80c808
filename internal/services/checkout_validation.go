package services

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"apotek/internal/models"

	"github.com/go-playground/validator/v10"
)

var (
	expiryPattern = regexp.MustCompile(`^\d{2}/\d{2}$`)
	cvvPattern    = regexp.MustCompile(`^\d{3}$`)
)

const minCardDigits = 13

func newCheckoutValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("cardnumber", func(fl validator.FieldLevel) bool {
		return validCardNumber(fl.Field().String())
	})
	_ = v.RegisterValidation("expiry", func(fl validator.FieldLevel) bool {
		return expiryPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("cvv", func(fl validator.FieldLevel) bool {
		return cvvPattern.MatchString(fl.Field().String())
	})
	return v
}

func validCardNumber(number string) bool {
	digits := 0
	for _, r := range number {
		switch {
		case r == ' ':
		case r >= '0' && r <= '9':
			digits++
		default:
			return false
		}
	}
	return digits >= minCardDigits
}

var fieldMessages = map[string]string{
	"required":   "is required",
	"contains":   "must contain @",
	"cardnumber": "must have at least 13 digits",
	"expiry":     "must be in MM/YY format",
	"cvv":        "must be exactly 3 digits",
}

func toValidationError(section string, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Section: section, Fields: map[string]string{section: err.Error()}}
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		msg, ok := fieldMessages[fe.Tag()]
		if !ok {
			msg = "is invalid"
		}
		fields[fe.Field()] = msg
	}
	return &ValidationError{Section: section, Fields: fields}
}

// validateCheckout checks the preconditions in order and returns the first failure.
func (s *CheckoutService) validateCheckout(store *CartStore, req CheckoutRequest) error {
	if err := s.validate.Struct(req.Address.Trimmed()); err != nil {
		return toValidationError(SectionAddress, err)
	}

	if req.Payment == nil {
		return &ValidationError{Section: SectionPayment, Fields: map[string]string{"method": "must be selected"}}
	}

	switch p := req.Payment.(type) {
	case models.CashOnDelivery:
	case models.UPIPayment:
		if err := s.validate.Struct(p); err != nil {
			return toValidationError(SectionPayment, err)
		}
	case models.CardPayment:
		p.Holder = strings.TrimSpace(p.Holder)
		if err := s.validate.Struct(p); err != nil {
			return toValidationError(SectionPayment, err)
		}
	}

	if store.IsEmpty() {
		return &ValidationError{Section: SectionCart, Fields: map[string]string{"items": "must not be empty"}}
	}
	return nil
}
