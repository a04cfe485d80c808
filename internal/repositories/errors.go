package repositories

import "errors"

var (
	ErrMedicineNotFound = errors.New("medicine not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrPaymentNotFound  = errors.New("payment not found")
)
