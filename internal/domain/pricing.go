package domain

import (
	"math"
	"strings"

	"foodline-dispatch/internal/apperr"
)

// MinItemTotal is the smallest item total accepted during intake.
const MinItemTotal = 149

// FinalPrice applies the item discount, adds GST and rounds to two decimals.
func FinalPrice(itemTotal, gst float64) float64 {
	return math.Round((itemTotal*0.5+gst)*100) / 100
}

// ValidateDetails checks a completed intake payload before an order is created.
func ValidateDetails(d *OrderDetails) error {
	if d == nil {
		return apperr.ErrInvalid
	}
	if strings.TrimSpace(d.Address) == "" {
		return apperr.ErrInvalid
	}
	if strings.TrimSpace(d.ImageRef) == "" {
		return apperr.ErrInvalid
	}
	if d.ItemTotal < MinItemTotal {
		return apperr.ErrInvalid
	}
	if d.GST < 0 {
		return apperr.ErrInvalid
	}
	if !d.PaymentMode.Valid() {
		return apperr.ErrInvalid
	}
	if d.PaymentMode == PaymentPrepaid && strings.TrimSpace(d.PaymentRef) == "" {
		return apperr.ErrInvalid
	}
	if d.FinalPrice == 0 {
		d.FinalPrice = FinalPrice(d.ItemTotal, d.GST)
	}
	return nil
}
