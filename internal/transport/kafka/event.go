package kafka

import (
	"time"

	"foodline-dispatch/internal/domain"
)

// Event is one completed intake arriving from the intake shell.
type Event struct {
	CustomerID   int64   `json:"customer_id"`
	CustomerName string  `json:"customer_name,omitempty"`
	Address      string  `json:"address"`
	ImageRef     string  `json:"image_ref"`
	ItemTotal    float64 `json:"item_total"`
	GST          float64 `json:"gst"`
	PaymentMode  string  `json:"payment_mode"`
	PaymentRef   string  `json:"payment_ref,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Details maps the event onto the domain intake payload. The final price is
// left for the engine to compute.
func (e Event) Details() domain.OrderDetails {
	return domain.OrderDetails{
		CustomerName: e.CustomerName,
		Address:      e.Address,
		ImageRef:     e.ImageRef,
		ItemTotal:    e.ItemTotal,
		GST:          e.GST,
		PaymentMode:  domain.PaymentMode(e.PaymentMode),
		PaymentRef:   e.PaymentRef,
	}
}
