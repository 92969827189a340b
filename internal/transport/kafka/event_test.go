package kafka

import (
	"testing"

	"github.com/stretchr/testify/require"

	"foodline-dispatch/internal/domain"
)

func TestEvent_Details(t *testing.T) {
	t.Parallel()

	ev := Event{
		CustomerID:   9,
		CustomerName: "Ravi",
		Address:      "4 Park Street",
		ImageRef:     "photo-123",
		ItemTotal:    300,
		GST:          18,
		PaymentMode:  "prepaid",
		PaymentRef:   "ravi@upi",
	}

	d := ev.Details()
	require.Equal(t, "Ravi", d.CustomerName)
	require.Equal(t, "4 Park Street", d.Address)
	require.Equal(t, "photo-123", d.ImageRef)
	require.Equal(t, float64(300), d.ItemTotal)
	require.Equal(t, float64(18), d.GST)
	require.Equal(t, domain.PaymentPrepaid, d.PaymentMode)
	require.Equal(t, "ravi@upi", d.PaymentRef)
}
