package dispatch

import (
	"fmt"
	"strings"

	"foodline-dispatch/internal/domain"
)

func assignmentCaption(o *domain.Order) string {
	var b strings.Builder
	b.WriteString("NEW ORDER\n")
	if o.Details.CustomerName != "" {
		fmt.Fprintf(&b, "%s\n", o.Details.CustomerName)
	}
	fmt.Fprintf(&b, "Token: %d\n", o.Token)
	fmt.Fprintf(&b, "%s\n", o.Details.Address)
	fmt.Fprintf(&b, "Total: %.2f\n", o.Details.FinalPrice)
	fmt.Fprintf(&b, "Payment: %s", strings.ToUpper(string(o.Details.PaymentMode)))
	if o.Details.PaymentRef != "" {
		fmt.Fprintf(&b, "\nUPI: %s", o.Details.PaymentRef)
	}
	return b.String()
}

func placedText(tok int64) string {
	return fmt.Sprintf("Order placed (Token: %d). Waiting for admin acceptance...", tok)
}

func acceptedText() string {
	return "Your order has been accepted. You can now chat with the admin."
}

func dispatchedText(trackingRef string) string {
	return fmt.Sprintf("Order dispatched!\n\nYour tracking link is here:\n%s\n\nThank you for ordering!", trackingRef)
}
