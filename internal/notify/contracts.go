// Package notify defines the outbound-delivery boundary. The core hands
// finished messages to a Notifier; the chat-platform shell performs the
// actual platform send. Delivery is best effort: callers log failures and
// never roll back state because of them.
package notify

import "context"

// Notifier delivers a text message or a media reference to one party.
type Notifier interface {
	SendText(ctx context.Context, partyID int64, text string) error
	SendMedia(ctx context.Context, partyID int64, mediaRef, caption string) error
}
