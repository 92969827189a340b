package dispatch

import (
	"context"

	"foodline-dispatch/internal/domain"
)

// operatorRoster is the registry subset the engine reads: the stable,
// registration-ordered snapshot of admins currently online.
type operatorRoster interface {
	OnlineOperators() []int64
}

// sessionOpener is the session-router subset used on accept and complete.
type sessionOpener interface {
	Open(operatorID, customerID, orderToken int64) error
	Close(partyID int64) bool
}

// Archiver records order history in an external store. Writes are best
// effort; the engine logs failures and moves on.
type Archiver interface {
	OrderCreated(ctx context.Context, o *domain.Order) error
	OrderStatus(ctx context.Context, token int64, status domain.OrderStatus) error
}
