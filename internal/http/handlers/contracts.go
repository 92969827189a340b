package handlers

import (
	"context"

	"foodline-dispatch/internal/dispatch"
	"foodline-dispatch/internal/domain"
	"foodline-dispatch/internal/intake"
	"foodline-dispatch/internal/registry"
	"foodline-dispatch/internal/session"
	"foodline-dispatch/internal/store"
)

type dispatchUsecase interface {
	Submit(ctx context.Context, customerID int64, details domain.OrderDetails) (int64, error)
	Accept(ctx context.Context, tok, operatorID int64) error
	Reject(ctx context.Context, tok, operatorID int64) error
	Complete(ctx context.Context, tok, operatorID int64, trackingRef string) error
	CloseChat(ctx context.Context, tok, operatorID int64) error
}

// NewDispatchUsecase wires the dispatch engine into a dispatchUsecase.
func NewDispatchUsecase(e *dispatch.Engine) dispatchUsecase {
	return e
}

type operatorDirectory interface {
	Register(id int64) error
	Remove(id int64) error
	SetStatus(id int64, status domain.OperatorStatus) error
	Get(id int64) (domain.Operator, error)
	Snapshot() []domain.Operator
}

// NewOperatorDirectory wires the operator registry into an operatorDirectory.
func NewOperatorDirectory(r *registry.Registry) operatorDirectory {
	return r
}

type relayUsecase interface {
	RelayText(ctx context.Context, senderID int64, text string) error
	RelayMedia(ctx context.Context, senderID int64, mediaRef string) error
	Close(partyID int64) bool
}

// NewRelayUsecase wires the session router into a relayUsecase.
func NewRelayUsecase(r *session.Router) relayUsecase {
	return r
}

type orderReader interface {
	Get(token int64) (*domain.Order, error)
}

// NewOrderReader wires the order store into an orderReader.
func NewOrderReader(s *store.OrderStore) orderReader {
	return s
}

type intakeUsecase interface {
	Start(customerID int64, mode intake.Mode, customerName string) (intake.Reply, error)
	Text(ctx context.Context, customerID int64, text string) (intake.Reply, error)
	Photo(ctx context.Context, customerID int64, imageRef string) (intake.Reply, error)
	Choose(ctx context.Context, customerID int64, mode domain.PaymentMode) (intake.Reply, error)
	Abandon(customerID int64)
}

// NewIntakeUsecase wires the intake collector into an intakeUsecase.
func NewIntakeUsecase(c *intake.Collector) intakeUsecase {
	return c
}
