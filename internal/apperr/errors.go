package apperr

import "errors"

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrConflict indicates a uniqueness or state conflict.
var ErrConflict = errors.New("conflict")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrNoOperatorsOnline is returned by order submission when the online
// snapshot is empty. No order is created and no token is consumed.
var ErrNoOperatorsOnline = errors.New("no operators online")

// ErrNotAssigned is returned when an operator acts on an order that is not
// currently routed to them. The order is left untouched.
var ErrNotAssigned = errors.New("order not assigned to operator")

// ErrOrderGone is returned for an unknown token or an order that has already
// reached a terminal state.
var ErrOrderGone = errors.New("order expired or completed")
