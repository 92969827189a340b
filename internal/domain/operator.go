package domain

import "time"

type (
	// OperatorRole represents the role of an operator.
	OperatorRole string
	// OperatorStatus represents the availability of an operator.
	OperatorStatus string
)

// Operator represents a human operator handling orders.
type Operator struct {
	ID               int64
	Role             OperatorRole
	Status           OperatorStatus
	LastStatusChange time.Time
}

// IsMain reports whether the operator is the main (roster-managing) operator.
func (o Operator) IsMain() bool {
	return o.Role == RoleMain
}
