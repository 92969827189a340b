package domain

import "strings"

// List of possible operator roles
const (
	RoleMain  OperatorRole = "main"
	RoleAdmin OperatorRole = "admin"
)

// List of possible operator statuses
const (
	StatusOnline  OperatorStatus = "online"
	StatusOffline OperatorStatus = "offline"
)

// List of possible order statuses
const (
	OrderPending   OrderStatus = "pending"
	OrderAccepted  OrderStatus = "accepted"
	OrderCompleted OrderStatus = "completed"
	OrderExpired   OrderStatus = "expired"
)

// List of possible payment modes
const (
	PaymentCOD     PaymentMode = "cod"
	PaymentPrepaid PaymentMode = "prepaid"
)

var allowedRoles = [...]OperatorRole{RoleMain, RoleAdmin}

var allowedOperatorStatuses = [...]OperatorStatus{StatusOnline, StatusOffline}

var allowedPaymentModes = [...]PaymentMode{PaymentCOD, PaymentPrepaid}

// Valid checks if the OperatorRole is valid
func (r OperatorRole) Valid() bool {
	for _, v := range allowedRoles {
		if r == v {
			return true
		}
	}
	return false
}

// Valid checks if the OperatorStatus is valid
func (s OperatorStatus) Valid() bool {
	for _, v := range allowedOperatorStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Valid checks if the PaymentMode is valid
func (m PaymentMode) Valid() bool {
	for _, v := range allowedPaymentModes {
		if m == v {
			return true
		}
	}
	return false
}

// ParseOperatorStatus normalizes raw input into an OperatorStatus.
func ParseOperatorStatus(raw string) (OperatorStatus, bool) {
	s := OperatorStatus(strings.ToLower(strings.TrimSpace(raw)))
	return s, s.Valid()
}
