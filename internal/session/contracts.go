package session

// operatorChecker answers whether an ID belongs to the operator roster,
// used to pick the relay label for a sender.
type operatorChecker interface {
	IsOperator(id int64) bool
}

// gauge is the subset of prometheus.Gauge the router needs.
type gauge interface {
	Inc()
	Dec()
}
