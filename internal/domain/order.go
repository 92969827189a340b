package domain

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

// PaymentMode represents how the customer pays.
type PaymentMode string

// OrderDetails carries everything collected during intake.
type OrderDetails struct {
	CustomerName string
	Address      string
	ImageRef     string
	ItemTotal    float64
	GST          float64
	FinalPrice   float64
	PaymentMode  PaymentMode
	PaymentRef   string
}

// Order is the authoritative in-flight state of one customer request.
//
// Candidates is the online-operator snapshot taken at creation time and is
// frozen for the order's lifetime. Cursor always indexes a valid element of
// Candidates; the currently assigned operator is Candidates[Cursor].
// Generation is bumped on every transition so a stale escalation-timer fire
// can be detected and discarded.
type Order struct {
	Token      int64
	Status     OrderStatus
	CustomerID int64
	Details    OrderDetails
	Candidates []int64
	Cursor     int
	Generation uint64
}

// AssignedOperator returns the operator currently holding first refusal.
func (o *Order) AssignedOperator() int64 {
	if len(o.Candidates) == 0 {
		return 0
	}
	return o.Candidates[o.Cursor%len(o.Candidates)]
}

// Advance moves the assignment cursor to the next candidate and bumps the
// generation. The candidate list never shrinks or grows, so the cursor simply
// wraps.
func (o *Order) Advance() {
	if len(o.Candidates) == 0 {
		return
	}
	o.Cursor = (o.Cursor + 1) % len(o.Candidates)
	o.Generation++
}

// Clone returns a deep copy safe to hand outside the store lock.
func (o *Order) Clone() *Order {
	cp := *o
	cp.Candidates = append([]int64(nil), o.Candidates...)
	return &cp
}
