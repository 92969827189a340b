// Package token issues unique, strictly increasing order tokens.
package token

import "sync/atomic"

// Allocator hands out process-unique order tokens starting at 1.
// Tokens are never reused, even for completed or expired orders.
type Allocator struct {
	last atomic.Int64
}

// NewAllocator creates an Allocator that starts issuing from 1.
func NewAllocator() *Allocator {
	return &Allocator{}
}

// Seed moves the counter forward so the next token is greater than last.
// Used at startup to continue from a persisted counter; a seed lower than
// the current value is ignored.
func (a *Allocator) Seed(last int64) {
	for {
		cur := a.last.Load()
		if last <= cur {
			return
		}
		if a.last.CompareAndSwap(cur, last) {
			return
		}
	}
}

// Next returns the next token. Safe under concurrent calls.
func (a *Allocator) Next() int64 {
	return a.last.Add(1)
}

// Last returns the most recently issued token, 0 if none.
func (a *Allocator) Last() int64 {
	return a.last.Load()
}
