// Package store holds the authoritative state of every in-flight order.
package store

import (
	"sync"

	"foodline-dispatch/internal/apperr"
	"foodline-dispatch/internal/domain"
)

// OrderStore is an owned, lock-guarded order table keyed by token.
// All mutations go through Mutate so every change to a given order is
// serialized against concurrent timer fires and operator actions.
type OrderStore struct {
	mu     sync.Mutex
	orders map[int64]*domain.Order
}

// New creates an empty OrderStore.
func New() *OrderStore {
	return &OrderStore{orders: make(map[int64]*domain.Order)}
}

// Put inserts a new order under its token.
func (s *OrderStore) Put(o *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[o.Token]; ok {
		return apperr.ErrConflict
	}
	s.orders[o.Token] = o
	return nil
}

// Get returns a copy of the order, or ErrNotFound.
func (s *OrderStore) Get(token int64) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[token]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return o.Clone(), nil
}

// Mutate runs fn on the live order under the store lock. If fn returns an
// error the order keeps whatever state fn left it in, so fn must not make
// partial changes before failing.
func (s *OrderStore) Mutate(token int64, fn func(*domain.Order) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[token]
	if !ok {
		return apperr.ErrNotFound
	}
	return fn(o)
}

// Remove deletes the order. Idempotent.
func (s *OrderStore) Remove(token int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.orders, token)
}

// Len returns the number of in-flight orders.
func (s *OrderStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}
