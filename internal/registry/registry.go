// Package registry tracks the operator roster: identity, role and
// online/offline status.
package registry

import (
	"sync"
	"time"

	"foodline-dispatch/internal/apperr"
	"foodline-dispatch/internal/domain"
)

// Registry is the authoritative operator table. Insertion order is kept
// stable because the dispatch round robin depends on it.
type Registry struct {
	mu    sync.RWMutex
	ops   map[int64]*domain.Operator
	order []int64
	now   func() time.Time
}

// New creates a Registry seeded with the main operator, who is online from
// the start and cannot be removed.
func New(mainID int64) *Registry {
	r := &Registry{
		ops: make(map[int64]*domain.Operator),
		now: func() time.Time { return time.Now().UTC() },
	}
	r.ops[mainID] = &domain.Operator{
		ID:               mainID,
		Role:             domain.RoleMain,
		Status:           domain.StatusOnline,
		LastStatusChange: r.now(),
	}
	r.order = append(r.order, mainID)
	return r
}

// Register adds a new admin operator. New operators start offline and must
// toggle themselves online before they receive assignments.
func (r *Registry) Register(id int64) error {
	if id <= 0 {
		return apperr.ErrInvalid
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.ops[id]; ok {
		return apperr.ErrConflict
	}
	r.ops[id] = &domain.Operator{
		ID:               id,
		Role:             domain.RoleAdmin,
		Status:           domain.StatusOffline,
		LastStatusChange: r.now(),
	}
	r.order = append(r.order, id)
	return nil
}

// Remove deletes an operator from the roster. The main operator is
// non-removable.
func (r *Registry) Remove(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	op, ok := r.ops[id]
	if !ok {
		return apperr.ErrNotFound
	}
	if op.IsMain() {
		return apperr.ErrInvalid
	}
	delete(r.ops, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// SetStatus toggles an operator online or offline.
func (r *Registry) SetStatus(id int64, status domain.OperatorStatus) error {
	if !status.Valid() {
		return apperr.ErrInvalid
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	op, ok := r.ops[id]
	if !ok {
		return apperr.ErrNotFound
	}
	op.Status = status
	op.LastStatusChange = r.now()
	return nil
}

// OnlineOperators returns the IDs of admin-role operators currently online,
// in registration order. The main operator manages the roster and does not
// take assignments.
func (r *Registry) OnlineOperators() []int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]int64, 0, len(r.order))
	for _, id := range r.order {
		op := r.ops[id]
		if op.Role == domain.RoleAdmin && op.Status == domain.StatusOnline {
			out = append(out, id)
		}
	}
	return out
}

// IsOperator reports whether the ID belongs to any roster member.
func (r *Registry) IsOperator(id int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.ops[id]
	return ok
}

// Get returns a copy of the operator record.
func (r *Registry) Get(id int64) (domain.Operator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	op, ok := r.ops[id]
	if !ok {
		return domain.Operator{}, apperr.ErrNotFound
	}
	return *op, nil
}

// Snapshot returns copies of all operators in registration order, for the
// roster status panel.
func (r *Registry) Snapshot() []domain.Operator {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Operator, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.ops[id])
	}
	return out
}
