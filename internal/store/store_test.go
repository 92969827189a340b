package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"foodline-dispatch/internal/apperr"
	"foodline-dispatch/internal/domain"
)

func TestOrderStore_PutGetRemove(t *testing.T) {
	t.Parallel()

	s := New()
	o := &domain.Order{Token: 1, Status: domain.OrderPending, Candidates: []int64{10}}
	require.NoError(t, s.Put(o))
	require.ErrorIs(t, s.Put(&domain.Order{Token: 1}), apperr.ErrConflict)
	require.Equal(t, 1, s.Len())

	got, err := s.Get(1)
	require.NoError(t, err)
	require.Equal(t, domain.OrderPending, got.Status)

	// Get hands out a copy
	got.Status = domain.OrderAccepted
	again, err := s.Get(1)
	require.NoError(t, err)
	require.Equal(t, domain.OrderPending, again.Status)

	s.Remove(1)
	s.Remove(1) // idempotent
	_, err = s.Get(1)
	require.ErrorIs(t, err, apperr.ErrNotFound)
	require.Equal(t, 0, s.Len())
}

func TestOrderStore_Mutate(t *testing.T) {
	t.Parallel()

	s := New()
	require.NoError(t, s.Put(&domain.Order{Token: 7, Status: domain.OrderPending, Candidates: []int64{10, 20}}))

	err := s.Mutate(7, func(o *domain.Order) error {
		o.Advance()
		return nil
	})
	require.NoError(t, err)

	got, err := s.Get(7)
	require.NoError(t, err)
	require.Equal(t, int64(20), got.AssignedOperator())
	require.Equal(t, uint64(1), got.Generation)

	boom := errors.New("boom")
	require.ErrorIs(t, s.Mutate(7, func(*domain.Order) error { return boom }), boom)
	require.ErrorIs(t, s.Mutate(404, func(*domain.Order) error { return nil }), apperr.ErrNotFound)
}
