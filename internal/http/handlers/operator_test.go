package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodline-dispatch/internal/apperr"
	"foodline-dispatch/internal/domain"
)

type stubOperatorDirectory struct {
	registerFn  func(id int64) error
	removeFn    func(id int64) error
	setStatusFn func(id int64, status domain.OperatorStatus) error
	getFn       func(id int64) (domain.Operator, error)
	snapshotFn  func() []domain.Operator
}

func (s *stubOperatorDirectory) Register(id int64) error {
	if s.registerFn == nil {
		panic("Register not expected in this test")
	}
	return s.registerFn(id)
}

func (s *stubOperatorDirectory) Remove(id int64) error {
	if s.removeFn == nil {
		panic("Remove not expected in this test")
	}
	return s.removeFn(id)
}

func (s *stubOperatorDirectory) SetStatus(id int64, status domain.OperatorStatus) error {
	if s.setStatusFn == nil {
		panic("SetStatus not expected in this test")
	}
	return s.setStatusFn(id, status)
}

func (s *stubOperatorDirectory) Get(id int64) (domain.Operator, error) {
	if s.getFn == nil {
		panic("Get not expected in this test")
	}
	return s.getFn(id)
}

func (s *stubOperatorDirectory) Snapshot() []domain.Operator {
	if s.snapshotFn == nil {
		panic("Snapshot not expected in this test")
	}
	return s.snapshotFn()
}

func withID(req *http.Request, id string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestOperatorHandler_Register_OK(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/operators", strings.NewReader(`{"id":42}`))
	rr := httptest.NewRecorder()

	dir := &stubOperatorDirectory{
		registerFn: func(id int64) error {
			require.Equal(t, int64(42), id)
			return nil
		},
	}

	h := NewOperatorHandler(nil, dir)
	h.Register(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "/operators/42", rr.Header().Get("Location"))
	assert.JSONEq(t, `{"id":42}`, rr.Body.String())
}

func TestOperatorHandler_Register_Duplicate(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/operators", strings.NewReader(`{"id":42}`))
	rr := httptest.NewRecorder()

	dir := &stubOperatorDirectory{
		registerFn: func(int64) error { return apperr.ErrConflict },
	}

	h := NewOperatorHandler(nil, dir)
	h.Register(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestOperatorHandler_Remove_Main(t *testing.T) {
	t.Parallel()

	req := withID(httptest.NewRequest(http.MethodDelete, "/operators/1", nil), "1")
	rr := httptest.NewRecorder()

	dir := &stubOperatorDirectory{
		removeFn: func(int64) error { return apperr.ErrInvalid },
	}

	h := NewOperatorHandler(nil, dir)
	h.Remove(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"main operator cannot be removed"}`, rr.Body.String())
}

func TestOperatorHandler_Remove_NotFound(t *testing.T) {
	t.Parallel()

	req := withID(httptest.NewRequest(http.MethodDelete, "/operators/99", nil), "99")
	rr := httptest.NewRecorder()

	dir := &stubOperatorDirectory{
		removeFn: func(int64) error { return apperr.ErrNotFound },
	}

	h := NewOperatorHandler(nil, dir)
	h.Remove(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestOperatorHandler_SetStatus_OK(t *testing.T) {
	t.Parallel()

	req := withID(httptest.NewRequest(http.MethodPut, "/operators/42/status", strings.NewReader(`{"status":"online"}`)), "42")
	rr := httptest.NewRecorder()

	dir := &stubOperatorDirectory{
		setStatusFn: func(id int64, status domain.OperatorStatus) error {
			require.Equal(t, int64(42), id)
			require.Equal(t, domain.StatusOnline, status)
			return nil
		},
	}

	h := NewOperatorHandler(nil, dir)
	h.SetStatus(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestOperatorHandler_SetStatus_Invalid(t *testing.T) {
	t.Parallel()

	req := withID(httptest.NewRequest(http.MethodPut, "/operators/42/status", strings.NewReader(`{"status":"busy"}`)), "42")
	rr := httptest.NewRecorder()

	h := NewOperatorHandler(nil, &stubOperatorDirectory{})
	h.SetStatus(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestOperatorHandler_List(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/operators", nil)
	rr := httptest.NewRecorder()

	dir := &stubOperatorDirectory{
		snapshotFn: func() []domain.Operator {
			return []domain.Operator{
				{ID: 1, Role: domain.RoleMain, Status: domain.StatusOnline},
				{ID: 42, Role: domain.RoleAdmin, Status: domain.StatusOffline},
			}
		},
	}

	h := NewOperatorHandler(nil, dir)
	h.List(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	expectedJSON := `[
        {"id":1,"role":"main","status":"online"},
        {"id":42,"role":"admin","status":"offline"}
    ]`
	assert.JSONEq(t, expectedJSON, rr.Body.String())
}
