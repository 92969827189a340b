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

type stubDispatchUsecase struct {
	submitFn    func(ctx context.Context, customerID int64, details domain.OrderDetails) (int64, error)
	acceptFn    func(ctx context.Context, tok, operatorID int64) error
	rejectFn    func(ctx context.Context, tok, operatorID int64) error
	completeFn  func(ctx context.Context, tok, operatorID int64, trackingRef string) error
	closeChatFn func(ctx context.Context, tok, operatorID int64) error
}

func (s *stubDispatchUsecase) Submit(ctx context.Context, customerID int64, details domain.OrderDetails) (int64, error) {
	if s.submitFn == nil {
		panic("Submit not expected in this test")
	}
	return s.submitFn(ctx, customerID, details)
}

func (s *stubDispatchUsecase) Accept(ctx context.Context, tok, operatorID int64) error {
	if s.acceptFn == nil {
		panic("Accept not expected in this test")
	}
	return s.acceptFn(ctx, tok, operatorID)
}

func (s *stubDispatchUsecase) Reject(ctx context.Context, tok, operatorID int64) error {
	if s.rejectFn == nil {
		panic("Reject not expected in this test")
	}
	return s.rejectFn(ctx, tok, operatorID)
}

func (s *stubDispatchUsecase) Complete(ctx context.Context, tok, operatorID int64, trackingRef string) error {
	if s.completeFn == nil {
		panic("Complete not expected in this test")
	}
	return s.completeFn(ctx, tok, operatorID, trackingRef)
}

func (s *stubDispatchUsecase) CloseChat(ctx context.Context, tok, operatorID int64) error {
	if s.closeChatFn == nil {
		panic("CloseChat not expected in this test")
	}
	return s.closeChatFn(ctx, tok, operatorID)
}

type stubOrderReader struct {
	getFn func(token int64) (*domain.Order, error)
}

func (s *stubOrderReader) Get(token int64) (*domain.Order, error) {
	if s.getFn == nil {
		panic("Get not expected in this test")
	}
	return s.getFn(token)
}

func withToken(req *http.Request, token string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("token", token)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestOrderHandler_Submit_OK(t *testing.T) {
	t.Parallel()

	body := `{"customer_id":7,"customer_name":"Asha","address":"12 MG Road","image_ref":"ph-1","item_total":300,"gst":18,"payment_mode":"cod"}`
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	uc := &stubDispatchUsecase{
		submitFn: func(_ context.Context, customerID int64, details domain.OrderDetails) (int64, error) {
			require.Equal(t, int64(7), customerID)
			require.Equal(t, "12 MG Road", details.Address)
			require.Equal(t, domain.PaymentCOD, details.PaymentMode)
			return 5, nil
		},
	}

	h := NewOrderHandler(nil, uc, nil)
	h.Submit(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "/orders/5", rr.Header().Get("Location"))
	assert.JSONEq(t, `{"token":5}`, rr.Body.String())
}

func TestOrderHandler_Submit_NoOperatorsOnline(t *testing.T) {
	t.Parallel()

	body := `{"customer_id":7,"address":"a","image_ref":"i","item_total":200,"gst":5,"payment_mode":"cod"}`
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	rr := httptest.NewRecorder()

	uc := &stubDispatchUsecase{
		submitFn: func(context.Context, int64, domain.OrderDetails) (int64, error) {
			return 0, apperr.ErrNoOperatorsOnline
		},
	}

	h := NewOrderHandler(nil, uc, nil)
	h.Submit(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.JSONEq(t, `{"error":"no operators online"}`, rr.Body.String())
}

func TestOrderHandler_Submit_BadJSON(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader("not-json"))
	rr := httptest.NewRecorder()

	h := NewOrderHandler(nil, &stubDispatchUsecase{}, nil)
	h.Submit(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestOrderHandler_Accept_OK(t *testing.T) {
	t.Parallel()

	req := withToken(httptest.NewRequest(http.MethodPost, "/orders/5/accept", strings.NewReader(`{"operator_id":20}`)), "5")
	rr := httptest.NewRecorder()

	uc := &stubDispatchUsecase{
		acceptFn: func(_ context.Context, tok, operatorID int64) error {
			require.Equal(t, int64(5), tok)
			require.Equal(t, int64(20), operatorID)
			return nil
		},
	}

	h := NewOrderHandler(nil, uc, nil)
	h.Accept(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestOrderHandler_Accept_NotAssigned(t *testing.T) {
	t.Parallel()

	req := withToken(httptest.NewRequest(http.MethodPost, "/orders/5/accept", strings.NewReader(`{"operator_id":30}`)), "5")
	rr := httptest.NewRecorder()

	uc := &stubDispatchUsecase{
		acceptFn: func(context.Context, int64, int64) error {
			return apperr.ErrNotAssigned
		},
	}

	h := NewOrderHandler(nil, uc, nil)
	h.Accept(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestOrderHandler_Accept_Gone(t *testing.T) {
	t.Parallel()

	req := withToken(httptest.NewRequest(http.MethodPost, "/orders/5/accept", strings.NewReader(`{"operator_id":20}`)), "5")
	rr := httptest.NewRecorder()

	uc := &stubDispatchUsecase{
		acceptFn: func(context.Context, int64, int64) error {
			return apperr.ErrOrderGone
		},
	}

	h := NewOrderHandler(nil, uc, nil)
	h.Accept(rr, req)

	assert.Equal(t, http.StatusGone, rr.Code)
}

func TestOrderHandler_Accept_InvalidToken(t *testing.T) {
	t.Parallel()

	req := withToken(httptest.NewRequest(http.MethodPost, "/orders/abc/accept", strings.NewReader(`{"operator_id":20}`)), "abc")
	rr := httptest.NewRecorder()

	h := NewOrderHandler(nil, &stubDispatchUsecase{}, nil)
	h.Accept(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestOrderHandler_Reject_OK(t *testing.T) {
	t.Parallel()

	req := withToken(httptest.NewRequest(http.MethodPost, "/orders/5/reject", strings.NewReader(`{"operator_id":10}`)), "5")
	rr := httptest.NewRecorder()

	uc := &stubDispatchUsecase{
		rejectFn: func(_ context.Context, tok, operatorID int64) error {
			require.Equal(t, int64(5), tok)
			require.Equal(t, int64(10), operatorID)
			return nil
		},
	}

	h := NewOrderHandler(nil, uc, nil)
	h.Reject(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestOrderHandler_Complete_OK(t *testing.T) {
	t.Parallel()

	body := `{"operator_id":20,"tracking_ref":"track-99"}`
	req := withToken(httptest.NewRequest(http.MethodPost, "/orders/5/complete", strings.NewReader(body)), "5")
	rr := httptest.NewRecorder()

	uc := &stubDispatchUsecase{
		completeFn: func(_ context.Context, tok, operatorID int64, trackingRef string) error {
			require.Equal(t, int64(5), tok)
			require.Equal(t, int64(20), operatorID)
			require.Equal(t, "track-99", trackingRef)
			return nil
		},
	}

	h := NewOrderHandler(nil, uc, nil)
	h.Complete(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestOrderHandler_CloseChat_OK(t *testing.T) {
	t.Parallel()

	req := withToken(httptest.NewRequest(http.MethodPost, "/orders/5/close-chat", strings.NewReader(`{"operator_id":20}`)), "5")
	rr := httptest.NewRecorder()

	uc := &stubDispatchUsecase{
		closeChatFn: func(_ context.Context, tok, operatorID int64) error {
			require.Equal(t, int64(5), tok)
			require.Equal(t, int64(20), operatorID)
			return nil
		},
	}

	h := NewOrderHandler(nil, uc, nil)
	h.CloseChat(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestOrderHandler_GetByToken_OK(t *testing.T) {
	t.Parallel()

	req := withToken(httptest.NewRequest(http.MethodGet, "/orders/5", nil), "5")
	rr := httptest.NewRecorder()

	orders := &stubOrderReader{
		getFn: func(token int64) (*domain.Order, error) {
			require.Equal(t, int64(5), token)
			return &domain.Order{
				Token:      5,
				Status:     domain.OrderPending,
				CustomerID: 7,
				Candidates: []int64{10, 20},
				Cursor:     1,
				Details: domain.OrderDetails{
					Address:     "12 MG Road",
					ItemTotal:   300,
					GST:         18,
					FinalPrice:  168,
					PaymentMode: domain.PaymentCOD,
				},
			}, nil
		},
	}

	h := NewOrderHandler(nil, nil, orders)
	h.GetByToken(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	expectedJSON := `{
        "token": 5,
        "status": "pending",
        "customer_id": 7,
        "operator_id": 20,
        "address": "12 MG Road",
        "item_total": 300,
        "gst": 18,
        "final_price": 168,
        "payment_mode": "cod"
    }`
	assert.JSONEq(t, expectedJSON, rr.Body.String())
}

func TestOrderHandler_GetByToken_NotFound(t *testing.T) {
	t.Parallel()

	req := withToken(httptest.NewRequest(http.MethodGet, "/orders/99", nil), "99")
	rr := httptest.NewRecorder()

	orders := &stubOrderReader{
		getFn: func(int64) (*domain.Order, error) {
			return nil, apperr.ErrNotFound
		},
	}

	h := NewOrderHandler(nil, nil, orders)
	h.GetByToken(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
