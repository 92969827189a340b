package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"foodline-dispatch/internal/apperr"
	"foodline-dispatch/internal/logx"
)

// OrderHandler serves HTTP endpoints for the order lifecycle.
type OrderHandler struct {
	uc     dispatchUsecase
	orders orderReader
	logger logx.Logger
}

// NewOrderHandler wires the dispatch usecase and order reader into HTTP handlers.
func NewOrderHandler(logger logx.Logger, uc dispatchUsecase, orders orderReader) *OrderHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &OrderHandler{uc: uc, orders: orders, logger: logger}
}

// Submit handles POST /orders.
func (h *OrderHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitOrderRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	tok, err := h.uc.Submit(r.Context(), req.CustomerID, req.toModel())
	switch {
	case err == nil:
		w.Header().Set("Location", "/orders/"+strconv.FormatInt(tok, 10))
		writeJSON(h.logger, w, r, http.StatusCreated, map[string]any{"token": tok})
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrNoOperatorsOnline):
		writeError(h.logger, w, r, http.StatusConflict, "no operators online")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// GetByToken handles GET /orders/{token}.
func (h *OrderHandler) GetByToken(w http.ResponseWriter, r *http.Request) {
	tok, err := idFromURL(r, "token")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid token")
		return
	}

	o, err := h.orders.Get(tok)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, orderToResponse(o))
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "order not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Accept handles POST /orders/{token}/accept.
func (h *OrderHandler) Accept(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, h.uc.Accept)
}

// Reject handles POST /orders/{token}/reject.
func (h *OrderHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, h.uc.Reject)
}

// CloseChat handles POST /orders/{token}/close-chat.
func (h *OrderHandler) CloseChat(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, h.uc.CloseChat)
}

// Complete handles POST /orders/{token}/complete.
func (h *OrderHandler) Complete(w http.ResponseWriter, r *http.Request) {
	tok, err := idFromURL(r, "token")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid token")
		return
	}

	var req completeOrderRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	h.writeActionResult(w, r, h.uc.Complete(r.Context(), tok, req.OperatorID, req.TrackingRef))
}

func (h *OrderHandler) action(w http.ResponseWriter, r *http.Request, do func(ctx context.Context, tok, operatorID int64) error) {
	tok, err := idFromURL(r, "token")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid token")
		return
	}

	var req orderActionRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	h.writeActionResult(w, r, do(r.Context(), tok, req.OperatorID))
}

func (h *OrderHandler) writeActionResult(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"status": "ok"})
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrOrderGone):
		writeError(h.logger, w, r, http.StatusGone, "order already handled")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "order not found")
	case errors.Is(err, apperr.ErrNotAssigned):
		writeError(h.logger, w, r, http.StatusForbidden, "order is assigned to another operator")
	case errors.Is(err, apperr.ErrConflict):
		writeError(h.logger, w, r, http.StatusConflict, "operator or customer already in a chat")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
