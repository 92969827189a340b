package handlers

import (
	"errors"
	"net/http"

	"foodline-dispatch/internal/apperr"
	"foodline-dispatch/internal/domain"
	"foodline-dispatch/internal/intake"
	"foodline-dispatch/internal/logx"
)

// IntakeHandler serves the step-by-step order conversation.
type IntakeHandler struct {
	uc     intakeUsecase
	logger logx.Logger
}

// NewIntakeHandler wires an intakeUsecase into HTTP handlers.
func NewIntakeHandler(logger logx.Logger, uc intakeUsecase) *IntakeHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &IntakeHandler{uc: uc, logger: logger}
}

// Start handles POST /intake/start.
func (h *IntakeHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req startIntakeRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	mode := intake.Mode(req.Mode)
	if req.CustomerID <= 0 || (mode != intake.ModeOrder && mode != intake.ModePrice) {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
		return
	}

	rep, err := h.uc.Start(req.CustomerID, mode, req.CustomerName)
	h.writeReply(w, r, rep, err)
}

// Text handles POST /intake/text.
func (h *IntakeHandler) Text(w http.ResponseWriter, r *http.Request) {
	var req intakeTextRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	if req.CustomerID <= 0 {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
		return
	}

	rep, err := h.uc.Text(r.Context(), req.CustomerID, req.Text)
	h.writeReply(w, r, rep, err)
}

// Photo handles POST /intake/photo.
func (h *IntakeHandler) Photo(w http.ResponseWriter, r *http.Request) {
	var req intakePhotoRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	if req.CustomerID <= 0 || req.ImageRef == "" {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
		return
	}

	rep, err := h.uc.Photo(r.Context(), req.CustomerID, req.ImageRef)
	h.writeReply(w, r, rep, err)
}

// ChoosePayment handles POST /intake/payment.
func (h *IntakeHandler) ChoosePayment(w http.ResponseWriter, r *http.Request) {
	var req intakePaymentRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	mode := domain.PaymentMode(req.PaymentMode)
	if req.CustomerID <= 0 || !mode.Valid() {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
		return
	}

	rep, err := h.uc.Choose(r.Context(), req.CustomerID, mode)
	h.writeReply(w, r, rep, err)
}

// Abandon handles POST /intake/abandon.
func (h *IntakeHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	var req startIntakeRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	if req.CustomerID <= 0 {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
		return
	}

	h.uc.Abandon(req.CustomerID)
	writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *IntakeHandler) writeReply(w http.ResponseWriter, r *http.Request, rep intake.Reply, err error) {
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, replyToResponse(rep))
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "no conversation in progress")
	case errors.Is(err, apperr.ErrNoOperatorsOnline):
		writeError(h.logger, w, r, http.StatusConflict, "no operators online")
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
