package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"foodline-dispatch/internal/apperr"
	"foodline-dispatch/internal/domain"
	"foodline-dispatch/internal/logx"
)

// OperatorHandler serves HTTP endpoints for the operator roster.
type OperatorHandler struct {
	dir    operatorDirectory
	logger logx.Logger
}

// NewOperatorHandler wires an operatorDirectory into HTTP handlers.
func NewOperatorHandler(logger logx.Logger, dir operatorDirectory) *OperatorHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &OperatorHandler{dir: dir, logger: logger}
}

// Register handles POST /operators.
func (h *OperatorHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerOperatorRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	err := h.dir.Register(req.ID)
	switch {
	case err == nil:
		w.Header().Set("Location", "/operators/"+strconv.FormatInt(req.ID, 10))
		writeJSON(h.logger, w, r, http.StatusCreated, map[string]any{"id": req.ID})
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrConflict):
		writeError(h.logger, w, r, http.StatusConflict, "operator already registered")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Remove handles DELETE /operators/{id}.
func (h *OperatorHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	err = h.dir.Remove(id)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"status": "ok"})
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "main operator cannot be removed")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "operator not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// SetStatus handles PUT /operators/{id}/status.
func (h *OperatorHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	var req setOperatorStatusRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	status, ok := domain.ParseOperatorStatus(req.Status)
	if !ok {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid status")
		return
	}

	err = h.dir.SetStatus(id, status)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"status": "ok"})
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "operator not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// GetByID handles GET /operators/{id}.
func (h *OperatorHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	op, err := h.dir.Get(id)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, operatorToResponse(op))
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "operator not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// List handles GET /operators.
func (h *OperatorHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(h.logger, w, r, http.StatusOK, operatorsToResponse(h.dir.Snapshot()))
}
