package handlers

import (
	"errors"
	"net/http"
	"strings"

	"foodline-dispatch/internal/apperr"
	"foodline-dispatch/internal/logx"
)

// MessageHandler serves the customer-operator message tunnel.
type MessageHandler struct {
	relay  relayUsecase
	logger logx.Logger
}

// NewMessageHandler wires a relayUsecase into HTTP handlers.
func NewMessageHandler(logger logx.Logger, relay relayUsecase) *MessageHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &MessageHandler{relay: relay, logger: logger}
}

// RelayText handles POST /messages/text.
func (h *MessageHandler) RelayText(w http.ResponseWriter, r *http.Request) {
	var req relayTextRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	if req.SenderID <= 0 || strings.TrimSpace(req.Text) == "" {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
		return
	}

	h.writeRelayResult(w, r, h.relay.RelayText(r.Context(), req.SenderID, req.Text))
}

// RelayMedia handles POST /messages/media.
func (h *MessageHandler) RelayMedia(w http.ResponseWriter, r *http.Request) {
	var req relayMediaRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	if req.SenderID <= 0 || strings.TrimSpace(req.MediaRef) == "" {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
		return
	}

	h.writeRelayResult(w, r, h.relay.RelayMedia(r.Context(), req.SenderID, req.MediaRef))
}

// CloseSession handles POST /messages/close. Closing is idempotent; the
// response reports whether a session was actually torn down.
func (h *MessageHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	var req closeSessionRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	if req.PartyID <= 0 {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
		return
	}

	closed := h.relay.Close(req.PartyID)
	writeJSON(h.logger, w, r, http.StatusOK, map[string]bool{"closed": closed})
}

func (h *MessageHandler) writeRelayResult(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"status": "ok"})
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "no active chat")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
