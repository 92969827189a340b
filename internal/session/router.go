// Package session maintains the active customer-operator relay mapping and
// forwards messages between the two parties while a session is open.
package session

import (
	"context"
	"fmt"
	"sync"

	"foodline-dispatch/internal/apperr"
	"foodline-dispatch/internal/logx"
	"foodline-dispatch/internal/notify"
)

// Route is the result of looking up a sender in the session mapping.
type Route struct {
	Recipient    int64
	FromOperator bool
	Token        int64
}

// Label returns the role tag prefixed to relayed payloads.
func (r Route) Label() string {
	if r.FromOperator {
		return "Admin:"
	}
	return fmt.Sprintf("Customer (Token %d):", r.Token)
}

// Router owns the bidirectional session mapping. A party belongs to at most
// one session at a time; both directions are always created and removed
// together under the router lock.
type Router struct {
	mu     sync.Mutex
	peers  map[int64]int64
	tokens map[int64]int64

	ops      operatorChecker
	notifier notify.Notifier
	logger   logx.Logger
	open     gauge
}

// NewRouter creates a Router. The gauge may be nil.
func NewRouter(ops operatorChecker, notifier notify.Notifier, logger logx.Logger, open gauge) *Router {
	if notifier == nil {
		notifier = notify.Nop()
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Router{
		peers:    make(map[int64]int64),
		tokens:   make(map[int64]int64),
		ops:      ops,
		notifier: notifier,
		logger:   logger,
		open:     open,
	}
}

// Open pairs an operator with a customer for the given order token. Fails
// with ErrConflict if either party already has an open session.
func (r *Router) Open(operatorID, customerID, orderToken int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, busy := r.peers[operatorID]; busy {
		return apperr.ErrConflict
	}
	if _, busy := r.peers[customerID]; busy {
		return apperr.ErrConflict
	}
	r.peers[operatorID] = customerID
	r.peers[customerID] = operatorID
	r.tokens[customerID] = orderToken
	if r.open != nil {
		r.open.Inc()
	}

	r.logger.Info("session opened",
		logx.String("event", "session_opened"),
		logx.Int64("operator_id", operatorID),
		logx.Int64("customer_id", customerID),
		logx.Int64("token", orderToken),
	)
	return nil
}

// Lookup resolves the sender's route without forwarding anything. Returns
// ErrNotFound when the sender has no open session, so the boundary layer can
// fall through to intake handling.
func (r *Router) Lookup(senderID int64) (Route, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lookupLocked(senderID)
}

func (r *Router) lookupLocked(senderID int64) (Route, error) {
	recipient, ok := r.peers[senderID]
	if !ok {
		return Route{}, apperr.ErrNotFound
	}
	rt := Route{Recipient: recipient, FromOperator: r.ops.IsOperator(senderID)}
	if !rt.FromOperator {
		rt.Token = r.tokens[senderID]
	}
	return rt, nil
}

// RelayText forwards a text message to the sender's peer with the role label
// attached. Delivery failures are logged, never surfaced.
func (r *Router) RelayText(ctx context.Context, senderID int64, text string) error {
	rt, err := r.Lookup(senderID)
	if err != nil {
		return err
	}

	labeled := rt.Label() + "\n" + text
	if err := r.notifier.SendText(ctx, rt.Recipient, labeled); err != nil {
		r.logger.Warn("relay text delivery failed",
			logx.Int64("sender_id", senderID),
			logx.Int64("recipient_id", rt.Recipient),
			logx.Err(err),
		)
	}
	return nil
}

// RelayMedia forwards a media reference to the sender's peer, captioned with
// the role label.
func (r *Router) RelayMedia(ctx context.Context, senderID int64, mediaRef string) error {
	rt, err := r.Lookup(senderID)
	if err != nil {
		return err
	}

	if err := r.notifier.SendMedia(ctx, rt.Recipient, mediaRef, rt.Label()); err != nil {
		r.logger.Warn("relay media delivery failed",
			logx.Int64("sender_id", senderID),
			logx.Int64("recipient_id", rt.Recipient),
			logx.Err(err),
		)
	}
	return nil
}

// Close tears down the session containing the party, both directions at
// once. Idempotent; returns false if the party had no session.
func (r *Router) Close(partyID int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	peer, ok := r.peers[partyID]
	if !ok {
		return false
	}
	delete(r.peers, partyID)
	delete(r.peers, peer)
	delete(r.tokens, partyID)
	delete(r.tokens, peer)
	if r.open != nil {
		r.open.Dec()
	}

	r.logger.Info("session closed",
		logx.String("event", "session_closed"),
		logx.Int64("party_id", partyID),
		logx.Int64("peer_id", peer),
	)
	return true
}
