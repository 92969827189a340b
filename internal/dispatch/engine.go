// Package dispatch assigns orders to operators round robin, re-escalates on
// timeout or rejection and applies the accept/complete transitions.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"foodline-dispatch/internal/apperr"
	"foodline-dispatch/internal/domain"
	"foodline-dispatch/internal/logx"
	"foodline-dispatch/internal/notify"
	"foodline-dispatch/internal/store"
	"foodline-dispatch/internal/token"
)

const (
	defaultEscalation      = 60 * time.Second
	defaultDeliveryTimeout = 5 * time.Second
)

// Engine owns the order lifecycle. One instance per process; the in-memory
// store it drives is the source of truth for in-flight orders.
type Engine struct {
	roster   operatorRoster
	orders   *store.OrderStore
	sessions sessionOpener
	notifier notify.Notifier
	archive  Archiver
	tokens   *token.Allocator

	clock           Clock
	escalation      time.Duration
	deliveryTimeout time.Duration
	logger          logx.Logger
	metrics         *Metrics

	// process-wide round robin: decides which online operator gets first
	// refusal for the next created order. Never reset on operator churn.
	cursor atomic.Int64

	mu     sync.Mutex
	timers map[int64]Timer

	// indirection for delivery goroutines, overridden in tests
	deliver func(fn func())
}

// NewEngine creates an Engine. archive may be nil; escalation <= 0 falls
// back to the 60 second default.
func NewEngine(
	roster operatorRoster,
	orders *store.OrderStore,
	sessions sessionOpener,
	notifier notify.Notifier,
	tokens *token.Allocator,
	archive Archiver,
	clock Clock,
	escalation time.Duration,
	logger logx.Logger,
	metrics *Metrics,
) *Engine {
	if notifier == nil {
		notifier = notify.Nop()
	}
	if clock == nil {
		clock = RealClock{}
	}
	if escalation <= 0 {
		escalation = defaultEscalation
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Engine{
		roster:          roster,
		orders:          orders,
		sessions:        sessions,
		notifier:        notifier,
		archive:         archive,
		tokens:          tokens,
		clock:           clock,
		escalation:      escalation,
		deliveryTimeout: defaultDeliveryTimeout,
		logger:          logger,
		metrics:         metrics,
		timers:          make(map[int64]Timer),
		deliver:         func(fn func()) { go fn() },
	}
}

// Submit creates a pending order from a completed intake and offers it to
// the next operator in the round robin. Fails fast with ErrNoOperatorsOnline
// before a token is consumed, so rejected submissions leave no gap in the
// token sequence.
func (e *Engine) Submit(ctx context.Context, customerID int64, details domain.OrderDetails) (int64, error) {
	if customerID <= 0 {
		return 0, apperr.ErrInvalid
	}
	if err := domain.ValidateDetails(&details); err != nil {
		return 0, err
	}

	candidates := e.roster.OnlineOperators()
	if len(candidates) == 0 {
		return 0, apperr.ErrNoOperatorsOnline
	}

	tok := e.tokens.Next()
	turn := e.cursor.Add(1) - 1
	o := &domain.Order{
		Token:      tok,
		Status:     domain.OrderPending,
		CustomerID: customerID,
		Details:    details,
		Candidates: candidates,
		Cursor:     int(turn % int64(len(candidates))),
	}
	// snapshot before Put publishes the live pointer to the store
	snap := o.Clone()
	if err := e.orders.Put(o); err != nil {
		return 0, fmt.Errorf("store order %d: %w", tok, err)
	}

	e.scheduleEscalation(tok, snap.Generation)
	e.sendText(snap.CustomerID, placedText(tok))
	e.sendAssignment(snap)
	e.archiveCreated(ctx, snap)
	e.metrics.incSubmitted()

	e.logger.Info("order submitted",
		logx.String("event", "order_submitted"),
		logx.Int64("token", tok),
		logx.Int64("customer_id", customerID),
		logx.Int64("operator_id", snap.AssignedOperator()),
		logx.Int("candidates", len(candidates)),
	)
	return tok, nil
}

// Reject passes a pending order to the next candidate and restarts the
// escalation timer. Any operator may reject; accept and complete are the
// ownership-checked actions.
func (e *Engine) Reject(ctx context.Context, tok, actingOperator int64) error {
	var next *domain.Order
	err := e.orders.Mutate(tok, func(o *domain.Order) error {
		if o.Status != domain.OrderPending {
			return apperr.ErrOrderGone
		}
		o.Advance()
		next = o.Clone()
		return nil
	})
	if err != nil {
		return orderErr(err)
	}

	e.stopEscalation(tok)
	e.scheduleEscalation(tok, next.Generation)
	e.sendAssignment(next)
	e.metrics.incReassigned(ReasonReject)

	e.logger.Info("order rejected",
		logx.String("event", "order_rejected"),
		logx.Int64("token", tok),
		logx.Int64("rejected_by", actingOperator),
		logx.Int64("operator_id", next.AssignedOperator()),
	)
	return nil
}

// Accept transitions a pending order to accepted by its currently assigned
// operator and opens the chat session with the customer. A session conflict
// is a boundary-layer invariant violation: it is logged and the accept is
// aborted with no state change.
func (e *Engine) Accept(ctx context.Context, tok, actingOperator int64) error {
	var customerID int64
	err := e.orders.Mutate(tok, func(o *domain.Order) error {
		if o.Status != domain.OrderPending {
			return apperr.ErrOrderGone
		}
		if o.AssignedOperator() != actingOperator {
			return apperr.ErrNotAssigned
		}
		if err := e.sessions.Open(actingOperator, o.CustomerID, tok); err != nil {
			return fmt.Errorf("open session for order %d: %w", tok, err)
		}
		o.Status = domain.OrderAccepted
		o.Generation++
		customerID = o.CustomerID
		return nil
	})
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			e.logger.Error("session conflict on accept",
				logx.Int64("token", tok),
				logx.Int64("operator_id", actingOperator),
				logx.Err(err),
			)
		}
		return orderErr(err)
	}

	e.stopEscalation(tok)
	e.sendText(customerID, acceptedText())
	e.archiveStatus(ctx, tok, domain.OrderAccepted)
	e.metrics.incAccepted()

	e.logger.Info("order accepted",
		logx.String("event", "order_accepted"),
		logx.Int64("token", tok),
		logx.Int64("operator_id", actingOperator),
	)
	return nil
}

// Complete finishes an accepted order: the tracking reference goes to the
// customer, the session is torn down and the token leaves the store for
// good.
func (e *Engine) Complete(ctx context.Context, tok, actingOperator int64, trackingRef string) error {
	var customerID int64
	err := e.orders.Mutate(tok, func(o *domain.Order) error {
		if o.Status != domain.OrderAccepted {
			return apperr.ErrOrderGone
		}
		if o.AssignedOperator() != actingOperator {
			return apperr.ErrNotAssigned
		}
		o.Status = domain.OrderCompleted
		o.Generation++
		customerID = o.CustomerID
		return nil
	})
	if err != nil {
		return orderErr(err)
	}

	e.stopEscalation(tok)
	e.sendText(customerID, dispatchedText(trackingRef))
	e.sessions.Close(customerID)
	e.orders.Remove(tok)
	e.archiveStatus(ctx, tok, domain.OrderCompleted)
	e.metrics.incCompleted()

	e.logger.Info("order completed",
		logx.String("event", "order_completed"),
		logx.Int64("token", tok),
		logx.Int64("operator_id", actingOperator),
	)
	return nil
}

// CloseChat tears down the relay session without completing the order
// (operator-initiated). The order stays accepted.
func (e *Engine) CloseChat(ctx context.Context, tok, actingOperator int64) error {
	var customerID int64
	err := e.orders.Mutate(tok, func(o *domain.Order) error {
		if o.Status != domain.OrderAccepted {
			return apperr.ErrOrderGone
		}
		if o.AssignedOperator() != actingOperator {
			return apperr.ErrNotAssigned
		}
		customerID = o.CustomerID
		return nil
	})
	if err != nil {
		return orderErr(err)
	}

	if e.sessions.Close(customerID) {
		e.sendText(customerID, "Admin has closed the chat session.")
	}
	return nil
}

// Shutdown stops all pending escalation timers. In-flight orders stay in the
// store; the process is going away anyway.
func (e *Engine) Shutdown() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for tok, t := range e.timers {
		t.Stop()
		delete(e.timers, tok)
	}
}

// onEscalation is the timer callback. The generation captured at scheduling
// time detects a stale fire racing a human action: if any transition has
// happened since, the fire is discarded without advancing the cursor.
func (e *Engine) onEscalation(tok int64, gen uint64) {
	var next *domain.Order
	err := e.orders.Mutate(tok, func(o *domain.Order) error {
		if o.Status != domain.OrderPending || o.Generation != gen {
			return apperr.ErrOrderGone
		}
		o.Advance()
		next = o.Clone()
		return nil
	})
	if err != nil {
		// already resolved, nothing to do
		return
	}

	e.scheduleEscalation(tok, next.Generation)
	e.sendAssignment(next)
	e.metrics.incReassigned(ReasonTimeout)

	e.logger.Info("order escalated",
		logx.String("event", "order_escalated"),
		logx.Int64("token", tok),
		logx.Int64("operator_id", next.AssignedOperator()),
	)
}

func (e *Engine) scheduleEscalation(tok int64, gen uint64) {
	t := e.clock.AfterFunc(e.escalation, func() { e.onEscalation(tok, gen) })

	e.mu.Lock()
	defer e.mu.Unlock()
	if old, ok := e.timers[tok]; ok {
		old.Stop()
	}
	e.timers[tok] = t
}

func (e *Engine) stopEscalation(tok int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if t, ok := e.timers[tok]; ok {
		t.Stop()
		delete(e.timers, tok)
	}
}

// sendAssignment offers the order to its currently assigned operator: the
// intake image with the order summary as caption. Runs detached so delivery
// latency never stalls the engine. Failure is logged only; an operator who
// went offline after the snapshot simply misses the offer and the timer
// cycles past them.
func (e *Engine) sendAssignment(o *domain.Order) {
	e.deliver(func() {
		ctx, cancel := context.WithTimeout(context.Background(), e.deliveryTimeout)
		defer cancel()
		if err := e.notifier.SendMedia(ctx, o.AssignedOperator(), o.Details.ImageRef, assignmentCaption(o)); err != nil {
			e.metrics.incNotifyFailures()
			e.logger.Warn("assignment delivery failed",
				logx.Int64("token", o.Token),
				logx.Int64("operator_id", o.AssignedOperator()),
				logx.Err(err),
			)
		}
	})
}

func (e *Engine) sendText(partyID int64, text string) {
	e.deliver(func() {
		ctx, cancel := context.WithTimeout(context.Background(), e.deliveryTimeout)
		defer cancel()
		if err := e.notifier.SendText(ctx, partyID, text); err != nil {
			e.metrics.incNotifyFailures()
			e.logger.Warn("text delivery failed",
				logx.Int64("party_id", partyID),
				logx.Err(err),
			)
		}
	})
}

func (e *Engine) archiveCreated(ctx context.Context, o *domain.Order) {
	if e.archive == nil {
		return
	}
	if err := e.archive.OrderCreated(ctx, o); err != nil {
		e.logger.Warn("order archive write failed", logx.Int64("token", o.Token), logx.Err(err))
	}
}

func (e *Engine) archiveStatus(ctx context.Context, tok int64, status domain.OrderStatus) {
	if e.archive == nil {
		return
	}
	if err := e.archive.OrderStatus(ctx, tok, status); err != nil {
		e.logger.Warn("order archive update failed", logx.Int64("token", tok), logx.Err(err))
	}
}

// orderErr maps the store's not-found onto the engine taxonomy: an unknown
// token is indistinguishable from an already-terminal order.
func orderErr(err error) error {
	if errors.Is(err, apperr.ErrNotFound) {
		return apperr.ErrOrderGone
	}
	return err
}
