// Package intake owns the multi-turn conversation that gathers address,
// image, price and payment before an order is submitted. One flow per
// customer; the dispatch engine only ever sees the single completion call.
package intake

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"foodline-dispatch/internal/apperr"
	"foodline-dispatch/internal/domain"
	"foodline-dispatch/internal/logx"
)

// Mode selects which conversation a customer is in.
type Mode string

// Intake modes
const (
	ModeOrder Mode = "order"
	ModePrice Mode = "price"
)

type stage int

const (
	stageAddress stage = iota
	stageImage
	stageItem
	stageGST
	stagePayment
	stagePaymentRef
)

// Customer-facing prompts
const (
	PromptAddress    = "Send delivery address link:"
	PromptImage      = "Send food/card image"
	PromptItem       = "Enter item total (minimum 149):"
	PromptGST        = "Enter GST:"
	PromptPayment    = "Choose payment: cod or prepaid"
	PromptPaymentRef = "Enter UPI ID:"

	replyBelowMinimum = "Minimum item total is 149"
	replyBadAmount    = "Enter valid amount"
)

// Reply tells the boundary layer what to show the customer next.
type Reply struct {
	Prompt     string
	Done       bool
	Token      int64
	FinalPrice float64
}

type submitter interface {
	Submit(ctx context.Context, customerID int64, details domain.OrderDetails) (int64, error)
}

type flow struct {
	mode    Mode
	stage   stage
	details domain.OrderDetails
}

// Collector holds the per-customer conversation state.
type Collector struct {
	mu         sync.Mutex
	flows      map[int64]*flow
	dispatcher submitter
	logger     logx.Logger
}

// NewCollector creates a Collector feeding completed intakes to dispatcher.
func NewCollector(dispatcher submitter, logger logx.Logger) *Collector {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Collector{
		flows:      make(map[int64]*flow),
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Start begins (or restarts) a conversation for the customer. Any flow in
// progress is discarded.
func (c *Collector) Start(customerID int64, mode Mode, customerName string) (Reply, error) {
	if customerID <= 0 {
		return Reply{}, apperr.ErrInvalid
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	switch mode {
	case ModeOrder:
		c.flows[customerID] = &flow{
			mode:    ModeOrder,
			stage:   stageAddress,
			details: domain.OrderDetails{CustomerName: customerName},
		}
		return Reply{Prompt: PromptAddress}, nil
	case ModePrice:
		c.flows[customerID] = &flow{mode: ModePrice, stage: stageItem}
		return Reply{Prompt: PromptItem}, nil
	default:
		return Reply{}, apperr.ErrInvalid
	}
}

// Abandon drops the customer's flow, if any.
func (c *Collector) Abandon(customerID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.flows, customerID)
}

// InFlow reports whether the customer has a conversation in progress.
func (c *Collector) InFlow(customerID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.flows[customerID]
	return ok
}

// Text feeds a text message into the customer's flow. ErrNotFound means no
// flow is in progress and the boundary should fall through to other
// handling. Recoverable validation problems come back as a re-prompt, not
// an error.
func (c *Collector) Text(ctx context.Context, customerID int64, text string) (Reply, error) {
	c.mu.Lock()
	f, ok := c.flows[customerID]
	if !ok {
		c.mu.Unlock()
		return Reply{}, apperr.ErrNotFound
	}

	text = strings.TrimSpace(text)
	var (
		reply  Reply
		submit bool
	)

	switch f.stage {
	case stageAddress:
		if text == "" {
			reply = Reply{Prompt: PromptAddress}
			break
		}
		f.details.Address = text
		f.stage = stageImage
		reply = Reply{Prompt: PromptImage}

	case stageImage:
		reply = Reply{Prompt: PromptImage}

	case stageItem:
		item, err := strconv.ParseFloat(text, 64)
		if err != nil {
			reply = Reply{Prompt: replyBadAmount}
			break
		}
		if item < domain.MinItemTotal {
			reply = Reply{Prompt: replyBelowMinimum}
			break
		}
		f.details.ItemTotal = item
		f.stage = stageGST
		reply = Reply{Prompt: PromptGST}

	case stageGST:
		gst, err := strconv.ParseFloat(text, 64)
		if err != nil || gst < 0 {
			reply = Reply{Prompt: replyBadAmount}
			break
		}
		f.details.GST = gst
		f.details.FinalPrice = domain.FinalPrice(f.details.ItemTotal, gst)
		if f.mode == ModePrice {
			reply = Reply{Done: true, FinalPrice: f.details.FinalPrice}
			delete(c.flows, customerID)
			break
		}
		f.stage = stagePayment
		reply = Reply{Prompt: PromptPayment}

	case stagePayment:
		reply = Reply{Prompt: PromptPayment}

	case stagePaymentRef:
		if text == "" {
			reply = Reply{Prompt: PromptPaymentRef}
			break
		}
		f.details.PaymentRef = text
		delete(c.flows, customerID)
		submit = true
	}
	c.mu.Unlock()

	if submit {
		return c.finalize(ctx, customerID, f)
	}
	return reply, nil
}

// Photo feeds a media reference into the customer's flow. Only the image
// stage consumes photos; elsewhere the current prompt is repeated.
func (c *Collector) Photo(ctx context.Context, customerID int64, imageRef string) (Reply, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, ok := c.flows[customerID]
	if !ok {
		return Reply{}, apperr.ErrNotFound
	}
	if f.stage != stageImage || strings.TrimSpace(imageRef) == "" {
		return c.repromptLocked(f), nil
	}
	f.details.ImageRef = imageRef
	f.stage = stageItem
	return Reply{Prompt: PromptItem}, nil
}

// Choose resolves the payment-mode step.
func (c *Collector) Choose(ctx context.Context, customerID int64, mode domain.PaymentMode) (Reply, error) {
	c.mu.Lock()
	f, ok := c.flows[customerID]
	if !ok {
		c.mu.Unlock()
		return Reply{}, apperr.ErrNotFound
	}
	if f.stage != stagePayment || !mode.Valid() {
		reply := c.repromptLocked(f)
		c.mu.Unlock()
		return reply, nil
	}

	f.details.PaymentMode = mode
	if mode == domain.PaymentPrepaid {
		f.stage = stagePaymentRef
		c.mu.Unlock()
		return Reply{Prompt: PromptPaymentRef}, nil
	}
	delete(c.flows, customerID)
	c.mu.Unlock()
	return c.finalize(ctx, customerID, f)
}

// finalize submits the completed intake. The caller removed the flow inside
// the same critical section that decided to submit, so a concurrent message
// for the same customer gets ErrNotFound instead of a second order. The flow
// is gone either way: on NoOperatorsOnline the customer starts over.
func (c *Collector) finalize(ctx context.Context, customerID int64, f *flow) (Reply, error) {
	tok, err := c.dispatcher.Submit(ctx, customerID, f.details)
	if err != nil {
		c.logger.Warn("intake submission failed",
			logx.Int64("customer_id", customerID),
			logx.Err(err),
		)
		return Reply{}, err
	}
	return Reply{Done: true, Token: tok, FinalPrice: f.details.FinalPrice}, nil
}

func (c *Collector) repromptLocked(f *flow) Reply {
	switch f.stage {
	case stageAddress:
		return Reply{Prompt: PromptAddress}
	case stageImage:
		return Reply{Prompt: PromptImage}
	case stageItem:
		return Reply{Prompt: PromptItem}
	case stageGST:
		return Reply{Prompt: PromptGST}
	case stagePaymentRef:
		return Reply{Prompt: PromptPaymentRef}
	default:
		return Reply{Prompt: PromptPayment}
	}
}
