package app

import (
	"context"
	"errors"
	"time"

	"foodline-dispatch/internal/apperr"
	"foodline-dispatch/internal/dispatch"
	"foodline-dispatch/internal/logx"
	"foodline-dispatch/internal/notify"
	"foodline-dispatch/internal/transport/kafka"
)

const rosterEmptyText = "No admin online. Please try again later."

// makeIntakeHandler feeds completed intakes from the Kafka topic into the
// dispatch engine. Domain rejections are permanent: retrying an invalid
// payload or an empty roster from the log would wedge the partition.
func makeIntakeHandler(engine *dispatch.Engine, notifier notify.Notifier, logger logx.Logger) kafka.HandleFunc {
	if notifier == nil {
		notifier = notify.Nop()
	}
	return func(ctx context.Context, event kafka.Event) error {
		tok, err := engine.Submit(ctx, event.CustomerID, event.Details())
		switch {
		case err == nil:
			logger.Info("kafka intake dispatched",
				logx.Int64("customer_id", event.CustomerID),
				logx.Int64("token", tok))
			return nil
		case errors.Is(err, apperr.ErrNoOperatorsOnline):
			// Unlike the HTTP path there is no caller left to surface the
			// failure, so the customer is told directly before the message
			// is skipped. Best effort, same as the engine's sends.
			sendRosterEmptyNotice(ctx, notifier, event.CustomerID, logger)
			return kafka.Permanent(err)
		case errors.Is(err, apperr.ErrInvalid):
			return kafka.Permanent(err)
		default:
			return err
		}
	}
}

func sendRosterEmptyNotice(ctx context.Context, notifier notify.Notifier, customerID int64, logger logx.Logger) {
	sendCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := notifier.SendText(sendCtx, customerID, rosterEmptyText); err != nil {
		logger.Warn("roster-empty notice delivery failed",
			logx.Int64("customer_id", customerID),
			logx.Err(err))
	}
}
