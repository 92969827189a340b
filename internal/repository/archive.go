// Package repository persists order history. The archive is write-behind and
// best effort: in-flight state lives in memory and never reads back from
// here.
package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"foodline-dispatch/internal/domain"
)

// OrderArchive represents the order history repository.
type OrderArchive struct{ db *pgxpool.Pool }

// NewOrderArchive creates a new OrderArchive.
func NewOrderArchive(db *pgxpool.Pool) *OrderArchive { return &OrderArchive{db: db} }

// EnsureSchema creates the archive tables when they do not exist yet.
func (r *OrderArchive) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS orders (
            token         BIGINT PRIMARY KEY,
            customer_id   BIGINT NOT NULL,
            customer_name TEXT NOT NULL DEFAULT '',
            address       TEXT NOT NULL,
            food_image    TEXT NOT NULL,
            item_total    DOUBLE PRECISION NOT NULL,
            gst           DOUBLE PRECISION NOT NULL,
            final_price   DOUBLE PRECISION NOT NULL,
            payment_mode  TEXT NOT NULL,
            payment_ref   TEXT NOT NULL DEFAULT '',
            status        TEXT NOT NULL,
            created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
            updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
        )`)
	if err != nil {
		return fmt.Errorf("create orders table: %w", err)
	}

	_, err = r.db.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS token_counter (
            id         INT PRIMARY KEY,
            last_token BIGINT NOT NULL
        )`)
	if err != nil {
		return fmt.Errorf("create token_counter table: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO token_counter (id, last_token) VALUES (1, 0) ON CONFLICT (id) DO NOTHING`)
	if err != nil {
		return fmt.Errorf("seed token_counter: %w", err)
	}
	return nil
}

// OrderCreated records a freshly submitted order and moves the persisted
// token counter forward.
func (r *OrderArchive) OrderCreated(ctx context.Context, o *domain.Order) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO orders (token, customer_id, customer_name, address, food_image,
                            item_total, gst, final_price, payment_mode, payment_ref, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		o.Token, o.CustomerID, o.Details.CustomerName, o.Details.Address, o.Details.ImageRef,
		o.Details.ItemTotal, o.Details.GST, o.Details.FinalPrice,
		string(o.Details.PaymentMode), o.Details.PaymentRef, string(o.Status),
	)
	if err != nil {
		if IsDuplicate(err) {
			return nil
		}
		return fmt.Errorf("archive order %d: %w", o.Token, err)
	}

	_, err = r.db.Exec(ctx,
		`UPDATE token_counter SET last_token = GREATEST(last_token, $1) WHERE id = 1`, o.Token)
	if err != nil {
		return fmt.Errorf("advance token counter: %w", err)
	}
	return nil
}

// OrderStatus records a lifecycle transition.
func (r *OrderArchive) OrderStatus(ctx context.Context, token int64, status domain.OrderStatus) error {
	_, err := r.db.Exec(ctx,
		`UPDATE orders SET status = $2, updated_at = now() WHERE token = $1`,
		token, string(status),
	)
	if err != nil {
		return fmt.Errorf("archive status of order %d: %w", token, err)
	}
	return nil
}

// LastToken returns the highest persisted token, used to seed the allocator
// at startup so tokens keep increasing across restarts.
func (r *OrderArchive) LastToken(ctx context.Context) (int64, error) {
	var last int64
	err := r.db.QueryRow(ctx, `SELECT last_token FROM token_counter WHERE id = 1`).Scan(&last)
	if err != nil {
		if IsNotFound(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read token counter: %w", err)
	}
	return last, nil
}
