package delivery

import (
	"context"
	"database/sql"
	"time"

	"koi-checkout/internal/logger"

	"go.uber.org/zap"
)

// Failure is one journaled delivery-create failure. The journal exists so a
// fire-and-forget delivery that never reached the platform is still visible
// and replayable by operators; nothing retries automatically.
type Failure struct {
	ID         int64
	OrderID    int64
	CustomerID int64
	Reason     string
	OccurredAt time.Time
	ResolvedAt *time.Time
}

type Repository interface {
	RecordFailure(ctx context.Context, f *Failure) error
	ListUnresolved(ctx context.Context) ([]*Failure, error)
	MarkResolved(ctx context.Context, id int64) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) RecordFailure(ctx context.Context, f *Failure) error {
	query := `
		INSERT INTO delivery_failures (order_id, customer_id, reason, occurred_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query, f.OrderID, f.CustomerID, f.Reason, f.OccurredAt).Scan(&f.ID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to journal delivery failure",
			zap.Int64("order_id", f.OrderID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (r *repository) ListUnresolved(ctx context.Context) ([]*Failure, error) {
	query := `
		SELECT id, order_id, customer_id, reason, occurred_at, resolved_at
		FROM delivery_failures
		WHERE resolved_at IS NULL
		ORDER BY occurred_at
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var failures []*Failure
	for rows.Next() {
		var f Failure
		if err := rows.Scan(&f.ID, &f.OrderID, &f.CustomerID, &f.Reason, &f.OccurredAt, &f.ResolvedAt); err != nil {
			return nil, err
		}
		failures = append(failures, &f)
	}
	return failures, rows.Err()
}

func (r *repository) MarkResolved(ctx context.Context, id int64) error {
	query := `UPDATE delivery_failures SET resolved_at = NOW() WHERE id = $1 AND resolved_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrFailureNotFound
	}
	return nil
}
