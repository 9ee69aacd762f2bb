package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"car-rental-backend/internal/logger"
	"car-rental-backend/internal/repository"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// gateway funnels every statement through one place so that timeouts,
// logging and error classification are applied uniformly.
type gateway struct {
	q       querier
	timeout time.Duration
}

func (g *gateway) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, g.timeout)
}

// queryRow scans a single row into dest. found is false when the query
// matched nothing.
func (g *gateway) queryRow(ctx context.Context, op, query string, args []any, dest ...any) (found bool, err error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	logger.DatabaseCall(op, query)
	err = g.q.QueryRowContext(ctx, query, args...).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		logger.DatabaseResult(op, 0, nil)
		return false, nil
	}
	if err != nil {
		err = classify(ctx, op, err)
		logResult(ctx, op, 0, err)
		return false, err
	}
	logger.DatabaseResult(op, 1, nil)
	return true, nil
}

// query runs a multi-row statement and calls scan once per row.
func (g *gateway) query(ctx context.Context, op, query string, args []any, scan func(*sql.Rows) error) error {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	logger.DatabaseCall(op, query)
	rows, err := g.q.QueryContext(ctx, query, args...)
	if err != nil {
		err = classify(ctx, op, err)
		logResult(ctx, op, 0, err)
		return err
	}
	defer rows.Close()

	var n int64
	for rows.Next() {
		if err := scan(rows); err != nil {
			err = classify(ctx, op, err)
			logResult(ctx, op, n, err)
			return err
		}
		n++
	}
	if err := rows.Err(); err != nil {
		err = classify(ctx, op, err)
		logResult(ctx, op, n, err)
		return err
	}
	logger.DatabaseResult(op, n, nil)
	return nil
}

// classify maps err and, when ctx has already expired, makes sure the
// result is reported as ambiguous even if the driver returned its own error.
func classify(ctx context.Context, op string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
		err = fmt.Errorf("%w (%w)", err, ctxErr)
	}
	return mapError(op, err)
}

func logResult(ctx context.Context, op string, n int64, err error) {
	if cv, ok := repository.AsConstraintViolation(err); ok {
		logger.DebugContext(ctx, "← Database constraint rejected statement",
			"operation", op, "kind", cv.Kind, "constraint", cv.Constraint)
		return
	}
	if errors.Is(err, repository.ErrAmbiguous) {
		logger.WarnContext(ctx, "← Database call outcome unknown", "operation", op, "error", err)
		return
	}
	logger.DatabaseResult(op, n, err)
}
