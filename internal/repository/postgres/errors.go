package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"car-rental-backend/internal/repository"

	"github.com/lib/pq"
)

const (
	codeNotNull       pq.ErrorCode = "23502"
	codeForeignKey    pq.ErrorCode = "23503"
	codeUnique        pq.ErrorCode = "23505"
	codeCheck         pq.ErrorCode = "23514"
	codeExclusion     pq.ErrorCode = "23P01"
	codeQueryCanceled pq.ErrorCode = "57014"
)

var constraintKinds = map[pq.ErrorCode]repository.ConstraintKind{
	codeNotNull:    repository.ConstraintNotNull,
	codeForeignKey: repository.ConstraintForeignKey,
	codeUnique:     repository.ConstraintUnique,
	codeCheck:      repository.ConstraintCheck,
	codeExclusion:  repository.ConstraintExclusion,
}

// Suffixes Postgres appends to generated constraint names.
var constraintSuffixes = []string{"_fkey", "_pkey", "_key", "_check", "_excl"}

// mapError classifies a driver error. Constraint violations become
// *repository.ConstraintViolation, expired or cancelled calls wrap
// repository.ErrAmbiguous, everything else is wrapped with op.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if kind, ok := constraintKinds[pqErr.Code]; ok {
			return &repository.ConstraintViolation{
				Kind:       kind,
				Table:      pqErr.Table,
				Constraint: pqErr.Constraint,
				Field:      constraintField(pqErr),
				Err:        err,
			}
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) ||
		(pqErr != nil && pqErr.Code == codeQueryCanceled) {
		return fmt.Errorf("%s: %w: %w", op, repository.ErrAmbiguous, err)
	}

	return fmt.Errorf("%s: %w", op, err)
}

// constraintField names the offending column. Not-null violations carry it
// directly; for the others it is recovered from the constraint name, e.g.
// rentals_car_id_fkey -> car_id.
func constraintField(e *pq.Error) string {
	if e.Column != "" {
		return e.Column
	}
	name := e.Constraint
	if name == "" {
		return ""
	}
	if e.Table != "" {
		name = strings.TrimPrefix(name, e.Table+"_")
	}
	for _, suffix := range constraintSuffixes {
		if strings.HasSuffix(name, suffix) {
			return strings.TrimSuffix(name, suffix)
		}
	}
	return name
}
