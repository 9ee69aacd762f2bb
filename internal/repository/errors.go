package repository

import (
	"errors"
	"fmt"
)

// ErrAmbiguous marks a store call whose outcome is unknown, typically
// because the context expired while the statement was in flight. The write
// may or may not have been applied.
var ErrAmbiguous = errors.New("store outcome unknown")

type ConstraintKind string

const (
	ConstraintUnique     ConstraintKind = "unique"
	ConstraintForeignKey ConstraintKind = "foreign_key"
	ConstraintNotNull    ConstraintKind = "not_null"
	ConstraintCheck      ConstraintKind = "check"
	ConstraintExclusion  ConstraintKind = "exclusion"
)

// ConstraintViolation reports a write rejected by a store-level constraint.
type ConstraintViolation struct {
	Kind       ConstraintKind
	Table      string
	Constraint string
	Field      string
	Err        error
}

func (e *ConstraintViolation) Error() string {
	return fmt.Sprintf("%s constraint %q violated on %s: %v", e.Kind, e.Constraint, e.Table, e.Err)
}

func (e *ConstraintViolation) Unwrap() error { return e.Err }

// AsConstraintViolation returns the first ConstraintViolation in err's chain.
func AsConstraintViolation(err error) (*ConstraintViolation, bool) {
	var cv *ConstraintViolation
	if errors.As(err, &cv) {
		return cv, true
	}
	return nil, false
}
