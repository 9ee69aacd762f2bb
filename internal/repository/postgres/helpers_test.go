package postgres_test

import "github.com/lib/pq"

func pqError(code, table, constraint string) error {
	return &pq.Error{Code: pq.ErrorCode(code), Table: table, Constraint: constraint, Message: "constraint violated"}
}
