package query

import (
	"errors"
	"fmt"

	"github.com/Konsultn-Engineering/pagedb/utils"
)

var (
	// ErrArity is returned when a column list and a value list disagree in length.
	ErrArity = errors.New("arity mismatch")

	// ErrNoRows is returned by BulkInsertRows for empty input. Callers treat it as a no-op.
	ErrNoRows = errors.New("no rows to insert")

	// ErrEmpty is returned when a required list or text argument is empty.
	ErrEmpty = errors.New("empty argument")
)

// MaxParams is the PostgreSQL limit on bound parameters per statement.
const MaxParams = 65535

// Query is an immutable rendered statement. Identifiers are already quoted into SQL;
// values only ever travel in Args.
type Query struct {
	Op     string
	SQL    string
	Params int
	Args   []any

	// Fetch is an optional parameterless statement run after SQL in the same
	// transaction. When set, its rows are the result of the query.
	Fetch string
}

// Bind returns a copy of q carrying args as its bound values.
func (q Query) Bind(args ...any) Query {
	q.Args = append([]any(nil), args...)
	return q
}

// Fingerprint identifies the statement shape, independent of bound values.
func (q Query) Fingerprint() string {
	return utils.FingerprintHex(q.SQL, q.Fetch)
}

func (q Query) String() string {
	if q.Fetch != "" {
		return q.SQL + "; " + q.Fetch
	}
	return q.SQL
}

// ValidationError reports a caller contract violation caught before the driver.
type ValidationError struct {
	Op  string
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(op string, format string, args ...any) error {
	return &ValidationError{Op: op, Err: fmt.Errorf(format, args...)}
}
