package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/Konsultn-Engineering/pagedb/schema"
)

// ErrCommitRolledBack is returned by Tx.Commit when the server rolled the
// transaction back because a statement inside it failed.
var ErrCommitRolledBack = errors.New("commit turned into rollback")

// ErrClosed is returned by operations on a closed connection.
var ErrClosed = errors.New("connection closed")

// Conn is one live database session. It is not safe for concurrent use.
type Conn interface {
	Begin(ctx context.Context) (Tx, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Tx is a transaction on a Conn. Query and Pipeline fetch their rows eagerly.
type Tx interface {
	Exec(ctx context.Context, sql string, args ...any) (int64, error)
	Query(ctx context.Context, sql string, args ...any) (*ResultSet, error)

	// Pipeline runs stmts in order on the same transaction and returns the rows
	// of the last statement, which may read state the earlier ones created.
	Pipeline(ctx context.Context, stmts []Statement) (*ResultSet, error)

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type Statement struct {
	SQL  string
	Args []any
}

// ResultSet is a fully materialized statement result.
type ResultSet struct {
	Columns      []schema.Column
	Rows         [][]any
	RowsAffected int64
}

// DriverError is the driver-neutral form of a server-reported error.
type DriverError struct {
	Severity string
	Code     string // SQLSTATE
	Message  string
	Detail   string
	Hint     string
	Table    string
	Column   string
	Err      error
}

func (e *DriverError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s (SQLSTATE %s)", e.Severity, e.Message, e.Code)
	}
	return e.Message
}

func (e *DriverError) Unwrap() error {
	return e.Err
}
