package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Konsultn-Engineering/pagedb/database"
	"github.com/Konsultn-Engineering/pagedb/query"
	"github.com/oklog/ulid/v2"
)

// Engine runs one statement per transaction on a single connection. It is not
// safe for concurrent use.
type Engine struct {
	conn    database.Conn
	logger  Logger
	timeout time.Duration
}

type Option func(*Engine)

func WithLogger(l Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithQueryTimeout bounds every execution. Zero disables the deadline.
func WithQueryTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.timeout = d
	}
}

func New(conn database.Conn, opts ...Option) *Engine {
	e := &Engine{conn: conn, logger: NopLogger()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Conn() database.Conn {
	return e.conn
}

// SetConn swaps the connection. A nil conn makes every execution fail with KindConnection.
func (e *Engine) SetConn(conn database.Conn) {
	e.conn = conn
}

// Execute runs q inside its own transaction and commits unconditionally. When
// q.Fetch is set both statements are sent together and the fetched rows are
// returned; otherwise rows are read only when wantRows is true.
//
// On failure the result is empty, never nil, and the error is an *Error.
func (e *Engine) Execute(ctx context.Context, q query.Query, wantRows bool) (rs *database.ResultSet, err error) {
	execID := ulid.Make().String()

	defer func() {
		if err == nil {
			e.logger.Debug("statement executed",
				"exec_id", execID, "op", q.Op, "fingerprint", q.Fingerprint(), "rows", Count(rs.RowsAffected, "row"))
			return
		}
		rs = &database.ResultSet{}
		ee := Classify(q.Op, err)
		err = ee
		e.logger.Error("statement failed",
			"exec_id", execID, "op", q.Op, "fingerprint", q.Fingerprint(),
			"kind", ee.Kind.String(), "sqlstate", ee.Code, "error", ee.Message)
	}()

	if e.conn == nil {
		return nil, &Error{Kind: KindConnection, Op: q.Op, Message: ErrNotConnected.Error(), Err: ErrNotConnected}
	}
	if len(q.Args) != q.Params {
		return nil, &Error{
			Kind:    KindExecution,
			Op:      q.Op,
			Message: fmt.Sprintf("statement expects %d parameters, got %d", q.Params, len(q.Args)),
			Err:     query.ErrArity,
		}
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	tx, err := e.conn.Begin(ctx)
	if err != nil {
		return nil, err
	}

	defer func() {
		cerr := tx.Commit(context.WithoutCancel(ctx))
		switch {
		case cerr == nil:
		case errors.Is(cerr, database.ErrCommitRolledBack):
			e.logger.Debug("transaction rolled back", "exec_id", execID, "op", q.Op)
		case err == nil:
			err = cerr
		default:
			e.logger.Warn("commit failed", "exec_id", execID, "op", q.Op, "error", cerr)
		}
	}()

	return e.run(ctx, tx, q, wantRows)
}

func (e *Engine) run(ctx context.Context, tx database.Tx, q query.Query, wantRows bool) (*database.ResultSet, error) {
	switch {
	case q.Fetch != "":
		return tx.Pipeline(ctx, []database.Statement{
			{SQL: q.SQL, Args: q.Args},
			{SQL: q.Fetch},
		})
	case wantRows:
		return tx.Query(ctx, q.SQL, q.Args...)
	default:
		n, err := tx.Exec(ctx, q.SQL, q.Args...)
		if err != nil {
			return nil, err
		}
		return &database.ResultSet{RowsAffected: n}, nil
	}
}

// Ping checks the connection.
func (e *Engine) Ping(ctx context.Context) error {
	if e.conn == nil {
		return Classify("ping", ErrNotConnected)
	}
	if err := e.conn.Ping(ctx); err != nil {
		return Classify("ping", err)
	}
	return nil
}
