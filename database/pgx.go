package database

import (
	"context"
	"errors"

	"github.com/Konsultn-Engineering/pagedb/schema"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxConn implements Conn over a single *pgx.Conn.
type PgxConn struct {
	conn *pgx.Conn
}

// NewPgxConn wraps an established pgx connection.
func NewPgxConn(conn *pgx.Conn) *PgxConn {
	return &PgxConn{conn: conn}
}

// ConnectPgx opens a new session from a connection string.
func ConnectPgx(ctx context.Context, dsn string) (*PgxConn, error) {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return nil, wrapPgx(err)
	}
	return &PgxConn{conn: conn}, nil
}

// Begin starts a transaction.
func (p *PgxConn) Begin(ctx context.Context) (Tx, error) {
	if p.conn == nil || p.conn.IsClosed() {
		return nil, ErrClosed
	}
	tx, err := p.conn.Begin(ctx)
	if err != nil {
		return nil, wrapPgx(err)
	}
	return &PgxTx{tx: tx, conn: p.conn}, nil
}

// Ping verifies the session is alive.
func (p *PgxConn) Ping(ctx context.Context) error {
	if p.conn == nil {
		return ErrClosed
	}
	return wrapPgx(p.conn.Ping(ctx))
}

// Close terminates the session.
func (p *PgxConn) Close(ctx context.Context) error {
	if p.conn == nil {
		return nil
	}
	err := p.conn.Close(ctx)
	p.conn = nil
	return wrapPgx(err)
}

// PgxTx implements Tx for pgx.Tx.
type PgxTx struct {
	tx   pgx.Tx
	conn *pgx.Conn
}

// Exec executes a statement that doesn't return rows.
func (t *PgxTx) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	tag, err := t.tx.Exec(ctx, sql, args...)
	if err != nil {
		return 0, wrapPgx(err)
	}
	return tag.RowsAffected(), nil
}

// Query executes a statement and reads all of its rows.
func (t *PgxTx) Query(ctx context.Context, sql string, args ...any) (*ResultSet, error) {
	rows, err := t.tx.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrapPgx(err)
	}
	return t.collect(rows)
}

// Pipeline executes the leading statements, then reads the last one over the
// simple protocol. A FETCH from a cursor opened by an earlier statement cannot be
// described before that statement runs, so it must not be prepared or batched.
// On pgx a CALL followed by FETCH therefore costs two round trips in one transaction.
func (t *PgxTx) Pipeline(ctx context.Context, stmts []Statement) (*ResultSet, error) {
	if len(stmts) == 0 {
		return &ResultSet{}, nil
	}

	for _, s := range stmts[:len(stmts)-1] {
		if _, err := t.tx.Exec(ctx, s.SQL, s.Args...); err != nil {
			return nil, wrapPgx(err)
		}
	}

	last := stmts[len(stmts)-1]
	args := append([]any{pgx.QueryExecModeSimpleProtocol}, last.Args...)
	rows, err := t.tx.Query(ctx, last.SQL, args...)
	if err != nil {
		return nil, wrapPgx(err)
	}
	return t.collect(rows)
}

func (t *PgxTx) collect(rows pgx.Rows) (*ResultSet, error) {
	defer rows.Close()

	fields := rows.FieldDescriptions()
	rs := &ResultSet{Columns: make([]schema.Column, len(fields))}
	for i, fd := range fields {
		rs.Columns[i] = schema.Column{Name: fd.Name, TypeOID: fd.DataTypeOID, TypeName: t.typeName(fd.DataTypeOID)}
	}

	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, wrapPgx(err)
		}
		rs.Rows = append(rs.Rows, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgx(err)
	}

	rs.RowsAffected = rows.CommandTag().RowsAffected()
	return rs, nil
}

func (t *PgxTx) typeName(oid uint32) string {
	if t.conn == nil {
		return ""
	}
	if typ, ok := t.conn.TypeMap().TypeForOID(oid); ok {
		return typ.Name
	}
	return ""
}

// Commit commits the transaction.
func (t *PgxTx) Commit(ctx context.Context) error {
	err := t.tx.Commit(ctx)
	if errors.Is(err, pgx.ErrTxCommitRollback) {
		return ErrCommitRolledBack
	}
	return wrapPgx(err)
}

// Rollback rolls back the transaction.
func (t *PgxTx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}
	return wrapPgx(err)
}

func wrapPgx(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &DriverError{
			Severity: pgErr.Severity,
			Code:     pgErr.Code,
			Message:  pgErr.Message,
			Detail:   pgErr.Detail,
			Hint:     pgErr.Hint,
			Table:    pgErr.TableName,
			Column:   pgErr.ColumnName,
			Err:      err,
		}
	}
	return err
}

var (
	_ Conn = (*PgxConn)(nil)
	_ Tx   = (*PgxTx)(nil)
)
