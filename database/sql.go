package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Konsultn-Engineering/pagedb/schema"
	"github.com/lib/pq"
)

// SqlConn implements Conn for one pinned *sql.Conn, typically opened with lib/pq.
// Temporary tables are session scoped, so the same physical connection is reused
// for every transaction.
type SqlConn struct {
	db   *sql.DB
	conn *sql.Conn
}

// ConnectSQL opens a lib/pq session and pins it.
func ConnectSQL(ctx context.Context, dsn string) (*SqlConn, error) {
	connector, err := pq.NewConnector(dsn)
	if err != nil {
		return nil, wrapPq(err)
	}

	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	conn, err := db.Conn(ctx)
	if err != nil {
		_ = db.Close()
		return nil, wrapPq(err)
	}
	return &SqlConn{db: db, conn: conn}, nil
}

// NewSqlConn wraps an already pinned connection. db may be nil when the caller owns it.
func NewSqlConn(db *sql.DB, conn *sql.Conn) *SqlConn {
	return &SqlConn{db: db, conn: conn}
}

// Begin starts a transaction on the pinned connection.
func (s *SqlConn) Begin(ctx context.Context) (Tx, error) {
	if s.conn == nil {
		return nil, ErrClosed
	}
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, wrapPq(err)
	}
	return &SqlTx{tx: tx}, nil
}

// Ping verifies the connection to the database is alive.
func (s *SqlConn) Ping(ctx context.Context) error {
	if s.conn == nil {
		return ErrClosed
	}
	return wrapPq(s.conn.PingContext(ctx))
}

// Close releases the pinned connection and the pool behind it.
func (s *SqlConn) Close(ctx context.Context) error {
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	if s.db != nil {
		if dbErr := s.db.Close(); err == nil {
			err = dbErr
		}
	}
	return wrapPq(err)
}

// SqlTx implements Tx for *sql.Tx.
type SqlTx struct {
	tx *sql.Tx
}

// Exec executes a statement that doesn't return rows.
func (t *SqlTx) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := t.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, wrapPq(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return n, nil
}

// Query executes a statement and reads all of its rows.
func (t *SqlTx) Query(ctx context.Context, query string, args ...any) (*ResultSet, error) {
	rows, err := t.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapPq(err)
	}
	return scanRows(rows)
}

// Pipeline runs the statements one after another inside the transaction.
// database/sql has no batch API, so this costs one round trip per statement.
func (t *SqlTx) Pipeline(ctx context.Context, stmts []Statement) (*ResultSet, error) {
	if len(stmts) == 0 {
		return &ResultSet{}, nil
	}
	for _, s := range stmts[:len(stmts)-1] {
		if _, err := t.tx.ExecContext(ctx, s.SQL, s.Args...); err != nil {
			return nil, wrapPq(err)
		}
	}
	last := stmts[len(stmts)-1]
	return t.Query(ctx, last.SQL, last.Args...)
}

// Commit commits the transaction.
func (t *SqlTx) Commit(ctx context.Context) error {
	err := t.tx.Commit()
	if errors.Is(err, pq.ErrInFailedTransaction) {
		return ErrCommitRolledBack
	}
	return wrapPq(err)
}

// Rollback rolls back the transaction.
func (t *SqlTx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback()
	if errors.Is(err, sql.ErrTxDone) {
		return nil
	}
	return wrapPq(err)
}

func scanRows(rows *sql.Rows) (*ResultSet, error) {
	defer rows.Close()

	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, wrapPq(err)
	}

	rs := &ResultSet{Columns: make([]schema.Column, len(types))}
	for i, ct := range types {
		rs.Columns[i] = schema.Column{Name: ct.Name(), TypeName: ct.DatabaseTypeName()}
	}

	for rows.Next() {
		values := make([]any, len(types))
		ptrs := make([]any, len(types))
		for i := range values {
			ptrs[i] = &values[i]
		}

		if err := rows.Scan(ptrs...); err != nil {
			return nil, wrapPq(err)
		}

		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		rs.Rows = append(rs.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPq(err)
	}

	rs.RowsAffected = int64(len(rs.Rows))
	return rs, nil
}

func wrapPq(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return &DriverError{
			Severity: pqErr.Severity,
			Code:     string(pqErr.Code),
			Message:  pqErr.Message,
			Detail:   pqErr.Detail,
			Hint:     pqErr.Hint,
			Table:    pqErr.Table,
			Column:   pqErr.Column,
			Err:      err,
		}
	}
	return err
}

var (
	_ Conn = (*SqlConn)(nil)
	_ Tx   = (*SqlTx)(nil)
)
