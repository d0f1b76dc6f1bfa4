// Package testutil holds test doubles and integration helpers shared by pagedb tests.
package testutil

import (
	"context"
	"strings"

	"github.com/Konsultn-Engineering/pagedb/database"
)

// Call is one statement the fake received.
type Call struct {
	Method string // exec, query or pipeline
	SQL    string
	Args   []any
}

type rule struct {
	contains string
	result   *database.ResultSet
	err      error
}

// FakeConn is a scripted database.Conn. Statements are matched against rules in
// the order they were added; unmatched statements succeed with an empty result.
type FakeConn struct {
	Calls     []Call
	Begins    int
	Commits   int
	Rollbacks int
	Closed    bool

	// BeginErr, when set, is returned by every Begin.
	BeginErr error

	rules []rule
}

func NewFakeConn() *FakeConn {
	return &FakeConn{}
}

// On makes any statement containing substr return rs.
func (f *FakeConn) On(substr string, rs *database.ResultSet) *FakeConn {
	f.rules = append(f.rules, rule{contains: substr, result: rs})
	return f
}

// Fail makes any statement containing substr fail with err.
func (f *FakeConn) Fail(substr string, err error) *FakeConn {
	f.rules = append(f.rules, rule{contains: substr, err: err})
	return f
}

// LastCall returns the most recent statement, or the zero Call.
func (f *FakeConn) LastCall() Call {
	if len(f.Calls) == 0 {
		return Call{}
	}
	return f.Calls[len(f.Calls)-1]
}

// SQL returns the text of every statement received.
func (f *FakeConn) SQL() []string {
	out := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		out[i] = c.SQL
	}
	return out
}

func (f *FakeConn) Begin(ctx context.Context) (database.Tx, error) {
	if f.Closed {
		return nil, database.ErrClosed
	}
	if f.BeginErr != nil {
		return nil, f.BeginErr
	}
	f.Begins++
	return &fakeTx{conn: f}, nil
}

func (f *FakeConn) Ping(ctx context.Context) error {
	if f.Closed {
		return database.ErrClosed
	}
	return nil
}

func (f *FakeConn) Close(ctx context.Context) error {
	f.Closed = true
	return nil
}

func (f *FakeConn) respond(method, sql string, args []any) (*database.ResultSet, error) {
	f.Calls = append(f.Calls, Call{Method: method, SQL: sql, Args: args})
	for _, r := range f.rules {
		if !strings.Contains(sql, r.contains) {
			continue
		}
		if r.err != nil {
			return nil, r.err
		}
		return clone(r.result), nil
	}
	return &database.ResultSet{}, nil
}

func clone(rs *database.ResultSet) *database.ResultSet {
	if rs == nil {
		return &database.ResultSet{}
	}
	out := &database.ResultSet{
		Columns:      append(rs.Columns[:0:0], rs.Columns...),
		RowsAffected: rs.RowsAffected,
	}
	for _, row := range rs.Rows {
		out.Rows = append(out.Rows, append([]any(nil), row...))
	}
	if out.RowsAffected == 0 {
		out.RowsAffected = int64(len(out.Rows))
	}
	return out
}

type fakeTx struct {
	conn   *FakeConn
	failed bool
	done   bool
}

func (t *fakeTx) record(rs *database.ResultSet, err error) (*database.ResultSet, error) {
	if err != nil {
		t.failed = true
	}
	return rs, err
}

func (t *fakeTx) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	rs, err := t.record(t.conn.respond("exec", sql, args))
	if err != nil {
		return 0, err
	}
	return rs.RowsAffected, nil
}

func (t *fakeTx) Query(ctx context.Context, sql string, args ...any) (*database.ResultSet, error) {
	return t.record(t.conn.respond("query", sql, args))
}

// Pipeline records each statement; the rows of the last one are returned.
func (t *fakeTx) Pipeline(ctx context.Context, stmts []database.Statement) (*database.ResultSet, error) {
	var rs *database.ResultSet
	for _, s := range stmts {
		var err error
		rs, err = t.record(t.conn.respond("pipeline", s.SQL, s.Args))
		if err != nil {
			return nil, err
		}
	}
	if rs == nil {
		rs = &database.ResultSet{}
	}
	return rs, nil
}

// Commit mirrors the server: a transaction with a failed statement rolls back.
func (t *fakeTx) Commit(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	if t.failed {
		t.conn.Rollbacks++
		return database.ErrCommitRolledBack
	}
	t.conn.Commits++
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.conn.Rollbacks++
	return nil
}

var _ database.Conn = (*FakeConn)(nil)
