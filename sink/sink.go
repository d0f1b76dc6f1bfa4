// Package sink defines the page capabilities pagedb writes outcomes into, and
// turns raw result sets into what those capabilities accept.
package sink

import "github.com/Konsultn-Engineering/pagedb/schema"

// NameSource supplies the entity names an operation targets.
type NameSource interface {
	TableName() string
	PKColumn() string
	ProcName() string
	FuncName() string

	// ReturnMode reports whether procedure calls should fetch rows.
	ReturnMode() bool

	// CursorPending reports whether the next cursor fetch should record its
	// column descriptors.
	CursorPending() bool
}

type ErrorSink interface {
	SetError(msg string)
}

type ColumnSink interface {
	// SetColumns receives the descriptors of a fetched cursor.
	SetColumns(cols []schema.Column)
	SetColumnNames(names []string)
}

type RowSink interface {
	SetTableData(rows [][]any)
	SetTablesNames(names []string)
	SetCursorData(rows [][]any)
	SetFunctions(fns []schema.Function)
	SetDescription(text string)
}

type ModeSink interface {
	SetReturnMode(enabled bool)
	ClearCursorPending()
}

// Page is a sink with every capability.
type Page interface {
	NameSource
	ErrorSink
	ColumnSink
	RowSink
	ModeSink
}
