package pagedb

import (
	"github.com/Konsultn-Engineering/pagedb/engine"
	"github.com/Konsultn-Engineering/pagedb/schema"
	"github.com/Konsultn-Engineering/pagedb/sink"
)

type field uint16

const (
	fieldReturnMode field = 1 << iota
	fieldColumns
	fieldColumnNames
	fieldTableData
	fieldTableNames
	fieldCursorData
	fieldFunctions
	fieldDescription
	fieldClearCursor
)

// Outcome is what one facade operation produced. Only the fields the operation
// sets are written by Apply, so an Outcome can be merged into any page.
type Outcome struct {
	Op string

	// Failure is nil on success.
	Failure *engine.Error

	ReturnMode  bool
	Columns     []schema.Column
	ColumnNames []string
	TableData   [][]any
	TableNames  []string
	CursorData  [][]any
	Functions   []schema.Function
	Description string

	// Rows holds the raw rows of a procedure call. Apply never writes them.
	Rows         [][]any
	RowsAffected int64

	set field
}

func newOutcome(op string) *Outcome {
	return &Outcome{Op: op}
}

// Err returns the failure as an error, or nil.
func (o *Outcome) Err() error {
	if o.Failure == nil {
		return nil
	}
	return o.Failure
}

func (o *Outcome) OK() bool {
	return o.Failure == nil
}

// has reports whether the operation produced the part f of the outcome.
func (o *Outcome) has(f field) bool {
	return o.set&f != 0
}

func (o *Outcome) fail(err *engine.Error) {
	o.Failure = err
}

func (o *Outcome) setReturnMode(v bool) {
	o.ReturnMode = v
	o.set |= fieldReturnMode
}

func (o *Outcome) setColumns(cols []schema.Column) {
	o.Columns = cols
	o.set |= fieldColumns | fieldClearCursor
}

func (o *Outcome) setColumnNames(names []string) {
	o.ColumnNames = names
	o.set |= fieldColumnNames
}

func (o *Outcome) setTableData(rows [][]any) {
	o.TableData = rows
	o.set |= fieldTableData
}

func (o *Outcome) setTableNames(names []string) {
	o.TableNames = names
	o.set |= fieldTableNames
}

func (o *Outcome) setCursorData(rows [][]any) {
	o.CursorData = rows
	o.set |= fieldCursorData
}

func (o *Outcome) setFunctions(fns []schema.Function) {
	o.Functions = fns
	o.set |= fieldFunctions
}

func (o *Outcome) setDescription(text string) {
	o.Description = text
	o.set |= fieldDescription
}

// merge folds next into o. Later failures replace earlier ones.
func (o *Outcome) merge(next *Outcome) {
	if next.Failure != nil {
		o.Failure = next.Failure
	}
	if next.has(fieldReturnMode) {
		o.setReturnMode(next.ReturnMode)
	}
	if next.has(fieldColumns) {
		o.setColumns(next.Columns)
	}
	if next.has(fieldColumnNames) {
		o.setColumnNames(next.ColumnNames)
	}
	if next.has(fieldTableData) {
		o.setTableData(next.TableData)
	}
	if next.has(fieldTableNames) {
		o.setTableNames(next.TableNames)
	}
	if next.has(fieldCursorData) {
		o.setCursorData(next.CursorData)
	}
	if next.has(fieldFunctions) {
		o.setFunctions(next.Functions)
	}
	if next.has(fieldDescription) {
		o.setDescription(next.Description)
	}
	o.Rows = next.Rows
	o.RowsAffected = next.RowsAffected
}

// Apply writes the outcome into target through whichever sink capabilities it
// implements. Connection failures leave target untouched; any other failure is
// written to its ErrorSink alongside the (empty) data.
func (o *Outcome) Apply(target any) {
	if o.Failure != nil && o.Failure.Kind == engine.KindConnection {
		return
	}

	if s, ok := target.(sink.ModeSink); ok {
		if o.has(fieldReturnMode) {
			s.SetReturnMode(o.ReturnMode)
		}
		if o.has(fieldClearCursor) {
			s.ClearCursorPending()
		}
	}

	if s, ok := target.(sink.ColumnSink); ok {
		if o.has(fieldColumns) {
			s.SetColumns(o.Columns)
		}
		if o.has(fieldColumnNames) {
			s.SetColumnNames(o.ColumnNames)
		}
	}

	if s, ok := target.(sink.RowSink); ok {
		if o.has(fieldTableData) {
			s.SetTableData(o.TableData)
		}
		if o.has(fieldTableNames) {
			s.SetTablesNames(o.TableNames)
		}
		if o.has(fieldCursorData) {
			s.SetCursorData(o.CursorData)
		}
		if o.has(fieldFunctions) {
			s.SetFunctions(o.Functions)
		}
		if o.has(fieldDescription) {
			s.SetDescription(o.Description)
		}
	}

	if s, ok := target.(sink.ErrorSink); ok && o.Failure != nil {
		s.SetError(o.Failure.Error())
	}
}
