package sink

import (
	"fmt"

	"github.com/Konsultn-Engineering/pagedb/database"
	"github.com/Konsultn-Engineering/pagedb/schema"
)

// Shape is what an operation hands back to its page.
type Shape uint8

const (
	ShapeNone Shape = iota
	ShapeColumnNames
	ShapeRows
	ShapeCursor
)

func (s Shape) String() string {
	switch s {
	case ShapeColumnNames:
		return "column_names"
	case ShapeRows:
		return "rows"
	case ShapeCursor:
		return "cursor"
	default:
		return "none"
	}
}

// Materialized holds exactly the data its Shape calls for.
type Materialized struct {
	Shape       Shape
	ColumnNames []string
	Rows        [][]any

	// Columns and ClearCursor are set once per pending cursor on func_result.
	Columns     []schema.Column
	ClearCursor bool
}

// Materialize extracts from rs what shape needs. target may be nil for
// operations that don't read from a page.
func Materialize(shape Shape, rs *database.ResultSet, target NameSource) Materialized {
	m := Materialized{Shape: shape}
	if rs == nil {
		rs = &database.ResultSet{}
	}

	switch shape {
	case ShapeColumnNames:
		m.ColumnNames = FirstColumn(rs.Rows)
	case ShapeRows:
		m.Rows = copyRows(rs.Rows)
	case ShapeCursor:
		m.Rows = copyRows(rs.Rows)
		if target != nil && schema.IsCursorTarget(target.TableName()) && target.CursorPending() {
			m.Columns = append([]schema.Column(nil), rs.Columns...)
			m.ClearCursor = true
		}
	}
	return m
}

// FirstColumn returns the first value of every row as text. NULL becomes "".
func FirstColumn(rows [][]any) []string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		out = append(out, Text(row[0]))
	}
	return out
}

// Text renders a driver value the way it is displayed and stored in varchar columns.
func Text(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return fmt.Sprint(v)
	}
}

func copyRows(rows [][]any) [][]any {
	if rows == nil {
		return nil
	}
	out := make([][]any, len(rows))
	for i, row := range rows {
		out[i] = append([]any(nil), row...)
	}
	return out
}
