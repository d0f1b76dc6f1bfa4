package pagedb

import (
	"context"
	"errors"
	"fmt"

	"github.com/Konsultn-Engineering/pagedb/engine"
	"github.com/Konsultn-Engineering/pagedb/query"
	"github.com/Konsultn-Engineering/pagedb/schema"
	"github.com/Konsultn-Engineering/pagedb/sink"
)

// run executes q, or reports buildErr when the builder rejected the call, and
// materializes the result as shape. On failure the returned data is empty.
func (d *Database) run(ctx context.Context, out *Outcome, q query.Query, buildErr error, shape sink.Shape, target sink.NameSource) sink.Materialized {
	if buildErr != nil {
		ee := engine.Classify(out.Op, buildErr)
		d.logger.Warn("statement rejected", "op", out.Op, "kind", ee.Kind.String(), "error", ee.Message)
		out.fail(ee)
		return sink.Materialize(shape, nil, target)
	}

	rs, err := d.engine.Execute(ctx, q, shape != sink.ShapeNone)
	if err != nil {
		out.fail(engine.Classify(out.Op, err))
	}
	out.RowsAffected = rs.RowsAffected
	return sink.Materialize(shape, rs, target)
}

// GetResultTable turns on return mode, then fetches the column names and all rows
// of the page's table.
func (d *Database) GetResultTable(ctx context.Context, page sink.NameSource) *Outcome {
	out := newOutcome("get_result_table")
	out.setReturnMode(true)
	out.merge(d.GetColumnNames(ctx, page))
	out.merge(d.SelectTable(ctx, page))
	return out
}

// GetColumnNames lists the columns of the page's table. Synthetic tables are
// read from pg_attribute, every other table from information_schema.
func (d *Database) GetColumnNames(ctx context.Context, page sink.NameSource) *Outcome {
	out := newOutcome("get_column_names")
	table := page.TableName()

	q, err := d.builder.IntrospectColumns(table)
	m := d.run(ctx, out, q, err, sink.ShapeColumnNames, page)

	d.logger.Debug("columns requested", "table", table, "entity", schema.Classify(table).String())
	out.setColumnNames(m.ColumnNames)
	return out
}

// GetTableNames lists the base tables of the public schema in name order.
func (d *Database) GetTableNames(ctx context.Context) *Outcome {
	out := newOutcome("get_table_names")

	q, err := d.builder.IntrospectTables()
	m := d.run(ctx, out, q, err, sink.ShapeRows, nil)

	sink.SortRows(m.Rows)
	out.setTableNames(sink.FirstColumn(m.Rows))
	return out
}

// GetFunctions lists the stored routines of the public schema, procedures first.
func (d *Database) GetFunctions(ctx context.Context) *Outcome {
	out := newOutcome("get_functions")

	q, err := d.builder.IntrospectFunctions()
	m := d.run(ctx, out, q, err, sink.ShapeRows, nil)

	sink.SortRowsDesc(m.Rows)
	fns, err := schema.ParseFunctions(m.Rows)
	if err != nil {
		out.fail(engine.Classify(out.Op, err))
		fns = nil
	}
	out.setFunctions(fns)
	return out
}

// GetFunctionDescription reads the comment attached to a routine. A routine
// without a comment yields an empty description.
func (d *Database) GetFunctionDescription(ctx context.Context, funcName string) *Outcome {
	out := newOutcome("get_function_description")

	q, err := d.builder.FunctionDescription(funcName)
	m := d.run(ctx, out, q, err, sink.ShapeRows, nil)

	var text string
	if names := sink.FirstColumn(m.Rows); len(names) > 0 {
		text = names[0]
	}
	out.setDescription(text)
	return out
}

// SelectTable fetches every row of the page's table, sorted.
func (d *Database) SelectTable(ctx context.Context, page sink.NameSource) *Outcome {
	out := newOutcome("select_table")
	table := page.TableName()

	q, err := d.builder.SelectAll(table)
	m := d.run(ctx, out, q, err, sink.ShapeRows, page)

	d.logger.Info("table requested", "table", table, "rows", engine.Count(int64(len(m.Rows)), "row"))
	sink.SortRows(m.Rows)
	out.setTableData(m.Rows)
	return out
}

// SelectWhere fetches the rows of the page's table whose column equals value, sorted.
func (d *Database) SelectWhere(ctx context.Context, page sink.NameSource, column string, value any) *Outcome {
	out := newOutcome("select_where")

	q, err := d.builder.SelectFiltered(page.TableName(), column)
	m := d.run(ctx, out, q.Bind(value), err, sink.ShapeRows, page)

	sink.SortRows(m.Rows)
	out.setTableData(m.Rows)
	return out
}

// InsertRow inserts one row. values are bound positionally, in table column order.
func (d *Database) InsertRow(ctx context.Context, page sink.NameSource, values ...any) *Outcome {
	out := newOutcome("insert_row")
	table := page.TableName()

	q, err := d.builder.Insert(table, len(values))
	d.run(ctx, out, q.Bind(values...), err, sink.ShapeNone, page)

	if out.OK() {
		d.logger.Info("row created", "table", table)
	}
	return out
}

// InsertRows inserts every row with a single statement. No rows is a no-op.
func (d *Database) InsertRows(ctx context.Context, page sink.NameSource, rows [][]any) *Outcome {
	out := newOutcome("insert_rows")
	table := page.TableName()

	q, err := d.builder.BulkInsertRows(table, rows)
	if errors.Is(err, query.ErrNoRows) {
		return out
	}
	d.run(ctx, out, q, err, sink.ShapeNone, page)

	if out.OK() {
		d.logger.Info("rows created", "table", table, "rows", engine.Count(out.RowsAffected, "row"))
	}
	return out
}

// UpdateRow sets keys to the leading params on the row whose primary key equals
// the last param. len(params) must be len(keys)+1 and follow the order of keys.
func (d *Database) UpdateRow(ctx context.Context, page sink.NameSource, keys []string, params ...any) *Outcome {
	out := newOutcome("update_row")
	table := page.TableName()

	var q query.Query
	var err error
	if len(params) != len(keys)+1 {
		err = &query.ValidationError{
			Op:  "update",
			Err: fmt.Errorf("%w: %d columns need %d values, got %d", query.ErrArity, len(keys), len(keys)+1, len(params)),
		}
	} else {
		q, err = d.builder.Update(table, keys, page.PKColumn())
	}
	d.run(ctx, out, q.Bind(params...), err, sink.ShapeNone, page)

	if out.OK() {
		d.logger.Info("table updated", "table", table, "rows", engine.Count(out.RowsAffected, "row"))
	}
	return out
}

// DeleteRow deletes the row whose primary key equals pkValue.
func (d *Database) DeleteRow(ctx context.Context, page sink.NameSource, pkValue any) *Outcome {
	out := newOutcome("delete_row")
	table := page.TableName()

	q, err := d.builder.Delete(table, page.PKColumn())
	d.run(ctx, out, q.Bind(pkValue), err, sink.ShapeNone, page)

	if out.OK() {
		d.logger.Info("row deleted", "table", table)
	}
	return out
}

// CallProcedure calls the page's procedure with args. Rows are fetched only
// when the page is in return mode and come back in Outcome.Rows.
func (d *Database) CallProcedure(ctx context.Context, page sink.NameSource, args ...any) *Outcome {
	out := newOutcome("call_procedure")

	shape := sink.ShapeNone
	if page.ReturnMode() {
		shape = sink.ShapeRows
	}

	q, err := d.builder.CallProcedure(page.ProcName(), len(args))
	m := d.run(ctx, out, q.Bind(args...), err, shape, page)

	out.Rows = m.Rows
	return out
}

// CallRefProcedure calls the page's procedure and fetches all rows of the "ref"
// cursor it opens. When the page targets func_result with a cursor pending, the
// cursor's column descriptors are recorded for CreateRefTable.
func (d *Database) CallRefProcedure(ctx context.Context, page sink.NameSource, args ...any) *Outcome {
	out := newOutcome("call_ref_procedure")
	proc := page.ProcName()

	q, err := d.builder.CallProcedureWithCursor(proc, len(args))
	m := d.run(ctx, out, q.Bind(args...), err, sink.ShapeCursor, page)

	d.logger.Info("procedure called", "procedure", proc, "rows", engine.Count(int64(len(m.Rows)), "row"))
	out.setCursorData(m.Rows)
	if m.ClearCursor {
		d.columns.Set(page.TableName(), m.Columns)
		d.logger.Debug("cursor columns recorded",
			"table", page.TableName(), "columns", len(m.Columns), "cached_tables", d.columns.Len())
		out.setColumns(m.Columns)
	}
	return out
}

// CreateRefTable creates the page's table as a temporary table with one varchar
// column per recorded cursor column.
func (d *Database) CreateRefTable(ctx context.Context, page sink.NameSource) *Outcome {
	out := newOutcome("create_ref_table")
	table := page.TableName()

	var q query.Query
	var err error
	cols, ok := d.columns.Get(table)
	if !ok {
		err = &query.ValidationError{Op: "create_with_columns", Err: fmt.Errorf("%w: no cursor columns recorded for %q", query.ErrEmpty, table)}
	} else {
		q, err = d.builder.CreateTempTableWithColumns(table, schema.ColumnNames(cols))
	}
	d.run(ctx, out, q, err, sink.ShapeNone, page)
	return out
}

// InsertRefValues copies cursor rows into the page's table. Values are stored as
// text; NULL stays NULL. No rows is a no-op.
func (d *Database) InsertRefValues(ctx context.Context, page sink.NameSource, rows [][]any) *Outcome {
	textRows := make([][]any, len(rows))
	for i, row := range rows {
		textRows[i] = make([]any, len(row))
		for j, v := range row {
			if v != nil {
				v = sink.Text(v)
			}
			textRows[i][j] = v
		}
	}

	out := d.InsertRows(ctx, page, textRows)
	out.Op = "insert_ref_values"
	return out
}

// UseFunction stores the result of the page's function, called with args, in
// the page's table as a temporary table.
func (d *Database) UseFunction(ctx context.Context, page sink.NameSource, args ...any) *Outcome {
	out := newOutcome("use_function")
	fn := page.FuncName()

	q, err := d.builder.CreateTempTableFromFunction(page.TableName(), fn, len(args))
	d.run(ctx, out, q.Bind(args...), err, sink.ShapeNone, page)

	d.logger.Info("function called", "function", fn)
	return out
}

// CreateAsSelect stores the result of selectSQL in the page's table as a
// temporary table. selectSQL is trusted text; args bind its $n markers.
func (d *Database) CreateAsSelect(ctx context.Context, page sink.NameSource, selectSQL string, args ...any) *Outcome {
	out := newOutcome("create_as_select")

	q, err := d.builder.CreateTempTableFromSelect(page.TableName(), selectSQL, len(args))
	d.run(ctx, out, q.Bind(args...), err, sink.ShapeNone, page)
	return out
}

// CopyTable creates the page's table as a persistent copy of sourceTable.
func (d *Database) CopyTable(ctx context.Context, page sink.NameSource, sourceTable string) *Outcome {
	out := newOutcome("copy_table")

	q, err := d.builder.CreateTableFromExistingTable(page.TableName(), sourceTable)
	d.run(ctx, out, q, err, sink.ShapeNone, page)
	return out
}

// TruncateCascade empties the page's table and every table referencing it.
func (d *Database) TruncateCascade(ctx context.Context, page sink.NameSource) *Outcome {
	out := newOutcome("truncate_cascade")

	q, err := d.builder.TruncateCascade(page.TableName())
	d.run(ctx, out, q, err, sink.ShapeNone, page)
	return out
}

// DropTempTable drops the page's table if it exists.
func (d *Database) DropTempTable(ctx context.Context, page sink.NameSource) *Outcome {
	out := newOutcome("drop_temp_table")

	q, err := d.builder.DropTableIfExists(page.TableName())
	d.run(ctx, out, q, err, sink.ShapeNone, page)
	return out
}
