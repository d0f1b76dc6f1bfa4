package query

import (
	"strings"

	"github.com/Konsultn-Engineering/pagedb/ast"
	"github.com/Konsultn-Engineering/pagedb/dialect"
	"github.com/Konsultn-Engineering/pagedb/schema"
	"github.com/Konsultn-Engineering/pagedb/visitor"
)

// RefCursor is the cursor name CallProcedureWithCursor fetches from. The target
// procedure must open a refcursor under this name (usually an INOUT "ref" argument).
const RefCursor = "ref"

// Builder composes parametrized statements. Every method is pure.
type Builder struct {
	dialect dialect.Dialect
}

func NewBuilder(d dialect.Dialect) *Builder {
	if d == nil {
		d = dialect.NewPostgresDialect()
	}
	return &Builder{dialect: d}
}

func (b *Builder) render(op string, root ast.Node) (Query, error) {
	v := visitor.NewSQLVisitor(b.dialect)
	defer v.Release()

	sql, params, err := v.Build(root)
	if err != nil {
		return Query{}, &ValidationError{Op: op, Err: err}
	}
	return Query{Op: op, SQL: sql, Params: params}, nil
}

func table(name string) *ast.Table {
	return ast.NewTable("", name)
}

func (b *Builder) SelectAll(tbl string) (Query, error) {
	return b.render("select_all", &ast.SelectStmt{From: table(tbl)})
}

// SelectFiltered selects the rows whose whereColumn equals the single bound value.
func (b *Builder) SelectFiltered(tbl, whereColumn string) (Query, error) {
	return b.render("select_filtered", &ast.SelectStmt{
		From:  table(tbl),
		Where: ast.Where(ast.Eq(whereColumn)),
	})
}

// Insert builds INSERT INTO t VALUES ($1, ..., $n).
func (b *Builder) Insert(tbl string, paramCount int) (Query, error) {
	const op = "insert"
	if paramCount < 1 {
		return Query{}, invalid(op, "%w: need at least one value, got %d", ErrArity, paramCount)
	}
	return b.render(op, &ast.InsertStmt{
		Table: table(tbl),
		Rows:  [][]ast.Node{ast.Params(paramCount)},
	})
}

// Update builds UPDATE t SET c1 = $1, ... WHERE pk = $n+1. Bound values must follow
// setColumns order and end with the key value; the builder cannot check the pairing.
func (b *Builder) Update(tbl string, setColumns []string, pkColumn string) (Query, error) {
	const op = "update"
	if len(setColumns) == 0 {
		return Query{}, invalid(op, "%w: no columns to set", ErrEmpty)
	}

	set := make([]ast.Assignment, len(setColumns))
	for i, col := range setColumns {
		set[i] = ast.Assignment{Column: col, Value: &ast.Param{}}
	}
	return b.render(op, &ast.UpdateStmt{
		Table: table(tbl),
		Set:   set,
		Where: ast.Where(ast.Eq(pkColumn)),
	})
}

func (b *Builder) Delete(tbl, pkColumn string) (Query, error) {
	return b.render("delete", &ast.DeleteStmt{
		Table: table(tbl),
		Where: ast.Where(ast.Eq(pkColumn)),
	})
}

func (b *Builder) CallProcedure(proc string, argCount int) (Query, error) {
	const op = "call"
	if argCount < 0 {
		return Query{}, invalid(op, "%w: negative argument count %d", ErrArity, argCount)
	}
	return b.render(op, &ast.CallStmt{Procedure: proc, Args: ast.Params(argCount)})
}

// CallProcedureWithCursor calls proc and fetches every row of the RefCursor it opens,
// in one transaction.
func (b *Builder) CallProcedureWithCursor(proc string, argCount int) (Query, error) {
	q, err := b.CallProcedure(proc, argCount)
	if err != nil {
		return Query{}, err
	}

	fetch, err := b.render("fetch", &ast.FetchStmt{Cursor: RefCursor})
	if err != nil {
		return Query{}, err
	}

	q.Op = "call_cursor"
	q.Fetch = fetch.SQL
	return q, nil
}

// CreateTempTableFromFunction builds CREATE TEMPORARY TABLE tmp AS SELECT * FROM fn($1, ...).
func (b *Builder) CreateTempTableFromFunction(tmpTable, funcName string, argCount int) (Query, error) {
	const op = "create_from_function"
	if argCount < 0 {
		return Query{}, invalid(op, "%w: negative argument count %d", ErrArity, argCount)
	}
	return b.render(op, &ast.CreateTableAsStmt{
		Table:     table(tmpTable),
		Temporary: true,
		Query: &ast.SelectStmt{
			From: &ast.Function{Name: funcName, Args: ast.Params(argCount)},
		},
	})
}

// CreateTempTableFromSelect wraps caller-authored SELECT text. The text is trusted and
// emitted verbatim; argCount declares how many $n markers it uses.
func (b *Builder) CreateTempTableFromSelect(tmpTable, rawSelect string, argCount int) (Query, error) {
	const op = "create_from_select"
	text := strings.TrimSuffix(strings.TrimSpace(rawSelect), ";")
	if text == "" {
		return Query{}, invalid(op, "%w: select text", ErrEmpty)
	}
	if argCount < 0 {
		return Query{}, invalid(op, "%w: negative argument count %d", ErrArity, argCount)
	}

	q, err := b.render(op, &ast.CreateTableAsStmt{
		Table:     table(tmpTable),
		Temporary: true,
		Query:     &ast.Raw{SQL: text},
	})
	if err != nil {
		return Query{}, err
	}
	q.Params = argCount
	return q, nil
}

// CreateTableFromExistingTable copies src into a new persistent table.
func (b *Builder) CreateTableFromExistingTable(newTable, sourceTable string) (Query, error) {
	return b.render("create_from_table", &ast.CreateTableAsStmt{
		Table: table(newTable),
		Query: &ast.SelectStmt{From: table(sourceTable)},
	})
}

// CreateTempTableWithColumns creates a temporary table with one varchar column per name.
func (b *Builder) CreateTempTableWithColumns(tmpTable string, columns []string) (Query, error) {
	const op = "create_with_columns"
	if len(columns) == 0 {
		return Query{}, invalid(op, "%w: no columns", ErrEmpty)
	}

	defs := make([]*ast.ColumnDef, len(columns))
	for i, c := range columns {
		defs[i] = &ast.ColumnDef{Name: c, TypeName: "varchar"}
	}
	return b.render(op, &ast.CreateTableStmt{
		Table:     table(tmpTable),
		Temporary: true,
		Columns:   defs,
	})
}

func (b *Builder) TruncateCascade(tbl string) (Query, error) {
	return b.render("truncate", &ast.TruncateStmt{Table: table(tbl), Cascade: true})
}

func (b *Builder) DropTableIfExists(tbl string) (Query, error) {
	return b.render("drop", &ast.DropTableStmt{Table: table(tbl), IfExists: true})
}

// BulkInsertRows builds one INSERT with a VALUES group per row and binds the flattened
// values. Rows must share one arity. Empty input returns ErrNoRows.
func (b *Builder) BulkInsertRows(tbl string, rows [][]any) (Query, error) {
	const op = "bulk_insert"
	if len(rows) == 0 {
		return Query{}, ErrNoRows
	}

	width := len(rows[0])
	if width == 0 {
		return Query{}, invalid(op, "%w: row 0 has no values", ErrArity)
	}
	for i, row := range rows[1:] {
		if len(row) != width {
			return Query{}, invalid(op, "%w: row %d has %d values, row 0 has %d", ErrArity, i+1, len(row), width)
		}
	}
	if width*len(rows) > MaxParams {
		return Query{}, invalid(op, "%w: %d values exceed the %d parameter limit", ErrArity, width*len(rows), MaxParams)
	}

	groups := make([][]ast.Node, len(rows))
	args := make([]any, 0, width*len(rows))
	for i, row := range rows {
		groups[i] = ast.Params(width)
		args = append(args, row...)
	}

	q, err := b.render(op, &ast.InsertStmt{Table: table(tbl), Rows: groups})
	if err != nil {
		return Query{}, err
	}
	q.Args = args
	return q, nil
}

// IntrospectColumns lists the column names of tbl, bound to the table name. Catalog
// tables are read from information_schema.columns; synthetic ones from pg_attribute.
func (b *Builder) IntrospectColumns(tbl string) (Query, error) {
	const op = "introspect_columns"
	if tbl == "" {
		return Query{}, invalid(op, "%w: table name", ErrEmpty)
	}

	var stmt *ast.SelectStmt
	switch schema.Classify(tbl) {
	case schema.Synthetic:
		stmt = &ast.SelectStmt{
			Columns: []ast.Node{ast.NewColumn("attname")},
			From:    ast.NewTable("pg_catalog", "pg_attribute"),
			Where: ast.Where(ast.And(
				ast.NewBinaryExpr(ast.NewColumn("attrelid"), ast.OpEqual, textParamAs("regclass")),
				ast.NewBinaryExpr(ast.NewColumn("attnum"), ast.OpGreater, &ast.Raw{SQL: "0"}),
				&ast.Not{Expr: ast.NewColumn("attisdropped")},
			)),
			OrderBy: []ast.Node{ast.NewColumn("attnum")},
		}
	default:
		stmt = &ast.SelectStmt{
			Columns: []ast.Node{asText(ast.NewColumn("column_name"))},
			From:    ast.NewTable("information_schema", "columns"),
			Where: ast.Where(ast.And(
				ast.Eq("table_name"),
				equals(ast.NewColumn("table_schema"), publicSchema),
			)),
			OrderBy: []ast.Node{ast.NewColumn("ordinal_position")},
		}
	}

	q, err := b.render(op, stmt)
	if err != nil {
		return Query{}, err
	}
	return q.Bind(tbl), nil
}

const publicSchema = "public"

// textParamAs binds a name as text and casts it server side, so both drivers can
// send it without knowing the target type.
func textParamAs(typeName string) ast.Node {
	return &ast.Cast{Expr: asText(&ast.Param{}), TypeName: typeName}
}

func asText(n ast.Node) ast.Node {
	return &ast.Cast{Expr: n, TypeName: "text"}
}

func equals(col *ast.Column, value string) ast.Node {
	return ast.NewBinaryExpr(col, ast.OpEqual, &ast.Literal{Value: value})
}

// IntrospectTables lists the base tables of the public schema, synthetic entities excluded.
func (b *Builder) IntrospectTables() (Query, error) {
	return b.render("introspect_tables", &ast.SelectStmt{
		Columns: []ast.Node{asText(ast.NewColumn("table_name"))},
		From:    ast.NewTable("information_schema", "tables"),
		Where: ast.Where(ast.And(
			equals(ast.NewColumn("table_schema"), publicSchema),
			equals(ast.NewColumn("table_type"), "BASE TABLE"),
			ast.NewBinaryExpr(ast.NewColumn("table_name"), ast.OpNotIn, &ast.List{Items: ast.Lit(schema.SyntheticTables...)}),
		)),
	})
}

// IntrospectFunctions lists routines of the public schema as
// (kind, name, argnames, argmodes, argtypes), list columns comma-joined.
func (b *Builder) IntrospectFunctions() (Query, error) {
	proc := func(col string) *ast.Column { return ast.NewQualifiedColumn("pg_proc", col) }
	joined := func(arr ast.Node) ast.Node {
		return ast.Builtin("coalesce", ast.Builtin("array_to_string", arr, &ast.Literal{Value: ","}), &ast.Literal{})
	}

	return b.render("introspect_functions", &ast.SelectStmt{
		Columns: []ast.Node{
			asText(proc("prokind")),
			asText(proc("proname")),
			joined(proc("proargnames")),
			joined(&ast.Cast{Expr: proc("proargmodes"), TypeName: "text[]"}),
			ast.Builtin("oidvectortypes", proc("proargtypes")),
		},
		From: &ast.Join{
			Left:  ast.NewTable("pg_catalog", "pg_namespace"),
			Right: ast.NewTable("pg_catalog", "pg_proc"),
			On:    ast.NewBinaryExpr(proc("pronamespace"), ast.OpEqual, ast.NewQualifiedColumn("pg_namespace", "oid")),
		},
		Where: ast.Where(equals(ast.NewQualifiedColumn("pg_namespace", "nspname"), publicSchema)),
	})
}

// FunctionDescription reads the COMMENT of a routine, bound to its name.
func (b *Builder) FunctionDescription(funcName string) (Query, error) {
	const op = "function_description"
	if funcName == "" {
		return Query{}, invalid(op, "%w: function name", ErrEmpty)
	}

	q, err := b.render(op, &ast.SelectStmt{
		Columns: []ast.Node{ast.NewColumn("description")},
		From:    ast.NewTable("pg_catalog", "pg_description"),
		Where:   ast.Where(ast.NewBinaryExpr(ast.NewColumn("objoid"), ast.OpEqual, textParamAs("regproc"))),
	})
	if err != nil {
		return Query{}, err
	}
	return q.Bind(funcName), nil
}
