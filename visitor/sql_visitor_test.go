package visitor

import (
	"testing"

	"github.com/Konsultn-Engineering/pagedb/ast"
	"github.com/Konsultn-Engineering/pagedb/dialect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, n ast.Node) (string, int) {
	t.Helper()
	v := NewSQLVisitor(dialect.NewPostgresDialect())
	defer v.Release()

	sql, params, err := v.Build(n)
	require.NoError(t, err)
	return sql, params
}

func TestVisitSelect(t *testing.T) {
	sql, params := build(t, &ast.SelectStmt{
		From:  ast.NewTable("", "orders"),
		Where: ast.Where(ast.Eq("status")),
	})

	assert.Equal(t, `SELECT * FROM "orders" WHERE "status" = $1`, sql)
	assert.Equal(t, 1, params)
}

func TestVisitInsertMultipleRows(t *testing.T) {
	sql, params := build(t, &ast.InsertStmt{
		Table: ast.NewTable("", "t"),
		Rows:  [][]ast.Node{ast.Params(2), ast.Params(2)},
	})

	assert.Equal(t, `INSERT INTO "t" VALUES ($1, $2), ($3, $4)`, sql)
	assert.Equal(t, 4, params)
}

func TestVisitUpdateNumbersInOrder(t *testing.T) {
	sql, params := build(t, &ast.UpdateStmt{
		Table: ast.NewTable("", "t"),
		Set: []ast.Assignment{
			{Column: "name", Value: &ast.Param{}},
			{Column: "age", Value: &ast.Param{}},
		},
		Where: ast.Where(ast.Eq("id")),
	})

	assert.Equal(t, `UPDATE "t" SET "name" = $1, "age" = $2 WHERE "id" = $3`, sql)
	assert.Equal(t, 3, params)
}

func TestVisitDDL(t *testing.T) {
	tests := []struct {
		name string
		node ast.Node
		want string
	}{
		{
			name: "truncate cascade",
			node: &ast.TruncateStmt{Table: ast.NewTable("", "t"), Cascade: true},
			want: `TRUNCATE "t" CASCADE`,
		},
		{
			name: "drop if exists",
			node: &ast.DropTableStmt{Table: ast.NewTable("", "t"), IfExists: true},
			want: `DROP TABLE IF EXISTS "t"`,
		},
		{
			name: "create temp with columns",
			node: &ast.CreateTableStmt{
				Table:     ast.NewTable("", "func_result"),
				Temporary: true,
				Columns:   []*ast.ColumnDef{{Name: "a", TypeName: "varchar"}, {Name: "b", TypeName: "varchar"}},
			},
			want: `CREATE TEMPORARY TABLE "func_result"("a" varchar, "b" varchar)`,
		},
		{
			name: "fetch",
			node: &ast.FetchStmt{Cursor: "ref"},
			want: `FETCH ALL IN "ref"`,
		},
		{
			name: "schema qualified",
			node: &ast.SelectStmt{From: ast.NewTable("public", "t")},
			want: `SELECT * FROM "public"."t"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, params := build(t, tt.node)
			assert.Equal(t, tt.want, sql)
			assert.Zero(t, params)
		})
	}
}

func TestVisitCast(t *testing.T) {
	sql, params := build(t, &ast.SelectStmt{
		Columns: []ast.Node{ast.NewColumn("attname")},
		From:    ast.NewTable("", "pg_attribute"),
		Where:   ast.Where(ast.NewBinaryExpr(ast.NewColumn("attrelid"), ast.OpEqual, &ast.Cast{Expr: &ast.Param{}, TypeName: "regclass"})),
	})

	assert.Equal(t, `SELECT "attname" FROM "pg_attribute" WHERE "attrelid" = $1::regclass`, sql)
	assert.Equal(t, 1, params)
}

func TestBuildRejectsInvalidIdentifier(t *testing.T) {
	v := NewSQLVisitor(dialect.NewPostgresDialect())
	defer v.Release()

	_, _, err := v.Build(&ast.DropTableStmt{Table: ast.NewTable("", "")})
	require.Error(t, err)
	assert.ErrorIs(t, err, dialect.ErrInvalidIdentifier)
}

type placeholderRecorder struct {
	dialect.Dialect
	runs [][2]int
}

func (p *placeholderRecorder) Placeholders(start, n int) string {
	p.runs = append(p.runs, [2]int{start, n})
	return p.Dialect.Placeholders(start, n)
}

func TestParamListsRenderAsOneRun(t *testing.T) {
	d := &placeholderRecorder{Dialect: dialect.NewPostgresDialect()}
	v := NewSQLVisitor(d)
	defer v.Release()

	sql, params, err := v.Build(&ast.InsertStmt{
		Table: ast.NewTable("", "t"),
		Rows:  [][]ast.Node{ast.Params(3), ast.Params(3)},
	})
	require.NoError(t, err)

	assert.Equal(t, `INSERT INTO "t" VALUES ($1, $2, $3), ($4, $5, $6)`, sql)
	assert.Equal(t, 6, params)
	assert.Equal(t, [][2]int{{1, 3}, {4, 3}}, d.runs)
}

func TestVisitExpressions(t *testing.T) {
	sql, params := build(t, &ast.SelectStmt{
		Columns: []ast.Node{
			ast.NewQualifiedColumn("p", "name"),
			ast.Builtin("coalesce", ast.NewColumn("note"), &ast.Literal{Value: "it's"}),
		},
		From: &ast.Join{
			Left:  ast.NewTable("", "p"),
			Right: ast.NewTable("", "q"),
			On:    ast.NewBinaryExpr(ast.NewQualifiedColumn("p", "id"), ast.OpEqual, ast.NewQualifiedColumn("q", "id")),
		},
		Where: ast.Where(ast.And(
			ast.NewBinaryExpr(ast.NewColumn("kind"), ast.OpNotIn, &ast.List{Items: ast.Lit("a", "b")}),
			&ast.Not{Expr: ast.NewColumn("hidden")},
			ast.Eq("owner"),
		)),
	})

	assert.Equal(t, `SELECT "p"."name", coalesce("note", 'it''s') FROM "p" JOIN "q" ON "p"."id" = "q"."id"`+
		` WHERE "kind" NOT IN ('a', 'b') AND NOT "hidden" AND "owner" = $1`, sql)
	assert.Equal(t, 1, params)
}

func TestFunctionNamesAreQuotedUnlessBuiltin(t *testing.T) {
	sql, _ := build(t, &ast.SelectStmt{From: &ast.Function{Name: "Top", Args: ast.Params(1)}})
	assert.Equal(t, `SELECT * FROM "Top"($1)`, sql)

	v := NewSQLVisitor(dialect.NewPostgresDialect())
	defer v.Release()
	_, _, err := v.Build(&ast.SelectStmt{Columns: []ast.Node{ast.Builtin("")}})
	assert.ErrorIs(t, err, dialect.ErrInvalidIdentifier)
}
