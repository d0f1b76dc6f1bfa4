package visitor

import (
	"fmt"
	"strings"
	"sync"

	"github.com/Konsultn-Engineering/pagedb/ast"
	"github.com/Konsultn-Engineering/pagedb/dialect"
)

var visitorPool = sync.Pool{
	New: func() any {
		return &SQLVisitor{}
	},
}

// SQLVisitor renders statement nodes into SQL text. Identifiers are validated and
// quoted through the dialect; every ast.Param becomes the next positional marker.
type SQLVisitor struct {
	sb      strings.Builder
	params  int
	dialect dialect.Dialect
}

func NewSQLVisitor(d dialect.Dialect) *SQLVisitor {
	v := visitorPool.Get().(*SQLVisitor)
	v.dialect = d
	v.Reset()
	return v
}

func (v *SQLVisitor) Release() {
	v.dialect = nil
	v.Reset()
	visitorPool.Put(v)
}

func (v *SQLVisitor) Reset() {
	v.sb.Reset()
	v.params = 0
}

// Build renders root and returns the SQL text and the number of placeholders in it.
func (v *SQLVisitor) Build(root ast.Node) (string, int, error) {
	v.Reset()
	if err := root.Accept(v); err != nil {
		return "", 0, err
	}
	return v.sb.String(), v.params, nil
}

func (v *SQLVisitor) ident(name string) error {
	if err := v.dialect.ValidateIdentifier(name); err != nil {
		return err
	}
	v.sb.WriteString(v.dialect.QuoteIdentifier(name))
	return nil
}

func (v *SQLVisitor) list(nodes []ast.Node) error {
	if len(nodes) > 0 && allParams(nodes) {
		v.sb.WriteString(v.dialect.Placeholders(v.params+1, len(nodes)))
		v.params += len(nodes)
		return nil
	}

	for i, n := range nodes {
		if i > 0 {
			v.sb.WriteString(", ")
		}
		if err := n.Accept(v); err != nil {
			return err
		}
	}
	return nil
}

func allParams(nodes []ast.Node) bool {
	for _, n := range nodes {
		if _, ok := n.(*ast.Param); !ok {
			return false
		}
	}
	return true
}

func (v *SQLVisitor) VisitSelect(s *ast.SelectStmt) error {
	v.sb.WriteString("SELECT ")

	if len(s.Columns) == 0 {
		v.sb.WriteByte('*')
	} else if err := v.list(s.Columns); err != nil {
		return err
	}

	if s.From != nil {
		v.sb.WriteString(" FROM ")
		if err := s.From.Accept(v); err != nil {
			return err
		}
	}

	if s.Where != nil {
		if err := s.Where.Accept(v); err != nil {
			return err
		}
	}

	if len(s.OrderBy) > 0 {
		v.sb.WriteString(" ORDER BY ")
		return v.list(s.OrderBy)
	}

	return nil
}

func (v *SQLVisitor) VisitInsert(stmt *ast.InsertStmt) error {
	v.sb.WriteString("INSERT INTO ")
	if err := stmt.Table.Accept(v); err != nil {
		return err
	}

	if len(stmt.Columns) > 0 {
		v.sb.WriteString(" (")
		for i, col := range stmt.Columns {
			if i > 0 {
				v.sb.WriteString(", ")
			}
			if err := v.ident(col); err != nil {
				return err
			}
		}
		v.sb.WriteByte(')')
	}

	v.sb.WriteString(" VALUES ")
	for i, row := range stmt.Rows {
		if i > 0 {
			v.sb.WriteString(", ")
		}
		v.sb.WriteByte('(')
		if err := v.list(row); err != nil {
			return err
		}
		v.sb.WriteByte(')')
	}

	return nil
}

func (v *SQLVisitor) VisitUpdate(stmt *ast.UpdateStmt) error {
	v.sb.WriteString("UPDATE ")
	if err := stmt.Table.Accept(v); err != nil {
		return err
	}

	v.sb.WriteString(" SET ")
	for i, a := range stmt.Set {
		if i > 0 {
			v.sb.WriteString(", ")
		}
		if err := v.ident(a.Column); err != nil {
			return err
		}
		v.sb.WriteString(" = ")
		if err := a.Value.Accept(v); err != nil {
			return err
		}
	}

	if stmt.Where != nil {
		return stmt.Where.Accept(v)
	}
	return nil
}

func (v *SQLVisitor) VisitDelete(stmt *ast.DeleteStmt) error {
	v.sb.WriteString("DELETE FROM ")
	if err := stmt.Table.Accept(v); err != nil {
		return err
	}

	if stmt.Where != nil {
		return stmt.Where.Accept(v)
	}
	return nil
}

func (v *SQLVisitor) VisitCreateTable(stmt *ast.CreateTableStmt) error {
	v.createPrefix(stmt.Temporary)
	if err := stmt.Table.Accept(v); err != nil {
		return err
	}

	v.sb.WriteByte('(')
	for i, col := range stmt.Columns {
		if i > 0 {
			v.sb.WriteString(", ")
		}
		if err := v.ident(col.Name); err != nil {
			return err
		}
		v.sb.WriteByte(' ')
		v.sb.WriteString(col.TypeName)
	}
	v.sb.WriteByte(')')

	return nil
}

func (v *SQLVisitor) VisitCreateTableAs(stmt *ast.CreateTableAsStmt) error {
	v.createPrefix(stmt.Temporary)
	if err := stmt.Table.Accept(v); err != nil {
		return err
	}
	v.sb.WriteString(" AS ")
	return stmt.Query.Accept(v)
}

func (v *SQLVisitor) createPrefix(temporary bool) {
	if temporary {
		v.sb.WriteString("CREATE TEMPORARY TABLE ")
		return
	}
	v.sb.WriteString("CREATE TABLE ")
}

func (v *SQLVisitor) VisitCall(stmt *ast.CallStmt) error {
	v.sb.WriteString("CALL ")
	return v.call(stmt.Procedure, stmt.Args)
}

func (v *SQLVisitor) VisitFetch(stmt *ast.FetchStmt) error {
	v.sb.WriteString("FETCH ALL IN ")
	return v.ident(stmt.Cursor)
}

func (v *SQLVisitor) VisitTruncate(stmt *ast.TruncateStmt) error {
	v.sb.WriteString("TRUNCATE ")
	if err := stmt.Table.Accept(v); err != nil {
		return err
	}
	if stmt.Cascade {
		v.sb.WriteString(" CASCADE")
	}
	return nil
}

func (v *SQLVisitor) VisitDropTable(stmt *ast.DropTableStmt) error {
	v.sb.WriteString("DROP TABLE ")
	if stmt.IfExists {
		v.sb.WriteString("IF EXISTS ")
	}
	return stmt.Table.Accept(v)
}

func (v *SQLVisitor) VisitColumn(c *ast.Column) error {
	if c.Table != "" {
		if err := v.ident(c.Table); err != nil {
			return err
		}
		v.sb.WriteByte('.')
	}
	return v.ident(c.Name)
}

func (v *SQLVisitor) VisitTable(t *ast.Table) error {
	if t.Schema != "" {
		if err := v.ident(t.Schema); err != nil {
			return err
		}
		v.sb.WriteByte('.')
	}
	return v.ident(t.Name)
}

func (v *SQLVisitor) VisitStar(*ast.Star) error {
	v.sb.WriteByte('*')
	return nil
}

func (v *SQLVisitor) VisitParam(*ast.Param) error {
	v.params++
	v.sb.WriteString(v.dialect.Placeholder(v.params))
	return nil
}

func (v *SQLVisitor) VisitRaw(r *ast.Raw) error {
	v.sb.WriteString(r.SQL)
	return nil
}

func (v *SQLVisitor) VisitFunction(f *ast.Function) error {
	if !f.Builtin {
		return v.call(f.Name, f.Args)
	}
	if f.Name == "" {
		return fmt.Errorf("%w: empty function name", dialect.ErrInvalidIdentifier)
	}
	v.sb.WriteString(f.Name)
	v.sb.WriteByte('(')
	if err := v.list(f.Args); err != nil {
		return err
	}
	v.sb.WriteByte(')')
	return nil
}

func (v *SQLVisitor) VisitJoin(j *ast.Join) error {
	if err := j.Left.Accept(v); err != nil {
		return err
	}
	v.sb.WriteString(" JOIN ")
	if err := j.Right.Accept(v); err != nil {
		return err
	}
	v.sb.WriteString(" ON ")
	return j.On.Accept(v)
}

func (v *SQLVisitor) call(name string, args []ast.Node) error {
	if err := v.ident(name); err != nil {
		return err
	}
	v.sb.WriteByte('(')
	if err := v.list(args); err != nil {
		return err
	}
	v.sb.WriteByte(')')
	return nil
}

func (v *SQLVisitor) VisitBinaryExpr(expr *ast.BinaryExpr) error {
	if err := expr.Left.Accept(v); err != nil {
		return err
	}

	v.sb.WriteByte(' ')
	v.sb.WriteString(expr.Operator)
	v.sb.WriteByte(' ')

	return expr.Right.Accept(v)
}

func (v *SQLVisitor) VisitCast(c *ast.Cast) error {
	if err := c.Expr.Accept(v); err != nil {
		return err
	}
	v.sb.WriteString("::")
	v.sb.WriteString(c.TypeName)
	return nil
}

func (v *SQLVisitor) VisitLiteral(l *ast.Literal) error {
	v.sb.WriteString(v.dialect.QuoteLiteral(l.Value))
	return nil
}

func (v *SQLVisitor) VisitList(l *ast.List) error {
	v.sb.WriteByte('(')
	if err := v.list(l.Items); err != nil {
		return err
	}
	v.sb.WriteByte(')')
	return nil
}

func (v *SQLVisitor) VisitNot(n *ast.Not) error {
	v.sb.WriteString("NOT ")
	return n.Expr.Accept(v)
}

func (v *SQLVisitor) VisitWhereClause(clause *ast.WhereClause) error {
	if clause == nil || clause.Condition == nil {
		return nil
	}

	v.sb.WriteString(" WHERE ")
	return clause.Condition.Accept(v)
}

var _ ast.Visitor = (*SQLVisitor)(nil)
