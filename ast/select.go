package ast

type SelectStmt struct {
	Columns []Node // empty means *
	From    Node   // *Table, *Function or *Join
	Where   *WhereClause
	OrderBy []Node
}

func (s *SelectStmt) Type() NodeType         { return NodeSelect }
func (s *SelectStmt) Accept(v Visitor) error { return v.VisitSelect(s) }
