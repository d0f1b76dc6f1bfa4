package ast

// InsertStmt renders one VALUES group per row. Columns is optional.
type InsertStmt struct {
	Table   *Table
	Columns []string
	Rows    [][]Node
}

func (i *InsertStmt) Type() NodeType         { return NodeInsert }
func (i *InsertStmt) Accept(v Visitor) error { return v.VisitInsert(i) }
