package ast

type TruncateStmt struct {
	Table   *Table
	Cascade bool
}

func (t *TruncateStmt) Type() NodeType         { return NodeTruncate }
func (t *TruncateStmt) Accept(v Visitor) error { return v.VisitTruncate(t) }

type DropTableStmt struct {
	Table    *Table
	IfExists bool
}

func (d *DropTableStmt) Type() NodeType         { return NodeDropTable }
func (d *DropTableStmt) Accept(v Visitor) error { return v.VisitDropTable(d) }
