package ast

type CallStmt struct {
	Procedure string
	Args      []Node
}

func (c *CallStmt) Type() NodeType         { return NodeCall }
func (c *CallStmt) Accept(v Visitor) error { return v.VisitCall(c) }

// FetchStmt is FETCH ALL IN <cursor>.
type FetchStmt struct {
	Cursor string
}

func (f *FetchStmt) Type() NodeType         { return NodeFetch }
func (f *FetchStmt) Accept(v Visitor) error { return v.VisitFetch(f) }
