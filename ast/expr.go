package ast

// Param is a positional bound-parameter slot. Its value travels beside the SQL text.
type Param struct{}

func (p *Param) Type() NodeType         { return NodeParam }
func (p *Param) Accept(v Visitor) error { return v.VisitParam(p) }

// Raw is trusted SQL text emitted verbatim. Never build one from user input
// other than a caller-authored SELECT.
type Raw struct {
	SQL string
}

func (r *Raw) Type() NodeType         { return NodeRaw }
func (r *Raw) Accept(v Visitor) error { return v.VisitRaw(r) }

// Literal is a constant string rendered as a quoted SQL literal.
type Literal struct {
	Value string
}

func (l *Literal) Type() NodeType         { return NodeLiteral }
func (l *Literal) Accept(v Visitor) error { return v.VisitLiteral(l) }

// List is a parenthesized, comma separated list, as used by IN.
type List struct {
	Items []Node
}

func (l *List) Type() NodeType         { return NodeList }
func (l *List) Accept(v Visitor) error { return v.VisitList(l) }

type Not struct {
	Expr Node
}

func (n *Not) Type() NodeType         { return NodeNot }
func (n *Not) Accept(v Visitor) error { return v.VisitNot(n) }

type BinaryExpr struct {
	Left     Node
	Operator string
	Right    Node
}

func NewBinaryExpr(left Node, op string, right Node) *BinaryExpr {
	return &BinaryExpr{Left: left, Operator: op, Right: right}
}

func (b *BinaryExpr) Type() NodeType         { return NodeBinaryExpr }
func (b *BinaryExpr) Accept(v Visitor) error { return v.VisitBinaryExpr(b) }

// Cast renders Expr::TypeName.
type Cast struct {
	Expr     Node
	TypeName string
}

func (c *Cast) Type() NodeType         { return NodeCast }
func (c *Cast) Accept(v Visitor) error { return v.VisitCast(c) }
