package ast

// Column is a column reference, optionally qualified by its table.
type Column struct {
	Table string
	Name  string
}

func NewColumn(name string) *Column {
	return &Column{Name: name}
}

func NewQualifiedColumn(table, name string) *Column {
	return &Column{Table: table, Name: name}
}

func (c *Column) Type() NodeType { return NodeColumn }

func (c *Column) Accept(v Visitor) error { return v.VisitColumn(c) }

// Star is the unquoted "*" select list.
type Star struct{}

func (s *Star) Type() NodeType         { return NodeStar }
func (s *Star) Accept(v Visitor) error { return v.VisitStar(s) }
