package ast

type Table struct {
	Schema string
	Name   string
}

func NewTable(schema, name string) *Table {
	return &Table{Schema: schema, Name: name}
}

func (t *Table) Type() NodeType         { return NodeTable }
func (t *Table) Accept(v Visitor) error { return v.VisitTable(t) }
