package ast

// Assignment is one "col = expr" pair. UpdateStmt keeps them ordered so that
// placeholder numbering follows the caller's column list.
type Assignment struct {
	Column string
	Value  Node
}

type UpdateStmt struct {
	Table *Table
	Set   []Assignment
	Where *WhereClause
}

func (u *UpdateStmt) Type() NodeType         { return NodeUpdate }
func (u *UpdateStmt) Accept(v Visitor) error { return v.VisitUpdate(u) }
