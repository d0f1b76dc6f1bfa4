package ast

// Params returns n bound-parameter slots.
func Params(n int) []Node {
	nodes := make([]Node, n)
	for i := range nodes {
		nodes[i] = &Param{}
	}
	return nodes
}

// Eq builds "column = $n".
func Eq(column string) *BinaryExpr {
	return NewBinaryExpr(NewColumn(column), OpEqual, &Param{})
}

// Lit returns one Literal per value.
func Lit(values ...string) []Node {
	nodes := make([]Node, len(values))
	for i, val := range values {
		nodes[i] = &Literal{Value: val}
	}
	return nodes
}

// And joins conditions with AND, left to right.
func And(first Node, rest ...Node) Node {
	cond := first
	for _, n := range rest {
		cond = NewBinaryExpr(cond, OpAnd, n)
	}
	return cond
}

func Where(cond Node) *WhereClause {
	return &WhereClause{Condition: cond}
}
