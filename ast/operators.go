package ast

const (
	OpEqual    = "="
	OpNotEqual = "<>"
	OpGreater  = ">"
	OpNotIn    = "NOT IN"
)

const (
	OpAnd = "AND"
	OpOr  = "OR"
)
