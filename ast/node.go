package ast

type NodeType int

const (
	NodeSelect NodeType = iota
	NodeInsert
	NodeUpdate
	NodeDelete
	NodeCreateTable
	NodeCreateTableAs
	NodeCall
	NodeFetch
	NodeTruncate
	NodeDropTable
	NodeColumn
	NodeTable
	NodeStar
	NodeParam
	NodeRaw
	NodeFunction
	NodeBinaryExpr
	NodeCast
	NodeLiteral
	NodeList
	NodeJoin
	NodeNot
	NodeWhere
)

type Node interface {
	Type() NodeType
	Accept(v Visitor) error
}
