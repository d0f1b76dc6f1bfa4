package ast

type Visitor interface {
	VisitSelect(*SelectStmt) error
	VisitInsert(*InsertStmt) error
	VisitUpdate(*UpdateStmt) error
	VisitDelete(*DeleteStmt) error
	VisitCreateTable(*CreateTableStmt) error
	VisitCreateTableAs(*CreateTableAsStmt) error
	VisitCall(*CallStmt) error
	VisitFetch(*FetchStmt) error
	VisitTruncate(*TruncateStmt) error
	VisitDropTable(*DropTableStmt) error

	VisitColumn(*Column) error
	VisitTable(*Table) error
	VisitStar(*Star) error
	VisitParam(*Param) error
	VisitRaw(*Raw) error
	VisitFunction(*Function) error
	VisitBinaryExpr(*BinaryExpr) error
	VisitCast(*Cast) error
	VisitLiteral(*Literal) error
	VisitList(*List) error
	VisitJoin(*Join) error
	VisitNot(*Not) error

	VisitWhereClause(*WhereClause) error
}
