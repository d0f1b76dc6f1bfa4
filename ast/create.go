package ast

type ColumnDef struct {
	Name     string
	TypeName string // e.g. "varchar"
}

type CreateTableStmt struct {
	Table     *Table
	Columns   []*ColumnDef
	Temporary bool
}

func (c *CreateTableStmt) Type() NodeType         { return NodeCreateTable }
func (c *CreateTableStmt) Accept(v Visitor) error { return v.VisitCreateTable(c) }

// CreateTableAsStmt is CREATE [TEMPORARY] TABLE t AS <Query>.
type CreateTableAsStmt struct {
	Table     *Table
	Query     Node
	Temporary bool
}

func (c *CreateTableAsStmt) Type() NodeType         { return NodeCreateTableAs }
func (c *CreateTableAsStmt) Accept(v Visitor) error { return v.VisitCreateTableAs(c) }
