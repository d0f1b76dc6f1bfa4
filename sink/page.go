package sink

import "github.com/Konsultn-Engineering/pagedb/schema"

// MemoryPage is an in-memory Page. The CLI and tests use it; real presentation
// layers supply their own.
type MemoryPage struct {
	Table     string
	PK        string
	Proc      string
	Func      string
	Returning bool
	Pending   bool

	Err         string
	Columns     []schema.Column
	ColumnNames []string
	Data        [][]any
	TableNames  []string
	CursorData  [][]any
	Functions   []schema.Function
	Description string
}

// NewTablePage returns a page targeting table with primary key pk.
func NewTablePage(table, pk string) *MemoryPage {
	return &MemoryPage{Table: table, PK: pk}
}

func (p *MemoryPage) TableName() string   { return p.Table }
func (p *MemoryPage) PKColumn() string    { return p.PK }
func (p *MemoryPage) ProcName() string    { return p.Proc }
func (p *MemoryPage) FuncName() string    { return p.Func }
func (p *MemoryPage) ReturnMode() bool    { return p.Returning }
func (p *MemoryPage) CursorPending() bool { return p.Pending }

func (p *MemoryPage) SetError(msg string)                { p.Err = msg }
func (p *MemoryPage) SetReturnMode(enabled bool)         { p.Returning = enabled }
func (p *MemoryPage) ClearCursorPending()                { p.Pending = false }
func (p *MemoryPage) SetColumns(cols []schema.Column)    { p.Columns = cols }
func (p *MemoryPage) SetColumnNames(names []string)      { p.ColumnNames = names }
func (p *MemoryPage) SetTableData(rows [][]any)          { p.Data = rows }
func (p *MemoryPage) SetTablesNames(names []string)      { p.TableNames = names }
func (p *MemoryPage) SetCursorData(rows [][]any)         { p.CursorData = rows }
func (p *MemoryPage) SetFunctions(fns []schema.Function) { p.Functions = fns }
func (p *MemoryPage) SetDescription(text string)         { p.Description = text }

// HasError reports whether the last operation left an error on the page.
func (p *MemoryPage) HasError() bool {
	return p.Err != ""
}

var _ Page = (*MemoryPage)(nil)
