package ast

// Function is a call in expression position. Builtin functions are emitted
// unquoted, which keywords such as coalesce require.
type Function struct {
	Name    string
	Args    []Node
	Builtin bool
}

// Builtin calls a server-provided function by its bare name.
func Builtin(name string, args ...Node) *Function {
	return &Function{Name: name, Args: args, Builtin: true}
}

func (f *Function) Type() NodeType         { return NodeFunction }
func (f *Function) Accept(v Visitor) error { return v.VisitFunction(f) }

// Join is an inner join of Left and Right on On.
type Join struct {
	Left  Node
	Right Node
	On    Node
}

func (j *Join) Type() NodeType         { return NodeJoin }
func (j *Join) Accept(v Visitor) error { return v.VisitJoin(j) }
