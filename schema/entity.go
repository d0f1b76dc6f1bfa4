package schema

// Names of the entities this system creates on its own. They live outside the
// catalog views, so their columns are read from pg_attribute.
const (
	CustomTable = "custom_table"
	FuncResult  = "func_result"
)

// SyntheticTables is the fixed allow-list of synthetic entities.
var SyntheticTables = []string{CustomTable, FuncResult}

type EntityKind int

const (
	Catalog EntityKind = iota
	Synthetic
)

func (k EntityKind) String() string {
	switch k {
	case Synthetic:
		return "synthetic"
	default:
		return "catalog"
	}
}

// Classify resolves the entity kind of a table name against the allow-list.
func Classify(table string) EntityKind {
	for _, name := range SyntheticTables {
		if table == name {
			return Synthetic
		}
	}
	return Catalog
}

// IsCursorTarget reports whether table receives ref-cursor output.
func IsCursorTarget(table string) bool {
	return table == FuncResult
}
