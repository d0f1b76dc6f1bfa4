package schema

import (
	"fmt"
	"strings"
)

type FunctionKind string

const (
	KindFunction  FunctionKind = "f"
	KindProcedure FunctionKind = "p"
	KindAggregate FunctionKind = "a"
	KindWindow    FunctionKind = "w"
)

func (k FunctionKind) String() string {
	switch k {
	case KindFunction:
		return "function"
	case KindProcedure:
		return "procedure"
	case KindAggregate:
		return "aggregate"
	case KindWindow:
		return "window"
	default:
		return string(k)
	}
}

// Function is one row of the stored-routine listing.
type Function struct {
	Kind     FunctionKind
	Name     string
	ArgNames []string
	ArgModes []string // i, o, b, v, t; empty when every argument is IN
	ArgTypes []string
}

func (f Function) IsProcedure() bool { return f.Kind == KindProcedure }

// InputArgs returns the names of the arguments a caller has to supply.
func (f Function) InputArgs() []string {
	if len(f.ArgModes) == 0 {
		return f.ArgNames
	}
	var in []string
	for i, mode := range f.ArgModes {
		if i >= len(f.ArgNames) {
			break
		}
		switch mode {
		case "i", "b", "v":
			in = append(in, f.ArgNames[i])
		}
	}
	return in
}

// Signature renders name(type, ...).
func (f Function) Signature() string {
	return f.Name + "(" + strings.Join(f.ArgTypes, ", ") + ")"
}

// ParseFunction decodes a (kind, name, argnames, argmodes, argtypes) row where the
// list columns are comma-joined text.
func ParseFunction(row []any) (Function, error) {
	if len(row) != 5 {
		return Function{}, fmt.Errorf("function row has %d columns, want 5", len(row))
	}

	kind, err := text(row[0])
	if err != nil {
		return Function{}, fmt.Errorf("prokind: %w", err)
	}
	name, err := text(row[1])
	if err != nil {
		return Function{}, fmt.Errorf("proname: %w", err)
	}

	fn := Function{Kind: FunctionKind(kind), Name: name}
	for i, dst := range []*[]string{&fn.ArgNames, &fn.ArgModes, &fn.ArgTypes} {
		s, err := text(row[2+i])
		if err != nil {
			return Function{}, err
		}
		*dst = split(s)
	}
	return fn, nil
}

func ParseFunctions(rows [][]any) ([]Function, error) {
	fns := make([]Function, 0, len(rows))
	for _, row := range rows {
		fn, err := ParseFunction(row)
		if err != nil {
			return nil, err
		}
		fns = append(fns, fn)
	}
	return fns, nil
}

func text(v any) (string, error) {
	switch s := v.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	default:
		return "", fmt.Errorf("unexpected %T", v)
	}
}

func split(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
