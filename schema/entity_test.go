package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		table string
		want  EntityKind
	}{
		{"orders", Catalog},
		{"custom_table", Synthetic},
		{"func_result", Synthetic},
		{"Custom_Table", Catalog},
		{"", Catalog},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.table), tt.table)
	}
	assert.True(t, IsCursorTarget(FuncResult))
	assert.False(t, IsCursorTarget(CustomTable))
}

func TestParseFunction(t *testing.T) {
	fn, err := ParseFunction([]any{"p", "transfer", "src,dst,amount,ref", "i,i,i,b", "integer, integer, numeric, refcursor"})
	require.NoError(t, err)

	assert.True(t, fn.IsProcedure())
	assert.Equal(t, "procedure", fn.Kind.String())
	assert.Equal(t, []string{"src", "dst", "amount", "ref"}, fn.ArgNames)
	assert.Equal(t, []string{"integer", "integer", "numeric", "refcursor"}, fn.ArgTypes)
	assert.Equal(t, []string{"src", "dst", "amount", "ref"}, fn.InputArgs())
	assert.Equal(t, "transfer(integer, integer, numeric, refcursor)", fn.Signature())
}

func TestParseFunctionOutArgs(t *testing.T) {
	fn, err := ParseFunction([]any{[]byte("f"), "split", "input,head,tail", "i,o,o", "text"})
	require.NoError(t, err)

	assert.Equal(t, KindFunction, fn.Kind)
	assert.Equal(t, []string{"input"}, fn.InputArgs())
}

func TestParseFunctionNoArgs(t *testing.T) {
	fns, err := ParseFunctions([][]any{{"f", "now_utc", nil, "", ""}})
	require.NoError(t, err)
	require.Len(t, fns, 1)

	assert.Empty(t, fns[0].ArgNames)
	assert.Empty(t, fns[0].InputArgs())
	assert.Equal(t, "now_utc()", fns[0].Signature())
}

func TestParseFunctionRejectsBadRows(t *testing.T) {
	_, err := ParseFunction([]any{"f", "x"})
	require.Error(t, err)

	_, err = ParseFunction([]any{"f", 42, "", "", ""})
	require.Error(t, err)
}
