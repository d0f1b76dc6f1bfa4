package pagedb

import (
	"testing"

	"github.com/Konsultn-Engineering/pagedb/engine"
	"github.com/Konsultn-Engineering/pagedb/schema"
	"github.com/Konsultn-Engineering/pagedb/sink"
	"github.com/stretchr/testify/assert"
)

type errorOnly struct{ msg string }

func (e *errorOnly) SetError(msg string) { e.msg = msg }

type rowsOnly struct {
	sink.RowSink
	data [][]any
}

func (r *rowsOnly) SetTableData(rows [][]any) { r.data = rows }

func TestApplyWritesOnlySetFields(t *testing.T) {
	page := &sink.MemoryPage{ColumnNames: []string{"kept"}, Description: "kept"}

	out := newOutcome("select_table")
	out.setTableData([][]any{{1}})
	out.Apply(page)

	assert.Equal(t, [][]any{{1}}, page.Data)
	assert.Equal(t, []string{"kept"}, page.ColumnNames)
	assert.Equal(t, "kept", page.Description)
	assert.Empty(t, page.Err)
}

func TestApplyToPartialSinks(t *testing.T) {
	out := newOutcome("select_table")
	out.setTableData([][]any{{"a"}})
	out.fail(&engine.Error{Kind: engine.KindExecution, Message: "boom"})

	e := &errorOnly{}
	out.Apply(e)
	assert.Equal(t, "boom", e.msg)

	r := &rowsOnly{}
	out.Apply(r)
	assert.Equal(t, [][]any{{"a"}}, r.data)

	assert.NotPanics(t, func() { out.Apply(struct{}{}) })
}

func TestApplySkipsConnectionFailures(t *testing.T) {
	out := newOutcome("select_table")
	out.setTableData(nil)
	out.fail(&engine.Error{Kind: engine.KindConnection, Message: "not connected"})

	page := &sink.MemoryPage{Data: [][]any{{"kept"}}}
	out.Apply(page)
	assert.Equal(t, [][]any{{"kept"}}, page.Data)
	assert.Empty(t, page.Err)
}

func TestMergeKeepsLastFailure(t *testing.T) {
	first := newOutcome("a")
	first.fail(&engine.Error{Kind: engine.KindExecution, Message: "first"})
	first.setColumnNames([]string{"id"})

	second := newOutcome("b")
	second.fail(&engine.Error{Kind: engine.KindExecution, Message: "second"})
	second.setColumns([]schema.Column{{Name: "id"}})

	out := newOutcome("both")
	out.merge(first)
	out.merge(second)

	assert.Equal(t, "second", out.Failure.Message)
	assert.Equal(t, []string{"id"}, out.ColumnNames)
	assert.True(t, out.has(fieldClearCursor))
	assert.NoError(t, newOutcome("ok").Err())
}
