package pagedb

import (
	"context"
	"fmt"
	"testing"

	"github.com/Konsultn-Engineering/pagedb/connector"
	"github.com/Konsultn-Engineering/pagedb/engine"
	"github.com/Konsultn-Engineering/pagedb/internal/testutil"
	"github.com/Konsultn-Engineering/pagedb/schema"
	"github.com/Konsultn-Engineering/pagedb/sink"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func integrationDatabase(t *testing.T) (*Database, string) {
	t.Helper()
	return integrationDatabaseFor(t, connector.DriverPgx)
}

func integrationDatabaseFor(t *testing.T, driver string) (*Database, string) {
	t.Helper()
	conn := testutil.NewTestConnFor(t, driver)
	db := NewWithConn(conn, WithLogger(engine.NopLogger()))

	table := "pagedb_it_" + uuid.NewString()[:8]
	testutil.Exec(t, conn, fmt.Sprintf(`CREATE TABLE %q (id int PRIMARY KEY, name text)`, table))
	t.Cleanup(func() {
		testutil.Exec(t, conn, fmt.Sprintf(`DROP TABLE IF EXISTS %q CASCADE`, table))
	})
	return db, table
}

func TestIntegrationBulkInsertRoundTrip(t *testing.T) {
	db, table := integrationDatabase(t)
	ctx := context.Background()
	page := sink.NewTablePage(table, "id")

	inserted := [][]any{{int32(2), "b"}, {int32(1), "a"}, {int32(3), nil}}
	require.NoError(t, db.InsertRows(ctx, page, inserted).Err())

	out := db.SelectTable(ctx, page)
	require.NoError(t, out.Err())
	assert.ElementsMatch(t, inserted, out.TableData)

	require.NoError(t, db.InsertRows(ctx, page, nil).Err())
}

func TestIntegrationUpdateAndDelete(t *testing.T) {
	db, table := integrationDatabase(t)
	ctx := context.Background()
	page := sink.NewTablePage(table, "id")

	require.NoError(t, db.InsertRow(ctx, page, 7, "before").Err())
	require.NoError(t, db.UpdateRow(ctx, page, []string{"name"}, "after", 7).Err())

	out := db.SelectWhere(ctx, page, "id", 7)
	require.NoError(t, out.Err())
	assert.Equal(t, [][]any{{int32(7), "after"}}, out.TableData)

	require.NoError(t, db.DeleteRow(ctx, page, 7).Err())
	assert.Empty(t, db.SelectTable(ctx, page).TableData)
}

func TestIntegrationFailureThenSuccess(t *testing.T) {
	db, table := integrationDatabase(t)
	ctx := context.Background()

	missing := sink.NewTablePage("pagedb_it_does_not_exist", "id")
	db.SelectTable(ctx, missing).Apply(missing)
	assert.Contains(t, missing.Err, "42P01")

	page := sink.NewTablePage(table, "id")
	out := db.SelectTable(ctx, page)
	assert.NoError(t, out.Err())
}

func TestIntegrationIntrospection(t *testing.T) {
	db, table := integrationDatabase(t)
	ctx := context.Background()

	first := db.GetTableNames(ctx)
	second := db.GetTableNames(ctx)
	require.NoError(t, first.Err())
	assert.Equal(t, first.TableNames, second.TableNames)
	assert.Contains(t, first.TableNames, table)

	out := db.GetColumnNames(ctx, sink.NewTablePage(table, "id"))
	require.NoError(t, out.Err())
	assert.Equal(t, []string{"id", "name"}, out.ColumnNames)
}

func TestIntegrationTemporaryTables(t *testing.T) {
	db, table := integrationDatabase(t)
	ctx := context.Background()
	src := sink.NewTablePage(table, "id")
	require.NoError(t, db.InsertRow(ctx, src, 1, "a").Err())

	custom := sink.NewTablePage(schema.CustomTable, "")
	require.NoError(t, db.DropTempTable(ctx, custom).Err())
	require.NoError(t, db.DropTempTable(ctx, custom).Err())

	require.NoError(t, db.CreateAsSelect(ctx, custom, fmt.Sprintf(`SELECT id FROM %q WHERE id >= $1`, table), 1).Err())

	out := db.GetColumnNames(ctx, custom)
	require.NoError(t, out.Err())
	assert.Equal(t, []string{"id"}, out.ColumnNames)
	require.NoError(t, db.DropTempTable(ctx, custom).Err())
}

func TestIntegrationRefCursor(t *testing.T) {
	tests := []struct {
		driver string
		cursor [][]any
	}{
		{connector.DriverPgx, [][]any{{int32(1), "a"}, {int32(2), "b"}}},
		{connector.DriverPq, [][]any{{int64(1), "a"}, {int64(2), "b"}}},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			db, table := integrationDatabaseFor(t, tt.driver)
			ctx := context.Background()
			conn := db.engine.Conn()

			proc := table + "_report"
			testutil.Exec(t, conn, fmt.Sprintf(`CREATE PROCEDURE %q(INOUT ref refcursor) LANGUAGE plpgsql AS $$
BEGIN
	OPEN ref FOR SELECT id, name FROM %q ORDER BY id;
END $$`, proc, table))
			t.Cleanup(func() {
				testutil.Exec(t, conn, fmt.Sprintf(`DROP PROCEDURE IF EXISTS %q`, proc))
			})

			require.NoError(t, db.InsertRows(ctx, sink.NewTablePage(table, "id"), [][]any{{1, "a"}, {2, "b"}}).Err())

			page := &sink.MemoryPage{Table: schema.FuncResult, Proc: proc, Pending: true}
			for i := 0; i < 2; i++ {
				out := db.CallRefProcedure(ctx, page, "ref")
				require.NoError(t, out.Err())
				assert.Equal(t, tt.cursor, out.CursorData, "call %d", i+1)
			}

			page.Pending = true
			out := db.CallRefProcedure(ctx, page, "ref")
			require.NoError(t, out.Err())
			out.Apply(page)
			assert.False(t, page.CursorPending())
			assert.Equal(t, tt.cursor, page.CursorData)
			assert.Equal(t, []string{"id", "name"}, schema.ColumnNames(page.Columns))

			require.NoError(t, db.DropTempTable(ctx, page).Err())
			require.NoError(t, db.CreateRefTable(ctx, page).Err())
			require.NoError(t, db.InsertRefValues(ctx, page, page.CursorData).Err())

			got := db.SelectTable(ctx, page)
			require.NoError(t, got.Err())
			assert.Equal(t, [][]any{{"1", "a"}, {"2", "b"}}, got.TableData)
			require.NoError(t, db.DropTempTable(ctx, page).Err())
		})
	}
}

func TestIntegrationConnectThroughConfig(t *testing.T) {
	url := testutil.RequireIntegration(t)

	for _, driver := range []string{connector.DriverPgx, connector.DriverPq} {
		t.Run(driver, func(t *testing.T) {
			db, err := New(connector.Config{Driver: driver, URL: url}, WithLogger(engine.NopLogger()))
			require.NoError(t, err)
			require.NoError(t, db.Connect(context.Background()))
			defer db.Close()

			out := db.GetTableNames(context.Background())
			assert.NoError(t, out.Err())
		})
	}
}
