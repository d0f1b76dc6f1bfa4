package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/Konsultn-Engineering/pagedb"
	"github.com/Konsultn-Engineering/pagedb/database"
	"github.com/Konsultn-Engineering/pagedb/engine"
	"github.com/Konsultn-Engineering/pagedb/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandParsing(t *testing.T) {
	tests := []struct {
		args    []string
		cmd     string
		arg     string
		wantErr bool
	}{
		{args: []string{"tables"}, cmd: "tables"},
		{args: []string{"show", "orders"}, cmd: "show", arg: "orders"},
		{args: []string{"describe", "top_customers"}, cmd: "describe", arg: "top_customers"},
		{args: nil, wantErr: true},
		{args: []string{"show"}, wantErr: true},
		{args: []string{"tables", "extra"}, wantErr: true},
		{args: []string{"drop"}, wantErr: true},
	}

	for _, tt := range tests {
		cmd, arg, err := command(tt.args)
		if tt.wantErr {
			assert.Error(t, err, tt.args)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.cmd, cmd)
		assert.Equal(t, tt.arg, arg)
	}
}

func TestLoadConfigPrefersDSN(t *testing.T) {
	cfg, err := loadConfig("ignored.yaml", "postgres://localhost/shop", "pq")
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/shop", cfg.URL)
	assert.Equal(t, "pq", cfg.Driver)

	_, err = loadConfig("", "", "")
	assert.Error(t, err)
}

func TestExecuteShow(t *testing.T) {
	conn := testutil.NewFakeConn().
		On(`"information_schema"."columns"`, &database.ResultSet{Rows: [][]any{{"id"}, {"name"}}}).
		On(`SELECT * FROM "orders"`, &database.ResultSet{Rows: [][]any{{int32(2), "b"}, {int32(1), nil}}})
	db := pagedb.NewWithConn(conn, pagedb.WithLogger(engine.NopLogger()))

	var buf bytes.Buffer
	require.NoError(t, execute(context.Background(), db, "show", "orders", &buf))

	assert.Equal(t, "id  name\n1   \n2   b\n2 rows\n", buf.String())
}

func TestExecuteTables(t *testing.T) {
	conn := testutil.NewFakeConn().
		On(`"information_schema"."tables"`, &database.ResultSet{Rows: [][]any{{"orders"}}})
	db := pagedb.NewWithConn(conn, pagedb.WithLogger(engine.NopLogger()))

	var buf bytes.Buffer
	require.NoError(t, execute(context.Background(), db, "tables", "", &buf))
	assert.Equal(t, "orders\n1 table\n", buf.String())
}

func TestExecuteReportsFailure(t *testing.T) {
	db := pagedb.NewWithConn(nil, pagedb.WithLogger(engine.NopLogger()))

	var buf bytes.Buffer
	err := execute(context.Background(), db, "tables", "", &buf)
	assert.Equal(t, engine.KindConnection, engine.KindOf(err))
	assert.Empty(t, buf.String())
}
