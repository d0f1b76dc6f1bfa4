// Package pq registers the lib/pq provider under "pq".
package pq

import (
	"context"

	"github.com/Konsultn-Engineering/pagedb/connector"
	"github.com/Konsultn-Engineering/pagedb/database"
	"github.com/Konsultn-Engineering/pagedb/dialect"
)

type Provider struct{}

func init() {
	connector.Register(connector.DriverPq, &Provider{})
}

func (p *Provider) Connect(ctx context.Context, cfg connector.Config) (database.Conn, error) {
	return database.ConnectSQL(ctx, cfg.DSN())
}

func (p *Provider) Dialect() dialect.Dialect {
	return dialect.NewPostgresDialect()
}
