// Package pgx registers the pgx/v5 provider under "pgx" and "postgres".
package pgx

import (
	"context"

	"github.com/Konsultn-Engineering/pagedb/connector"
	"github.com/Konsultn-Engineering/pagedb/database"
	"github.com/Konsultn-Engineering/pagedb/dialect"
	"github.com/jackc/pgx/v5"
)

type Provider struct{}

func init() {
	connector.Register(connector.DriverPgx, &Provider{})
	connector.Register("postgres", &Provider{})
}

// ParseConfig turns cfg into a pgx connection config.
func (p *Provider) ParseConfig(cfg connector.Config) (*pgx.ConnConfig, error) {
	connCfg, err := pgx.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, err
	}
	if cfg.ApplicationName != "" {
		connCfg.RuntimeParams["application_name"] = cfg.ApplicationName
	}
	return connCfg, nil
}

func (p *Provider) Connect(ctx context.Context, cfg connector.Config) (database.Conn, error) {
	connCfg, err := p.ParseConfig(cfg)
	if err != nil {
		return nil, err
	}

	conn, err := pgx.ConnectConfig(ctx, connCfg)
	if err != nil {
		return nil, err
	}
	return database.NewPgxConn(conn), nil
}

func (p *Provider) Dialect() dialect.Dialect {
	return dialect.NewPostgresDialect()
}
