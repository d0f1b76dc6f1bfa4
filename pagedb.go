// Package pagedb lets a page-style presentation layer introspect and edit a
// PostgreSQL database by entity name, on a single connection.
//
// Every operation runs exactly one statement in its own transaction and returns
// an *Outcome; callers merge it into their page with Outcome.Apply.
package pagedb

import (
	"context"
	"errors"
	"fmt"

	"github.com/Konsultn-Engineering/pagedb/cache"
	"github.com/Konsultn-Engineering/pagedb/connector"
	"github.com/Konsultn-Engineering/pagedb/database"
	"github.com/Konsultn-Engineering/pagedb/engine"
	"github.com/Konsultn-Engineering/pagedb/query"
	"github.com/google/uuid"

	_ "github.com/Konsultn-Engineering/pagedb/providers/pgx"
	_ "github.com/Konsultn-Engineering/pagedb/providers/pq"
)

// Logger is satisfied by *slog.Logger.
type Logger = engine.Logger

var ErrNoConnector = errors.New("database has no connector configured")

// Database is the entity operations facade. It owns at most one open connection
// and is not safe for concurrent use; open one Database per caller.
type Database struct {
	id        uuid.UUID
	connector *connector.Connector
	engine    *engine.Engine
	builder   *query.Builder
	columns   *cache.ColumnCache
	logger    Logger
	cacheSize int
}

type Option func(*Database)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l Logger) Option {
	return func(d *Database) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithColumnCacheSize bounds how many cursor descriptions are kept.
func WithColumnCacheSize(n int) Option {
	return func(d *Database) {
		d.cacheSize = n
	}
}

func newDatabase(opts []Option) *Database {
	d := &Database{
		id:     uuid.New(),
		logger: engine.DefaultLogger(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.columns = cache.NewColumnCache(d.cacheSize)
	return d
}

// New returns a disconnected Database for cfg. Call Connect before any operation.
func New(cfg connector.Config, opts ...Option) (*Database, error) {
	d := newDatabase(opts)
	if cfg.ApplicationName == "" {
		cfg.ApplicationName = "pagedb-" + d.id.String()
	}

	c, err := connector.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("pagedb: %w", err)
	}
	d.connector = c
	d.builder = query.NewBuilder(c.Dialect())
	d.engine = engine.New(nil, engine.WithLogger(d.logger), engine.WithQueryTimeout(c.Config().QueryTimeout))
	return d, nil
}

// NewWithConn wraps an already open connection. Connect is not needed and
// returns ErrNoConnector.
func NewWithConn(conn database.Conn, opts ...Option) *Database {
	d := newDatabase(opts)
	d.builder = query.NewBuilder(nil)
	d.engine = engine.New(conn, engine.WithLogger(d.logger))
	return d
}

// ID identifies this Database in logs and in the session's application_name.
func (d *Database) ID() uuid.UUID {
	return d.id
}

func (d *Database) Connected() bool {
	return d.engine.Conn() != nil
}

// Connect opens the connection. A failure is logged and leaves the Database
// disconnected; later operations then report a connection error.
func (d *Database) Connect(ctx context.Context) error {
	if d.connector == nil {
		return ErrNoConnector
	}
	if d.Connected() {
		return nil
	}

	d.logger.Info("connecting to the database", "db_id", d.id.String(), "driver", d.connector.Config().Driver)
	conn, err := d.connector.Connect(ctx)
	if err != nil {
		d.logger.Error("connection failed", "db_id", d.id.String(), "error", err)
		return &engine.Error{Kind: engine.KindConnection, Op: "connect", Message: err.Error(), Err: err}
	}

	d.engine.SetConn(conn)
	d.logger.Info("connection successful", "db_id", d.id.String())
	return nil
}

// Disconnect closes the connection if one is open. It is safe to call twice.
func (d *Database) Disconnect(ctx context.Context) error {
	conn := d.engine.Conn()
	if conn == nil {
		return nil
	}
	d.engine.SetConn(nil)

	err := conn.Close(ctx)
	d.logger.Info("connection terminated", "db_id", d.id.String())
	return err
}

func (d *Database) Close() error {
	return d.Disconnect(context.Background())
}

// Ping checks the open connection.
func (d *Database) Ping(ctx context.Context) error {
	return d.engine.Ping(ctx)
}
