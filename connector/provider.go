package connector

import (
	"context"

	"github.com/Konsultn-Engineering/pagedb/database"
	"github.com/Konsultn-Engineering/pagedb/dialect"
)

// Provider opens single-session connections for one driver.
type Provider interface {
	Connect(ctx context.Context, config Config) (database.Conn, error)
	Dialect() dialect.Dialect
}
