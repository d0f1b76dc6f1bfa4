package connector

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/Konsultn-Engineering/pagedb/database"
	"github.com/Konsultn-Engineering/pagedb/dialect"
)

// ErrUnknownProvider is returned by New when no provider is registered for the driver.
var ErrUnknownProvider = errors.New("provider not registered")

var globalManager = &Manager{
	providers: make(map[string]Provider),
}

// Manager holds the registered providers by driver name.
type Manager struct {
	providers map[string]Provider
	mu        sync.RWMutex
}

// Register makes a provider available under name. Providers call it from init.
func Register(name string, provider Provider) {
	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()
	globalManager.providers[name] = provider
}

// Providers returns the registered provider names in order.
func Providers() []string {
	globalManager.mu.RLock()
	defer globalManager.mu.RUnlock()

	names := make([]string, 0, len(globalManager.providers))
	for name := range globalManager.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Connector connects one Config through its registered provider.
type Connector struct {
	provider Provider
	config   Config
}

// New returns a Connector for config.Driver.
func New(config Config) (*Connector, error) {
	config = config.WithDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	globalManager.mu.RLock()
	provider, ok := globalManager.providers[config.Driver]
	globalManager.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, config.Driver)
	}
	return &Connector{provider: provider, config: config}, nil
}

// Config returns the config with defaults applied.
func (c *Connector) Config() Config {
	return c.config
}

// Dialect returns the dialect of the provider.
func (c *Connector) Dialect() dialect.Dialect {
	return c.provider.Dialect()
}

// Connect opens the session, bounded by ConnectTimeout and retried per Retry.
func (c *Connector) Connect(ctx context.Context) (database.Conn, error) {
	if c.config.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.ConnectTimeout)
		defer cancel()
	}

	connect := func(ctx context.Context) (database.Conn, error) {
		return c.provider.Connect(ctx, c.config)
	}
	if c.config.Retry == nil {
		return connect(ctx)
	}

	conn, err := retryConnect(ctx, *c.config.Retry, connect)
	if err != nil {
		return nil, fmt.Errorf("failed to connect after %d retries: %w", c.config.Retry.MaxRetries, err)
	}
	return conn, nil
}
