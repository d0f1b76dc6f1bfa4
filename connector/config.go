package connector

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DriverPgx = "pgx"
	DriverPq  = "pq"

	DefaultPort = 5432
)

var ErrInvalidConfig = errors.New("invalid connection config")

// Config represents database connection configuration.
type Config struct {
	Driver          string            `json:"driver" yaml:"driver"`
	Host            string            `json:"host" yaml:"host"`
	Port            int               `json:"port" yaml:"port"`
	Database        string            `json:"database" yaml:"database"`
	Username        string            `json:"username" yaml:"username"`
	Password        string            `json:"password" yaml:"password"`
	SSLMode         string            `json:"ssl_mode" yaml:"ssl_mode"`
	ApplicationName string            `json:"application_name" yaml:"application_name"`
	Params          map[string]string `json:"params" yaml:"params"`
	ConnectTimeout  time.Duration     `json:"connect_timeout" yaml:"connect_timeout"`
	QueryTimeout    time.Duration     `json:"query_timeout" yaml:"query_timeout"`
	Retry           *RetryConfig      `json:"retry,omitempty" yaml:"retry,omitempty"`

	// URL, when set, is used as the DSN verbatim and the discrete fields above are ignored.
	URL string `json:"url" yaml:"url"`
}

// RetryConfig defines connection retry behavior. Statements are never retried.
type RetryConfig struct {
	MaxRetries int           `json:"max_retries" yaml:"max_retries"`
	BaseDelay  time.Duration `json:"base_delay" yaml:"base_delay"`
	MaxDelay   time.Duration `json:"max_delay" yaml:"max_delay"`
	Backoff    float64       `json:"backoff" yaml:"backoff"`
}

// LoadConfig reads a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML, applies defaults and validates the result.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// WithDefaults fills the driver and port when they are unset.
func (c Config) WithDefaults() Config {
	if c.Driver == "" {
		c.Driver = DriverPgx
	}
	if c.Port == 0 && c.URL == "" {
		c.Port = DefaultPort
	}
	return c
}

// Validate checks timeouts, retry settings and the address.
func (c Config) Validate() error {
	if c.ConnectTimeout < 0 || c.QueryTimeout < 0 {
		return fmt.Errorf("%w: negative timeout", ErrInvalidConfig)
	}
	if r := c.Retry; r != nil {
		if r.MaxRetries < 0 {
			return fmt.Errorf("%w: negative max_retries", ErrInvalidConfig)
		}
		if r.Backoff != 0 && r.Backoff < 1 {
			return fmt.Errorf("%w: backoff %.2f below 1", ErrInvalidConfig, r.Backoff)
		}
	}
	if c.URL != "" {
		return nil
	}
	if c.Host == "" {
		return fmt.Errorf("%w: host is required", ErrInvalidConfig)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: invalid port %d", ErrInvalidConfig, c.Port)
	}
	return nil
}

// DSN renders the connection URL understood by both pgx and lib/pq.
func (c Config) DSN() string {
	if c.URL != "" {
		return c.URL
	}

	b := NewDSNBuilder("postgres").
		Auth(c.Username, c.Password).
		Host(c.Host, c.Port).
		Database(c.Database).
		Params(c.Params).
		Param("sslmode", c.SSLMode).
		Param("application_name", c.ApplicationName)
	if c.ConnectTimeout > 0 {
		b.Param("connect_timeout", fmt.Sprint(int(c.ConnectTimeout.Seconds())))
	}
	return b.Build()
}
