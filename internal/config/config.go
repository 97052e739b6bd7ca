package config

import (
	"time"

	"github.com/booklyhq/bookly/adapters/postgres"
	"github.com/booklyhq/bookly/internal/obs"
)

// App identifies the running service
type App struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
}

// Server holds HTTP server settings
type Server struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Auth holds the signing secret and token lifetimes. Loaded once at startup;
// the codec reads it, nothing mutates it.
type Auth struct {
	JWTSecret  string        `mapstructure:"jwt_secret"`
	AccessTTL  time.Duration `mapstructure:"access_ttl"`
	RefreshTTL time.Duration `mapstructure:"refresh_ttl"`
}

// Redis holds the blocklist connection settings
type Redis struct {
	URL string `mapstructure:"url"`
}

// DB holds postgres pool settings
type DB struct {
	DSN             string        `mapstructure:"dsn"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
	QueryTimeout    time.Duration `mapstructure:"query_timeout"`
}

// AsPostgresConfig converts to the adapter's config
func (d *DB) AsPostgresConfig() postgres.Config {
	return postgres.Config{
		DSN:             d.DSN,
		MaxConns:        d.MaxConns,
		MinConns:        d.MinConns,
		MaxConnLifetime: d.MaxConnLifetime,
		QueryTimeout:    d.QueryTimeout,
	}
}

// Log holds logging settings
type Log struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// AsLoggerConfig converts to the logger's config
func (l *Log) AsLoggerConfig(app App) obs.LogConfig {
	return obs.LogConfig{
		Level:  l.Level,
		Pretty: l.Pretty,
		App:    app.Name,
		Env:    app.Env,
	}
}

// Config is the process-wide configuration
type Config struct {
	App    App    `mapstructure:"app"`
	Server Server `mapstructure:"server"`
	Auth   Auth   `mapstructure:"auth"`
	Redis  Redis  `mapstructure:"redis"`
	DB     DB     `mapstructure:"db"`
	Log    Log    `mapstructure:"log"`
}
