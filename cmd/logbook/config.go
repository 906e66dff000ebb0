package main

import "time"

const (
	defaultDBDriver           = "duckdb"
	defaultBindHost           = "127.0.0.1"
	defaultAPIPort            = 4000
	defaultQueryTimeout       = 30 * time.Second
	defaultMaxConcurrentReads = 8
	defaultMaxOpenConns       = 25
	defaultCORSOrigin         = "http://localhost:5173"

	// memoryPath as db-path keeps the database in memory.
	memoryPath = ":memory:"
)

// appConfig is internal runtime configuration.
// It is package-private to keep defaults and shape local to the CLI entrypoint.
type appConfig struct {
	DBDriver           string        `mapstructure:"db-driver" yaml:"db-driver"`
	DBPath             string        `mapstructure:"db-path" yaml:"db-path"`
	DBDSN              string        `mapstructure:"db-dsn" yaml:"db-dsn,omitempty"`
	APIHost            string        `mapstructure:"api-host" yaml:"api-host"`
	APIPort            int           `mapstructure:"api-port" yaml:"api-port"`
	APIAddr            string        `mapstructure:"api-addr" yaml:"api-addr"`
	QueryTimeout       time.Duration `mapstructure:"query-timeout" yaml:"query-timeout"`
	MaxConcurrentReads int           `mapstructure:"max-concurrent-queries" yaml:"max-concurrent-queries"`
	MaxOpenConns       int           `mapstructure:"max-open-conns" yaml:"max-open-conns"`
	CORSOrigins        []string      `mapstructure:"cors-origins" yaml:"cors-origins"`
	CORSCredentials    bool          `mapstructure:"cors-allow-credentials" yaml:"cors-allow-credentials"`
	ConfigPath         string        `mapstructure:"-" yaml:"-"` // not from config file
}
