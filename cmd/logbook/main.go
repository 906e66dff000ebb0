package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/tinytelemetry/logbook/internal/sqlstore"
	"gopkg.in/yaml.v3"
)

// Build variables - set by ldflags during build.
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)

func main() {
	var configPath, envPath string
	var showVersion, printConfig bool

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/logbook/config.yml)")
	flag.StringVar(&envPath, "env-file", ".env", "dotenv file loaded before the environment is read")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.BoolVar(&printConfig, "print-config", false, "print the effective configuration as YAML and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("Logbook - JSON Log Service\n")
		fmt.Printf("  Version:    %s\n", version)
		fmt.Printf("  Commit:     %s\n", commit)
		fmt.Printf("  Built:      %s\n", buildTime)
		fmt.Printf("  Go version: %s\n", goVersion)
		return
	}

	if err := loadDotEnv(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", envPath, err)
		os.Exit(1)
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if printConfig {
		if err := writeConfig(os.Stdout, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := runServer(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadDotEnv exports the variables in path without overriding ones already
// set. A missing file is not an error.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func loadConfig(configPath string) (appConfig, error) {
	var cfg appConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("LOGBOOK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("db-driver", defaultDBDriver)
	v.SetDefault("db-path", "")
	v.SetDefault("db-dsn", "")
	v.SetDefault("api-host", defaultBindHost)
	v.SetDefault("api-port", defaultAPIPort)
	v.SetDefault("query-timeout", defaultQueryTimeout)
	v.SetDefault("max-concurrent-queries", defaultMaxConcurrentReads)
	v.SetDefault("max-open-conns", defaultMaxOpenConns)
	v.SetDefault("cors-origins", []string{defaultCORSOrigin})
	v.SetDefault("cors-allow-credentials", false)

	// PORT is the conventional platform variable; the prefixed name wins.
	if err := v.BindEnv("api-port", "LOGBOOK_API_PORT", "PORT"); err != nil {
		return cfg, err
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		defaultConfigPath := filepath.Join(home, ".config", "logbook", "config.yml")
		v.SetConfigFile(defaultConfigPath)
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	cfg.ConfigPath = v.ConfigFileUsed()
	if _, err := os.Stat(cfg.ConfigPath); err != nil {
		cfg.ConfigPath = ""
	}

	dialect, err := sqlstore.DialectByName(cfg.DBDriver)
	if err != nil {
		return cfg, err
	}
	cfg.DBDriver = dialect.Name
	if cfg.DBDriver == sqlstore.Postgres.Name && cfg.DBDSN == "" {
		return cfg, fmt.Errorf("db-dsn is required for the postgres driver")
	}
	if cfg.APIPort <= 0 || cfg.APIPort > 65535 {
		return cfg, fmt.Errorf("invalid api-port: %d", cfg.APIPort)
	}

	switch {
	case cfg.DBPath == "":
		cfg.DBPath = filepath.Join(home, ".local", "share", "logbook", "logbook."+dbFileExt(cfg.DBDriver))
	case strings.HasPrefix(cfg.DBPath, "~/"):
		cfg.DBPath = filepath.Join(home, cfg.DBPath[2:])
	}

	if cfg.APIAddr == "" {
		cfg.APIAddr = net.JoinHostPort(cfg.APIHost, strconv.Itoa(cfg.APIPort))
	}

	return cfg, nil
}

func dbFileExt(driver string) string {
	if driver == sqlstore.SQLite.Name {
		return "db"
	}
	return "duckdb"
}

// storeConfig translates the CLI configuration into store settings.
func storeConfig(cfg appConfig) sqlstore.Config {
	path := cfg.DBPath
	if path == memoryPath {
		path = ""
	}
	return sqlstore.Config{
		Driver:       cfg.DBDriver,
		Path:         path,
		DSN:          cfg.DBDSN,
		QueryTimeout: cfg.QueryTimeout,
		MaxOpenConns: cfg.MaxOpenConns,
	}
}

// writeConfig prints cfg as YAML with credentials masked.
func writeConfig(w io.Writer, cfg appConfig) error {
	if cfg.DBDSN != "" {
		cfg.DBDSN = "<redacted>"
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}
