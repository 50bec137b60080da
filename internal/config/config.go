// Package config holds neXSim's process-wide configuration, loaded once at
// startup and passed to engines via explicit dependency injection rather
// than consulted as global state (§9: "replace [global driver singletons]
// with explicit dependency injection").
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// GraphDBConfig describes how to reach the knowledge graph database. The
// driver itself is an external collaborator per §1; only connection
// parameters live here.
type GraphDBConfig struct {
	URI      string `yaml:"uri"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`

	// Fixture, when set, points at a local JSON edge-list file loaded into
	// an in-memory graph.MemoryGraph instead of a live driver connection.
	// No real graph-DB client exists anywhere in the example pack for this
	// domain (the original uses Neo4j), so this is the CLI's and the
	// standalone server's only way to exercise the pipeline against real
	// data short of writing a bespoke driver.
	Fixture string `yaml:"fixture"`
}

// RelationalDBConfig describes the relational store's connection. The CLI
// opens the audit store from DSN alone; Host/Port/Database/User/Password are
// loaded and checked by Validate but are not joined into a connection string.
type RelationalDBConfig struct {
	DSN      string `yaml:"dsn"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// ServerConfig configures the HTTP surface (§6).
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LoggingConfig controls the logging package's verbosity.
type LoggingConfig struct {
	Verbose bool `yaml:"verbose"`
}

// Config holds all of neXSim's configuration.
type Config struct {
	GraphDB GraphDBConfig `yaml:"graph_db"`
	RelationalDB RelationalDBConfig `yaml:"relational_db"`
	Server ServerConfig `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`

	// PredicatesUpper selects the spelling of the four taxonomic
	// predicates used across one computation (§4.5, §6). Read once at
	// startup; it must not change mid-process.
	PredicatesUpper bool `yaml:"predicates_upper"`

	// RequestTimeout is the per-request deadline of §5; exceeding it
	// surfaces a Timeout error with no partial response.
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		GraphDB: GraphDBConfig{URI: "bolt://localhost:7687"},
		RelationalDB: RelationalDBConfig{DSN: "file:nexsim.db?mode=rwc"},
		Server: ServerConfig{Addr: ":8090"},
		Logging: LoggingConfig{Verbose: false},
		PredicatesUpper: false,
		RequestTimeout: 30 * time.Second,
	}
}

// Load reads configuration from a YAML file, falling back to defaults if the
// file does not exist, then applies environment-variable overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration to path as YAML, creating parent directories
// as needed.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: mkdir %s: %w", dir, err)
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides, matching §6's
// named configuration surface.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("NEXSIM_GRAPH_URI"); v != "" {
		c.GraphDB.URI = v
	}
	if v := os.Getenv("NEXSIM_GRAPH_USER"); v != "" {
		c.GraphDB.User = v
	}
	if v := os.Getenv("NEXSIM_GRAPH_PASSWORD"); v != "" {
		c.GraphDB.Password = v
	}
	if v := os.Getenv("NEXSIM_GRAPH_FIXTURE"); v != "" {
		c.GraphDB.Fixture = v
	}
	if v := os.Getenv("NEXSIM_RELATIONAL_DSN"); v != "" {
		c.RelationalDB.DSN = v
	}
	if v := os.Getenv("NEXSIM_SERVER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("PREDICATES_UPPER"); v != "" {
		c.PredicatesUpper = v == "true" || v == "1"
	}
	if v := os.Getenv("NEXSIM_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.RequestTimeout = d
		}
	}
}

// Validate checks that the configuration is self-consistent enough to boot.
func (c *Config) Validate() error {
	if c.GraphDB.URI == "" {
		return fmt.Errorf("config: graph_db.uri must not be empty")
	}
	if c.RelationalDB.DSN == "" && c.RelationalDB.Host == "" {
		return fmt.Errorf("config: relational_db needs either dsn or host")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("config: request_timeout must be positive")
	}
	return nil
}
