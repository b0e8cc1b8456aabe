package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// Database drivers understood by the store
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DatabaseConfig selects and locates the entity store
type DatabaseConfig struct {
	Driver string `yaml:"driver" json:"driver"` // sqlite or postgres
	Path   string `yaml:"path" json:"path"`     // SQLite file
	URL    string `yaml:"url" json:"url"`       // Postgres DSN
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr      string `yaml:"addr" json:"addr"`
	TokenHash string `yaml:"token_hash" json:"-"` // bcrypt hash of the API token, empty disables auth
}

// Config holds user preferences
type Config struct {
	ConfirmDelete bool `yaml:"confirm_delete" json:"confirm_delete"` // Require confirmation for delete

	Database DatabaseConfig `yaml:"database" json:"database"`
	PrefsDir string         `yaml:"prefs_dir" json:"prefs_dir"` // Directory for the preferences store
	Server   ServerConfig   `yaml:"server" json:"server"`

	// Logging configuration
	LogLevel   string `yaml:"log_level" json:"log_level"`     // Log level: DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file" json:"log_file"`       // Path to log file
	LogConsole bool   `yaml:"log_console" json:"log_console"` // Enable console logging

	path string
}

// HomeDir returns the application directory (~/.ideaful)
func HomeDir() string {
	home, err := homedir.Dir()
	if err != nil || home == "" {
		return ".ideaful"
	}
	return filepath.Join(home, ".ideaful")
}

// DefaultPath returns the config file location, honoring IDEAFUL_CONFIG
func DefaultPath() string {
	return getEnv("IDEAFUL_CONFIG", filepath.Join(HomeDir(), "config.yaml"))
}

// DefaultConfig returns default settings
func DefaultConfig() *Config {
	dir := HomeDir()

	port := getEnv("PORT", "8080")

	return &Config{
		ConfirmDelete: true,
		Database: DatabaseConfig{
			Driver: getEnv("IDEAFUL_DB_DRIVER", DriverSQLite),
			Path:   getEnv("IDEAFUL_DB_PATH", filepath.Join(dir, "ideaful.db")),
			URL:    getEnv("DATABASE_URL", ""),
		},
		PrefsDir: getEnv("IDEAFUL_PREFS_DIR", filepath.Join(dir, "prefs")),
		Server: ServerConfig{
			Addr:      ":" + port,
			TokenHash: getEnv("IDEAFUL_API_TOKEN_HASH", ""),
		},
		LogLevel:   getEnv("IDEAFUL_LOG_LEVEL", "INFO"),
		LogFile:    getEnv("IDEAFUL_LOG_FILE", filepath.Join(dir, "logs", "ideaful.log")),
		LogConsole: getEnv("IDEAFUL_LOG_CONSOLE", "false") == "true",
		path:       DefaultPath(),
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Load loads config from the default path
func Load() (*Config, error) {
	return LoadFile(DefaultPath())
}

// LoadFile loads config from path, returning defaults when the file does not exist.
// Environment variables take precedence over the file.
func LoadFile(path string) (*Config, error) {
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path: %w", err)
	}

	cfg := DefaultConfig()
	cfg.path = path

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, cfg.expand()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyEnv()

	return cfg, cfg.expand()
}

// applyEnv re-applies environment overrides on top of values read from the file
func (c *Config) applyEnv() {
	c.Database.Driver = getEnv("IDEAFUL_DB_DRIVER", c.Database.Driver)
	c.Database.Path = getEnv("IDEAFUL_DB_PATH", c.Database.Path)
	c.Database.URL = getEnv("DATABASE_URL", c.Database.URL)
	c.PrefsDir = getEnv("IDEAFUL_PREFS_DIR", c.PrefsDir)
	c.Server.TokenHash = getEnv("IDEAFUL_API_TOKEN_HASH", c.Server.TokenHash)
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Addr = ":" + port
	}
	c.LogLevel = getEnv("IDEAFUL_LOG_LEVEL", c.LogLevel)
	c.LogFile = getEnv("IDEAFUL_LOG_FILE", c.LogFile)
	if v := os.Getenv("IDEAFUL_LOG_CONSOLE"); v != "" {
		c.LogConsole = v == "true"
	}
}

// expand resolves ~ in every path setting
func (c *Config) expand() error {
	for _, p := range []*string{&c.Database.Path, &c.PrefsDir, &c.LogFile} {
		if *p == "" {
			continue
		}
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("failed to expand %q: %w", *p, err)
		}
		*p = expanded
	}
	return nil
}

// Validate checks that the database settings are usable
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("database.url is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
	return nil
}

// Path returns the file this config was loaded from
func (c *Config) Path() string {
	if c.path == "" {
		return DefaultPath()
	}
	return c.path
}

// Save writes the config back to the file it was loaded from
func (c *Config) Save() error {
	path := c.Path()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
