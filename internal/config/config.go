package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all configuration options for the task tracker
type Config struct {
	Database   DatabaseConfig
	Server     ServerConfig
	Bot        BotConfig
	Validation ValidationConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string        `env:"TB_DB_DIR"`
	Filename       string        `env:"TB_DB_FILENAME"`
	QueryTimeout   time.Duration `env:"TB_DB_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `env:"TB_DB_WRITE_TIMEOUT"`
	DirPermissions uint32        `env:"TB_DB_DIR_PERMISSIONS"`
}

// ServerConfig holds the HTTP listen configuration for the task service
type ServerConfig struct {
	Host string `env:"TB_HTTP_HOST"`
	Port int    `env:"TB_HTTP_PORT"`
}

// BotConfig holds the Telegram transport configuration
type BotConfig struct {
	Token          string        `env:"TB_BOT_TOKEN"`
	APIURL         string        `env:"TB_API_URL"`
	RequestTimeout time.Duration `env:"TB_API_TIMEOUT"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TaskNameMaxLength int `env:"TB_TASK_NAME_MAX"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".tasktrack")

	return &Config{
		Database: DatabaseConfig{
			Dir:            defaultDBDir,
			Filename:       "tasks.db",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8000,
		},
		Bot: BotConfig{
			APIURL:         "http://localhost:8000",
			RequestTimeout: 10 * time.Second,
		},
		Validation: ValidationConfig{
			TaskNameMaxLength: 100,
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// ListenAddr returns the host:port pair the HTTP server binds to
func (c *Config) ListenAddr() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if dir := os.Getenv("TB_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("TB_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if timeout := os.Getenv("TB_DB_QUERY_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Database.QueryTimeout = d
		}
	}
	if timeout := os.Getenv("TB_DB_WRITE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Database.WriteTimeout = d
		}
	}
	if perms := os.Getenv("TB_DB_DIR_PERMISSIONS"); perms != "" {
		if p, err := strconv.ParseUint(perms, 8, 32); err == nil {
			c.Database.DirPermissions = uint32(p)
		}
	}

	// Server configuration
	if host := os.Getenv("TB_HTTP_HOST"); host != "" {
		c.Server.Host = host
	}
	if port := os.Getenv("TB_HTTP_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	// Bot configuration
	if token := os.Getenv("TB_BOT_TOKEN"); token != "" {
		c.Bot.Token = token
	}
	if url := os.Getenv("TB_API_URL"); url != "" {
		c.Bot.APIURL = url
	}
	if timeout := os.Getenv("TB_API_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Bot.RequestTimeout = d
		}
	}

	// Validation configuration
	if maxLen := os.Getenv("TB_TASK_NAME_MAX"); maxLen != "" {
		if n, err := strconv.Atoi(maxLen); err == nil {
			c.Validation.TaskNameMaxLength = n
		}
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Database.WriteTimeout <= 0 {
		return &ConfigError{Field: "database.write_timeout", Message: "write timeout must be positive"}
	}

	if c.Server.Host == "" {
		return &ConfigError{Field: "server.host", Message: "listen host cannot be empty"}
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return &ConfigError{Field: "server.port", Message: "listen port must be between 1 and 65535"}
	}

	if c.Bot.APIURL == "" {
		return &ConfigError{Field: "bot.api_url", Message: "task service base URL cannot be empty"}
	}
	if c.Bot.RequestTimeout <= 0 {
		return &ConfigError{Field: "bot.request_timeout", Message: "request timeout must be positive"}
	}

	if c.Validation.TaskNameMaxLength < 1 {
		return &ConfigError{Field: "validation.task_name_max_length", Message: "task name maximum length must be at least 1"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
