package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Supported database types
const (
	DatabaseTypeMySQL  = "mysql"
	DatabaseTypeSQLite = "sqlite"
	DatabaseTypeMemory = "memory"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Idea     IdeaConfig     `mapstructure:"idea"`
	Security SecurityConfig `mapstructure:"security"`
	Events   EventsConfig   `mapstructure:"events"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Hostname     string        `mapstructure:"hostname"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// DatabaseConfig holds database configuration.
// Type selects the persistence strategy: mysql (remote relational),
// sqlite (local-only file) or memory (process-local, not durable).
type DatabaseConfig struct {
	Type            string        `mapstructure:"type"`
	Hostname        string        `mapstructure:"hostname"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	Path            string        `mapstructure:"path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// IdeaConfig holds idea lifecycle configuration
type IdeaConfig struct {
	ReferencePrefix string               `mapstructure:"reference_prefix"`
	IDMaxAttempts   int                  `mapstructure:"id_max_attempts"`
	Classification  ClassificationConfig `mapstructure:"classification"`
}

// ClassificationConfig allows the keyword lists of the classification engine
// to be replaced. Empty lists keep the built-in defaults.
type ClassificationConfig struct {
	AutomationKeywords []string `mapstructure:"automation_keywords"`
	ProcessKeywords    []string `mapstructure:"process_keywords"`
}

// SecurityConfig holds identity resolution configuration
type SecurityConfig struct {
	JWT JWTConfig `mapstructure:"jwt"`
}

// JWTConfig configures verification of identity tokens issued by the
// external identity provider
type JWTConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Secret  string `mapstructure:"secret"`
	Issuer  string `mapstructure:"issuer"`
}

// MinJWTSecretLength is the shortest accepted HMAC secret
const MinJWTSecretLength = 32

// Validate checks the signing secret. It is not part of Load so that CLI
// commands which never touch identities run without one.
func (j JWTConfig) Validate() error {
	if len(j.Secret) < MinJWTSecretLength {
		return fmt.Errorf("jwt secret must be at least %d characters", MinJWTSecretLength)
	}
	return nil
}

// EventsConfig holds lifecycle event publishing configuration
type EventsConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	NATSURL       string        `mapstructure:"nats_url"`
	SubjectPrefix string        `mapstructure:"subject_prefix"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// Load reads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// Set config file path
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath("../configs")
		v.AddConfigPath("../../configs")
		v.AddConfigPath(".")
	}

	// Read from environment variables, e.g. IDEA_MGT_DATABASE_TYPE
	v.SetEnvPrefix("IDEA_MGT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read the config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Unmarshal config
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// setDefaults registers fallback values for optional settings
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.hostname", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)

	v.SetDefault("database.type", DatabaseTypeSQLite)
	v.SetDefault("database.path", "ideas.sqlite")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("idea.reference_prefix", "IDEA")
	v.SetDefault("idea.id_max_attempts", 5)

	v.SetDefault("security.jwt.enabled", true)
	// registered so IDEA_MGT_SECURITY_JWT_SECRET reaches Unmarshal
	v.SetDefault("security.jwt.secret", "")
	v.SetDefault("security.jwt.issuer", "idea-identity-provider")

	v.SetDefault("events.subject_prefix", "ideas")
	v.SetDefault("events.timeout", 2*time.Second)
}

// validateConfig validates the configuration
func validateConfig(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	switch config.Database.Type {
	case DatabaseTypeMySQL:
		if config.Database.Hostname == "" {
			return fmt.Errorf("database hostname is required")
		}
		if config.Database.Database == "" {
			return fmt.Errorf("database name is required")
		}
	case DatabaseTypeSQLite:
		if config.Database.Path == "" {
			return fmt.Errorf("database path is required for sqlite")
		}
	case DatabaseTypeMemory:
	default:
		return fmt.Errorf("unsupported database type: %s", config.Database.Type)
	}

	if config.Idea.IDMaxAttempts <= 0 {
		return fmt.Errorf("idea id_max_attempts must be positive")
	}

	if config.Events.Enabled && config.Events.NATSURL == "" {
		return fmt.Errorf("events nats_url is required when events are enabled")
	}

	return nil
}

// GetDSN returns the database connection string for the configured driver
func (d *DatabaseConfig) GetDSN() string {
	if d.Type == DatabaseTypeSQLite {
		return "file:" + d.Path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&multiStatements=true",
		d.User,
		d.Password,
		d.Hostname,
		d.Port,
		d.Database,
	)
}

// DriverName returns the database/sql driver name for the configured type
func (d *DatabaseConfig) DriverName() string {
	if d.Type == DatabaseTypeSQLite {
		return "sqlite"
	}
	return "mysql"
}

// GetServerAddress returns the server address in host:port format
func (s *ServerConfig) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", s.Hostname, s.Port)
}
