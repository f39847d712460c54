package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Supported values for DBDriver.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

// ConfigFileEnv names the environment variable pointing at an optional YAML file.
const ConfigFileEnv = "CONFIG_FILE"

type Config struct {
	DBDriver   string `koanf:"db_driver"`
	DBHost     string `koanf:"db_host"`
	DBPort     string `koanf:"db_port"`
	DBUser     string `koanf:"db_user"`
	DBPassword string `koanf:"db_password"`
	DBName     string `koanf:"db_name"`
	// DBDSN overrides the DSN assembled from the DB* fields when set.
	DBDSN    string `koanf:"db_dsn"`
	MongoURI string `koanf:"mongo_uri"`

	ServerPort   string        `koanf:"server_port"`
	GinMode      string        `koanf:"gin_mode"`
	LogLevel     string        `koanf:"log_level"`
	LogFormat    string        `koanf:"log_format"`
	StoreTimeout time.Duration `koanf:"store_timeout"`

	OpenAIAPIKey         string        `koanf:"openai_api_key"`
	AIBreakerMaxFailures int           `koanf:"ai_breaker_max_failures"`
	AIBreakerTimeout     time.Duration `koanf:"ai_breaker_timeout"`
}

var defaults = map[string]any{
	"db_driver":               DriverMySQL,
	"db_host":                 "localhost",
	"db_port":                 "3306",
	"db_user":                 "listuser",
	"db_password":             "listpassword",
	"db_name":                 "lists",
	"db_dsn":                  "",
	"mongo_uri":               "mongodb://localhost:27017",
	"server_port":             "3000",
	"gin_mode":                "debug",
	"log_level":               "info",
	"log_format":              "json",
	"store_timeout":           "10s",
	"openai_api_key":          "",
	"ai_breaker_max_failures": 3,
	"ai_breaker_timeout":      "30s",
}

// Load builds the configuration from defaults, then the YAML file named by
// CONFIG_FILE (if any), then environment variables such as DB_HOST.
func Load() (*Config, error) {
	k := koanf.New(".")

	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("failed to set default %s: %w", key, err)
		}
	}

	if path := os.Getenv(ConfigFileEnv); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	err := k.Load(env.Provider(".", env.Opt{
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(key)
			if _, known := defaults[key]; !known {
				return "", nil
			}
			return key, value
		},
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail late at startup.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverMySQL, DriverPostgres, DriverSQLite, DriverMongo, DriverMemory:
	default:
		return fmt.Errorf("unsupported db_driver %q", c.DBDriver)
	}
	if c.ServerPort == "" {
		return fmt.Errorf("server_port must not be empty")
	}
	if c.StoreTimeout < 0 {
		return fmt.Errorf("store_timeout must not be negative, got %s", c.StoreTimeout)
	}
	if c.AIBreakerMaxFailures < 1 {
		return fmt.Errorf("ai_breaker_max_failures must be at least 1, got %d", c.AIBreakerMaxFailures)
	}
	return nil
}
