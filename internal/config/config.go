// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	JWTSecret      string `mapstructure:"JWT_SECRET"`
	Port           string `mapstructure:"PORT"`
	DBDriver       string `mapstructure:"DB_DRIVER"` // "postgres" or "sqlite"
	DBHost         string `mapstructure:"DB_HOST"`
	DBPort         string `mapstructure:"DB_PORT"`
	DBUser         string `mapstructure:"DB_USER"`
	DBPassword     string `mapstructure:"DB_PASSWORD"`
	DBName         string `mapstructure:"DB_NAME"`
	DBSSLMode      string `mapstructure:"DB_SSLMODE"`
	SQLitePath     string `mapstructure:"SQLITE_PATH"`
	RedisURL       string `mapstructure:"REDIS_URL"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`
	Env            string `mapstructure:"APP_ENV"`

	JudgeProvider     string `mapstructure:"JUDGE_PROVIDER"` // "http" or "heuristic"
	JudgeBaseURL      string `mapstructure:"JUDGE_BASE_URL"`
	JudgeAPIKey       string `mapstructure:"JUDGE_API_KEY"`
	JudgeModels       string `mapstructure:"JUDGE_MODELS"` // comma-separated, tried in order
	JudgeTimeoutSecs  int    `mapstructure:"JUDGE_TIMEOUT_SECONDS"`
	JudgeDenylistPath string `mapstructure:"JUDGE_DENYLIST_PATH"`

	TracingExporter string `mapstructure:"TRACING_EXPORTER"` // "stdout", "otlp" or ""
	OTLPEndpoint    string `mapstructure:"OTLP_ENDPOINT"`
}

// LoadConfig loads application configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// Initial read to get APP_ENV if set in base config
	// We intentionally ignore this error as the config file may not exist yet
	_ = viper.ReadInConfig()

	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	if env != "development" && env != "" {
		viper.SetConfigName("config." + env)
		if err := viper.MergeInConfig(); err != nil {
			log.Printf("No profile-specific config 'config.%s.yml'; using base config and environment", env)
		}
	}

	// Set default values for development
	viper.SetDefault("PORT", "8460")
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "user")
	viper.SetDefault("DB_PASSWORD", "password")
	viper.SetDefault("DB_NAME", "inkwell")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("SQLITE_PATH", "inkwell.db")
	viper.SetDefault("REDIS_URL", "localhost:6379")
	viper.SetDefault("JWT_SECRET", "your-secret-key-change-in-production")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("JUDGE_PROVIDER", "heuristic")
	viper.SetDefault("JUDGE_BASE_URL", "")
	viper.SetDefault("JUDGE_API_KEY", "")
	viper.SetDefault("JUDGE_MODELS", "critic-v2,critic-v2-mini")
	viper.SetDefault("JUDGE_TIMEOUT_SECONDS", 10)
	viper.SetDefault("JUDGE_DENYLIST_PATH", "")
	viper.SetDefault("TRACING_EXPORTER", "")
	viper.SetDefault("OTLP_ENDPOINT", "localhost:4318")

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate ensures that required configuration values are present and meet security standards.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", c.DBDriver)
	}
	switch c.JudgeProvider {
	case "http":
		if c.JudgeBaseURL == "" {
			return errors.New("JUDGE_BASE_URL is required when JUDGE_PROVIDER is http")
		}
		if len(c.JudgeModelList()) == 0 {
			return errors.New("JUDGE_MODELS must list at least one model")
		}
	case "heuristic":
	default:
		return fmt.Errorf("JUDGE_PROVIDER must be http or heuristic, got %q", c.JudgeProvider)
	}
	if c.JudgeTimeoutSecs <= 0 {
		return errors.New("JUDGE_TIMEOUT_SECONDS must be positive")
	}

	isProduction := c.Env == "production" || c.Env == "prod"

	// Strict checks for production
	if isProduction {
		if c.JWTSecret == "your-secret-key-change-in-production" {
			return errors.New("JWT_SECRET must be changed from the default value in production")
		}
		if len(c.JWTSecret) < 32 {
			return errors.New("JWT_SECRET must be at least 32 characters in production")
		}
		if c.DBDriver == "sqlite" {
			return errors.New("DB_DRIVER sqlite is not supported in production")
		}
		if c.DBPassword == "password" || c.DBPassword == "" {
			return errors.New("a strong DB_PASSWORD is required in production")
		}
		if c.DBSSLMode == "disable" || c.DBSSLMode == "" {
			log.Println("WARNING: DB_SSLMODE is 'disable' in production. It is highly recommended to use SSL for database connections.")
		}
		if c.AllowedOrigins == "*" {
			log.Println("WARNING: ALLOWED_ORIGINS is set to '*' in production. This is insecure.")
		}
	}

	return nil
}

// JudgeModelList returns the ordered judge model fallback list.
func (c *Config) JudgeModelList() []string {
	var models []string
	for _, m := range strings.Split(c.JudgeModels, ",") {
		if m = strings.TrimSpace(m); m != "" {
			models = append(models, m)
		}
	}
	return models
}

// JudgeTimeout returns the bounded timeout for a single judge call.
func (c *Config) JudgeTimeout() time.Duration {
	return time.Duration(c.JudgeTimeoutSecs) * time.Second
}
