package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every configuration key read from the environment.
const EnvPrefix = "TASKAPI"

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// DATABASE_URL is accepted as an alias for TASKAPI_DATABASE_URL.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// Optional config file in the working directory
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicit bindings so Unmarshal sees keys that only exist in the
	// environment. The bare DATABASE_URL is the conventional single
	// connection-string variable.
	bindings := map[string][]string{
		"server.port":                        {"TASKAPI_SERVER_PORT"},
		"server.log_level":                   {"TASKAPI_SERVER_LOG_LEVEL"},
		"database.url":                       {"TASKAPI_DATABASE_URL", "DATABASE_URL"},
		"database.max_open_conns":            {"TASKAPI_DATABASE_MAX_OPEN_CONNS"},
		"database.max_idle_conns":            {"TASKAPI_DATABASE_MAX_IDLE_CONNS"},
		"database.conn_max_lifetime_minutes": {"TASKAPI_DATABASE_CONN_MAX_LIFETIME_MINUTES"},
		"auth.jwt_secret":                    {"TASKAPI_AUTH_JWT_SECRET"},
		"auth.token_lifetime_minutes":        {"TASKAPI_AUTH_TOKEN_LIFETIME_MINUTES"},
		"cors.allowed_origins":               {"TASKAPI_CORS_ALLOWED_ORIGINS"},
	}
	for key, envs := range bindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime_minutes", 5)
	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("cors.allowed_origins", []string{"*"})
}
