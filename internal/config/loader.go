// Package config provides configuration management for the Hoopsight application.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load reads and parses the configuration from file and environment variables.
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the configuration (${VAR} syntax)
	expanded := os.ExpandEnv(string(data))

	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	v.SetEnvPrefix("HOOPSIGHT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults applies reasonable defaults for optional fields
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.log_level", "info")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.max_idle_connections", 2)
	v.SetDefault("stats.timeout_seconds", 30)
	v.SetDefault("stats.cache_ttl_seconds", 300)
	v.SetDefault("stats.rate_limit_per_sec", 5.0)
	v.SetDefault("odds.timeout_seconds", 30)
	v.SetDefault("odds.cache_ttl_seconds", 60)
	v.SetDefault("odds.rate_limit_per_sec", 5.0)
	v.SetDefault("prediction.home_advantage", 100.0)
	v.SetDefault("prediction.form_window", 10)
	v.SetDefault("prediction.persist_breakdowns", true)
	v.SetDefault("scheduler.refresh_cron", "0 6 * * *")
	v.SetDefault("scheduler.predict_cron", "0 9 * * *")
	v.SetDefault("scheduler.ratings_rebuild_cron", "0 4 * * 1")
	v.SetDefault("metrics.address", ":9090")
	v.SetDefault("health.port", "8080")
}
