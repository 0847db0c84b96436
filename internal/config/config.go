// Package config provides configuration management for the Hoopsight application.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database" validate:"required"`
	Stats      StatsConfig      `mapstructure:"stats" validate:"required"`
	Odds       OddsConfig       `mapstructure:"odds" validate:"required"`
	Betting    BettingConfig    `mapstructure:"betting" validate:"required"`
	Scheduler  SchedulerConfig  `mapstructure:"scheduler" validate:"required"`
	Metrics    MetricsConfig    `mapstructure:"metrics" validate:"required"`
	Health     HealthConfig     `mapstructure:"health"`
	Prediction PredictionConfig `mapstructure:"prediction" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host" validate:"required"`
	Port               int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required"`
	User               string `mapstructure:"user" validate:"required"`
	Password           string `mapstructure:"password" validate:"required"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"required,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"required,gt=0"`
}

// StatsConfig represents the team/player statistics provider configuration
type StatsConfig struct {
	BaseURL         string  `mapstructure:"base_url" validate:"required,url"`
	APIKey          string  `mapstructure:"api_key"`
	TimeoutSeconds  int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	CacheTTLSeconds int     `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
	RateLimitPerSec float64 `mapstructure:"rate_limit_per_sec" validate:"required,gt=0"`
}

// OddsConfig represents the market odds provider configuration
type OddsConfig struct {
	BaseURL         string   `mapstructure:"base_url" validate:"required,url"`
	APIKey          string   `mapstructure:"api_key"`
	Bookmakers      []string `mapstructure:"bookmakers" validate:"required,min=1"`
	TimeoutSeconds  int      `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	CacheTTLSeconds int      `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
	RateLimitPerSec float64  `mapstructure:"rate_limit_per_sec" validate:"required,gt=0"`
}

// BettingConfig represents bankroll and signal filtering configuration
type BettingConfig struct {
	Bankroll               float64 `mapstructure:"bankroll" validate:"required,gt=0"`
	MaxStakePerBet         float64 `mapstructure:"max_stake_per_bet" validate:"required,gt=0"`
	MinConfidenceThreshold float64 `mapstructure:"min_confidence_threshold" validate:"gte=0,lte=1"`
}

// PredictionConfig represents prediction pipeline configuration
type PredictionConfig struct {
	SeasonYear        int     `mapstructure:"season_year" validate:"required,gt=2000"`
	HomeAdvantage     float64 `mapstructure:"home_advantage" validate:"gte=0"`
	FormWindow        int     `mapstructure:"form_window" validate:"required,gt=0"`
	PersistBreakdowns bool    `mapstructure:"persist_breakdowns"`
}

// SchedulerConfig represents scheduled job configuration
type SchedulerConfig struct {
	Enabled            bool   `mapstructure:"enabled"`
	RefreshCron        string `mapstructure:"refresh_cron" validate:"required"`
	PredictCron        string `mapstructure:"predict_cron" validate:"required"`
	RatingsRebuildCron string `mapstructure:"ratings_rebuild_cron" validate:"required"`
}

// MetricsConfig represents Prometheus metrics configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address" validate:"required"`
}

// HealthConfig represents the health check server configuration
type HealthConfig struct {
	Port string `mapstructure:"port"`
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// StatsTimeout returns the stats provider timeout as a duration
func (c *Config) StatsTimeout() time.Duration {
	return time.Duration(c.Stats.TimeoutSeconds) * time.Second
}

// OddsTimeout returns the odds provider timeout as a duration
func (c *Config) OddsTimeout() time.Duration {
	return time.Duration(c.Odds.TimeoutSeconds) * time.Second
}

// DSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}
