package datasource

import (
	"fmt"
	"log"
	"time"

	"github.com/yourusername/hoopsight/internal/config"
)

// Factory creates provider implementations based on configuration
type Factory struct {
	logger *log.Logger
	config *config.Config
}

// NewFactory creates a new data source factory
func NewFactory(cfg *config.Config, logger *log.Logger) *Factory {
	return &Factory{
		logger: logger,
		config: cfg,
	}
}

// NewStatsProvider builds the configured stats provider wrapped in a TTL cache
func (f *Factory) NewStatsProvider() (StatsProvider, error) {
	if f.config.Stats.BaseURL == "" {
		return nil, fmt.Errorf("stats provider base URL is required")
	}

	httpCfg := DefaultHTTPClientConfig()
	httpCfg.Timeout = f.config.StatsTimeout()
	httpCfg.RateLimit = f.config.Stats.RateLimitPerSec
	httpClient := NewRateLimitedHTTPClient(httpCfg, f.logger)

	client := NewStatsAPIClient(httpClient, f.config.Stats.BaseURL, f.config.Stats.APIKey, f.logger)
	ttl := time.Duration(f.config.Stats.CacheTTLSeconds) * time.Second

	return NewCachedStatsProvider(client, ttl), nil
}

// NewOddsProvider builds the configured odds provider wrapped in a TTL cache
func (f *Factory) NewOddsProvider() (OddsProvider, error) {
	if f.config.Odds.BaseURL == "" {
		return nil, fmt.Errorf("odds provider base URL is required")
	}
	if f.config.Odds.APIKey == "" {
		return nil, fmt.Errorf("odds provider API key is required")
	}

	httpCfg := DefaultHTTPClientConfig()
	httpCfg.Timeout = f.config.OddsTimeout()
	httpCfg.RateLimit = f.config.Odds.RateLimitPerSec
	httpClient := NewRateLimitedHTTPClient(httpCfg, f.logger)

	client := NewOddsAPIClient(httpClient, f.config.Odds.BaseURL, f.config.Odds.APIKey, f.config.Odds.Bookmakers, f.logger)
	ttl := time.Duration(f.config.Odds.CacheTTLSeconds) * time.Second

	return NewCachedOddsProvider(client, ttl), nil
}
