package datasource

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// CachedStatsProvider decorates a StatsProvider with an in-memory TTL
// cache so repeated reads within a refresh window avoid provider calls.
type CachedStatsProvider struct {
	provider StatsProvider
	cache    *gocache.Cache
}

// NewCachedStatsProvider wraps a stats provider with caching
func NewCachedStatsProvider(provider StatsProvider, ttl time.Duration) *CachedStatsProvider {
	return &CachedStatsProvider{
		provider: provider,
		cache:    gocache.New(ttl, 2*ttl),
	}
}

// FetchGames retrieves games, serving from cache when fresh
func (c *CachedStatsProvider) FetchGames(ctx context.Context, startDate, endDate time.Time) ([]GameData, error) {
	key := fmt.Sprintf("games:%s:%s", startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))
	if cached, found := c.cache.Get(key); found {
		return cached.([]GameData), nil
	}

	games, err := c.provider.FetchGames(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, games)

	return games, nil
}

// FetchTeamStats retrieves season aggregates, serving from cache when fresh
func (c *CachedStatsProvider) FetchTeamStats(ctx context.Context, seasonYear int) ([]TeamStatsData, error) {
	key := fmt.Sprintf("team_stats:%d", seasonYear)
	if cached, found := c.cache.Get(key); found {
		return cached.([]TeamStatsData), nil
	}

	stats, err := c.provider.FetchTeamStats(ctx, seasonYear)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, stats)

	return stats, nil
}

// FetchPlayerAverages retrieves roster averages, serving from cache when fresh
func (c *CachedStatsProvider) FetchPlayerAverages(ctx context.Context, teamCode string) ([]PlayerAveragesData, error) {
	key := "player_averages:" + teamCode
	if cached, found := c.cache.Get(key); found {
		return cached.([]PlayerAveragesData), nil
	}

	averages, err := c.provider.FetchPlayerAverages(ctx, teamCode)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, averages)

	return averages, nil
}

// Name returns the underlying provider name
func (c *CachedStatsProvider) Name() string {
	return c.provider.Name()
}

// CachedOddsProvider decorates an OddsProvider with a short TTL cache.
// Odds move quickly, so the TTL here should be much shorter than for stats.
type CachedOddsProvider struct {
	provider OddsProvider
	cache    *gocache.Cache
}

// NewCachedOddsProvider wraps an odds provider with caching
func NewCachedOddsProvider(provider OddsProvider, ttl time.Duration) *CachedOddsProvider {
	return &CachedOddsProvider{
		provider: provider,
		cache:    gocache.New(ttl, 2*ttl),
	}
}

// FetchGameOdds retrieves game lines, serving from cache when fresh
func (c *CachedOddsProvider) FetchGameOdds(ctx context.Context, date time.Time) ([]GameOddsData, error) {
	key := "game_odds:" + date.Format("2006-01-02")
	if cached, found := c.cache.Get(key); found {
		return cached.([]GameOddsData), nil
	}

	lines, err := c.provider.FetchGameOdds(ctx, date)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, lines)

	return lines, nil
}

// FetchPropLines retrieves prop markets, serving from cache when fresh
func (c *CachedOddsProvider) FetchPropLines(ctx context.Context, sourceGameID string) ([]PropLineData, error) {
	key := "prop_lines:" + sourceGameID
	if cached, found := c.cache.Get(key); found {
		return cached.([]PropLineData), nil
	}

	props, err := c.provider.FetchPropLines(ctx, sourceGameID)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, props)

	return props, nil
}

// Name returns the underlying provider name
func (c *CachedOddsProvider) Name() string {
	return c.provider.Name()
}
