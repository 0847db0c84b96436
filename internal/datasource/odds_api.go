package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const oddsSourceName = "odds_api"

// OddsAPIClient implements OddsProvider against the hosted odds API
type OddsAPIClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	apiKey     string
	bookmakers []string
	logger     *log.Logger
}

// oddsAPIEvent is the provider's per-game payload
type oddsAPIEvent struct {
	ID         string        `json:"id"`
	HomeTeam   string        `json:"home_team"`
	AwayTeam   string        `json:"away_team"`
	Bookmakers []oddsAPIBook `json:"bookmakers"`
}

type oddsAPIBook struct {
	Key     string          `json:"key"`
	Markets []oddsAPIMarket `json:"markets"`
}

type oddsAPIMarket struct {
	Key      string           `json:"key"`
	Outcomes []oddsAPIOutcome `json:"outcomes"`
}

type oddsAPIOutcome struct {
	Name        string   `json:"name"`
	Price       int      `json:"price"`
	Point       *float64 `json:"point"`
	Description string   `json:"description"`
}

// NewOddsAPIClient creates a new odds API client
func NewOddsAPIClient(httpClient *RateLimitedHTTPClient, baseURL, apiKey string, bookmakers []string, logger *log.Logger) *OddsAPIClient {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &OddsAPIClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		bookmakers: bookmakers,
		logger:     logger,
	}
}

// FetchGameOdds retrieves current game lines for a calendar day
func (c *OddsAPIClient) FetchGameOdds(ctx context.Context, date time.Time) ([]GameOddsData, error) {
	url := fmt.Sprintf("%s/odds?date=%s&bookmakers=%s&markets=h2h,spreads,totals&apiKey=%s",
		c.baseURL, date.Format("2006-01-02"), strings.Join(c.bookmakers, ","), c.apiKey)

	var events []oddsAPIEvent
	if err := c.getJSON(ctx, url, &events); err != nil {
		return nil, err
	}

	fetchedAt := time.Now().UTC()
	var lines []GameOddsData
	for _, event := range events {
		for _, book := range event.Bookmakers {
			line := GameOddsData{
				SourceGameID: event.ID,
				HomeTeamCode: event.HomeTeam,
				AwayTeamCode: event.AwayTeam,
				Bookmaker:    book.Key,
				FetchedAt:    fetchedAt,
			}
			c.applyMarkets(&line, event, book.Markets)
			lines = append(lines, line)
		}
	}

	return lines, nil
}

// FetchPropLines retrieves posted player prop markets for a game
func (c *OddsAPIClient) FetchPropLines(ctx context.Context, sourceGameID string) ([]PropLineData, error) {
	url := fmt.Sprintf("%s/events/%s/odds?bookmakers=%s&markets=player_points,player_rebounds,player_assists,player_threes&apiKey=%s",
		c.baseURL, sourceGameID, strings.Join(c.bookmakers, ","), c.apiKey)

	var event oddsAPIEvent
	if err := c.getJSON(ctx, url, &event); err != nil {
		return nil, err
	}

	fetchedAt := time.Now().UTC()
	propsByKey := make(map[string]*PropLineData)
	for _, book := range event.Bookmakers {
		for _, market := range book.Markets {
			statType, ok := propStatType(market.Key)
			if !ok {
				continue
			}
			for _, outcome := range market.Outcomes {
				if outcome.Point == nil {
					continue
				}
				key := book.Key + "|" + outcome.Description + "|" + statType
				prop, exists := propsByKey[key]
				if !exists {
					prop = &PropLineData{
						SourceGameID: sourceGameID,
						PlayerID:     outcome.Description,
						PlayerName:   outcome.Description,
						StatType:     statType,
						Line:         *outcome.Point,
						Bookmaker:    book.Key,
						FetchedAt:    fetchedAt,
					}
					propsByKey[key] = prop
				}
				price := outcome.Price
				switch outcome.Name {
				case "Over":
					prop.OverPrice = &price
				case "Under":
					prop.UnderPrice = &price
				}
			}
		}
	}

	props := make([]PropLineData, 0, len(propsByKey))
	for _, prop := range propsByKey {
		props = append(props, *prop)
	}

	return props, nil
}

// Name returns the provider name
func (c *OddsAPIClient) Name() string {
	return oddsSourceName
}

func (c *OddsAPIClient) applyMarkets(line *GameOddsData, event oddsAPIEvent, markets []oddsAPIMarket) {
	for _, market := range markets {
		switch market.Key {
		case "h2h":
			for _, outcome := range market.Outcomes {
				price := outcome.Price
				switch outcome.Name {
				case event.HomeTeam:
					line.HomeMoneyline = &price
				case event.AwayTeam:
					line.AwayMoneyline = &price
				}
			}
		case "spreads":
			for _, outcome := range market.Outcomes {
				price := outcome.Price
				switch outcome.Name {
				case event.HomeTeam:
					line.HomeSpread = outcome.Point
					line.HomeSpreadPrice = &price
				case event.AwayTeam:
					line.AwaySpreadPrice = &price
				}
			}
		case "totals":
			for _, outcome := range market.Outcomes {
				price := outcome.Price
				switch outcome.Name {
				case "Over":
					line.Total = outcome.Point
					line.OverPrice = &price
				case "Under":
					line.UnderPrice = &price
				}
			}
		}
	}
}

func (c *OddsAPIClient) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return NewDataSourceError(oddsSourceName, ErrCodeNetworkError, "failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return NewDataSourceError(oddsSourceName, ErrCodeNetworkError, "request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return NewDataSourceError(oddsSourceName, ErrCodeAuthenticationFailed, "invalid API key", nil)
	case resp.StatusCode == http.StatusTooManyRequests:
		return NewDataSourceError(oddsSourceName, ErrCodeRateLimitExceeded, "rate limit exceeded", nil)
	case resp.StatusCode == http.StatusNotFound:
		return NewDataSourceError(oddsSourceName, ErrCodeNotFound, "event not found", nil)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(resp.Body)
		return NewDataSourceError(oddsSourceName, ErrCodeServerError,
			fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return NewDataSourceError(oddsSourceName, ErrCodeInvalidData, "failed to parse response", err)
	}

	return nil
}

// propStatType maps provider prop market keys onto the engine's stat vocabulary
func propStatType(marketKey string) (string, bool) {
	switch marketKey {
	case "player_points":
		return "points", true
	case "player_rebounds":
		return "rebounds", true
	case "player_assists":
		return "assists", true
	case "player_threes":
		return "threes", true
	case "player_steals":
		return "steals", true
	case "player_blocks":
		return "blocks", true
	case "player_points_rebounds_assists":
		return "pra", true
	default:
		return "", false
	}
}
