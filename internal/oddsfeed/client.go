package oddsfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/octagon-edge/internal/config"
	"github.com/yourusername/octagon-edge/internal/datasource"
	"github.com/yourusername/octagon-edge/internal/metrics"
	"github.com/yourusername/octagon-edge/internal/models"
)

// Client is the polling REST client for the odds feed API. It backs the
// stream: polls fill gaps after disconnects and serve one-shot lookups.
type Client struct {
	httpClient *datasource.RateLimitedHTTPClient
	apiURL     string
	apiKey     string
	bookmaker  string
	logger     *log.Logger
}

// apiQuote represents a moneyline quote from the odds feed API
type apiQuote struct {
	Bookmaker    string   `json:"bookmaker"`
	Fighter1     string   `json:"fighter1"`
	Fighter2     string   `json:"fighter2"`
	Fighter1Odds *float64 `json:"fighter1Odds"`
	Fighter2Odds *float64 `json:"fighter2Odds"`
	LastUpdate   string   `json:"lastUpdate"`
}

// NewClient creates a new odds feed REST client
func NewClient(cfg *config.OddsFeedConfig, httpClient *datasource.RateLimitedHTTPClient, logger *log.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		apiURL:     cfg.APIURL,
		apiKey:     cfg.APIKey,
		bookmaker:  cfg.Bookmaker,
		logger:     logger,
	}
}

// FetchEventOdds retrieves the current quotes for every fight on an event
func (c *Client) FetchEventOdds(ctx context.Context, event string) ([]*models.FightOddsQuote, error) {
	endpoint := fmt.Sprintf("%s/odds?event=%s&bookmaker=%s",
		c.apiURL, url.QueryEscape(event), url.QueryEscape(c.bookmaker))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create odds request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event odds: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("odds feed returned status %d", resp.StatusCode)
	}

	var quotes []apiQuote
	if err := json.NewDecoder(resp.Body).Decode(&quotes); err != nil {
		return nil, fmt.Errorf("failed to parse odds response: %w", err)
	}

	result := make([]*models.FightOddsQuote, 0, len(quotes))
	for _, quote := range quotes {
		converted := c.convertQuote(&quote)
		metrics.RecordOddsQuote(converted.Bookmaker, "poll")
		result = append(result, converted)
	}

	return result, nil
}

func (c *Client) convertQuote(quote *apiQuote) *models.FightOddsQuote {
	lastUpdate, err := time.Parse(time.RFC3339, quote.LastUpdate)
	if err != nil {
		lastUpdate = time.Now().UTC()
	}

	bookmaker := quote.Bookmaker
	if bookmaker == "" {
		bookmaker = c.bookmaker
	}

	return &models.FightOddsQuote{
		ID:           uuid.New(),
		Bookmaker:    bookmaker,
		Fighter1:     quote.Fighter1,
		Fighter2:     quote.Fighter2,
		Fighter1Odds: quote.Fighter1Odds,
		Fighter2Odds: quote.Fighter2Odds,
		LastUpdate:   lastUpdate,
	}
}
