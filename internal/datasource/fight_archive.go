package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// FightArchiveClient implements DataSource for the fight results archive API
type FightArchiveClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	apiKey     string
	enabled    bool
	logger     *log.Logger
}

// archiveFight represents a fight result from the archive API
type archiveFight struct {
	ID          string `json:"id"`
	Winner      string `json:"winner"`
	Loser       string `json:"loser"`
	Method      string `json:"method"`
	Date        string `json:"date"`
	WeightClass string `json:"weightClass"`
	Event       string `json:"event"`
}

// NewFightArchiveClient creates a new fight archive API client
func NewFightArchiveClient(httpClient *RateLimitedHTTPClient, baseURL, apiKey string, enabled bool, logger *log.Logger) *FightArchiveClient {
	return &FightArchiveClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		enabled:    enabled,
		logger:     logger,
	}
}

// FetchFightRecords retrieves fight results on or after the cutoff
func (c *FightArchiveClient) FetchFightRecords(ctx context.Context, since time.Time) ([]FightRecordData, error) {
	if !c.enabled {
		return nil, NewDataSourceError("fight_archive", ErrCodeNetworkError, dataSourceDisabledMsg, nil)
	}

	url := fmt.Sprintf("%s/fights?since=%s", c.baseURL, since.Format("2006-01-02"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, NewDataSourceError("fight_archive", ErrCodeNetworkError, "failed to create request", err)
	}

	if c.apiKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, NewDataSourceError("fight_archive", ErrCodeNetworkError, "failed to fetch fights", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, NewDataSourceError("fight_archive", ErrCodeAuthenticationFailed, "invalid API key", nil)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, NewDataSourceError("fight_archive", ErrCodeRateLimitExceeded, "rate limit exceeded", nil)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, NewDataSourceError("fight_archive", ErrCodeServerError, fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}

	var fights []archiveFight
	if err := json.NewDecoder(resp.Body).Decode(&fights); err != nil {
		return nil, NewDataSourceError("fight_archive", ErrCodeInvalidData, "failed to parse response", err)
	}

	records := make([]FightRecordData, 0, len(fights))
	for _, fight := range fights {
		record, err := c.convertFight(&fight)
		if err != nil {
			if c.logger != nil {
				c.logger.Printf("Skipping fight %s: %v", fight.ID, err)
			}
			continue
		}
		records = append(records, *record)
	}

	return records, nil
}

// Name returns the data source name
func (c *FightArchiveClient) Name() string {
	return "fight_archive"
}

// IsEnabled returns whether this data source is enabled
func (c *FightArchiveClient) IsEnabled() bool {
	return c.enabled
}

// convertFight converts the archive format to FightRecordData. A fight
// with no parseable date or missing corner names is rejected rather than
// defaulted; the history store is append-only and bad rows never age out.
func (c *FightArchiveClient) convertFight(fight *archiveFight) (*FightRecordData, error) {
	if fight.Winner == "" || fight.Loser == "" {
		return nil, fmt.Errorf("missing fighter name")
	}

	date, err := time.Parse("2006-01-02", fight.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid fight date %q: %w", fight.Date, err)
	}

	return &FightRecordData{
		SourceID:    fight.ID,
		Winner:      fight.Winner,
		Loser:       fight.Loser,
		Method:      fight.Method,
		Date:        date,
		WeightClass: fight.WeightClass,
		Event:       fight.Event,
		CreatedAt:   time.Now().UTC(),
	}, nil
}
