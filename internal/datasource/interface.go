package datasource

import (
	"context"
	"errors"
	"time"
)

// DataSource defines the interface for fetching historical fight results
// from external providers
type DataSource interface {
	// FetchFightRecords retrieves fight results on or after the cutoff
	FetchFightRecords(ctx context.Context, since time.Time) ([]FightRecordData, error)

	// Name returns the name of the data source
	Name() string

	// IsEnabled returns whether this data source is currently enabled
	IsEnabled() bool
}

// StatsSource defines the interface for fetching raw fighter statistics
// from a stats site. Values come back as the site renders them; parsing
// into normalized profiles happens downstream.
type StatsSource interface {
	// FetchFighterStats retrieves the raw stat block for a fighter by name
	FetchFighterStats(ctx context.Context, name string) (*RawFighterStats, error)

	Name() string
	IsEnabled() bool
}

// FightRecordData represents a normalized fight result from any data source
type FightRecordData struct {
	SourceID    string    `json:"source_id"`    // Provider's unique fight ID
	Winner      string    `json:"winner"`       // Winning fighter name
	Loser       string    `json:"loser"`        // Losing fighter name
	Method      string    `json:"method"`       // Free-text method (e.g. "KO (head kick)")
	Date        time.Time `json:"date"`         // Fight date UTC
	WeightClass string    `json:"weight_class"` // Division name
	Event       string    `json:"event"`        // Event name if known
	CreatedAt   time.Time `json:"created_at"`   // When data was fetched
}

// RawFighterStats represents a fighter's stat block exactly as the stats
// site renders it. Height is feet'inches", reach is inches with a trailing
// quote, percentages carry a % suffix, and rates are plain decimals.
type RawFighterStats struct {
	Name        string `json:"name"`
	Height      string `json:"height"`        // e.g. `6'2"`
	Reach       string `json:"reach"`         // e.g. `74"`
	Stance      string `json:"stance"`        // e.g. "Orthodox"
	DateOfBirth string `json:"date_of_birth"` // e.g. "1987-07-19"
	SLPM        string `json:"slpm"`
	SAPM        string `json:"sapm"`
	StrAccuracy string `json:"str_accuracy"` // e.g. "58%"
	StrDefense  string `json:"str_defense"`
	TDAvg       string `json:"td_avg"`
	TDAccuracy  string `json:"td_accuracy"`
	TDDefense   string `json:"td_defense"`
	SubAvg      string `json:"sub_avg"`
}

// DataSourceError represents errors from data source operations
type DataSourceError struct {
	Source  string // Data source name
	Code    string // Error code (e.g., "rate_limit_exceeded")
	Message string // Error message
	Err     error  // Underlying error
}

func (e DataSourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

// Common error codes
const (
	ErrCodeRateLimitExceeded    = "rate_limit_exceeded"
	ErrCodeAuthenticationFailed = "authentication_failed"
	ErrCodeNotFound             = "not_found"
	ErrCodeInvalidData          = "invalid_data"
	ErrCodeNetworkError         = "network_error"
	ErrCodeServerError          = "server_error"
	ErrCodeUnknown              = "unknown"
)

// Error constructors
var (
	ErrRateLimitExceeded    = errors.New("rate limit exceeded")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrNotFound             = errors.New("data not found")
	ErrInvalidData          = errors.New("invalid data format")
	ErrNetworkError         = errors.New("network error")
	ErrServerError          = errors.New("server error")
)

const dataSourceDisabledMsg = "data source is disabled"

// NewDataSourceError creates a new data source error
func NewDataSourceError(source, code, message string, err error) DataSourceError {
	return DataSourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
