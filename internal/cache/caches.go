package cache

import (
	"time"

	"github.com/yourusername/octagon-edge/internal/config"
)

// Caches bundles the application's named read caches.
type Caches struct {
	// Profiles holds fighter profiles keyed by name. Its TTL is the read
	// freshness window, distinct from the profile refresh staleness window.
	Profiles *Store
	// Reports holds computed market reports keyed by event and model.
	Reports *Store
	// Odds holds the latest quote per fight and bookmaker.
	Odds *Store
}

// NewCaches builds the named caches from configuration
func NewCaches(cfg *config.CacheConfig) *Caches {
	cleanup := time.Duration(cfg.CleanupIntervalMin) * time.Minute
	return &Caches{
		Profiles: NewStore("profiles", time.Duration(cfg.ProfileTTLHours)*time.Hour, cleanup),
		Reports:  NewStore("reports", time.Duration(cfg.ReportTTLMinutes)*time.Minute, cleanup),
		Odds:     NewStore("odds", time.Duration(cfg.OddsTTLMinutes)*time.Minute, cleanup),
	}
}
