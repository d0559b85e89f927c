package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/octagon-edge/internal/models"
)

// FighterRepository defines the interface for fighter profile data access
type FighterRepository interface {
	Upsert(ctx context.Context, fighter *models.FighterProfile) error
	GetByName(ctx context.Context, name string) (*models.FighterProfile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.FighterProfile, error)
	GetStale(ctx context.Context, olderThan time.Duration, limit int) ([]*models.FighterProfile, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// FightRepository defines the interface for historical fight records.
// Records are append-only: no update or delete operations exist.
type FightRepository interface {
	Insert(ctx context.Context, record *models.FightRecord) error
	InsertBatch(ctx context.Context, records []*models.FightRecord) error
	// GetHistory returns every record involving the fighter, newest first
	GetHistory(ctx context.Context, fighter string) ([]*models.FightRecord, error)
	// GetWinsAndLosses partitions the fighter's history into win-side and
	// loss-side records, each newest first
	GetWinsAndLosses(ctx context.Context, fighter string) (wins, losses []*models.FightRecord, err error)
	// GetRecordsSince returns records on or after the cutoff, newest first,
	// capped at limit. Used to build similar-style opponent pools.
	GetRecordsSince(ctx context.Context, since time.Time, limit int) ([]*models.FightRecord, error)
}

// OddsRepository defines the interface for bookmaker quote data access
type OddsRepository interface {
	Insert(ctx context.Context, quote *models.FightOddsQuote) error
	// GetForFight returns the latest quote for the unordered fighter pair
	// from the given bookmaker
	GetForFight(ctx context.Context, fighter1, fighter2, bookmaker string) (*models.FightOddsQuote, error)
	GetLatestByBookmaker(ctx context.Context, bookmaker string, since time.Time) ([]*models.FightOddsQuote, error)
}
