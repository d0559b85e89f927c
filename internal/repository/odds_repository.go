package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/yourusername/octagon-edge/internal/database"
	"github.com/yourusername/octagon-edge/internal/models"
)

const errScanQuote = "failed to scan odds quote: %w"

const quoteColumns = `id, bookmaker, fighter1, fighter2, fighter1_odds, fighter2_odds, last_update`

// PostgresOddsRepository implements OddsRepository for PostgreSQL
type PostgresOddsRepository struct {
	db *database.DB
}

// NewPostgresOddsRepository creates a new odds repository
func NewPostgresOddsRepository(db *database.DB) OddsRepository {
	return &PostgresOddsRepository{db: db}
}

// Insert stores a bookmaker quote snapshot
func (r *PostgresOddsRepository) Insert(ctx context.Context, quote *models.FightOddsQuote) error {
	query := `
		INSERT INTO fight_odds (id, bookmaker, fighter1, fighter2, fighter1_odds, fighter2_odds, last_update)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		quote.ID, quote.Bookmaker, quote.Fighter1, quote.Fighter2,
		quote.Fighter1Odds, quote.Fighter2Odds, quote.LastUpdate,
	)
	if err != nil {
		return fmt.Errorf("failed to insert odds quote: %w", err)
	}

	return nil
}

// GetForFight retrieves the latest quote for the unordered fighter pair
// from the given bookmaker
func (r *PostgresOddsRepository) GetForFight(ctx context.Context, fighter1, fighter2, bookmaker string) (*models.FightOddsQuote, error) {
	query := `
		SELECT ` + quoteColumns + `
		FROM fight_odds
		WHERE bookmaker = $3
		  AND ((fighter1 = $1 AND fighter2 = $2) OR (fighter1 = $2 AND fighter2 = $1))
		ORDER BY last_update DESC
		LIMIT 1
	`

	quote := &models.FightOddsQuote{}
	err := r.db.GetPool().QueryRow(ctx, query, fighter1, fighter2, bookmaker).Scan(
		&quote.ID, &quote.Bookmaker, &quote.Fighter1, &quote.Fighter2,
		&quote.Fighter1Odds, &quote.Fighter2Odds, &quote.LastUpdate,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get odds quote: %w", err)
	}

	return quote, nil
}

// GetLatestByBookmaker retrieves the newest quote per fight from the
// bookmaker since the cutoff
func (r *PostgresOddsRepository) GetLatestByBookmaker(ctx context.Context, bookmaker string, since time.Time) ([]*models.FightOddsQuote, error) {
	query := `
		SELECT DISTINCT ON (fighter1, fighter2) ` + quoteColumns + `
		FROM fight_odds
		WHERE bookmaker = $1 AND last_update >= $2
		ORDER BY fighter1, fighter2, last_update DESC
	`

	rows, err := r.db.GetPool().Query(ctx, query, bookmaker, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query odds quotes: %w", err)
	}
	defer rows.Close()

	var quotes []*models.FightOddsQuote
	for rows.Next() {
		quote := &models.FightOddsQuote{}
		err := rows.Scan(
			&quote.ID, &quote.Bookmaker, &quote.Fighter1, &quote.Fighter2,
			&quote.Fighter1Odds, &quote.Fighter2Odds, &quote.LastUpdate,
		)
		if err != nil {
			return nil, fmt.Errorf(errScanQuote, err)
		}
		quotes = append(quotes, quote)
	}

	return quotes, rows.Err()
}
