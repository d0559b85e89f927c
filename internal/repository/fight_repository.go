package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/yourusername/octagon-edge/internal/database"
	"github.com/yourusername/octagon-edge/internal/models"
)

const errScanFight = "failed to scan fight record: %w"

const fightColumns = `id, winner, loser, method, fight_date, weight_class, created_at`

// PostgresFightRepository implements FightRepository for PostgreSQL.
// The fights table is append-only.
type PostgresFightRepository struct {
	db *database.DB
}

// NewPostgresFightRepository creates a new fight record repository
func NewPostgresFightRepository(db *database.DB) FightRepository {
	return &PostgresFightRepository{db: db}
}

// Insert appends a single fight record. Re-ingested results are skipped on
// the (winner, loser, fight_date) key rather than rewritten.
func (r *PostgresFightRepository) Insert(ctx context.Context, record *models.FightRecord) error {
	query := `
		INSERT INTO fights (id, winner, loser, method, fight_date, weight_class)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (winner, loser, fight_date) DO NOTHING
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		record.ID, record.Winner, record.Loser, record.Method, record.Date, record.WeightClass,
	)
	if err != nil {
		return fmt.Errorf("failed to insert fight record: %w", err)
	}

	return nil
}

// InsertBatch appends a batch of fight records in one transaction
func (r *PostgresFightRepository) InsertBatch(ctx context.Context, records []*models.FightRecord) error {
	if len(records) == 0 {
		return nil
	}

	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			INSERT INTO fights (id, winner, loser, method, fight_date, weight_class)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (winner, loser, fight_date) DO NOTHING
		`
		for _, record := range records {
			_, err := tx.Exec(ctx, query,
				record.ID, record.Winner, record.Loser, record.Method, record.Date, record.WeightClass,
			)
			if err != nil {
				return fmt.Errorf("failed to insert fight record within transaction: %w", err)
			}
		}
		return nil
	})
}

// GetHistory retrieves every record involving the fighter, newest first
func (r *PostgresFightRepository) GetHistory(ctx context.Context, fighter string) ([]*models.FightRecord, error) {
	query := `
		SELECT ` + fightColumns + `
		FROM fights
		WHERE winner = $1 OR loser = $1
		ORDER BY fight_date DESC
	`

	rows, err := r.db.GetPool().Query(ctx, query, fighter)
	if err != nil {
		return nil, fmt.Errorf("failed to query fight history: %w", err)
	}
	defer rows.Close()

	return scanFightRows(rows)
}

// GetWinsAndLosses partitions the fighter's history into win-side and
// loss-side records, each newest first
func (r *PostgresFightRepository) GetWinsAndLosses(ctx context.Context, fighter string) (wins, losses []*models.FightRecord, err error) {
	records, err := r.GetHistory(ctx, fighter)
	if err != nil {
		return nil, nil, err
	}

	for _, record := range records {
		if record.Winner == fighter {
			wins = append(wins, record)
		} else {
			losses = append(losses, record)
		}
	}

	return wins, losses, nil
}

// GetRecordsSince retrieves records on or after the cutoff, newest first
func (r *PostgresFightRepository) GetRecordsSince(ctx context.Context, since time.Time, limit int) ([]*models.FightRecord, error) {
	query := `
		SELECT ` + fightColumns + `
		FROM fights
		WHERE fight_date >= $1
		ORDER BY fight_date DESC
		LIMIT $2
	`

	rows, err := r.db.GetPool().Query(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query fight records: %w", err)
	}
	defer rows.Close()

	return scanFightRows(rows)
}

func scanFightRows(rows pgx.Rows) ([]*models.FightRecord, error) {
	var records []*models.FightRecord
	for rows.Next() {
		record := &models.FightRecord{}
		err := rows.Scan(
			&record.ID, &record.Winner, &record.Loser, &record.Method,
			&record.Date, &record.WeightClass, &record.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf(errScanFight, err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}
