package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/octagon-edge/internal/database"
	"github.com/yourusername/octagon-edge/internal/models"
)

const errScanFighter = "failed to scan fighter: %w"

const fighterColumns = `id, name, height_in, reach_in, stance, date_of_birth,
	       slpm, sapm, str_accuracy, str_defense, td_avg, td_accuracy,
	       td_defense, sub_avg, updated_at, created_at`

// PostgresFighterRepository implements FighterRepository for PostgreSQL
type PostgresFighterRepository struct {
	db *database.DB
}

// NewPostgresFighterRepository creates a new fighter repository
func NewPostgresFighterRepository(db *database.DB) FighterRepository {
	return &PostgresFighterRepository{db: db}
}

// Upsert inserts a fighter profile or refreshes it by name
func (r *PostgresFighterRepository) Upsert(ctx context.Context, fighter *models.FighterProfile) error {
	query := `
		INSERT INTO fighters (id, name, height_in, reach_in, stance, date_of_birth,
		                      slpm, sapm, str_accuracy, str_defense, td_avg,
		                      td_accuracy, td_defense, sub_avg, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW())
		ON CONFLICT (name) DO UPDATE SET
			height_in = EXCLUDED.height_in,
			reach_in = EXCLUDED.reach_in,
			stance = EXCLUDED.stance,
			date_of_birth = EXCLUDED.date_of_birth,
			slpm = EXCLUDED.slpm,
			sapm = EXCLUDED.sapm,
			str_accuracy = EXCLUDED.str_accuracy,
			str_defense = EXCLUDED.str_defense,
			td_avg = EXCLUDED.td_avg,
			td_accuracy = EXCLUDED.td_accuracy,
			td_defense = EXCLUDED.td_defense,
			sub_avg = EXCLUDED.sub_avg,
			updated_at = NOW()
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		fighter.ID, fighter.Name, fighter.HeightIn, fighter.ReachIn, fighter.Stance,
		fighter.DateOfBirth, fighter.SLPM, fighter.SAPM, fighter.StrAccuracy,
		fighter.StrDefense, fighter.TDAvg, fighter.TDAccuracy, fighter.TDDefense,
		fighter.SubAvg,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert fighter: %w", err)
	}

	return nil
}

// GetByName retrieves a fighter profile by exact name
func (r *PostgresFighterRepository) GetByName(ctx context.Context, name string) (*models.FighterProfile, error) {
	query := `SELECT ` + fighterColumns + ` FROM fighters WHERE name = $1`

	fighter := &models.FighterProfile{}
	err := r.db.GetPool().QueryRow(ctx, query, name).Scan(
		&fighter.ID, &fighter.Name, &fighter.HeightIn, &fighter.ReachIn, &fighter.Stance,
		&fighter.DateOfBirth, &fighter.SLPM, &fighter.SAPM, &fighter.StrAccuracy,
		&fighter.StrDefense, &fighter.TDAvg, &fighter.TDAccuracy, &fighter.TDDefense,
		&fighter.SubAvg, &fighter.UpdatedAt, &fighter.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get fighter: %w", err)
	}

	return fighter, nil
}

// GetByID retrieves a fighter profile by ID
func (r *PostgresFighterRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.FighterProfile, error) {
	query := `SELECT ` + fighterColumns + ` FROM fighters WHERE id = $1`

	fighter := &models.FighterProfile{}
	err := r.db.GetPool().QueryRow(ctx, query, id).Scan(
		&fighter.ID, &fighter.Name, &fighter.HeightIn, &fighter.ReachIn, &fighter.Stance,
		&fighter.DateOfBirth, &fighter.SLPM, &fighter.SAPM, &fighter.StrAccuracy,
		&fighter.StrDefense, &fighter.TDAvg, &fighter.TDAccuracy, &fighter.TDDefense,
		&fighter.SubAvg, &fighter.UpdatedAt, &fighter.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get fighter: %w", err)
	}

	return fighter, nil
}

// GetStale retrieves profiles not refreshed within the window, oldest first
func (r *PostgresFighterRepository) GetStale(ctx context.Context, olderThan time.Duration, limit int) ([]*models.FighterProfile, error) {
	query := `
		SELECT ` + fighterColumns + `
		FROM fighters
		WHERE updated_at < $1
		ORDER BY updated_at ASC
		LIMIT $2
	`

	cutoff := time.Now().Add(-olderThan)
	rows, err := r.db.GetPool().Query(ctx, query, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query stale fighters: %w", err)
	}
	defer rows.Close()

	var fighters []*models.FighterProfile
	for rows.Next() {
		fighter := &models.FighterProfile{}
		err := rows.Scan(
			&fighter.ID, &fighter.Name, &fighter.HeightIn, &fighter.ReachIn, &fighter.Stance,
			&fighter.DateOfBirth, &fighter.SLPM, &fighter.SAPM, &fighter.StrAccuracy,
			&fighter.StrDefense, &fighter.TDAvg, &fighter.TDAccuracy, &fighter.TDDefense,
			&fighter.SubAvg, &fighter.UpdatedAt, &fighter.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf(errScanFighter, err)
		}
		fighters = append(fighters, fighter)
	}

	return fighters, rows.Err()
}

// Delete deletes a fighter profile
func (r *PostgresFighterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := "DELETE FROM fighters WHERE id = $1"

	commandTag, err := r.db.GetPool().Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete fighter: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}
