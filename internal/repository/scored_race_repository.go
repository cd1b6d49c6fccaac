// Package repository provides persistence for scored race results.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yourusername/race-ranker/internal/database"
	"github.com/yourusername/race-ranker/internal/models"
)

// ScoredRaceRepository defines persistence for scored race results
type ScoredRaceRepository interface {
	SaveResult(ctx context.Context, result *models.RaceResult) error
	GetByRaceID(ctx context.Context, raceID string) (*models.RaceResult, error)
	ListByDate(ctx context.Context, date time.Time) ([]*models.RaceResult, error)
}

// PostgresScoredRaceRepository implements ScoredRaceRepository using PostgreSQL
type PostgresScoredRaceRepository struct {
	db *database.DB
}

// NewPostgresScoredRaceRepository creates a new PostgreSQL scored race repository
func NewPostgresScoredRaceRepository(db *database.DB) *PostgresScoredRaceRepository {
	return &PostgresScoredRaceRepository{db: db}
}

const createScoredRacesTable = `
CREATE TABLE IF NOT EXISTS scored_races (
	id         UUID PRIMARY KEY,
	race_id    TEXT NOT NULL UNIQUE,
	track      TEXT NOT NULL,
	race_date  DATE NOT NULL,
	confidence TEXT NOT NULL,
	payload    JSONB NOT NULL,
	scored_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_scored_races_race_date ON scored_races (race_date);
`

// EnsureSchema creates the scored_races table if it does not exist
func (r *PostgresScoredRaceRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Pool().Exec(ctx, createScoredRacesTable); err != nil {
		return fmt.Errorf("failed to create scored_races schema: %w", err)
	}
	return nil
}

// SaveResult upserts a scored race result keyed by its race ID
func (r *PostgresScoredRaceRepository) SaveResult(ctx context.Context, result *models.RaceResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal race result: %w", err)
	}

	query := `
		INSERT INTO scored_races (id, race_id, track, race_date, confidence, payload, scored_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (race_id) DO UPDATE
		SET track = EXCLUDED.track,
		    race_date = EXCLUDED.race_date,
		    confidence = EXCLUDED.confidence,
		    payload = EXCLUDED.payload,
		    scored_at = now()`

	_, err = r.db.Pool().Exec(ctx, query,
		uuid.New(),
		result.RaceID,
		result.Meta.Track,
		result.Meta.Date,
		result.Confidence.Band,
		payload,
	)
	if err != nil {
		return fmt.Errorf("failed to save scored race %s: %w", result.RaceID, err)
	}
	return nil
}

// GetByRaceID retrieves a scored race result by its race ID
func (r *PostgresScoredRaceRepository) GetByRaceID(ctx context.Context, raceID string) (*models.RaceResult, error) {
	var payload []byte
	query := `SELECT payload FROM scored_races WHERE race_id = $1`

	err := r.db.Pool().QueryRow(ctx, query, raceID).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get scored race %s: %w", raceID, err)
	}

	return unmarshalResult(payload)
}

// ListByDate retrieves all scored races for one race day
func (r *PostgresScoredRaceRepository) ListByDate(ctx context.Context, date time.Time) ([]*models.RaceResult, error) {
	query := `SELECT payload FROM scored_races WHERE race_date = $1 ORDER BY scored_at`

	rows, err := r.db.Pool().Query(ctx, query, date.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to list scored races: %w", err)
	}
	defer rows.Close()

	var results []*models.RaceResult
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan scored race: %w", err)
		}
		result, err := unmarshalResult(payload)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, rows.Err()
}

func unmarshalResult(payload []byte) (*models.RaceResult, error) {
	var result models.RaceResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal race result: %w", err)
	}
	return &result, nil
}
