package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yourusername/matchpulse/internal/database"
	"github.com/yourusername/matchpulse/internal/models"
)

// PostgresOutcomeRepository implements OutcomeRepository for PostgreSQL
type PostgresOutcomeRepository struct {
	db *database.DB
}

// NewPostgresOutcomeRepository creates a new outcome repository
func NewPostgresOutcomeRepository(db *database.DB) OutcomeRepository {
	return &PostgresOutcomeRepository{db: db}
}

// Create inserts a settled outcome for a prediction
func (r *PostgresOutcomeRepository) Create(ctx context.Context, outcome *models.PredictionOutcome) error {
	if outcome.ID == uuid.Nil {
		outcome.ID = uuid.New()
	}
	if outcome.SettledAt.IsZero() {
		outcome.SettledAt = time.Now().UTC()
	}

	query := `
		INSERT INTO prediction_outcomes (id, prediction_id, fixture_id, result, final_home, final_away, settled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		outcome.ID, outcome.PredictionID, outcome.FixtureID, outcome.Result,
		outcome.FinalHome, outcome.FinalAway, outcome.SettledAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create outcome: %w", err)
	}
	return nil
}

// GetByPredictionID retrieves the outcome settled against one prediction
func (r *PostgresOutcomeRepository) GetByPredictionID(ctx context.Context, predictionID uuid.UUID) (*models.PredictionOutcome, error) {
	query := `
		SELECT id, prediction_id, fixture_id, result, final_home, final_away, settled_at
		FROM prediction_outcomes WHERE prediction_id = $1
	`

	outcome := &models.PredictionOutcome{}
	err := r.db.GetPool().QueryRow(ctx, query, predictionID).Scan(
		&outcome.ID, &outcome.PredictionID, &outcome.FixtureID, &outcome.Result,
		&outcome.FinalHome, &outcome.FinalAway, &outcome.SettledAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get outcome: %w", err)
	}
	return outcome, nil
}

// GetByFixtureID retrieves all settled outcomes for a fixture
func (r *PostgresOutcomeRepository) GetByFixtureID(ctx context.Context, fixtureID int64) ([]*models.PredictionOutcome, error) {
	query := `
		SELECT id, prediction_id, fixture_id, result, final_home, final_away, settled_at
		FROM prediction_outcomes
		WHERE fixture_id = $1
		ORDER BY settled_at DESC
	`

	rows, err := r.db.GetPool().Query(ctx, query, fixtureID)
	if err != nil {
		return nil, fmt.Errorf("failed to query outcomes: %w", err)
	}
	defer rows.Close()

	var outcomes []*models.PredictionOutcome
	for rows.Next() {
		outcome := &models.PredictionOutcome{}
		err := rows.Scan(
			&outcome.ID, &outcome.PredictionID, &outcome.FixtureID, &outcome.Result,
			&outcome.FinalHome, &outcome.FinalAway, &outcome.SettledAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan outcome: %w", err)
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, rows.Err()
}

// HitRateByMarket aggregates the won share per market since the given time
func (r *PostgresOutcomeRepository) HitRateByMarket(ctx context.Context, since time.Time) (map[models.MarketKind]float64, error) {
	query := `
		SELECT p.market,
		       COUNT(*) FILTER (WHERE o.result = 'WON')::float / COUNT(*) AS hit_rate
		FROM prediction_outcomes o
		JOIN predictions p ON p.id = o.prediction_id
		WHERE o.settled_at >= $1 AND o.result != 'VOID'
		GROUP BY p.market
	`

	rows, err := r.db.GetPool().Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query hit rates: %w", err)
	}
	defer rows.Close()

	rates := make(map[models.MarketKind]float64)
	for rows.Next() {
		var market models.MarketKind
		var rate float64
		if err := rows.Scan(&market, &rate); err != nil {
			return nil, fmt.Errorf("failed to scan hit rate: %w", err)
		}
		rates[market] = rate
	}
	return rates, rows.Err()
}
