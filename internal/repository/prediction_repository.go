package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yourusername/matchpulse/internal/database"
	"github.com/yourusername/matchpulse/internal/metrics"
	"github.com/yourusername/matchpulse/internal/models"
)

// PostgresPredictionRepository implements PredictionRepository for PostgreSQL
type PostgresPredictionRepository struct {
	db *database.DB
}

// NewPostgresPredictionRepository creates a new prediction repository
func NewPostgresPredictionRepository(db *database.DB) PredictionRepository {
	return &PostgresPredictionRepository{db: db}
}

const predictionColumns = `id, scan_id, fixture_id, league_id, league, home_team, away_team,
	       minute, home_goals, away_goals, market, label, selection, probability,
	       confidence, state, fair_odds, est_odds, value, is_best, created_at`

// Create inserts a new prediction row, assigning identity when absent
func (r *PostgresPredictionRepository) Create(ctx context.Context, prediction *models.PredictionRecord) error {
	if prediction.ID == uuid.Nil {
		prediction.ID = uuid.New()
	}
	if prediction.CreatedAt.IsZero() {
		prediction.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO predictions (id, scan_id, fixture_id, league_id, league, home_team, away_team,
		                         minute, home_goals, away_goals, market, label, selection, probability,
		                         confidence, state, fair_odds, est_odds, value, is_best, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		prediction.ID, prediction.ScanID, prediction.FixtureID, prediction.LeagueID, prediction.League,
		prediction.HomeTeam, prediction.AwayTeam, prediction.Minute, prediction.HomeGoals, prediction.AwayGoals,
		prediction.Market, prediction.Label, prediction.Selection, prediction.Probability,
		prediction.Confidence, prediction.State, prediction.FairOdds, prediction.EstOdds,
		prediction.Value, prediction.IsBest, prediction.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create prediction: %w", err)
	}

	metrics.RecordPredictionPersisted()
	return nil
}

// CreateBatch inserts a scan's prediction rows in a single transaction
func (r *PostgresPredictionRepository) CreateBatch(ctx context.Context, predictions []*models.PredictionRecord) error {
	if len(predictions) == 0 {
		return nil
	}

	return r.db.WithTransaction(ctx, func(txCtx context.Context) error {
		for _, prediction := range predictions {
			if err := r.Create(txCtx, prediction); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID retrieves a prediction by ID
func (r *PostgresPredictionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.PredictionRecord, error) {
	query := `SELECT ` + predictionColumns + ` FROM predictions WHERE id = $1`

	prediction, err := scanPrediction(r.db.GetPool().QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get prediction: %w", err)
	}
	return prediction, nil
}

// GetByFixtureID retrieves every prediction recorded for a fixture
func (r *PostgresPredictionRepository) GetByFixtureID(ctx context.Context, fixtureID int64) ([]*models.PredictionRecord, error) {
	query := `SELECT ` + predictionColumns + `
		FROM predictions
		WHERE fixture_id = $1
		ORDER BY created_at DESC, market, label`

	return r.queryPredictions(ctx, query, fixtureID)
}

// GetByScanID retrieves every prediction from one scan cycle
func (r *PostgresPredictionRepository) GetByScanID(ctx context.Context, scanID uuid.UUID) ([]*models.PredictionRecord, error) {
	query := `SELECT ` + predictionColumns + `
		FROM predictions
		WHERE scan_id = $1
		ORDER BY fixture_id, market, label`

	return r.queryPredictions(ctx, query, scanID)
}

// GetBestPicks retrieves the most recent top picks across fixtures
func (r *PostgresPredictionRepository) GetBestPicks(ctx context.Context, since time.Time, limit int) ([]*models.PredictionRecord, error) {
	query := `SELECT ` + predictionColumns + `
		FROM predictions
		WHERE is_best = TRUE AND created_at >= $1
		ORDER BY created_at DESC
		LIMIT $2`

	return r.queryPredictions(ctx, query, since, limit)
}

// GetUnsettledFixtures lists fixtures with predictions but no settled outcomes
func (r *PostgresPredictionRepository) GetUnsettledFixtures(ctx context.Context) ([]int64, error) {
	query := `
		SELECT DISTINCT p.fixture_id
		FROM predictions p
		LEFT JOIN prediction_outcomes o ON o.prediction_id = p.id
		WHERE o.id IS NULL
		ORDER BY p.fixture_id
	`

	rows, err := r.db.GetPool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query unsettled fixtures: %w", err)
	}
	defer rows.Close()

	var fixtureIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan fixture id: %w", err)
		}
		fixtureIDs = append(fixtureIDs, id)
	}
	return fixtureIDs, rows.Err()
}

func (r *PostgresPredictionRepository) queryPredictions(ctx context.Context, query string, args ...interface{}) ([]*models.PredictionRecord, error) {
	rows, err := r.db.GetPool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions: %w", err)
	}
	defer rows.Close()

	var predictions []*models.PredictionRecord
	for rows.Next() {
		prediction, err := scanPrediction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		predictions = append(predictions, prediction)
	}
	return predictions, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPrediction(row rowScanner) (*models.PredictionRecord, error) {
	prediction := &models.PredictionRecord{}
	err := row.Scan(
		&prediction.ID, &prediction.ScanID, &prediction.FixtureID, &prediction.LeagueID, &prediction.League,
		&prediction.HomeTeam, &prediction.AwayTeam, &prediction.Minute, &prediction.HomeGoals, &prediction.AwayGoals,
		&prediction.Market, &prediction.Label, &prediction.Selection, &prediction.Probability,
		&prediction.Confidence, &prediction.State, &prediction.FairOdds, &prediction.EstOdds,
		&prediction.Value, &prediction.IsBest, &prediction.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return prediction, nil
}
