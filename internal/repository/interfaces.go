package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/matchpulse/internal/models"
)

// PredictionRepository defines the interface for prediction data access
type PredictionRepository interface {
	Create(ctx context.Context, prediction *models.PredictionRecord) error
	CreateBatch(ctx context.Context, predictions []*models.PredictionRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.PredictionRecord, error)
	GetByFixtureID(ctx context.Context, fixtureID int64) ([]*models.PredictionRecord, error)
	GetByScanID(ctx context.Context, scanID uuid.UUID) ([]*models.PredictionRecord, error)
	GetBestPicks(ctx context.Context, since time.Time, limit int) ([]*models.PredictionRecord, error)
	GetUnsettledFixtures(ctx context.Context) ([]int64, error)
}

// OutcomeRepository defines the interface for prediction outcome data access
type OutcomeRepository interface {
	Create(ctx context.Context, outcome *models.PredictionOutcome) error
	GetByPredictionID(ctx context.Context, predictionID uuid.UUID) (*models.PredictionOutcome, error)
	GetByFixtureID(ctx context.Context, fixtureID int64) ([]*models.PredictionOutcome, error)
	HitRateByMarket(ctx context.Context, since time.Time) (map[models.MarketKind]float64, error)
}
