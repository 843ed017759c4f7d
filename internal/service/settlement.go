package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/matchpulse/internal/metrics"
	"github.com/yourusername/matchpulse/internal/models"
	"github.com/yourusername/matchpulse/internal/provider"
	"github.com/yourusername/matchpulse/internal/repository"
)

// SettlementService grades stored predictions against final scores once
// their fixtures finish. Settled outcomes feed the hit-rate calibration
// queries; fixtures still in play are left alone.
type SettlementService struct {
	results provider.ResultSource
	repos   *repository.Repositories
	logger  *logrus.Logger
}

// NewSettlementService creates a new settlement service.
func NewSettlementService(results provider.ResultSource, repos *repository.Repositories, baseLogger *logrus.Logger) *SettlementService {
	return &SettlementService{
		results: results,
		repos:   repos,
		logger:  baseLogger,
	}
}

// SettlementSummary reports one settlement pass.
type SettlementSummary struct {
	FixturesChecked int `json:"fixtures_checked"`
	FixturesSettled int `json:"fixtures_settled"`
	OutcomesWritten int `json:"outcomes_written"`
}

// SettleOutcomes grades every unsettled fixture whose final score is
// available. A fixture that is still in play, or whose lookup fails, is
// skipped and retried on the next pass.
func (s *SettlementService) SettleOutcomes(ctx context.Context) (SettlementSummary, error) {
	fixtureIDs, err := s.repos.Prediction.GetUnsettledFixtures(ctx)
	if err != nil {
		return SettlementSummary{}, fmt.Errorf("failed to list unsettled fixtures: %w", err)
	}

	summary := SettlementSummary{FixturesChecked: len(fixtureIDs)}
	for _, fixtureID := range fixtureIDs {
		written, err := s.settleFixture(ctx, fixtureID)
		if err != nil {
			s.logger.WithError(err).WithField("fixture_id", fixtureID).
				Warn("Failed to settle fixture, will retry next pass")
			continue
		}
		if written > 0 {
			summary.FixturesSettled++
			summary.OutcomesWritten += written
		}
	}

	s.logger.WithFields(logrus.Fields{
		"fixtures_checked": summary.FixturesChecked,
		"fixtures_settled": summary.FixturesSettled,
		"outcomes_written": summary.OutcomesWritten,
	}).Info("Settlement pass completed")

	return summary, nil
}

func (s *SettlementService) settleFixture(ctx context.Context, fixtureID int64) (int, error) {
	final, err := s.results.FinalScore(ctx, fixtureID)
	if err != nil {
		return 0, err
	}
	if !final.Finished {
		return 0, nil
	}

	predictions, err := s.repos.Prediction.GetByFixtureID(ctx, fixtureID)
	if err != nil {
		return 0, err
	}

	written := 0
	for _, prediction := range predictions {
		result := GradePrediction(prediction, final.HomeGoals, final.AwayGoals)
		outcome := &models.PredictionOutcome{
			PredictionID: prediction.ID,
			FixtureID:    fixtureID,
			Result:       result,
			FinalHome:    final.HomeGoals,
			FinalAway:    final.AwayGoals,
			SettledAt:    time.Now().UTC(),
		}
		if err := s.repos.Outcome.Create(ctx, outcome); err != nil {
			return written, fmt.Errorf("failed to store outcome for prediction %s: %w", prediction.ID, err)
		}
		metrics.RecordOutcomeSettled(string(result))
		written++
	}
	return written, nil
}

// GradePrediction grades a single stored prediction against the final
// score. Markets the final score cannot decide are VOID: cards and corners
// need closing statistics the result feed does not carry, and next-goal
// picks are undecidable when both sides scored again after the snapshot.
func GradePrediction(p *models.PredictionRecord, finalHome, finalAway int) models.OutcomeResult {
	switch p.Market {
	case models.MarketMatchResult:
		return gradeMatchResult(p.Selection, finalHome, finalAway)
	case models.MarketTotalGoals:
		return gradeLine(p.Selection, float64(finalHome+finalAway))
	case models.MarketTeamTotal:
		if strings.HasPrefix(p.Label, p.HomeTeam) {
			return gradeLine(p.Selection, float64(finalHome))
		}
		return gradeLine(p.Selection, float64(finalAway))
	case models.MarketBTTS:
		both := finalHome > 0 && finalAway > 0
		if (p.Selection == "Yes") == both {
			return models.OutcomeWon
		}
		return models.OutcomeLost
	case models.MarketCleanSheet:
		conceded := finalAway
		if !strings.HasPrefix(p.Label, p.HomeTeam) {
			conceded = finalHome
		}
		if conceded == 0 {
			return models.OutcomeWon
		}
		return models.OutcomeLost
	case models.MarketNextGoal:
		return gradeNextGoal(p, finalHome, finalAway)
	default:
		return models.OutcomeVoid
	}
}

func gradeMatchResult(selection string, finalHome, finalAway int) models.OutcomeResult {
	var won bool
	switch {
	case strings.HasPrefix(selection, "1"):
		won = finalHome > finalAway
	case strings.HasPrefix(selection, "X"):
		won = finalHome == finalAway
	case strings.HasPrefix(selection, "2"):
		won = finalAway > finalHome
	default:
		return models.OutcomeVoid
	}
	if won {
		return models.OutcomeWon
	}
	return models.OutcomeLost
}

// gradeLine grades an Over/Under selection like "Over 2.5" against the
// final count for that line.
func gradeLine(selection string, total float64) models.OutcomeResult {
	fields := strings.Fields(selection)
	if len(fields) != 2 {
		return models.OutcomeVoid
	}
	threshold, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return models.OutcomeVoid
	}

	var won bool
	switch fields[0] {
	case "Over":
		won = total > threshold
	case "Under":
		won = total < threshold
	default:
		return models.OutcomeVoid
	}
	if won {
		return models.OutcomeWon
	}
	return models.OutcomeLost
}

func gradeNextGoal(p *models.PredictionRecord, finalHome, finalAway int) models.OutcomeResult {
	deltaHome := finalHome - p.HomeGoals
	deltaAway := finalAway - p.AwayGoals
	if deltaHome < 0 || deltaAway < 0 {
		return models.OutcomeVoid
	}

	if p.Selection == "No more goals" {
		if deltaHome == 0 && deltaAway == 0 {
			return models.OutcomeWon
		}
		return models.OutcomeLost
	}

	// The final score orders nothing when both sides scored again
	if deltaHome > 0 && deltaAway > 0 {
		return models.OutcomeVoid
	}

	homePick := strings.HasPrefix(p.Selection, p.HomeTeam)
	if (homePick && deltaHome > 0) || (!homePick && deltaAway > 0) {
		return models.OutcomeWon
	}
	return models.OutcomeLost
}
