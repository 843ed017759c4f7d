// Package main provides a one-shot market evaluation command.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/matchpulse/internal/config"
	"github.com/yourusername/matchpulse/internal/engine"
	"github.com/yourusername/matchpulse/internal/models"
	"github.com/yourusername/matchpulse/internal/provider"
)

var (
	configFile     string
	snapshotFile   string
	fixtureID      int64
	topN           int
	minProbability float64
	jsonOutput     bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().StringVarP(&snapshotFile, "file", "f", "", "Path to a snapshot JSON file, or - for stdin")
	rootCmd.Flags().Int64Var(&fixtureID, "fixture", 0, "Live fixture id to fetch from the provider")
	rootCmd.Flags().IntVar(&topN, "top", 5, "Number of top picks to print")
	rootCmd.Flags().Float64Var(&minProbability, "min-probability", 0, "Minimum probability filter for ranked markets")
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the full slate as JSON")
}

var rootCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate betting markets for one match snapshot",
	Long: `Evaluates all betting markets for a single match snapshot and prints
the ranked probabilities and the best pick. The snapshot comes from a JSON
file, stdin, or a live fixture fetched from the configured provider.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEvaluate()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func runEvaluate() error {
	cfg, err := config.LoadWithDefaults(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	quiet := logrus.New()
	quiet.SetLevel(logrus.WarnLevel)

	snap, err := loadSnapshot(cfg, quiet)
	if err != nil {
		return err
	}

	eng := engine.New(&cfg.Engine, cfg.Features.DixonColesEnabled, quiet)
	results := eng.Evaluate(snap)
	slate := engine.SelectBets(results, engine.SelectorOptions{
		TopN:           topN,
		MinProbability: minProbability,
	})

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(slate)
	}

	printSlate(snap, slate)
	return nil
}

// loadSnapshot reads the snapshot from --file, stdin, or the live provider.
func loadSnapshot(cfg *config.Config, logger *logrus.Logger) (*models.MatchSnapshot, error) {
	if fixtureID != 0 {
		return fetchLiveSnapshot(cfg, logger)
	}
	if snapshotFile == "" {
		return nil, fmt.Errorf("either --file or --fixture is required")
	}

	var (
		data []byte
		err  error
	)
	if snapshotFile == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(snapshotFile)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	snap := &models.MatchSnapshot{}
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot JSON: %w", err)
	}
	return snap, nil
}

func fetchLiveSnapshot(cfg *config.Config, logger *logrus.Logger) (*models.MatchSnapshot, error) {
	source, err := provider.NewLiveSource(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize provider: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	headers, err := source.LiveFixtures(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list live fixtures: %w", err)
	}
	for _, header := range headers {
		if header.FixtureID == fixtureID {
			return source.Snapshot(ctx, header)
		}
	}
	return nil, fmt.Errorf("fixture %d: %w", fixtureID, models.ErrFixtureNotLive)
}

func printSlate(snap *models.MatchSnapshot, slate models.BetSlate) {
	fmt.Printf("\n%s %d-%d %s  (minute %d)\n\n",
		snap.HomeTeam, snap.Home.Goals, snap.Away.Goals, snap.AwayTeam, snap.Minute)

	if slate.Best != nil {
		best := slate.Best
		fmt.Printf("Best pick: %s / %s  %.1f%%  (%s)\n", best.Label, best.Selection, best.Probability, best.Confidence)
		if best.Rationale != "" {
			fmt.Printf("           %s\n", best.Rationale)
		}
		fmt.Println()
	} else {
		fmt.Println("No active market passed the filters")
		return
	}

	fmt.Printf("%-40s %-22s %8s  %-10s\n", "MARKET", "SELECTION", "PROB", "CONFIDENCE")
	for _, r := range slate.TopN {
		fmt.Printf("%-40s %-22s %7.1f%%  %-10s\n", r.Label, r.Selection, r.Probability, r.Confidence)
	}
	fmt.Printf("\n%d active markets ranked\n", len(slate.Ranked))
}
