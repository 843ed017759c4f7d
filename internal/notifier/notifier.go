// Package notifier delivers bet alerts to external channels.
package notifier

import (
	"context"

	"github.com/yourusername/matchpulse/internal/models"
)

// Alert is one outbound pick notification
type Alert struct {
	FixtureID int64
	League    string
	HomeTeam  string
	AwayTeam  string
	Minute    int
	HomeGoals int
	AwayGoals int
	Pick      models.MarketResult
}

// Notifier defines the interface for alert delivery
type Notifier interface {
	// NotifyBestPick delivers an alert for a fixture's top pick
	NotifyBestPick(ctx context.Context, alert Alert) error

	// Close releases any resources held by the notifier
	Close()
}

// NoopNotifier discards every alert; used when alerting is disabled
type NoopNotifier struct{}

// NotifyBestPick discards the alert
func (NoopNotifier) NotifyBestPick(ctx context.Context, alert Alert) error { return nil }

// Close is a no-op
func (NoopNotifier) Close() {}
