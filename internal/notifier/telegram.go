package notifier

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/matchpulse/internal/config"
	"github.com/yourusername/matchpulse/internal/logger"
	"github.com/yourusername/matchpulse/internal/metrics"
)

// botSender is the slice of the Telegram API the notifier uses; narrowed
// so tests can substitute a fake
type botSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier sends pick alerts to a Telegram chat. Alerts for the
// same fixture are throttled to one per configured interval so a pick that
// stays hot across consecutive scans does not spam the chat.
type TelegramNotifier struct {
	bot         botSender
	chatID      int64
	minInterval time.Duration
	alertLog    *logger.AlertLogger

	mu       sync.Mutex
	lastSent map[int64]time.Time
}

// NewTelegramNotifier creates a Telegram notifier from configuration
func NewTelegramNotifier(cfg config.NotifierConfig, baseLogger *logrus.Logger) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	bot.Debug = false

	if _, err := bot.GetMe(); err != nil {
		return nil, fmt.Errorf("failed to verify telegram bot: %w", err)
	}

	minInterval := time.Duration(cfg.MinIntervalSeconds) * time.Second
	if minInterval <= 0 {
		minInterval = 5 * time.Minute
	}

	return &TelegramNotifier{
		bot:         bot,
		chatID:      cfg.TelegramChatID,
		minInterval: minInterval,
		alertLog:    logger.NewAlertLogger(baseLogger),
		lastSent:    make(map[int64]time.Time),
	}, nil
}

// NotifyBestPick delivers an alert for a fixture's top pick
func (n *TelegramNotifier) NotifyBestPick(ctx context.Context, alert Alert) error {
	if throttled, since := n.shouldThrottle(alert.FixtureID); throttled {
		n.alertLog.LogAlertThrottled(alert.FixtureID, string(alert.Pick.Market), since)
		return nil
	}

	msg := tgbotapi.NewMessage(n.chatID, formatAlert(alert))
	msg.ParseMode = tgbotapi.ModeMarkdown

	if _, err := n.bot.Send(msg); err != nil {
		n.releaseThrottle(alert.FixtureID)
		metrics.RecordAlertFailure()
		n.alertLog.LogAlertFailure(alert.FixtureID, string(alert.Pick.Market), err)
		return fmt.Errorf("failed to send alert: %w", err)
	}

	metrics.RecordAlertSent()
	n.alertLog.LogAlertSent(uuid.NewString(), alert.FixtureID, string(alert.Pick.Market),
		alert.Pick.Selection, alert.Pick.Probability, alert.Pick.Value, time.Now())
	return nil
}

// Close releases notifier resources
func (n *TelegramNotifier) Close() {}

// shouldThrottle marks the fixture as sent and reports whether a previous
// alert is still inside the interval
func (n *TelegramNotifier) shouldThrottle(fixtureID int64) (bool, time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()

	now := time.Now()
	if last, ok := n.lastSent[fixtureID]; ok {
		since := now.Sub(last)
		if since < n.minInterval {
			return true, since
		}
	}
	n.lastSent[fixtureID] = now
	return false, 0
}

// releaseThrottle clears the sent mark after a failed delivery so the next
// scan can retry
func (n *TelegramNotifier) releaseThrottle(fixtureID int64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.lastSent, fixtureID)
}

// formatAlert renders the Telegram message body
func formatAlert(alert Alert) string {
	var b strings.Builder

	fmt.Fprintf(&b, "⚽ *%s %d-%d %s* (%d')\n", alert.HomeTeam, alert.HomeGoals, alert.AwayGoals, alert.AwayTeam, alert.Minute)
	if alert.League != "" {
		fmt.Fprintf(&b, "_%s_\n", alert.League)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "*%s*: %s\n", alert.Pick.Label, alert.Pick.Selection)
	fmt.Fprintf(&b, "Probability: *%.1f%%* (%s)\n", alert.Pick.Probability, alert.Pick.Confidence)
	if alert.Pick.FairOdds > 0 {
		fmt.Fprintf(&b, "Fair odds: %.2f | Est. market: %.2f\n", alert.Pick.FairOdds, alert.Pick.EstMarketOdds)
	}
	if alert.Pick.Value > 0 {
		fmt.Fprintf(&b, "Value edge: +%.1f%%\n", alert.Pick.Value*100)
	}
	if alert.Pick.Rationale != "" {
		fmt.Fprintf(&b, "\n%s", alert.Pick.Rationale)
	}

	return b.String()
}
