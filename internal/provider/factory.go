package provider

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/matchpulse/internal/config"
)

// NewLiveSource builds the configured live data provider with its
// rate-limited HTTP client attached
func NewLiveSource(cfg *config.Config, logger *logrus.Logger) (LiveSource, error) {
	if cfg.Provider.BaseURL == "" {
		return nil, fmt.Errorf("provider base URL is required")
	}
	if cfg.Provider.APIKey == "" {
		return nil, fmt.Errorf("provider API key is required")
	}

	httpCfg := DefaultHTTPClientConfig()
	httpCfg.Timeout = time.Duration(cfg.Provider.TimeoutSeconds) * time.Second
	httpCfg.MaxRetries = cfg.Provider.RetryAttempts
	httpCfg.RateLimit = cfg.Provider.RateLimit

	client := NewRateLimitedHTTPClient(httpCfg, logger)

	return NewAPIFootballClient(
		client,
		cfg.Provider.BaseURL,
		cfg.Provider.APIKey,
		cfg.Provider.Leagues,
		time.Duration(cfg.Provider.CacheTTLSeconds)*time.Second,
		logger,
	), nil
}
