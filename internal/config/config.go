// Package config provides configuration management for the MatchPulse application.
package config

import (
	"fmt"
)

// Config represents the complete application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Provider ProviderConfig `mapstructure:"provider" validate:"required"`
	Engine   EngineConfig   `mapstructure:"engine" validate:"required"`
	Scanner  ScannerConfig  `mapstructure:"scanner" validate:"required"`
	Metrics  MetricsConfig  `mapstructure:"metrics" validate:"required"`
	Notifier NotifierConfig `mapstructure:"notifier"`
	Features FeaturesConfig `mapstructure:"features"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host" validate:"required"`
	Port               int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required"`
	User               string `mapstructure:"user" validate:"required"`
	Password           string `mapstructure:"password" validate:"required"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"required,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"required,gt=0"`
}

// ProviderConfig represents the live match data provider configuration
type ProviderConfig struct {
	BaseURL         string  `mapstructure:"base_url" validate:"required,url"`
	APIKey          string  `mapstructure:"api_key"`
	TimeoutSeconds  int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	RetryAttempts   int     `mapstructure:"retry_attempts" validate:"gte=0"`
	RateLimit       float64 `mapstructure:"rate_limit" validate:"required,gt=0"`
	CacheTTLSeconds int     `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
	Leagues         []int64 `mapstructure:"leagues"`
}

// PhaseConfig defines one match phase as a half-open minute interval with
// its signed bias applied to BTTS-style markets
type PhaseConfig struct {
	Name        string  `mapstructure:"name" validate:"required"`
	StartMinute int     `mapstructure:"start_minute" validate:"gte=0"`
	EndMinute   int     `mapstructure:"end_minute" validate:"gt=0"`
	Bias        float64 `mapstructure:"bias"`
}

// EngineConfig holds the tuning parameters of the probability engine.
// The early-game expected-goal defaults and the per-phase biases are
// undocumented tuning constants rather than derived values; they live here
// so observed-outcome calibration can replace them without code changes.
type EngineConfig struct {
	ReliabilityThresholdMinutes int     `mapstructure:"reliability_threshold_minutes" validate:"required,gt=0"`
	DixonColesRho               float64 `mapstructure:"dixon_coles_rho" validate:"gte=-0.5,lte=0.5"`
	MomentumWindowMinutes       int     `mapstructure:"momentum_window_minutes" validate:"required,gt=0"`

	// League-default expected goals over a full match, used below the
	// reliability threshold instead of observed-rate extrapolation
	EarlyHomeXGPer90 float64 `mapstructure:"early_home_xg_per_90" validate:"required,gt=0"`
	EarlyAwayXGPer90 float64 `mapstructure:"early_away_xg_per_90" validate:"required,gt=0"`

	// xG proxy weights when the provider reports no xG signal
	XGProxyShotWeight     float64 `mapstructure:"xg_proxy_shot_weight" validate:"gte=0"`
	XGProxyOnTargetWeight float64 `mapstructure:"xg_proxy_on_target_weight" validate:"gte=0"`

	// Discipline and corner defaults before an in-match sample exists
	FoulsPerCard float64 `mapstructure:"fouls_per_card" validate:"required,gt=0"`
	CardsPer90   float64 `mapstructure:"cards_per_90" validate:"required,gt=0"`
	CornersPer90 float64 `mapstructure:"corners_per_90" validate:"required,gt=0"`

	// Floor applied to raw outcome scores before normalization
	ProbabilityFloor float64 `mapstructure:"probability_floor" validate:"gte=0,lt=34"`

	// Per-market threshold lines
	GoalThresholds     []float64 `mapstructure:"goal_thresholds" validate:"required,min=1"`
	TeamGoalThresholds []float64 `mapstructure:"team_goal_thresholds" validate:"required,min=1"`
	CardThresholds     []float64 `mapstructure:"card_thresholds" validate:"required,min=1"`
	CornerThresholds   []float64 `mapstructure:"corner_thresholds" validate:"required,min=1"`

	// Exactly six phases covering the match clock
	Phases []PhaseConfig `mapstructure:"phases" validate:"required,len=6"`
}

// ScannerConfig represents the live scan loop configuration
type ScannerConfig struct {
	PollIntervalSeconds int     `mapstructure:"poll_interval_seconds" validate:"required,gt=0"`
	MaxConcurrent       int     `mapstructure:"max_concurrent" validate:"required,gt=0"`
	TopN                int     `mapstructure:"top_n" validate:"required,gt=0"`
	MinProbability      float64 `mapstructure:"min_probability" validate:"gte=0,lte=100"`
	AlertMinProbability float64 `mapstructure:"alert_min_probability" validate:"gte=0,lte=100"`
	AlertMinValue       float64 `mapstructure:"alert_min_value" validate:"gte=0"`
	SettlementCron      string  `mapstructure:"settlement_cron"`
}

// NotifierConfig represents Telegram alert configuration
type NotifierConfig struct {
	Enabled            bool   `mapstructure:"enabled"`
	TelegramToken      string `mapstructure:"telegram_token"`
	TelegramChatID     int64  `mapstructure:"telegram_chat_id"`
	MinIntervalSeconds int    `mapstructure:"min_interval_seconds"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// FeaturesConfig represents feature flags
type FeaturesConfig struct {
	PersistenceEnabled bool `mapstructure:"persistence_enabled"`
	AlertsEnabled      bool `mapstructure:"alerts_enabled"`
	DixonColesEnabled  bool `mapstructure:"dixon_coles_enabled"`
	ScanLoggingEnabled bool `mapstructure:"scan_logging_enabled"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// DefaultEngineConfig returns the engine tuning parameters used when the
// configuration file does not override them
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		ReliabilityThresholdMinutes: 20,
		DixonColesRho:               -0.05,
		MomentumWindowMinutes:       5,
		EarlyHomeXGPer90:            0.8,
		EarlyAwayXGPer90:            0.6,
		XGProxyShotWeight:           0.08,
		XGProxyOnTargetWeight:       0.25,
		FoulsPerCard:                4.5,
		CardsPer90:                  4.0,
		CornersPer90:                10.0,
		ProbabilityFloor:            5.0,
		GoalThresholds:              []float64{0.5, 1.5, 2.5, 3.5, 4.5, 5.5, 6.5},
		TeamGoalThresholds:          []float64{0.5, 1.5, 2.5},
		CardThresholds:              []float64{2.5, 3.5, 4.5, 5.5, 6.5},
		CornerThresholds:            []float64{7.5, 8.5, 9.5, 10.5, 11.5, 12.5, 13.5},
		Phases:                      DefaultPhases(),
	}
}

// DefaultPhases returns the six standard match phases with their biases
func DefaultPhases() []PhaseConfig {
	return []PhaseConfig{
		{Name: "OPENING", StartMinute: 0, EndMinute: 15, Bias: -5},
		{Name: "PROBING", StartMinute: 15, EndMinute: 30, Bias: 0},
		{Name: "PRE_HT_PUSH", StartMinute: 30, EndMinute: 45, Bias: 8},
		{Name: "POST_HT_RESET", StartMinute: 45, EndMinute: 60, Bias: 3},
		{Name: "DECISION_TIME", StartMinute: 60, EndMinute: 75, Bias: 5},
		{Name: "DESPERATE", StartMinute: 75, EndMinute: 91, Bias: 12},
	}
}
