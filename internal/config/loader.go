// Package config provides configuration management for the MatchPulse application.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load reads and parses the configuration from file and environment variables.
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the configuration (${VAR} syntax)
	expanded := os.ExpandEnv(string(data))

	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(bytes.NewBuffer([]byte(expanded))); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	v.SetEnvPrefix("MATCHPULSE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	applyEngineDefaults(&cfg.Engine)

	return cfg, nil
}

// LoadWithDefaults loads configuration with default values for optional
// fields; a missing configuration file is not an error
func LoadWithDefaults(configPath string) (*Config, error) {
	v := viper.New()

	if configPath == "" {
		configPath = "config/config.yaml"
	}

	v.SetConfigType("yaml")
	v.SetEnvPrefix("MATCHPULSE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "matchpulse")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("scanner.poll_interval_seconds", 30)
	v.SetDefault("scanner.max_concurrent", 8)
	v.SetDefault("scanner.top_n", 5)
	v.SetDefault("scanner.min_probability", 55)
	v.SetDefault("scanner.alert_min_probability", 70)
	v.SetDefault("scanner.settlement_cron", "@every 10m")
	v.SetDefault("features.dixon_coles_enabled", true)

	if data, err := os.ReadFile(configPath); err == nil {
		expanded := os.ExpandEnv(string(data))
		if err := v.ReadConfig(bytes.NewBuffer([]byte(expanded))); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	applyEngineDefaults(&cfg.Engine)

	return cfg, nil
}

// applyEngineDefaults fills engine tuning values the file did not set so a
// minimal configuration still produces a fully specified engine
func applyEngineDefaults(ec *EngineConfig) {
	def := DefaultEngineConfig()

	if ec.ReliabilityThresholdMinutes == 0 {
		ec.ReliabilityThresholdMinutes = def.ReliabilityThresholdMinutes
	}
	if ec.DixonColesRho == 0 {
		ec.DixonColesRho = def.DixonColesRho
	}
	if ec.MomentumWindowMinutes == 0 {
		ec.MomentumWindowMinutes = def.MomentumWindowMinutes
	}
	if ec.EarlyHomeXGPer90 == 0 {
		ec.EarlyHomeXGPer90 = def.EarlyHomeXGPer90
	}
	if ec.EarlyAwayXGPer90 == 0 {
		ec.EarlyAwayXGPer90 = def.EarlyAwayXGPer90
	}
	if ec.XGProxyShotWeight == 0 {
		ec.XGProxyShotWeight = def.XGProxyShotWeight
	}
	if ec.XGProxyOnTargetWeight == 0 {
		ec.XGProxyOnTargetWeight = def.XGProxyOnTargetWeight
	}
	if ec.FoulsPerCard == 0 {
		ec.FoulsPerCard = def.FoulsPerCard
	}
	if ec.CardsPer90 == 0 {
		ec.CardsPer90 = def.CardsPer90
	}
	if ec.CornersPer90 == 0 {
		ec.CornersPer90 = def.CornersPer90
	}
	if ec.ProbabilityFloor == 0 {
		ec.ProbabilityFloor = def.ProbabilityFloor
	}
	if len(ec.GoalThresholds) == 0 {
		ec.GoalThresholds = def.GoalThresholds
	}
	if len(ec.TeamGoalThresholds) == 0 {
		ec.TeamGoalThresholds = def.TeamGoalThresholds
	}
	if len(ec.CardThresholds) == 0 {
		ec.CardThresholds = def.CardThresholds
	}
	if len(ec.CornerThresholds) == 0 {
		ec.CornerThresholds = def.CornerThresholds
	}
	if len(ec.Phases) == 0 {
		ec.Phases = def.Phases
	}
}
