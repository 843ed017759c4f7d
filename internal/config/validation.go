// Package config provides configuration management for the MatchPulse application.
package config

import (
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	v.RegisterValidation("environment", validateEnvironment)
	v.RegisterValidation("loglevel", validateLogLevel)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	cv := NewValidator()
	return cv.Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	err := cv.validator.Struct(cfg)
	if err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	if err := validateCrossField(cfg); err != nil {
		return err
	}

	return nil
}

// validateEnvironment validates the environment field
func validateEnvironment(fl validator.FieldLevel) bool {
	env := fl.Field().String()
	switch env {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

// validateLogLevel validates the log level field
func validateLogLevel(fl validator.FieldLevel) bool {
	level := fl.Field().String()
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// validateCrossField performs cross-field validations
func validateCrossField(cfg *Config) error {
	if err := validatePhases(cfg.Engine.Phases); err != nil {
		return err
	}

	for _, list := range [][]float64{
		cfg.Engine.GoalThresholds,
		cfg.Engine.TeamGoalThresholds,
		cfg.Engine.CardThresholds,
		cfg.Engine.CornerThresholds,
	} {
		if !sort.Float64sAreSorted(list) {
			return fmt.Errorf("market threshold lists must be ascending, got %v", list)
		}
	}

	if cfg.Scanner.AlertMinProbability < cfg.Scanner.MinProbability {
		return fmt.Errorf("alert_min_probability cannot be below min_probability")
	}

	if cfg.IsProduction() && cfg.Database.SSLMode == "disable" {
		return fmt.Errorf("production environment requires SSL mode to be 'require' or 'verify-full'")
	}

	if cfg.Database.MaxIdleConnections > cfg.Database.MaxConnections {
		return fmt.Errorf("max_idle_connections cannot exceed max_connections")
	}

	if cfg.Notifier.Enabled && cfg.Notifier.TelegramToken == "" {
		return fmt.Errorf("notifier is enabled but telegram_token is empty")
	}

	return nil
}

// validatePhases checks the six phases tile the match clock contiguously
// from minute 0 with no gaps or overlaps
func validatePhases(phases []PhaseConfig) error {
	if len(phases) != 6 {
		return fmt.Errorf("engine requires exactly 6 phases, got %d", len(phases))
	}

	expectedStart := 0
	for _, p := range phases {
		if p.StartMinute != expectedStart {
			return fmt.Errorf("phase %q starts at minute %d, expected %d", p.Name, p.StartMinute, expectedStart)
		}
		if p.EndMinute <= p.StartMinute {
			return fmt.Errorf("phase %q has non-positive duration", p.Name)
		}
		expectedStart = p.EndMinute
	}

	if last := phases[len(phases)-1]; last.EndMinute < 90 {
		return fmt.Errorf("final phase %q must cover minute 90", last.Name)
	}

	return nil
}

// formatValidationErrors formats validation errors into a readable string
func formatValidationErrors(validationErrors validator.ValidationErrors) error {
	var errMsg string
	for _, fieldError := range validationErrors {
		field := fieldError.StructField()
		tag := fieldError.Tag()
		value := fieldError.Value()

		switch tag {
		case "required":
			errMsg += fmt.Sprintf("- Field '%s' is required\n", field)
		case "url":
			errMsg += fmt.Sprintf("- Field '%s' must be a valid URL, got '%v'\n", field, value)
		case "min", "max":
			errMsg += fmt.Sprintf("- Field '%s' validation failed: %s constraint violated\n", field, tag)
		case "gt", "gte", "lt", "lte":
			errMsg += fmt.Sprintf("- Field '%s' validation failed: numeric constraint %s violated\n", field, tag)
		case "environment":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: development, staging, production\n", field)
		case "loglevel":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: debug, info, warn, error\n", field)
		case "len":
			errMsg += fmt.Sprintf("- Field '%s' must have exactly %s entries\n", field, fieldError.Param())
		case "oneof":
			errMsg += fmt.Sprintf("- Field '%s' has invalid value '%v'\n", field, value)
		default:
			errMsg += fmt.Sprintf("- Field '%s' failed validation: %s\n", field, tag)
		}
	}
	return fmt.Errorf("configuration validation failed:\n%s", errMsg)
}
