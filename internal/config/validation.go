package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Christbey/picksports-sub004/internal/sports"
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
	v.RegisterValidation("sport", validateSport)

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

	return validateCrossField(cfg)
}

func validateEnvironment(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "development", "staging", "production":
		return true
	}
	return false
}

func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

func validateSport(fl validator.FieldLevel) bool {
	_, err := sports.ProfileFor(fl.Field().String())
	return err == nil
}

// validateCrossField applies checks that span multiple fields
func validateCrossField(cfg *Config) error {
	for _, p := range cfg.Sports {
		if _, err := sports.ProfileFor(p.Sport); err != nil {
			return fmt.Errorf("sports override for unknown sport %q", p.Sport)
		}
		if p.Dampener.Enabled && p.Dampener.Span <= 0 {
			return fmt.Errorf("sport %s: dampener enabled with non-positive span", p.Sport)
		}
		if p.Dampener.Floor < 0 || p.Dampener.Floor > 1 {
			return fmt.Errorf("sport %s: dampener floor must be in [0,1]", p.Sport)
		}
		if p.TeamMatchThreshold < 0 || p.TeamMatchThreshold > 1 {
			return fmt.Errorf("sport %s: team match threshold must be in [0,1]", p.Sport)
		}
	}
	if cfg.Stream.Enabled && cfg.Stream.Port == 0 {
		return fmt.Errorf("stream enabled without a port")
	}
	return nil
}

func formatValidationErrors(errs validator.ValidationErrors) error {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", e.Namespace(), e.Tag()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}
