package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks if the configuration meets the requirements for the
// current environment. Secrets are mandatory everywhere except development and
// test, where a generated-per-run JWT secret would break nothing but local
// token reuse.
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()

	var errs []string

	if env == Production || env == CI {
		if cfg.JWTSecret == "" {
			errs = append(errs, "JWT_SECRET is required")
		}
		if cfg.DBUser == "" {
			errs = append(errs, "DB_USER is required")
		}
		if cfg.DBPassword == "" {
			errs = append(errs, "DB_PASSWORD is required")
		}
	}

	if cfg.BudgetLimit <= 0 {
		errs = append(errs, "BUDGET_LIMIT must be positive")
	}
	if cfg.CalorieAlertThreshold <= 0 {
		errs = append(errs, "CALORIE_ALERT_THRESHOLD must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}

	return nil
}
