package config

import (
	"bagrules/internal/core/errors"
	"fmt"
	"strings"
	"time"

	"github.com/gobwas/glob"
)

// Validate checks a configuration after defaults have been applied.
func Validate(cfg *Config) error {
	for _, check := range []func(*Config) error{
		validateVersion,
		validateInput,
		validateQuery,
		validateOutput,
		validateWatch,
	} {
		if err := check(cfg); err != nil {
			return err
		}
	}
	return nil
}

func validateVersion(cfg *Config) error {
	if cfg.Version != 1 {
		return invalid("unsupported config version %d; supported version is 1", cfg.Version)
	}
	return nil
}

func validateInput(cfg *Config) error {
	for i, p := range cfg.Input.Paths {
		if strings.TrimSpace(p) == "" {
			return invalid("input.paths[%d] must not be empty", i)
		}
	}
	return validatePatterns("input.include", cfg.Input.Include)
}

func validateQuery(cfg *Config) error {
	if strings.TrimSpace(cfg.Query.Root) == "" {
		return invalid("query.root must not be empty")
	}
	if cfg.Query.MaxDepth < 0 {
		return invalid("query.max_depth must be >= 0, got %d", cfg.Query.MaxDepth)
	}
	if cfg.Query.CacheSize < 0 {
		return invalid("query.cache_size must be >= 0, got %d", cfg.Query.CacheSize)
	}
	return nil
}

func validateOutput(cfg *Config) error {
	return validatePatterns("output.match", cfg.Output.Match)
}

func validateWatch(cfg *Config) error {
	if err := validateDuration("watch.debounce", cfg.Watch.Debounce); err != nil {
		return err
	}
	return validateDuration("watch.min_interval", cfg.Watch.MinInterval)
}

func validateDuration(field, value string) error {
	d, err := time.ParseDuration(value)
	if err != nil {
		return errors.Wrap(err, errors.CodeValidationError, fmt.Sprintf("%s is not a valid duration: %q", field, value))
	}
	if d <= 0 {
		return invalid("%s must be positive, got %s", field, d)
	}
	return nil
}

func validatePatterns(field string, patterns []string) error {
	for i, p := range patterns {
		if _, err := glob.Compile(p); err != nil {
			return errors.Wrap(err, errors.CodeValidationError, fmt.Sprintf("%s[%d] is not a valid pattern: %q", field, i, p))
		}
	}
	return nil
}

func invalid(format string, args ...interface{}) error {
	return errors.Newf(errors.CodeValidationError, format, args...)
}
