package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/thoreinstein/blue-gardener/internal/errors"
	"github.com/thoreinstein/blue-gardener/internal/paths"
)

// Problems reported by Validate. Use errors.Is to classify a FieldError.
var (
	ErrUnsupportedVersion = errors.New("unsupported config version")
	ErrInvalidPlatform    = errors.New("invalid platform")
	ErrInvalidPath        = errors.New("invalid path")
)

// FieldError ties a validation problem to the config key that caused it.
type FieldError struct {
	Field string
	Value any
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Field, e.Err, e.Value)
}

func (e *FieldError) Unwrap() error { return e.Err }

// Validate checks cfg and returns every problem found, in key order.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	checks := []struct {
		field string
		value any
		err   error
	}{
		{"version", cfg.Version, checkVersion(cfg.Version)},
		{"platform", cfg.Platform, checkPlatform(cfg.Platform)},
		{"catalog_dir", cfg.CatalogDir, checkPath(cfg.CatalogDir)},
	}

	var errs []error
	for _, c := range checks {
		if c.err != nil {
			errs = append(errs, &FieldError{Field: c.field, Value: c.value, Err: c.err})
		}
	}
	return errs
}

func checkVersion(v int) error {
	if v != 1 {
		return ErrUnsupportedVersion
	}
	return nil
}

// checkPlatform accepts an empty value, meaning no default platform.
func checkPlatform(p string) error {
	if p != "" && !paths.ValidPlatform(p) {
		return ErrInvalidPlatform
	}
	return nil
}

// checkPath accepts an empty value, meaning the bundled catalog.
func checkPath(p string) error {
	if p == "" {
		return nil
	}
	if strings.ContainsRune(p, 0) || filepath.Clean(p) == "." {
		return ErrInvalidPath
	}
	return nil
}
