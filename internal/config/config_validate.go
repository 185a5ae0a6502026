// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

package config

import (
	"fmt"
	"strings"
)

// Validate checks that all configuration values are usable.
func (c *Config) Validate() error {
	if err := c.validateData(); err != nil {
		return err
	}
	if err := c.validateSnapshot(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateData() error {
	switch c.Data.Source {
	case SourceFile:
		if c.Data.RestaurantsPath == "" {
			return fmt.Errorf("RESTAURANTS_PATH is required when DATA_SOURCE is %q", SourceFile)
		}
		if c.Data.CountriesPath == "" {
			return fmt.Errorf("COUNTRIES_PATH is required when DATA_SOURCE is %q", SourceFile)
		}
	case SourceDuckDB:
	default:
		return fmt.Errorf("DATA_SOURCE must be %q or %q, got %q", SourceFile, SourceDuckDB, c.Data.Source)
	}

	switch strings.ToLower(c.Data.Encoding) {
	case "latin-1", "latin1", "iso-8859-1", "utf-8", "utf8":
	default:
		return fmt.Errorf("DATA_ENCODING must be latin-1 or utf-8, got %q", c.Data.Encoding)
	}
	return nil
}

func (c *Config) validateSnapshot() error {
	if c.Snapshot.Enabled && c.Snapshot.Path == "" {
		return fmt.Errorf("SNAPSHOT_PATH is required when snapshots are enabled")
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.Server.Timeout)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", c.Security.RateLimitWindow)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.MinTopN < 1 {
		return fmt.Errorf("recommend.min_top_n must be at least 1, got %d", r.MinTopN)
	}
	if r.MaxTopN < r.MinTopN {
		return fmt.Errorf("recommend.max_top_n (%d) must be >= min_top_n (%d)", r.MaxTopN, r.MinTopN)
	}
	if r.DefaultTopN < r.MinTopN || r.DefaultTopN > r.MaxTopN {
		return fmt.Errorf("recommend.default_top_n must be between %d and %d, got %d", r.MinTopN, r.MaxTopN, r.DefaultTopN)
	}
	if r.CacheSize < 0 {
		return fmt.Errorf("recommend.cache_size must not be negative, got %d", r.CacheSize)
	}
	if r.CacheSize > 0 && r.CacheTTL <= 0 {
		return fmt.Errorf("recommend.cache_ttl must be positive when the cache is enabled")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, got %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
