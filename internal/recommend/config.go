// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

package recommend

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/tablematch/internal/config"
)

// Config contains configuration for the recommendation engine.
type Config struct {
	// Limits contains request limits.
	Limits LimitsConfig `json:"limits"`

	// Defaults contains the values offered to clients before they choose.
	Defaults DefaultsConfig `json:"defaults"`

	// Cache controls memoization of ranked results.
	Cache CacheConfig `json:"cache"`
}

// CacheConfig bounds the ranked result cache. Entries are keyed by dataset
// fingerprint, so a reload never serves results from older data.
type CacheConfig struct {
	// Size is the maximum number of cached queries. 0 disables caching.
	// Default: 1024.
	Size int `json:"size"`

	// TTL is how long a cached page stays valid.
	// Default: 10m.
	TTL time.Duration `json:"ttl"`
}

// LimitsConfig contains request limits.
type LimitsConfig struct {
	// DefaultTopN is used by callers when a request omits the result count.
	// Default: 10.
	DefaultTopN int `json:"default_top_n"`

	// MinTopN and MaxTopN bound the slider offered by Options.
	// Default: 5 and 20.
	MinTopN int `json:"min_top_n"`
	MaxTopN int `json:"max_top_n"`
}

// DefaultsConfig holds option defaults.
type DefaultsConfig struct {
	// Country is preselected when present in the dataset.
	// Default: India.
	Country string `json:"country"`

	// Cuisine is preselected when present in the dataset.
	// Default: italian.
	Cuisine string `json:"cuisine"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		Limits: LimitsConfig{
			DefaultTopN: 10,
			MinTopN:     5,
			MaxTopN:     20,
		},
		Defaults: DefaultsConfig{
			Country: "India",
			Cuisine: "italian",
		},
		Cache: CacheConfig{
			Size: 1024,
			TTL:  10 * time.Minute,
		},
	}
}

// ConfigFrom builds an engine configuration from the application's
// recommend settings.
func ConfigFrom(rc config.RecommendConfig) *Config {
	return &Config{
		Limits: LimitsConfig{
			DefaultTopN: rc.DefaultTopN,
			MinTopN:     rc.MinTopN,
			MaxTopN:     rc.MaxTopN,
		},
		Defaults: DefaultsConfig{
			Country: rc.DefaultCountry,
			Cuisine: rc.DefaultCuisine,
		},
		Cache: CacheConfig{
			Size: rc.CacheSize,
			TTL:  rc.CacheTTL,
		},
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Limits.DefaultTopN < 1 {
		return fmt.Errorf("limits.default_top_n must be positive, got %d", c.Limits.DefaultTopN)
	}
	if c.Limits.MinTopN < 1 {
		return fmt.Errorf("limits.min_top_n must be positive, got %d", c.Limits.MinTopN)
	}
	if c.Limits.MaxTopN < c.Limits.MinTopN {
		return fmt.Errorf("limits.max_top_n (%d) must be >= limits.min_top_n (%d)", c.Limits.MaxTopN, c.Limits.MinTopN)
	}
	if strings.TrimSpace(c.Defaults.Cuisine) == "" {
		return fmt.Errorf("defaults.cuisine must not be empty")
	}
	if c.Cache.Size < 0 {
		return fmt.Errorf("cache.size must not be negative, got %d", c.Cache.Size)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
