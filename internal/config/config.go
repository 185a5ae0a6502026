// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

package config

import "time"

// Config holds all application configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: built-in values from defaultConfig()
//  2. Config File: optional YAML file (config.yaml or CONFIG_PATH)
//  3. Environment Variables: override any mapped setting
//
// Config is immutable after Load() and safe for concurrent reads.
type Config struct {
	Data      DataConfig      `koanf:"data"`
	Snapshot  SnapshotConfig  `koanf:"snapshot"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Recommend RecommendConfig `koanf:"recommend"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// Data source kinds.
const (
	SourceFile   = "file"
	SourceDuckDB = "duckdb"
)

// DataConfig selects and configures the dataset source.
//
// Environment Variables:
//   - DATA_SOURCE: file or duckdb (default: file)
//   - RESTAURANTS_PATH: restaurant CSV (default: zomato.csv)
//   - COUNTRIES_PATH: country table, .xlsx or .csv (default: Country-Code.xlsx)
//   - DATA_ENCODING: latin-1 or utf-8 (default: latin-1)
//   - DUCKDB_PATH: DuckDB database file, empty for in-memory
//   - DUCKDB_RESTAURANTS_QUERY, DUCKDB_COUNTRIES_QUERY: source queries
//   - DATA_WATCH: reload when the source files change (default: false)
type DataConfig struct {
	Source           string `koanf:"source"`
	RestaurantsPath  string `koanf:"restaurants_path"`
	CountriesPath    string `koanf:"countries_path"`
	Encoding         string `koanf:"encoding"`
	DuckDBPath       string `koanf:"duckdb_path"`
	RestaurantsQuery string `koanf:"restaurants_query"`
	CountriesQuery   string `koanf:"countries_query"`
	Watch            bool   `koanf:"watch"`
}

// SnapshotConfig controls the BadgerDB dataset snapshot store.
type SnapshotConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port    int           `koanf:"port"`
	Host    string        `koanf:"host"`
	Timeout time.Duration `koanf:"timeout"`
}

// SecurityConfig holds CORS and rate limiting settings
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// RecommendConfig holds ranking request defaults and the result cache.
//
// CacheSize 0 disables the result cache.
type RecommendConfig struct {
	DefaultTopN    int           `koanf:"default_top_n"`
	MinTopN        int           `koanf:"min_top_n"`
	MaxTopN        int           `koanf:"max_top_n"`
	DefaultCountry string        `koanf:"default_country"`
	DefaultCuisine string        `koanf:"default_cuisine"`
	CacheSize      int           `koanf:"cache_size"`
	CacheTTL       time.Duration `koanf:"cache_ttl"`
}

// LoggingConfig holds logging configuration.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from defaults, the discovered config file and
// the environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
