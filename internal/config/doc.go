// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

/*
Package config provides layered configuration loading for TableMatch.

Configuration is resolved with Koanf v2 in three layers, each overriding
the previous one:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: CONFIG_PATH, config.yaml, config.yml or
    /etc/tablematch/config.yaml
 3. Mapped environment variables such as RESTAURANTS_PATH or LOG_LEVEL

Example config.yaml:

	data:
	  source: file
	  restaurants_path: /data/zomato.csv
	  countries_path: /data/Country-Code.xlsx
	  encoding: latin-1
	  watch: true
	snapshot:
	  enabled: true
	  path: /data/snapshots
	server:
	  port: 8080
	recommend:
	  default_top_n: 10
	  cache_size: 1024
	  cache_ttl: 10m

Load validates the merged result and returns an error naming the
offending setting.
*/
package config
