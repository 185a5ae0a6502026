// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

/*
Package main is the entry point for the TableMatch server.

TableMatch normalizes a restaurant dataset once and serves ranked
recommendations for cuisine, price range and country preferences over a
JSON HTTP API.

# Application Architecture

Services run under a Suture v4 supervisor tree:

	RootSupervisor ("tablematch")
	├── DataSupervisor ("data-layer")
	│   └── Dataset service (warm-up and file-watch reloads)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi router)

Component initialization order:

 1. Configuration: Koanf v2 with environment variables and config files
 2. Logging: zerolog with JSON/console output modes
 3. Dataset store: file or DuckDB source, optional BadgerDB snapshots
 4. Recommendation engine
 5. Supervisor tree and HTTP server

# Configuration

Priority: Environment variables > Config file > Defaults

	DATA_SOURCE=file                 # file or duckdb
	RESTAURANTS_PATH=zomato.csv
	COUNTRIES_PATH=Country-Code.xlsx
	DATA_ENCODING=latin-1            # latin-1 or utf-8
	DATA_WATCH=false                 # reload when source files change
	SNAPSHOT_ENABLED=false
	SNAPSHOT_PATH=/data/snapshots
	HTTP_PORT=8080
	LOG_LEVEL=info
	LOG_FORMAT=json

Set CONFIG_PATH to load a specific YAML file.

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains
in-flight requests for up to 10s before the process exits.
*/
package main
