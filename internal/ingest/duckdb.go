// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

package ingest

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"hash"
	"strconv"
	"time"

	// Register the DuckDB driver.
	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/tablematch/internal/metrics"
	"github.com/tomtom215/tablematch/internal/models"
)

// Default DuckDB queries. Column names must match the CSV headers.
const (
	DefaultRestaurantsQuery = `SELECT * FROM restaurants`
	DefaultCountriesQuery   = `SELECT "Country Code", "Country" FROM countries`
)

// DuckDBSource reads restaurants and countries from a DuckDB database.
type DuckDBSource struct {
	db               *sql.DB
	restaurantsQuery string
	countriesQuery   string
}

// OpenDuckDB opens a DuckDB database. An empty path opens an in-memory database.
func OpenDuckDB(path string) (*sql.DB, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb %q: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping duckdb %q: %w", path, err)
	}
	return db, nil
}

// NewDuckDBSource creates a source over db. Empty queries use the defaults.
func NewDuckDBSource(db *sql.DB, restaurantsQuery, countriesQuery string) *DuckDBSource {
	if restaurantsQuery == "" {
		restaurantsQuery = DefaultRestaurantsQuery
	}
	if countriesQuery == "" {
		countriesQuery = DefaultCountriesQuery
	}
	return &DuckDBSource{
		db:               db,
		restaurantsQuery: restaurantsQuery,
		countriesQuery:   countriesQuery,
	}
}

// String describes the source for logs.
func (s *DuckDBSource) String() string {
	return "duckdb"
}

// Load runs both queries. SQL NULL becomes an absent field.
func (s *DuckDBSource) Load(ctx context.Context) (*RawDataset, error) {
	h := sha256.New()

	header, rows, err := s.query(ctx, "restaurants", s.restaurantsQuery, h)
	if err != nil {
		return nil, err
	}
	records := make([]models.RawRecord, 0, len(rows))
	for _, row := range rows {
		rec := make(models.RawRecord, len(header))
		for i, col := range header {
			if row[i] != nil {
				rec[col] = row[i]
			}
		}
		records = append(records, rec)
	}

	h.Write([]byte{0})
	cHeader, cRows, err := s.query(ctx, "countries", s.countriesQuery, h)
	if err != nil {
		return nil, err
	}
	table := make([][]string, len(cRows))
	for i, row := range cRows {
		table[i] = make([]string, len(row))
		for j, v := range row {
			if v != nil {
				table[i][j] = models.FormatValue(v)
			}
		}
	}
	lookup, err := buildLookup(cHeader, table)
	if err != nil {
		return nil, err
	}

	return &RawDataset{
		Records:     records,
		Countries:   lookup,
		Fingerprint: hex.EncodeToString(h.Sum(nil)),
	}, nil
}

// query runs q and returns its columns and converted rows, hashing every
// value into h in row order.
func (s *DuckDBSource) query(ctx context.Context, table, q string, h hash.Hash) (columns []string, out [][]any, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery(table, time.Since(start), err) }()

	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	columns, err = rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("columns %s: %w", table, err)
	}
	writeHeader(h, columns)

	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, fmt.Errorf("scan %s: %w", table, err)
		}
		for i, v := range values {
			values[i] = convertValue(v)
			writeValue(h, values[i])
		}
		out = append(out, values)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate %s: %w", table, err)
	}
	return columns, out, nil
}

// convertValue maps driver values onto the scalar set RawRecord allows.
func convertValue(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case []byte:
		return string(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case int:
		return int64(x)
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case float32:
		return float64(x)
	case time.Time:
		return x.UTC().Format(time.RFC3339)
	case string, int64, uint64, float64, bool:
		return x
	default:
		return fmt.Sprint(x)
	}
}

func writeHeader(h hash.Hash, columns []string) {
	for _, c := range columns {
		h.Write([]byte(strconv.Quote(c)))
	}
	h.Write([]byte{'\n'})
}

func writeValue(h hash.Hash, v any) {
	if v == nil {
		h.Write([]byte("null;"))
		return
	}
	fmt.Fprintf(h, "%T:%s;", v, strconv.Quote(models.FormatValue(v)))
}
