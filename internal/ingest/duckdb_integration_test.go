// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

//go:build integration

package ingest

import (
	"context"
	"testing"

	"github.com/tomtom215/tablematch/internal/models"
)

func TestDuckDBSource_Load(t *testing.T) {
	db, err := OpenDuckDB("")
	if err != nil {
		t.Fatalf("OpenDuckDB() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	stmts := []string{
		`CREATE TABLE restaurants ("Restaurant Name" VARCHAR, "Country Code" INTEGER, "City" VARCHAR,
			"Cuisines" VARCHAR, "Average Cost for two" INTEGER, "Aggregate rating" DOUBLE, "Votes" INTEGER)`,
		`INSERT INTO restaurants VALUES ('Pasta Place', 1, NULL, 'Italian, Pizza', 800, 4.5, 800)`,
		`INSERT INTO restaurants VALUES ('Diner', 216, 'Austin', 'Burger', 250, 3.9, NULL)`,
		`CREATE TABLE countries ("Country Code" INTEGER, "Country" VARCHAR)`,
		`INSERT INTO countries VALUES (1, 'India'), (216, 'United States')`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}

	src := NewDuckDBSource(db, `SELECT * FROM restaurants ORDER BY "Restaurant Name" DESC`, "")
	raw, err := src.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(raw.Records) != 2 {
		t.Fatalf("len(Records) = %d, want 2", len(raw.Records))
	}
	first := raw.Records[0]
	if first[models.FieldName] != "Pasta Place" {
		t.Errorf("first name = %v, want Pasta Place", first[models.FieldName])
	}
	if _, ok := first[models.FieldCity]; ok {
		t.Error("NULL City should be absent")
	}
	if _, ok := raw.Records[1][models.FieldVotes]; ok {
		t.Error("NULL Votes should be absent")
	}
	if name, ok := raw.Countries.Resolve(first[models.FieldCountryCode]); !ok || name != "India" {
		t.Errorf("Resolve(code) = %q, %v; want India", name, ok)
	}

	again, err := src.Load(ctx)
	if err != nil {
		t.Fatalf("second Load() error = %v", err)
	}
	if again.Fingerprint != raw.Fingerprint {
		t.Error("fingerprint is not stable across identical loads")
	}
}
