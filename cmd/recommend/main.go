// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

// Package main provides the recommend command-line tool. It loads the
// configured dataset once and prints the top matches as a table.
//
//	recommend -cuisine italian -cuisine pizza -price Medium -country india -top 5
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tomtom215/tablematch/internal/config"
	"github.com/tomtom215/tablematch/internal/console"
	"github.com/tomtom215/tablematch/internal/dataset"
	"github.com/tomtom215/tablematch/internal/logging"
	"github.com/tomtom215/tablematch/internal/models"
	"github.com/tomtom215/tablematch/internal/recommend"
)

// listFlag collects a repeatable flag. Each value may also be comma-separated.
type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, ",") }

func (l *listFlag) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*l = append(*l, part)
		}
	}
	return nil
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "recommend: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("recommend", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var cuisines, prices listFlag
	configPath := fs.String("config", "", "Path to YAML configuration file (default: search standard locations)")
	country := fs.String("country", "", "Case-insensitive country substring (empty matches every country)")
	top := fs.Int("top", 0, "Number of results, at least 1 (default: recommend.default_top_n)")
	fs.Var(&cuisines, "cuisine", "Cuisine to match, repeatable (default: recommend.default_cuisine)")
	fs.Var(&prices, "price", "Price range to match (Low, Medium, High), repeatable (default: all)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	topSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "top" {
			topSet = true
		}
	})

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    "console",
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    stderr,
	})

	query := models.Query{
		Cuisines:         cuisines,
		CountrySubstring: *country,
		TopN:             *top,
	}
	if len(query.Cuisines) == 0 {
		query.Cuisines = []string{cfg.Recommend.DefaultCuisine}
	}
	if !topSet {
		query.TopN = cfg.Recommend.DefaultTopN
	}
	for _, p := range prices {
		pr, err := models.ParsePriceRange(p)
		if err != nil {
			return err
		}
		query.PriceRanges = append(query.PriceRanges, pr)
	}
	if len(prices) == 0 {
		query.PriceRanges = models.PriceRanges()
	}

	store, closeStore, err := dataset.NewFromConfig(ctx, cfg, logging.WithComponent("dataset"))
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			logging.Error().Err(err).Msg("Error closing dataset store")
		}
	}()

	engine, err := recommend.NewEngine(recommend.ConfigFrom(cfg.Recommend), logging.WithComponent("recommend"))
	if err != nil {
		return err
	}
	engine.SetDataProvider(store)

	resp, err := engine.Recommend(ctx, query)
	if err != nil {
		return err
	}
	return console.RenderTable(stdout, resp.Results)
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFile(path)
}
