// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

// Package recommend ranks canonical restaurant records against a query.
//
// # Ranking
//
// Rank applies three hard filters (primary cuisine in the query's cuisine
// set, price range in the query's price set, and a case-insensitive
// substring match on the country name) and then scores the survivors:
//
//	normRating = rating / 5
//	normVotes  = votes / maxVotes   (0 when every survivor has 0 votes)
//	score      = 0.7*normRating + 0.3*normVotes
//
// maxVotes is taken over the filtered set only, so a record's score depends
// on which other records matched the same query. Results are sorted by
// score descending; equal scores keep ascending record ID order.
//
// # Engine
//
// Engine wraps Rank for the API and CLI. It pulls the current dataset from a
// DataProvider, standardizes query cuisines the same way the normalizer
// does, builds per-result explanations and records metrics.
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	engine.SetDataProvider(store)
//	resp, err := engine.Recommend(ctx, models.Query{
//	    Cuisines:    []string{"italian"},
//	    PriceRanges: []models.PriceRange{models.PriceHigh},
//	    TopN:        10,
//	})
//
// # Thread Safety
//
// Rank is a pure function. The engine only reads the shared dataset and
// works on copies, so it is safe for concurrent use.
package recommend
