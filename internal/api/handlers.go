// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

package api

import (
	"context"
	"time"

	"github.com/tomtom215/tablematch/internal/models"
	"github.com/tomtom215/tablematch/internal/recommend"
)

// Recommender ranks queries against the current dataset.
// It is implemented by *recommend.Engine.
type Recommender interface {
	Recommend(ctx context.Context, q models.Query) (*recommend.Response, error)
	Options(ctx context.Context) (*recommend.Options, error)
	GetMetrics() recommend.Metrics
}

// DatasetStore is the subset of *dataset.Store the handlers need.
type DatasetStore interface {
	Loaded() bool
	Reload(ctx context.Context) (*models.Dataset, error)
}

// Handler holds the dependencies shared by all HTTP handlers.
type Handler struct {
	engine      Recommender
	store       DatasetStore
	defaultTopN int
	timeout     time.Duration
	startTime   time.Time
}

// NewHandler creates a handler. defaultTopN applies when a request omits top_n.
func NewHandler(engine Recommender, store DatasetStore, defaultTopN int, timeout time.Duration) *Handler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Handler{
		engine:      engine,
		store:       store,
		defaultTopN: defaultTopN,
		timeout:     timeout,
		startTime:   time.Now(),
	}
}
