// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/tablematch/internal/logging"
	"github.com/tomtom215/tablematch/internal/models"
	"github.com/tomtom215/tablematch/internal/validation"
)

// Options handles GET /api/v1/options.
func (h *Handler) Options(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	opts, err := h.engine.Options(ctx)
	if err != nil {
		NewResponseWriter(w, r).DatasetUnavailable(err)
		return
	}
	WriteSuccess(w, r, opts)
}

// GetRecommendations handles GET /api/v1/recommendations.
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	req, err := parseRecommendationParams(r.URL.Query())
	if err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return
	}
	h.recommend(w, r, &req)
}

// PostRecommendations handles POST /api/v1/recommendations.
func (h *Handler) PostRecommendations(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)

	var req RecommendationRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		NewResponseWriter(w, r).BadRequest("Invalid JSON body: " + err.Error())
		return
	}
	h.recommend(w, r, &req)
}

func (h *Handler) recommend(w http.ResponseWriter, r *http.Request, req *RecommendationRequest) {
	rw := NewResponseWriter(w, r)

	if verr := validation.ValidateStruct(req); verr != nil {
		rw.ValidationError(verr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	resp, err := h.engine.Recommend(ctx, req.toQuery(h.defaultTopN))
	if err != nil {
		var qerr *models.QueryError
		switch {
		case errors.As(err, &qerr):
			rw.InvalidQuery(qerr.Error(), map[string]string{"field": qerr.Field, "reason": qerr.Reason})
		case errors.Is(err, models.ErrInvalidQuery):
			rw.InvalidQuery(err.Error(), nil)
		default:
			rw.DatasetUnavailable(err)
		}
		return
	}

	rw.Success(resp)
}

// RecommendationStats handles GET /api/v1/recommendations/stats.
func (h *Handler) RecommendationStats(w http.ResponseWriter, r *http.Request) {
	loaded := h.store != nil && h.store.Loaded()
	WriteSuccess(w, r, map[string]interface{}{
		"metrics":        h.engine.GetMetrics(),
		"dataset_loaded": loaded,
	})
}

// DatasetReloadResponse describes a freshly loaded dataset.
type DatasetReloadResponse struct {
	Fingerprint string                `json:"fingerprint"`
	Records     int                   `json:"records"`
	Stats       models.NormalizeStats `json:"stats"`
	LoadedAt    time.Time             `json:"loaded_at"`
}

// ReloadDataset handles POST /api/v1/dataset/reload.
func (h *Handler) ReloadDataset(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.store == nil {
		rw.DatasetUnavailable(errors.New("no dataset store configured"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	ds, err := h.store.Reload(ctx)
	if err != nil {
		rw.DatasetUnavailable(err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Str("fingerprint", ds.Fingerprint).
		Int("records", ds.Len()).
		Msg("Dataset reloaded via API")

	rw.Success(DatasetReloadResponse{
		Fingerprint: ds.Fingerprint,
		Records:     ds.Len(),
		Stats:       ds.Stats,
		LoadedAt:    ds.LoadedAt,
	})
}
