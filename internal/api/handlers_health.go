// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

package api

import (
	"net/http"
	"time"
)

// HealthLive returns 200 while the process is running, regardless of the dataset.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady returns 200 once the dataset is loaded, 503 before that.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	loaded := h.store != nil && h.store.Loaded()
	data := map[string]interface{}{
		"dataset_loaded": loaded,
		"ready_to_serve": loaded,
		"uptime":         time.Since(h.startTime).Seconds(),
	}

	rw := NewResponseWriter(w, r)
	if !loaded {
		rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeDatasetUnavailable, "Dataset not loaded yet", data)
		return
	}
	rw.Success(data)
}
