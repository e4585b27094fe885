// Materium - Construction Material Recommendation Service
// Copyright 2026 Quarry Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/quarrylabs/materium

package api

import (
	"net/http"
	"time"

	"github.com/quarrylabs/materium/internal/metrics"
	"github.com/quarrylabs/materium/internal/models"
	"github.com/quarrylabs/materium/internal/validation"
)

type recommendRequest struct {
	Spec models.ProjectSpec `json:"spec"`

	// K is how many results to return; 0 means the configured
	// default.
	K int `json:"k" validate:"gte=0,lte=50"`

	// ProjectID, when set, persists the run against that project.
	ProjectID int64 `json:"project_id" validate:"gte=0"`
}

type rankedEntry struct {
	models.RankedResult
	Material models.MaterialRecord  `json:"material"`
	Supplier *models.SupplierRecord `json:"supplier,omitempty"`
}

// Recommend runs the recommendation pipeline for a project spec.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req recommendRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if ve := validation.ValidateStruct(&req); ve != nil {
		respondValidationError(w, ve)
		return
	}

	results, cached, err := h.engine.Recommend(r.Context(), req.Spec, req.K)
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeInternal, "recommendation failed", err)
		return
	}
	metrics.RecordRecommendation(time.Since(started), cached)

	if req.ProjectID != 0 {
		claims := mustClaims(w, r)
		if claims == nil {
			return
		}
		if err := h.db.SaveRecommendations(r.Context(), claims.UserID, req.ProjectID, results); err != nil {
			respondStoreError(w, err)
			return
		}
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"results": h.enrichResults(results),
			"count":   len(results),
		},
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(started).Milliseconds(),
			Cached:      cached,
		},
	})
}

// enrichResults joins ranked results with their catalog records.
func (h *Handler) enrichResults(results []models.RankedResult) []rankedEntry {
	entries := make([]rankedEntry, 0, len(results))
	for _, res := range results {
		material, err := h.catalog.MaterialByID(res.MaterialID)
		if err != nil {
			continue
		}
		entry := rankedEntry{RankedResult: res, Material: material}
		if supplier, err := h.catalog.SupplierForMaterial(material.ID); err == nil {
			entry.Supplier = &supplier
		}
		entries = append(entries, entry)
	}
	return entries
}
