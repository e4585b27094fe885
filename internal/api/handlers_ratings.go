// Materium - Construction Material Recommendation Service
// Copyright 2026 Quarry Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/quarrylabs/materium

package api

import (
	"net/http"
	"time"

	"github.com/quarrylabs/materium/internal/logging"
	"github.com/quarrylabs/materium/internal/models"
	"github.com/quarrylabs/materium/internal/validation"
)

type ratingRequest struct {
	MaterialID int     `json:"material_id" validate:"required,gte=1"`
	Rating     float64 `json:"rating" validate:"required,gte=1,lte=5"`

	// ProjectID links the rating to a project; 0 leaves it
	// standalone.
	ProjectID int64 `json:"project_id" validate:"gte=0"`
}

// SaveRating records feedback and opportunistically retrains the
// score model when the training throttle allows it.
func (h *Handler) SaveRating(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	var req ratingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if ve := validation.ValidateStruct(&req); ve != nil {
		respondValidationError(w, ve)
		return
	}
	if _, err := h.catalog.MaterialByID(req.MaterialID); err != nil {
		respondError(w, http.StatusNotFound, models.ErrCodeNotFound, "material not found", nil)
		return
	}

	saved, err := h.db.SaveRating(r.Context(), &models.Rating{
		UserID:     claims.UserID,
		ProjectID:  req.ProjectID,
		MaterialID: req.MaterialID,
		Rating:     req.Rating,
	})
	if err != nil {
		respondStoreError(w, err)
		return
	}

	// Retraining is throttled inside the engine; failures only cost
	// model freshness, never the rating write.
	if training, err := h.db.RatingsForTraining(r.Context()); err != nil {
		logging.Warn().Err(err).Msg("loading ratings for retrain failed")
	} else if _, err := h.engine.MaybeTrain(r.Context(), training); err != nil {
		logging.Warn().Err(err).Msg("opportunistic retrain failed")
	}

	respondData(w, http.StatusCreated, map[string]interface{}{"rating": saved}, started)
}

// ListRatings returns the authenticated user's ratings.
func (h *Handler) ListRatings(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	ratings, err := h.db.ListRatings(r.Context(), claims.UserID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{
		"ratings": ratings,
		"count":   len(ratings),
	}, started)
}
