// Materium - Construction Material Recommendation Service
// Copyright 2026 Quarry Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/quarrylabs/materium

package api

import (
	"net/http"
	"time"

	"github.com/quarrylabs/materium/internal/models"
	"github.com/quarrylabs/materium/internal/validation"
)

type projectRequest struct {
	Name string             `json:"name" validate:"required,min=1,max=120"`
	Spec models.ProjectSpec `json:"spec"`
}

// CreateProject saves a new project for the authenticated user.
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	var req projectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if ve := validation.ValidateStruct(&req); ve != nil {
		respondValidationError(w, ve)
		return
	}

	project, err := h.db.SaveProject(r.Context(), claims.UserID, req.Name, req.Spec)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondData(w, http.StatusCreated, map[string]interface{}{"project": project}, started)
}

// ListProjects lists the authenticated user's projects.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	projects, err := h.db.ListProjects(r.Context(), claims.UserID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{
		"projects": projects,
		"count":    len(projects),
	}, started)
}

// GetProject returns one owned project.
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, err.Error(), nil)
		return
	}

	project, err := h.db.GetProject(r.Context(), claims.UserID, id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{"project": project}, started)
}

// UpdateProject replaces an owned project's name and spec.
func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, err.Error(), nil)
		return
	}

	var req projectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if ve := validation.ValidateStruct(&req); ve != nil {
		respondValidationError(w, ve)
		return
	}

	project, err := h.db.UpdateProject(r.Context(), claims.UserID, id, req.Name, req.Spec)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{"project": project}, started)
}

// DeleteProject removes an owned project.
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, err.Error(), nil)
		return
	}

	if err := h.db.DeleteProject(r.Context(), claims.UserID, id); err != nil {
		respondStoreError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{"deleted": id}, started)
}

// ProjectRecommendations returns the saved recommendation run for an
// owned project, enriched with catalog records.
func (h *Handler) ProjectRecommendations(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, err.Error(), nil)
		return
	}

	results, err := h.db.GetRecommendations(r.Context(), claims.UserID, id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{
		"project_id": id,
		"results":    h.enrichResults(results),
		"count":      len(results),
	}, started)
}
