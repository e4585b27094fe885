// Materium - Construction Material Recommendation Service
// Copyright 2026 Quarry Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/quarrylabs/materium

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/quarrylabs/materium/internal/compare"
	"github.com/quarrylabs/materium/internal/models"
)

// CompareAdd puts a material on the user's comparison list.
func (h *Handler) CompareAdd(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	id, err := pathID(r, "materialID")
	if err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, err.Error(), nil)
		return
	}

	ids, err := h.compare.Add(r.Context(), claims.UserID, int(id))
	if err != nil {
		switch {
		case errors.Is(err, compare.ErrUnknownMaterial):
			respondError(w, http.StatusNotFound, models.ErrCodeNotFound, "material not found", nil)
		case errors.Is(err, compare.ErrListFull):
			respondError(w, http.StatusConflict, models.ErrCodeConflict, err.Error(), nil)
		default:
			respondError(w, http.StatusInternalServerError, models.ErrCodeInternal, "comparison list update failed", err)
		}
		return
	}

	respondData(w, http.StatusOK, h.compareListData(ids), started)
}

// CompareList returns the user's comparison list with full material
// records.
func (h *Handler) CompareList(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	ids, err := h.compare.List(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeInternal, "comparison list read failed", err)
		return
	}
	respondData(w, http.StatusOK, h.compareListData(ids), started)
}

// CompareRemove takes a material off the list.
func (h *Handler) CompareRemove(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	id, err := pathID(r, "materialID")
	if err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, err.Error(), nil)
		return
	}

	ids, err := h.compare.Remove(r.Context(), claims.UserID, int(id))
	if err != nil {
		if errors.Is(err, compare.ErrNotInList) {
			respondError(w, http.StatusNotFound, models.ErrCodeNotFound, err.Error(), nil)
			return
		}
		respondError(w, http.StatusInternalServerError, models.ErrCodeInternal, "comparison list update failed", err)
		return
	}

	respondData(w, http.StatusOK, h.compareListData(ids), started)
}

// CompareClear drops the whole list.
func (h *Handler) CompareClear(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	if err := h.compare.Clear(r.Context(), claims.UserID); err != nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeInternal, "comparison list clear failed", err)
		return
	}
	respondData(w, http.StatusOK, h.compareListData(nil), started)
}

func (h *Handler) compareListData(ids []int) map[string]interface{} {
	materials := make([]models.MaterialRecord, 0, len(ids))
	for _, id := range ids {
		if m, err := h.catalog.MaterialByID(id); err == nil {
			materials = append(materials, m)
		}
	}
	if ids == nil {
		ids = []int{}
	}
	return map[string]interface{}{
		"ids":       ids,
		"materials": materials,
		"count":     len(ids),
		"max_items": compare.MaxItems,
	}
}
