// Materium - Construction Material Recommendation Service
// Copyright 2026 Quarry Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/quarrylabs/materium

package api

import (
	"net/http"
	"time"

	"github.com/quarrylabs/materium/internal/models"
)

// Materials lists the catalog, optionally filtered by type or
// application.
func (h *Handler) Materials(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var materials []models.MaterialRecord
	switch {
	case r.URL.Query().Get("type") != "":
		materials = h.catalog.MaterialsByType(r.URL.Query().Get("type"))
	case r.URL.Query().Get("application") != "":
		materials = h.catalog.MaterialsByApplication(r.URL.Query().Get("application"))
	default:
		materials = h.catalog.Materials()
	}

	respondData(w, http.StatusOK, map[string]interface{}{
		"materials": materials,
		"count":     len(materials),
	}, started)
}

// MaterialByID returns one material together with its supplier.
func (h *Handler) MaterialByID(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, err.Error(), nil)
		return
	}

	material, err := h.catalog.MaterialByID(int(id))
	if err != nil {
		respondError(w, http.StatusNotFound, models.ErrCodeNotFound, "material not found", nil)
		return
	}

	data := map[string]interface{}{"material": material}
	if supplier, err := h.catalog.SupplierForMaterial(material.ID); err == nil {
		data["supplier"] = supplier
	}

	respondData(w, http.StatusOK, data, started)
}

// SimilarMaterials returns the k nearest neighbors of a material in
// feature space.
func (h *Handler) SimilarMaterials(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, err.Error(), nil)
		return
	}
	if _, err := h.catalog.MaterialByID(int(id)); err != nil {
		respondError(w, http.StatusNotFound, models.ErrCodeNotFound, "material not found", nil)
		return
	}

	k := queryInt(r, "k", 0)
	neighbors, err := h.engine.Similar(r.Context(), int(id), k)
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeInternal, "similarity query failed", err)
		return
	}

	type similarEntry struct {
		Material  models.MaterialRecord `json:"material"`
		Distance  float64               `json:"distance"`
		Proximity float64               `json:"proximity"`
	}
	entries := make([]similarEntry, 0, len(neighbors))
	for _, n := range neighbors {
		m, err := h.catalog.MaterialByID(n.MaterialID)
		if err != nil {
			continue
		}
		entries = append(entries, similarEntry{
			Material:  m,
			Distance:  n.Distance,
			Proximity: n.Proximity,
		})
	}

	respondData(w, http.StatusOK, map[string]interface{}{
		"material_id": int(id),
		"similar":     entries,
	}, started)
}

// Suppliers lists suppliers, optionally filtered by ?region=.
func (h *Handler) Suppliers(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var suppliers []models.SupplierRecord
	if region := r.URL.Query().Get("region"); region != "" {
		suppliers = h.catalog.SuppliersByRegion(region)
	} else {
		suppliers = h.catalog.Suppliers()
	}

	respondData(w, http.StatusOK, map[string]interface{}{
		"suppliers": suppliers,
		"count":     len(suppliers),
	}, started)
}

// SupplierByID returns one supplier.
func (h *Handler) SupplierByID(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, err.Error(), nil)
		return
	}
	supplier, err := h.catalog.SupplierByID(int(id))
	if err != nil {
		respondError(w, http.StatusNotFound, models.ErrCodeNotFound, "supplier not found", nil)
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{"supplier": supplier}, started)
}
