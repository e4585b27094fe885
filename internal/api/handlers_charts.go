// Materium - Construction Material Recommendation Service
// Copyright 2026 Quarry Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/quarrylabs/materium

package api

import (
	"net/http"
	"sort"
	"time"

	"github.com/quarrylabs/materium/internal/models"
)

// radarAxes lists the chart axes in display order. Every axis value
// is normalized to 0-10 with higher meaning better, so axes where the
// raw attribute counts against the material are inverted.
var radarAxes = []string{
	"strength",
	"durability",
	"insulation",
	"fire_resistance",
	"water_resistance",
	"eco_score",
	"affordability",
	"availability",
	"low_maintenance",
	"ease_of_installation",
}

type radarSeries struct {
	MaterialID int       `json:"material_id"`
	Name       string    `json:"name"`
	Values     []float64 `json:"values"`
}

// ChartRadar returns radar chart series for the requested materials,
// typically the user's comparison list.
func (h *Handler) ChartRadar(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	ids, err := queryIDList(r, "ids")
	if err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, err.Error(), nil)
		return
	}
	if len(ids) == 0 {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, "ids parameter is required", nil)
		return
	}

	bounds := newAxisBounds(h.catalog.Materials())

	series := make([]radarSeries, 0, len(ids))
	for _, id := range ids {
		m, err := h.catalog.MaterialByID(id)
		if err != nil {
			respondError(w, http.StatusNotFound, models.ErrCodeNotFound, "material not found", nil)
			return
		}
		series = append(series, radarSeries{
			MaterialID: m.ID,
			Name:       m.Name,
			Values:     bounds.axisValues(m),
		})
	}

	respondData(w, http.StatusOK, map[string]interface{}{
		"axes":   radarAxes,
		"series": series,
	}, started)
}

// ChartScores returns bar chart series for a project's saved
// recommendation run.
func (h *Handler) ChartScores(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	projectID := int64(queryInt(r, "project_id", 0))
	if projectID < 1 {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, "project_id parameter is required", nil)
		return
	}

	results, err := h.db.GetRecommendations(r.Context(), claims.UserID, projectID)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	labels := make([]string, 0, len(results))
	scores := make([]float64, 0, len(results))
	for _, res := range results {
		name := "unknown"
		if m, err := h.catalog.MaterialByID(res.MaterialID); err == nil {
			name = m.Name
		}
		labels = append(labels, name)
		scores = append(scores, res.Score)
	}

	respondData(w, http.StatusOK, map[string]interface{}{
		"project_id": projectID,
		"labels":     labels,
		"scores":     scores,
	}, started)
}

type costEntry struct {
	MaterialID  int     `json:"material_id"`
	Name        string  `json:"name"`
	CostPerUnit float64 `json:"cost_per_unit"`
	TotalCost   float64 `json:"total_cost"`
}

// ChartCosts returns a cost comparison for the requested materials:
// cost per unit times the project area, sorted cheapest first.
func (h *Handler) ChartCosts(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	ids, err := queryIDList(r, "ids")
	if err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, err.Error(), nil)
		return
	}
	if len(ids) == 0 {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, "ids parameter is required", nil)
		return
	}

	area := queryFloat(r, "area", 100)
	if area <= 0 {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, "area must be positive", nil)
		return
	}

	entries := make([]costEntry, 0, len(ids))
	for _, id := range ids {
		m, err := h.catalog.MaterialByID(id)
		if err != nil {
			respondError(w, http.StatusNotFound, models.ErrCodeNotFound, "material not found", nil)
			return
		}
		entries = append(entries, costEntry{
			MaterialID:  m.ID,
			Name:        m.Name,
			CostPerUnit: m.CostPerUnit,
			TotalCost:   m.CostPerUnit * area,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalCost < entries[j].TotalCost
	})

	respondData(w, http.StatusOK, map[string]interface{}{
		"area":    area,
		"entries": entries,
	}, started)
}

// axisBounds holds catalog-wide min/max for attributes that need
// scaling onto the 0-10 radar range.
type axisBounds struct {
	minStrength, maxStrength     float64
	minDurability, maxDurability float64
	minThermal, maxThermal       float64
	minFire, maxFire             float64
	minCost, maxCost             float64
}

func newAxisBounds(materials []models.MaterialRecord) axisBounds {
	b := axisBounds{}
	for i, m := range materials {
		if i == 0 {
			b.minStrength, b.maxStrength = m.StrengthMPa, m.StrengthMPa
			b.minDurability, b.maxDurability = m.DurabilityYears, m.DurabilityYears
			b.minThermal, b.maxThermal = m.ThermalConductivity, m.ThermalConductivity
			b.minFire, b.maxFire = m.FireResistanceHours, m.FireResistanceHours
			b.minCost, b.maxCost = m.CostPerUnit, m.CostPerUnit
			continue
		}
		b.minStrength = min(b.minStrength, m.StrengthMPa)
		b.maxStrength = max(b.maxStrength, m.StrengthMPa)
		b.minDurability = min(b.minDurability, m.DurabilityYears)
		b.maxDurability = max(b.maxDurability, m.DurabilityYears)
		b.minThermal = min(b.minThermal, m.ThermalConductivity)
		b.maxThermal = max(b.maxThermal, m.ThermalConductivity)
		b.minFire = min(b.minFire, m.FireResistanceHours)
		b.maxFire = max(b.maxFire, m.FireResistanceHours)
		b.minCost = min(b.minCost, m.CostPerUnit)
		b.maxCost = max(b.maxCost, m.CostPerUnit)
	}
	return b
}

// axisValues produces the radar values for one material in radarAxes
// order.
func (b axisBounds) axisValues(m models.MaterialRecord) []float64 {
	return []float64{
		scaleTo10(m.StrengthMPa, b.minStrength, b.maxStrength),
		scaleTo10(m.DurabilityYears, b.minDurability, b.maxDurability),
		// Lower conductivity insulates better.
		10 - scaleTo10(m.ThermalConductivity, b.minThermal, b.maxThermal),
		scaleTo10(m.FireResistanceHours, b.minFire, b.maxFire),
		m.WaterResistance,
		m.EcoFriendlyScore,
		// Cheaper scores higher.
		10 - scaleTo10(m.CostPerUnit, b.minCost, b.maxCost),
		m.Availability,
		10 - m.MaintenanceRequirement,
		10 - m.InstallationComplexity,
	}
}

func scaleTo10(v, lo, hi float64) float64 {
	if hi <= lo {
		return 5
	}
	scaled := (v - lo) / (hi - lo) * 10
	if scaled < 0 {
		return 0
	}
	if scaled > 10 {
		return 10
	}
	return scaled
}
