// Materium - Construction Material Recommendation Service
// Copyright 2026 Quarry Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/quarrylabs/materium

package models

import "time"

// ProjectSpec holds a user's stated requirements for a project.
// All requirement fields are optional; a zero value means the
// requirement is not stated and the corresponding criterion is
// skipped during scoring (encoded as the neutral midpoint for
// similarity search).
type ProjectSpec struct {
	// Applications the project needs materials for (foundation,
	// structural frame, roofing, ...).
	Applications []string `json:"applications,omitempty"`

	// MaterialTypes restricts or prefers certain material categories.
	MaterialTypes []string `json:"material_types,omitempty"`

	MinStrengthMPa     float64 `json:"min_strength_mpa,omitempty"`
	MinDurabilityYears float64 `json:"min_durability_years,omitempty"`

	// FireResistanceHours is the minimum required fire rating.
	FireResistanceHours float64 `json:"fire_resistance_hours,omitempty"`

	// WaterResistance is the minimum required rating, 0-10.
	WaterResistance float64 `json:"water_resistance,omitempty"`

	// ThermalPreference is "low" for good insulation, "high" for
	// conductive materials, empty for no preference.
	ThermalPreference string `json:"thermal_preference,omitempty"`

	// MinEcoScore is the minimum eco-friendliness rating, 0-10.
	MinEcoScore float64 `json:"min_eco_score,omitempty"`

	// BudgetPerUnit is the cost ceiling per unit; zero means unbounded.
	BudgetPerUnit float64 `json:"budget_per_unit,omitempty"`

	// InstallationPreference is "low" to favor simple installs,
	// "high" when complexity is acceptable, empty for no preference.
	InstallationPreference string `json:"installation_preference,omitempty"`

	// Environment weights each exposure 0-10 by how much the site
	// suffers from it.
	Environment EnvironmentConditions `json:"environment,omitempty"`
}

// EnvironmentConditions weights each weather exposure by importance, 0-10.
type EnvironmentConditions struct {
	Heat     float64 `json:"heat,omitempty"`
	Cold     float64 `json:"cold,omitempty"`
	Humidity float64 `json:"humidity,omitempty"`
	UV       float64 `json:"uv,omitempty"`
}

// IsZero reports whether no environmental exposure is weighted.
func (e EnvironmentConditions) IsZero() bool {
	return e.Heat == 0 && e.Cold == 0 && e.Humidity == 0 && e.UV == 0
}

// Project is a saved project: a ProjectSpec persisted under a user
// account.
type Project struct {
	ID        int64       `json:"id"`
	UserID    int64       `json:"user_id"`
	Name      string      `json:"name"`
	Spec      ProjectSpec `json:"spec"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// RankedResult is one entry in the ordered output of the
// recommendation pipeline. Results are transient per query unless
// explicitly persisted against a project.
type RankedResult struct {
	MaterialID int     `json:"material_id"`
	Score      float64 `json:"score"`
	Rank       int     `json:"rank"`

	// Breakdown exposes the normalized component scores that were
	// combined into Score.
	Breakdown ScoreBreakdown `json:"breakdown"`
}

// ScoreBreakdown holds the per-component normalized scores, each in [0,1].
type ScoreBreakdown struct {
	Criteria   float64 `json:"criteria"`
	Similarity float64 `json:"similarity"`
	Model      float64 `json:"model,omitempty"`
}

// Rating is user feedback on how well a material worked for a project.
type Rating struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	ProjectID  int64     `json:"project_id,omitempty"`
	MaterialID int       `json:"material_id"`
	Rating     float64   `json:"rating"`
	CreatedAt  time.Time `json:"created_at"`

	// Spec is the rated project's spec, joined in for model training.
	// Nil for ratings given outside a project.
	Spec *ProjectSpec `json:"-"`
}
