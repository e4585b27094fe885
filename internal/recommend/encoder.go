// Materium - Construction Material Recommendation Service
// Copyright 2026 Quarry Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/quarrylabs/materium

package recommend

import "github.com/quarrylabs/materium/internal/models"

// Encoder maps materials and project specs into a shared fixed-length
// feature space using min-max scaling with bounds fitted from the
// catalog.
//
// Encoding rules:
//   - every feature scales to [0,1] against the fitted bounds;
//   - out-of-range inputs clamp to [0,1];
//   - unset spec fields encode as the neutral midpoint 0.5;
//   - a degenerate bound (min == max) encodes as 0.5 for any input.
//
// An Encoder is immutable after construction and therefore
// deterministic: identical inputs always produce identical vectors.
type Encoder struct {
	bounds []bound
}

type bound struct {
	min, max float64
}

// featureCount is the encoded vector length: ten numeric attributes
// plus four weather resistance ratings.
const featureCount = 14

// Feature vector layout.
const (
	featStrength = iota
	featDurability
	featThermal
	featFire
	featWater
	featEco
	featCost
	featAvailability
	featMaintenance
	featInstallation
	featWeatherHeat
	featWeatherCold
	featWeatherHumidity
	featWeatherUV
)

// NewEncoder fits an encoder on the given materials. An empty dataset
// yields degenerate bounds: every encoding is the all-midpoint vector.
func NewEncoder(materials []models.MaterialRecord) *Encoder {
	e := &Encoder{bounds: make([]bound, featureCount)}

	for i, m := range materials {
		v := rawFeatures(&m)
		for f, x := range v {
			if i == 0 {
				e.bounds[f] = bound{min: x, max: x}
				continue
			}
			if x < e.bounds[f].min {
				e.bounds[f].min = x
			}
			if x > e.bounds[f].max {
				e.bounds[f].max = x
			}
		}
	}

	return e
}

// FeatureCount returns the encoded vector length.
func (e *Encoder) FeatureCount() int {
	return featureCount
}

// EncodeMaterial encodes a material's attributes.
func (e *Encoder) EncodeMaterial(m *models.MaterialRecord) []float64 {
	raw := rawFeatures(m)
	out := make([]float64, featureCount)
	for f, x := range raw {
		out[f] = e.scale(f, x)
	}
	return out
}

// EncodeSpec encodes a project spec into the material feature space.
// Stated requirements land on the scale of the attribute they
// constrain; everything unstated sits at the midpoint.
func (e *Encoder) EncodeSpec(spec *models.ProjectSpec) []float64 {
	out := make([]float64, featureCount)
	for f := range out {
		out[f] = 0.5
	}

	if spec.MinStrengthMPa > 0 {
		out[featStrength] = e.scale(featStrength, spec.MinStrengthMPa)
	}
	if spec.MinDurabilityYears > 0 {
		out[featDurability] = e.scale(featDurability, spec.MinDurabilityYears)
	}
	if spec.FireResistanceHours > 0 {
		out[featFire] = e.scale(featFire, spec.FireResistanceHours)
	}
	if spec.WaterResistance > 0 {
		out[featWater] = e.scale(featWater, spec.WaterResistance)
	}
	if spec.MinEcoScore > 0 {
		out[featEco] = e.scale(featEco, spec.MinEcoScore)
	}
	if spec.BudgetPerUnit > 0 {
		out[featCost] = e.scale(featCost, spec.BudgetPerUnit)
	}

	// Preferences pick an end of the scale rather than a point on it.
	switch spec.ThermalPreference {
	case "low":
		out[featThermal] = 0
	case "high":
		out[featThermal] = 1
	}
	switch spec.InstallationPreference {
	case "low":
		out[featInstallation] = 0
	case "high":
		out[featInstallation] = 1
	}

	// Exposure importance 0-10 maps onto the weather resistance scale:
	// the more the site suffers, the higher the desired rating.
	env := spec.Environment
	if env.Heat > 0 {
		out[featWeatherHeat] = e.scale(featWeatherHeat, env.Heat)
	}
	if env.Cold > 0 {
		out[featWeatherCold] = e.scale(featWeatherCold, env.Cold)
	}
	if env.Humidity > 0 {
		out[featWeatherHumidity] = e.scale(featWeatherHumidity, env.Humidity)
	}
	if env.UV > 0 {
		out[featWeatherUV] = e.scale(featWeatherUV, env.UV)
	}

	return out
}

// scale min-max scales x against the fitted bounds of feature f,
// clamping to [0,1]. Degenerate bounds scale to the midpoint.
func (e *Encoder) scale(f int, x float64) float64 {
	b := e.bounds[f]
	if b.max == b.min {
		return 0.5
	}
	s := (x - b.min) / (b.max - b.min)
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

func rawFeatures(m *models.MaterialRecord) []float64 {
	return []float64{
		featStrength:        m.StrengthMPa,
		featDurability:      m.DurabilityYears,
		featThermal:         m.ThermalConductivity,
		featFire:            m.FireResistanceHours,
		featWater:           m.WaterResistance,
		featEco:             m.EcoFriendlyScore,
		featCost:            m.CostPerUnit,
		featAvailability:    m.Availability,
		featMaintenance:     m.MaintenanceRequirement,
		featInstallation:    m.InstallationComplexity,
		featWeatherHeat:     m.WeatherResistance.Heat,
		featWeatherCold:     m.WeatherResistance.Cold,
		featWeatherHumidity: m.WeatherResistance.Humidity,
		featWeatherUV:       m.WeatherResistance.UV,
	}
}
