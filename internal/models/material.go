// Materium - Construction Material Recommendation Service
// Copyright 2026 Quarry Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/quarrylabs/materium

package models

// MaterialRecord describes one building material in the catalog.
// Records are immutable reference data; the catalog's insertion order
// is the canonical ordering used for tie-breaks throughout the
// recommendation pipeline.
type MaterialRecord struct {
	ID   int    `json:"id"`
	Name string `json:"name"`

	// Type is the material category, one of catalog.MaterialTypes
	// (Concrete, Steel, Wood, Brick, Glass, Aluminum, Stone, Ceramic,
	// Plastic, Composite).
	Type string `json:"type"`

	// StrengthMPa is compressive/tensile strength in megapascals.
	StrengthMPa float64 `json:"strength_mpa"`

	// DurabilityYears is the expected service life.
	DurabilityYears float64 `json:"durability_years"`

	// ThermalConductivity in W/(m*K); lower is better insulation.
	ThermalConductivity float64 `json:"thermal_conductivity"`

	// FireResistanceHours is the fire rating duration.
	FireResistanceHours float64 `json:"fire_resistance_hours"`

	// WaterResistance on a 0-10 scale.
	WaterResistance float64 `json:"water_resistance"`

	// EcoFriendlyScore on a 0-10 scale.
	EcoFriendlyScore float64 `json:"eco_friendly_score"`

	// CostPerUnit in currency units per standard unit.
	CostPerUnit float64 `json:"cost_per_unit"`

	// Availability on a 0-10 scale (10 = stocked everywhere).
	Availability float64 `json:"availability"`

	// MaintenanceRequirement on a 0-10 scale; lower is less upkeep.
	MaintenanceRequirement float64 `json:"maintenance_requirement"`

	// InstallationComplexity on a 0-10 scale; lower installs faster.
	InstallationComplexity float64 `json:"installation_complexity"`

	// WeatherResistance holds per-exposure ratings.
	WeatherResistance WeatherResistance `json:"weather_resistance"`

	// Applications lists the construction uses this material suits.
	Applications []string `json:"applications"`

	SupplierID int `json:"supplier_id"`
}

// WeatherResistance rates a material against each exposure type, 0-10.
type WeatherResistance struct {
	Heat     float64 `json:"heat"`
	Cold     float64 `json:"cold"`
	Humidity float64 `json:"humidity"`
	UV       float64 `json:"uv"`
}

// SupplierRecord describes a supplier of catalog materials.
// Immutable reference data.
type SupplierRecord struct {
	ID   int    `json:"id"`
	Name string `json:"name"`

	// Location is the supplier's base of operations.
	Location string `json:"location"`

	// Region is the coarse service region: Northeast, Midwest,
	// South, West.
	Region string `json:"region"`

	// DeliveryTimeDays is the typical lead time.
	DeliveryTimeDays int `json:"delivery_time_days"`

	// ReliabilityScore on a 0-10 scale.
	ReliabilityScore float64 `json:"reliability_score"`

	// PriceLevel is one of Low, Medium, High.
	PriceLevel string `json:"price_level"`

	Contact string `json:"contact"`
}

// HasApplication reports whether the material is suitable for the
// given application.
func (m *MaterialRecord) HasApplication(app string) bool {
	for _, a := range m.Applications {
		if a == app {
			return true
		}
	}
	return false
}
