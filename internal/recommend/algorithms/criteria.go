// Materium - Construction Material Recommendation Service
// Copyright 2026 Quarry Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/quarrylabs/materium

package algorithms

import (
	"context"

	"github.com/quarrylabs/materium/internal/models"
	"github.com/quarrylabs/materium/internal/recommend"
)

// Criteria weights. Application fit and cost dominate; the rest grade
// how far a material exceeds or misses each stated requirement.
const (
	weightApplication  = 5.0
	weightType         = 3.0
	weightStrength     = 3.0
	weightDurability   = 3.0
	weightFire         = 2.0
	weightWater        = 2.0
	weightThermal      = 2.0
	weightEco          = 2.0
	weightCost         = 4.0
	weightAvailability = 3.0
	weightMaintenance  = 2.0
	weightWeather      = 3.0
	weightInstallation = 2.0
)

// Criteria grades every material directly against the project
// requirements on a 0-10 scale per criterion, combines the criterion
// scores with fixed weights and normalizes the total back to 0-10.
//
// A criterion is skipped (and its weight excluded from the
// normalizer) when the spec does not state the requirement.
// Application match, availability and maintenance always apply.
type Criteria struct {
	BaseScorer

	materials []models.MaterialRecord
	byID      map[int]int
}

// NewCriteria creates the requirement-match scorer.
func NewCriteria() *Criteria {
	return &Criteria{
		BaseScorer: NewBaseScorer("criteria"),
		byID:       make(map[int]int),
	}
}

// Train stores the catalog snapshot. Ratings are not used.
func (c *Criteria) Train(_ context.Context, materials []models.MaterialRecord, _ []models.Rating) error {
	c.acquireTrainLock()
	defer c.releaseTrainLock()

	c.materials = materials
	c.byID = make(map[int]int, len(materials))
	for i := range materials {
		c.byID[materials[i].ID] = i
	}

	c.markTrained()
	return nil
}

// Score returns 0-10 suitability scores keyed by material id.
func (c *Criteria) Score(ctx context.Context, spec models.ProjectSpec, candidates []int) (map[int]float64, error) {
	c.acquireScoreLock()
	defer c.releaseScoreLock()

	if !c.trained {
		return nil, nil
	}

	scores := make(map[int]float64, len(candidates))
	for _, id := range candidates {
		if recommend.ContextCancelled(ctx) {
			return nil, ctx.Err()
		}
		i, ok := c.byID[id]
		if !ok {
			continue
		}
		scores[id] = scoreMaterial(&c.materials[i], &spec)
	}
	return scores, nil
}

// scoreMaterial computes the weighted criteria score for one material.
func scoreMaterial(m *models.MaterialRecord, spec *models.ProjectSpec) float64 {
	var total, totalWeight float64

	add := func(score, weight float64) {
		total += score * weight
		totalWeight += weight
	}

	add(applicationScore(m, spec.Applications), weightApplication)

	if len(spec.MaterialTypes) > 0 {
		typeScore := 5.0
		for _, t := range spec.MaterialTypes {
			if m.Type == t {
				typeScore = 10.0
				break
			}
		}
		add(typeScore, weightType)
	}

	if spec.MinStrengthMPa > 0 {
		add(thresholdScore(m.StrengthMPa, spec.MinStrengthMPa), weightStrength)
	}
	if spec.MinDurabilityYears > 0 {
		add(thresholdScore(m.DurabilityYears, spec.MinDurabilityYears), weightDurability)
	}
	if spec.FireResistanceHours > 0 {
		add(thresholdScore(m.FireResistanceHours, spec.FireResistanceHours), weightFire)
	}
	if spec.WaterResistance > 0 {
		add(thresholdScore(m.WaterResistance, spec.WaterResistance), weightWater)
	}
	if spec.MinEcoScore > 0 {
		add(thresholdScore(m.EcoFriendlyScore, spec.MinEcoScore), weightEco)
	}

	switch spec.ThermalPreference {
	case "low":
		add(clamp10(10-m.ThermalConductivity/10), weightThermal)
	case "high":
		add(clamp10(m.ThermalConductivity/10), weightThermal)
	}

	if spec.BudgetPerUnit > 0 {
		add(ceilingScore(m.CostPerUnit, spec.BudgetPerUnit), weightCost)
	}

	// Availability and maintenance have no spec knob; stocked,
	// low-upkeep materials always rank a little higher.
	add(m.Availability, weightAvailability)
	add(10-m.MaintenanceRequirement, weightMaintenance)

	if ws, ok := weatherScore(m, spec.Environment); ok {
		add(ws, weightWeather)
	}

	switch spec.InstallationPreference {
	case "low":
		add(10-m.InstallationComplexity, weightInstallation)
	case "high":
		add(m.InstallationComplexity, weightInstallation)
	}

	if totalWeight == 0 {
		return 0
	}
	return total / totalWeight
}

// applicationScore is the matched fraction of requested applications,
// on a 0-10 scale.
func applicationScore(m *models.MaterialRecord, requested []string) float64 {
	if len(requested) == 0 {
		return 0
	}
	matched := 0
	for _, app := range requested {
		if m.HasApplication(app) {
			matched++
		}
	}
	return 10 * float64(matched) / float64(len(requested))
}

// thresholdScore gives full marks at or above the requirement and a
// proportional share below it.
func thresholdScore(value, required float64) float64 {
	if value >= required {
		return 10
	}
	return 10 * value / required
}

// ceilingScore gives full marks at or below the limit and a
// proportional share above it.
func ceilingScore(value, limit float64) float64 {
	if value <= limit {
		return 10
	}
	return 10 * limit / value
}

// weatherScore averages the material's exposure ratings weighted by
// how much each exposure matters to the site. Returns false when no
// exposure is weighted.
func weatherScore(m *models.MaterialRecord, env models.EnvironmentConditions) (float64, bool) {
	if env.IsZero() {
		return 0, false
	}

	var sum, count float64
	accumulate := func(rating, importance float64) {
		if importance <= 0 {
			return
		}
		sum += rating * importance / 10
		count += importance / 10
	}

	accumulate(m.WeatherResistance.Heat, env.Heat)
	accumulate(m.WeatherResistance.Cold, env.Cold)
	accumulate(m.WeatherResistance.Humidity, env.Humidity)
	accumulate(m.WeatherResistance.UV, env.UV)

	if count == 0 {
		return 0, false
	}
	return sum / count, true
}

func clamp10(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 10 {
		return 10
	}
	return x
}

// Interface compliance check.
var _ recommend.Scorer = (*Criteria)(nil)
