// Materium - Construction Material Recommendation Service
// Copyright 2026 Quarry Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/quarrylabs/materium

package recommend

import (
	"testing"

	"github.com/quarrylabs/materium/internal/models"
)

func fixtureMaterials() []models.MaterialRecord {
	return []models.MaterialRecord{
		{ID: 1, Name: "A", StrengthMPa: 10, DurabilityYears: 20, CostPerUnit: 100},
		{ID: 2, Name: "B", StrengthMPa: 30, DurabilityYears: 60, CostPerUnit: 300},
		{ID: 3, Name: "C", StrengthMPa: 50, DurabilityYears: 100, CostPerUnit: 500},
	}
}

func TestEncoderDeterminism(t *testing.T) {
	e := NewEncoder(fixtureMaterials())

	spec := models.ProjectSpec{MinStrengthMPa: 25, BudgetPerUnit: 250}
	v1 := e.EncodeSpec(&spec)
	v2 := e.EncodeSpec(&spec)

	for i := range v1 {
		if v1[i] != v2[i] {
			t.Fatalf("encoding not deterministic at feature %d: %f vs %f", i, v1[i], v2[i])
		}
	}
}

func TestEncodeMaterialScaling(t *testing.T) {
	mats := fixtureMaterials()
	e := NewEncoder(mats)

	v := e.EncodeMaterial(&mats[0])
	if v[featStrength] != 0 {
		t.Errorf("min strength should scale to 0, got %f", v[featStrength])
	}

	v = e.EncodeMaterial(&mats[2])
	if v[featStrength] != 1 {
		t.Errorf("max strength should scale to 1, got %f", v[featStrength])
	}

	v = e.EncodeMaterial(&mats[1])
	if v[featStrength] != 0.5 {
		t.Errorf("mid strength should scale to 0.5, got %f", v[featStrength])
	}
}

func TestEncodeSpecMidpointDefaults(t *testing.T) {
	e := NewEncoder(fixtureMaterials())

	v := e.EncodeSpec(&models.ProjectSpec{})
	for i, x := range v {
		if x != 0.5 {
			t.Errorf("unset feature %d = %f, want midpoint 0.5", i, x)
		}
	}
}

func TestEncodeSpecClampsOutOfRange(t *testing.T) {
	e := NewEncoder(fixtureMaterials())

	tests := []struct {
		name string
		spec models.ProjectSpec
		feat int
		want float64
	}{
		{"above range clamps to 1", models.ProjectSpec{MinStrengthMPa: 9999}, featStrength, 1},
		{"below range clamps to 0", models.ProjectSpec{MinStrengthMPa: 1}, featStrength, 0},
		{"in range scales", models.ProjectSpec{MinStrengthMPa: 30}, featStrength, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := e.EncodeSpec(&tt.spec)
			if v[tt.feat] != tt.want {
				t.Errorf("feature %d = %f, want %f", tt.feat, v[tt.feat], tt.want)
			}
		})
	}
}

func TestEncoderDegenerateBounds(t *testing.T) {
	// All materials identical: every bound collapses.
	mats := []models.MaterialRecord{
		{ID: 1, StrengthMPa: 10},
		{ID: 2, StrengthMPa: 10},
	}
	e := NewEncoder(mats)

	v := e.EncodeMaterial(&mats[0])
	if v[featStrength] != 0.5 {
		t.Errorf("degenerate bound should encode to 0.5, got %f", v[featStrength])
	}
}

func TestEncoderEmptyDataset(t *testing.T) {
	e := NewEncoder(nil)

	spec := models.ProjectSpec{MinStrengthMPa: 50}
	v := e.EncodeSpec(&spec)
	if len(v) != featureCount {
		t.Fatalf("vector length = %d, want %d", len(v), featureCount)
	}
	for i, x := range v {
		if x != 0.5 {
			t.Errorf("feature %d = %f, want 0.5 on empty fit", i, x)
		}
	}
}

func TestThermalAndInstallationPreferences(t *testing.T) {
	e := NewEncoder(fixtureMaterials())

	v := e.EncodeSpec(&models.ProjectSpec{ThermalPreference: "low", InstallationPreference: "high"})
	if v[featThermal] != 0 {
		t.Errorf("thermal low = %f, want 0", v[featThermal])
	}
	if v[featInstallation] != 1 {
		t.Errorf("installation high = %f, want 1", v[featInstallation])
	}
}
