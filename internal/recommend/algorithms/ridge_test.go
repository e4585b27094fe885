// Materium - Construction Material Recommendation Service
// Copyright 2026 Quarry Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/quarrylabs/materium

package algorithms

import (
	"context"
	"math"
	"testing"

	"github.com/quarrylabs/materium/internal/models"
)

func ridgeFixture() []models.MaterialRecord {
	return []models.MaterialRecord{
		{ID: 1, Name: "A", StrengthMPa: 10, DurabilityYears: 20, CostPerUnit: 100},
		{ID: 2, Name: "B", StrengthMPa: 30, DurabilityYears: 60, CostPerUnit: 300},
		{ID: 3, Name: "C", StrengthMPa: 50, DurabilityYears: 100, CostPerUnit: 500},
	}
}

func ridgeRatings() []models.Rating {
	// Consistent signal: material 3 is loved, material 1 is not.
	return []models.Rating{
		{MaterialID: 3, Rating: 5},
		{MaterialID: 3, Rating: 5},
		{MaterialID: 2, Rating: 3},
		{MaterialID: 1, Rating: 1},
		{MaterialID: 1, Rating: 2},
		{MaterialID: 2, Rating: 3},
	}
}

func TestRidge_StaysUntrainedBelowMinSamples(t *testing.T) {
	r := NewRidge(1.0, 5)

	err := r.Train(context.Background(), ridgeFixture(), []models.Rating{
		{MaterialID: 1, Rating: 4},
		{MaterialID: 2, Rating: 3},
	})
	if err != nil {
		t.Fatalf("Train() error: %v", err)
	}
	if r.IsTrained() {
		t.Error("model trained below MinSamples")
	}

	scores, err := r.Score(context.Background(), models.ProjectSpec{}, []int{1})
	if err != nil {
		t.Fatalf("Score() error: %v", err)
	}
	if scores != nil {
		t.Errorf("untrained Score() = %v, want nil", scores)
	}
}

func TestRidge_LearnsRatingSignal(t *testing.T) {
	r := NewRidge(0.1, 5)

	if err := r.Train(context.Background(), ridgeFixture(), ridgeRatings()); err != nil {
		t.Fatalf("Train() error: %v", err)
	}
	if !r.IsTrained() {
		t.Fatal("model should be trained")
	}
	if r.SampleCount() != 6 {
		t.Errorf("SampleCount() = %d, want 6", r.SampleCount())
	}

	scores, err := r.Score(context.Background(), models.ProjectSpec{}, []int{1, 2, 3})
	if err != nil {
		t.Fatalf("Score() error: %v", err)
	}
	if scores[3] <= scores[1] {
		t.Errorf("highly rated material should predict higher: %v", scores)
	}
	for id, s := range scores {
		if s < 1 || s > 5 {
			t.Errorf("prediction for %d = %f, outside [1,5]", id, s)
		}
	}
}

func TestRidge_Determinism(t *testing.T) {
	train := func() map[int]float64 {
		r := NewRidge(1.0, 5)
		if err := r.Train(context.Background(), ridgeFixture(), ridgeRatings()); err != nil {
			t.Fatalf("Train() error: %v", err)
		}
		scores, err := r.Score(context.Background(), models.ProjectSpec{MinStrengthMPa: 40}, []int{1, 2, 3})
		if err != nil {
			t.Fatalf("Score() error: %v", err)
		}
		return scores
	}

	first := train()
	second := train()
	for id := range first {
		if math.Abs(first[id]-second[id]) > 1e-12 {
			t.Errorf("prediction for %d differs across fits: %f vs %f", id, first[id], second[id])
		}
	}
}

func TestRidge_SkipsUnknownMaterials(t *testing.T) {
	r := NewRidge(1.0, 5)

	ratings := append(ridgeRatings(), models.Rating{MaterialID: 999, Rating: 5})
	if err := r.Train(context.Background(), ridgeFixture(), ratings); err != nil {
		t.Fatalf("Train() error: %v", err)
	}
	if r.SampleCount() != 6 {
		t.Errorf("SampleCount() = %d, want 6 (unknown material skipped)", r.SampleCount())
	}
}

func TestRidge_UsesProjectSpecFeatures(t *testing.T) {
	r := NewRidge(0.1, 5)

	strongSpec := models.ProjectSpec{MinStrengthMPa: 50}
	weakSpec := models.ProjectSpec{MinStrengthMPa: 10}

	// Demanding projects consistently rate lower than undemanding
	// ones; the spec features should carry that shift.
	ratings := []models.Rating{
		{MaterialID: 1, Rating: 2, Spec: &strongSpec},
		{MaterialID: 2, Rating: 2, Spec: &strongSpec},
		{MaterialID: 3, Rating: 3, Spec: &strongSpec},
		{MaterialID: 1, Rating: 4, Spec: &weakSpec},
		{MaterialID: 2, Rating: 5, Spec: &weakSpec},
		{MaterialID: 3, Rating: 5, Spec: &weakSpec},
	}
	if err := r.Train(context.Background(), ridgeFixture(), ratings); err != nil {
		t.Fatalf("Train() error: %v", err)
	}

	strong, err := r.Score(context.Background(), strongSpec, []int{2})
	if err != nil {
		t.Fatal(err)
	}
	weak, err := r.Score(context.Background(), weakSpec, []int{2})
	if err != nil {
		t.Fatal(err)
	}

	if weak[2] <= strong[2] {
		t.Errorf("undemanding spec should predict higher for the same material: weak=%f strong=%f", weak[2], strong[2])
	}
}
