// Materium - Construction Material Recommendation Service
// Copyright 2026 Quarry Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/quarrylabs/materium

package algorithms

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/quarrylabs/materium/internal/models"
	"github.com/quarrylabs/materium/internal/recommend"
)

// Ridge is the feedback regression model. It learns a linear map from
// (material features, project spec features) to the 1-5 rating a user
// gave, solving the regularized normal equations in closed form:
//
//	w = (XᵀX + λI)⁻¹ Xᵀy
//
// Closed-form fitting keeps retraining cheap and fully deterministic
// for a fixed training set. The model stays untrained until at least
// MinSamples ratings exist; the engine runs without it and
// redistributes its weight.
type Ridge struct {
	BaseScorer

	// Lambda is the L2 regularization strength. Must be positive so
	// the normal equations stay well-conditioned with few samples.
	Lambda float64

	// MinSamples is the rating count required before fitting.
	MinSamples int

	encoder   *recommend.Encoder
	weights   []float64
	samples   int
	materials []models.MaterialRecord
	byID      map[int]int
}

// NewRidge creates the rating regression model.
func NewRidge(lambda float64, minSamples int) *Ridge {
	if lambda <= 0 {
		lambda = 1.0
	}
	if minSamples < 1 {
		minSamples = 5
	}
	return &Ridge{
		BaseScorer: NewBaseScorer("ridge"),
		Lambda:     lambda,
		MinSamples: minSamples,
	}
}

// SampleCount returns the number of ratings used in the last fit.
func (r *Ridge) SampleCount() int {
	r.acquireScoreLock()
	defer r.releaseScoreLock()
	return r.samples
}

// Train fits the model on the accumulated ratings. Ratings whose
// material is not in the catalog are skipped; ratings without a
// project spec train against the neutral midpoint spec.
func (r *Ridge) Train(ctx context.Context, materials []models.MaterialRecord, ratings []models.Rating) error {
	r.acquireTrainLock()
	defer r.releaseTrainLock()

	encoder := recommend.NewEncoder(materials)
	byID := make(map[int]int, len(materials))
	for i := range materials {
		byID[materials[i].ID] = i
	}

	dim := 2*encoder.FeatureCount() + 1 // material + spec features + bias
	var rows [][]float64
	var targets []float64

	for i := range ratings {
		if recommend.ContextCancelled(ctx) {
			return ctx.Err()
		}
		mi, ok := byID[ratings[i].MaterialID]
		if !ok {
			continue
		}

		spec := models.ProjectSpec{}
		if ratings[i].Spec != nil {
			spec = *ratings[i].Spec
		}

		row := make([]float64, 0, dim)
		row = append(row, encoder.EncodeMaterial(&materials[mi])...)
		row = append(row, encoder.EncodeSpec(&spec)...)
		row = append(row, 1) // bias
		rows = append(rows, row)
		targets = append(targets, ratings[i].Rating)
	}

	if len(rows) < r.MinSamples {
		// Not enough feedback yet; keep any previous fit.
		return nil
	}

	weights, err := solveRidge(rows, targets, r.Lambda, dim)
	if err != nil {
		return fmt.Errorf("fitting ridge model: %w", err)
	}

	r.encoder = encoder
	r.weights = weights
	r.samples = len(rows)
	r.materials = materials
	r.byID = byID
	r.markTrained()
	return nil
}

// Score predicts a 1-5 rating per candidate material for the spec.
// Returns nil scores while untrained.
func (r *Ridge) Score(ctx context.Context, spec models.ProjectSpec, candidates []int) (map[int]float64, error) {
	r.acquireScoreLock()
	defer r.releaseScoreLock()

	if !r.trained {
		return nil, nil
	}

	specVec := r.encoder.EncodeSpec(&spec)
	scores := make(map[int]float64, len(candidates))
	for _, id := range candidates {
		if recommend.ContextCancelled(ctx) {
			return nil, ctx.Err()
		}
		mi, ok := r.byID[id]
		if !ok {
			continue
		}

		row := make([]float64, 0, len(r.weights))
		row = append(row, r.encoder.EncodeMaterial(&r.materials[mi])...)
		row = append(row, specVec...)
		row = append(row, 1)

		var pred float64
		for j, w := range r.weights {
			pred += w * row[j]
		}
		scores[id] = clampRating(pred)
	}
	return scores, nil
}

// solveRidge solves (XᵀX + λI)w = Xᵀy.
func solveRidge(rows [][]float64, targets []float64, lambda float64, dim int) ([]float64, error) {
	x := mat.NewDense(len(rows), dim, nil)
	for i, row := range rows {
		x.SetRow(i, row)
	}
	y := mat.NewVecDense(len(targets), targets)

	var xtx mat.SymDense
	xtx.SymOuterK(1, x.T())
	for i := 0; i < dim; i++ {
		xtx.SetSym(i, i, xtx.At(i, i)+lambda)
	}

	var xty mat.VecDense
	xty.MulVec(x.T(), y)

	var chol mat.Cholesky
	if ok := chol.Factorize(&xtx); !ok {
		return nil, fmt.Errorf("normal equations not positive definite")
	}

	var w mat.VecDense
	if err := chol.SolveVecTo(&w, &xty); err != nil {
		return nil, fmt.Errorf("solving normal equations: %w", err)
	}

	out := make([]float64, dim)
	copy(out, w.RawVector().Data)
	return out, nil
}

func clampRating(x float64) float64 {
	if x < 1 {
		return 1
	}
	if x > 5 {
		return 5
	}
	return x
}

// Interface compliance check.
var _ recommend.Scorer = (*Ridge)(nil)
