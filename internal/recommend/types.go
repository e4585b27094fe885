// Materium - Construction Material Recommendation Service
// Copyright 2026 Quarry Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/quarrylabs/materium

// Package recommend implements the material recommendation pipeline.
//
// Three scoring components contribute to a final ranking:
//
//   - a weighted criteria scorer that grades each material directly
//     against the project requirements,
//   - a nearest-neighbour similarity ranker over encoded attribute
//     vectors,
//   - a ridge-regression model trained on user feedback ratings.
//
// The Engine combines their normalized scores with configurable
// weights and produces a deterministic, descending ranking with ties
// broken by catalog insertion order.
package recommend

import (
	"context"
	"time"

	"github.com/quarrylabs/materium/internal/models"
)

// Scorer is the interface every scoring component implements.
//
// Train fits the component to the catalog and the accumulated
// feedback ratings. Score returns a value per candidate material id;
// components may return nil scores when untrained, in which case the
// engine redistributes their weight.
//
// Implementations must be safe for concurrent use: training takes an
// exclusive lock, scoring a shared one.
type Scorer interface {
	// Name returns the component identifier used in config and logs.
	Name() string

	// Train fits the component. Components that need no feedback data
	// ignore the ratings argument.
	Train(ctx context.Context, materials []models.MaterialRecord, ratings []models.Rating) error

	// Score returns per-material scores for the given spec, keyed by
	// material id. A nil map with nil error means the component has
	// nothing to contribute.
	Score(ctx context.Context, spec models.ProjectSpec, candidates []int) (map[int]float64, error)

	// IsTrained reports whether Train has completed at least once.
	IsTrained() bool

	// Version increments on every successful Train.
	Version() int

	// LastTrainedAt returns the time of the last successful Train.
	LastTrainedAt() time.Time
}

// Neighbor is one nearest-neighbour search result.
type Neighbor struct {
	MaterialID int     `json:"material_id"`
	Distance   float64 `json:"distance"`

	// Proximity is 1/(1+Distance), in (0,1].
	Proximity float64 `json:"proximity"`
}

// SimilarityRanker extends Scorer with direct neighbour queries.
type SimilarityRanker interface {
	Scorer

	// Similar returns up to k materials nearest to the given material,
	// excluding the material itself. Ties resolve to catalog insertion
	// order. An empty dataset yields an empty result.
	Similar(ctx context.Context, materialID int, k int) ([]Neighbor, error)

	// Nearest returns up to k materials nearest to the encoded spec.
	Nearest(ctx context.Context, spec models.ProjectSpec, k int) ([]Neighbor, error)
}

// TrainingStatus describes one component's training state.
type TrainingStatus struct {
	Name          string    `json:"name"`
	Trained       bool      `json:"trained"`
	Version       int       `json:"version"`
	LastTrainedAt time.Time `json:"last_trained_at,omitempty"`
}

// ContextCancelled reports whether the context is done without
// blocking.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
