// Materium - Construction Material Recommendation Service
// Copyright 2026 Quarry Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/quarrylabs/materium

package algorithms

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/quarrylabs/materium/internal/models"
	"github.com/quarrylabs/materium/internal/recommend"
)

// KNN is the nearest-neighbour similarity ranker. Training encodes
// every catalog material with a min-max encoder fitted on the same
// catalog; queries encode the probe into the identical feature space
// and rank materials by Euclidean distance.
//
// Ordering is fully deterministic: neighbours sort by ascending
// distance with ties resolved by catalog insertion order.
type KNN struct {
	BaseScorer

	encoder *recommend.Encoder
	vectors [][]float64
	ids     []int
	byID    map[int]int
}

// NewKNN creates the similarity ranker.
func NewKNN() *KNN {
	return &KNN{
		BaseScorer: NewBaseScorer("knn"),
		byID:       make(map[int]int),
	}
}

// Train fits the encoder and encodes the catalog. Ratings are not
// used. An empty catalog trains successfully and yields empty query
// results.
func (k *KNN) Train(ctx context.Context, materials []models.MaterialRecord, _ []models.Rating) error {
	k.acquireTrainLock()
	defer k.releaseTrainLock()

	encoder := recommend.NewEncoder(materials)
	vectors := make([][]float64, 0, len(materials))
	ids := make([]int, 0, len(materials))
	byID := make(map[int]int, len(materials))

	for i := range materials {
		if recommend.ContextCancelled(ctx) {
			return ctx.Err()
		}
		vectors = append(vectors, encoder.EncodeMaterial(&materials[i]))
		ids = append(ids, materials[i].ID)
		byID[materials[i].ID] = i
	}

	k.encoder = encoder
	k.vectors = vectors
	k.ids = ids
	k.byID = byID

	k.markTrained()
	return nil
}

// Score returns proximity scores 1/(1+distance) for the candidates.
func (k *KNN) Score(ctx context.Context, spec models.ProjectSpec, candidates []int) (map[int]float64, error) {
	k.acquireScoreLock()
	defer k.releaseScoreLock()

	if !k.trained || len(k.vectors) == 0 {
		return nil, nil
	}

	probe := k.encoder.EncodeSpec(&spec)
	scores := make(map[int]float64, len(candidates))
	for _, id := range candidates {
		if recommend.ContextCancelled(ctx) {
			return nil, ctx.Err()
		}
		i, ok := k.byID[id]
		if !ok {
			continue
		}
		scores[id] = 1 / (1 + euclidean(probe, k.vectors[i]))
	}
	return scores, nil
}

// Nearest returns up to k materials nearest to the encoded spec.
func (k *KNN) Nearest(ctx context.Context, spec models.ProjectSpec, count int) ([]recommend.Neighbor, error) {
	k.acquireScoreLock()
	defer k.releaseScoreLock()

	if !k.trained || len(k.vectors) == 0 {
		return nil, nil
	}
	if recommend.ContextCancelled(ctx) {
		return nil, ctx.Err()
	}

	probe := k.encoder.EncodeSpec(&spec)
	return k.rank(probe, -1, count), nil
}

// Similar returns up to k materials nearest to the given material,
// excluding the material itself.
func (k *KNN) Similar(ctx context.Context, materialID int, count int) ([]recommend.Neighbor, error) {
	k.acquireScoreLock()
	defer k.releaseScoreLock()

	if !k.trained || len(k.vectors) == 0 {
		return nil, nil
	}
	if recommend.ContextCancelled(ctx) {
		return nil, ctx.Err()
	}

	self, ok := k.byID[materialID]
	if !ok {
		return nil, fmt.Errorf("material %d not in trained index", materialID)
	}

	return k.rank(k.vectors[self], self, count), nil
}

// rank sorts all materials (except the excluded index) by ascending
// distance from the probe. Ties keep insertion order because the sort
// is stable over the insertion-ordered slice.
func (k *KNN) rank(probe []float64, exclude, count int) []recommend.Neighbor {
	neighbors := make([]recommend.Neighbor, 0, len(k.vectors))
	for i, v := range k.vectors {
		if i == exclude {
			continue
		}
		d := euclidean(probe, v)
		neighbors = append(neighbors, recommend.Neighbor{
			MaterialID: k.ids[i],
			Distance:   d,
			Proximity:  1 / (1 + d),
		})
	}

	sort.SliceStable(neighbors, func(a, b int) bool {
		return neighbors[a].Distance < neighbors[b].Distance
	})

	if count >= 0 && count < len(neighbors) {
		neighbors = neighbors[:count]
	}
	return neighbors
}

func euclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// Interface compliance check.
var _ recommend.SimilarityRanker = (*KNN)(nil)
