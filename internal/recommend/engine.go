// Materium - Construction Material Recommendation Service
// Copyright 2026 Quarry Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/quarrylabs/materium

package recommend

import (
	"context"
	"fmt"
	"hash/fnv"
	"sort"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/quarrylabs/materium/internal/catalog"
	"github.com/quarrylabs/materium/internal/logging"
	"github.com/quarrylabs/materium/internal/metrics"
	"github.com/quarrylabs/materium/internal/models"
)

// Engine combines the scoring components into a single ranked
// recommendation.
//
// Per component, raw scores map into [0,1]:
//
//   - criteria: 0-10 requirement score divided by 10,
//   - similarity: proximity 1/(1+distance),
//   - model: predicted 1-5 rating rescaled to (rating-1)/4.
//
// The final score is the weight-normalized sum. Components that have
// nothing to contribute (an untrained model) drop out and their
// weight redistributes over the rest. For a fixed catalog, weights
// and model version, the ranking is deterministic.
type Engine struct {
	catalog  *catalog.Catalog
	criteria Scorer
	ranker   SimilarityRanker
	model    Scorer

	cfg     Config
	cache   *resultCache
	trainRL *rate.Limiter
}

// NewEngine wires the engine. All three components are required; the
// model may simply stay untrained until enough feedback exists.
func NewEngine(cat *catalog.Catalog, criteria Scorer, ranker SimilarityRanker, model Scorer, cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}
	if cat == nil || criteria == nil || ranker == nil || model == nil {
		return nil, fmt.Errorf("engine requires catalog and all scoring components")
	}

	return &Engine{
		catalog:  cat,
		criteria: criteria,
		ranker:   ranker,
		model:    model,
		cfg:      cfg,
		cache:    newResultCache(cfg.CacheTTL, cfg.CacheSize),
		trainRL:  rate.NewLimiter(rate.Every(cfg.TrainInterval), 1),
	}, nil
}

// Train fits every component against the catalog and the accumulated
// ratings, then drops all cached rankings.
func (e *Engine) Train(ctx context.Context, ratings []models.Rating) error {
	materials := e.catalog.Materials()

	for _, s := range []Scorer{e.criteria, e.ranker, e.model} {
		start := time.Now()
		if err := s.Train(ctx, materials, ratings); err != nil {
			return fmt.Errorf("training %s: %w", s.Name(), err)
		}
		metrics.RecordTraining(s.Name(), time.Since(start))
		logging.Debug().
			Str("component", s.Name()).
			Bool("trained", s.IsTrained()).
			Dur("elapsed", time.Since(start)).
			Msg("component training finished")
	}
	metrics.ModelTrainingSamples.Set(float64(len(ratings)))

	e.cache.purge()
	return nil
}

// MaybeTrain retrains if the throttle allows it. Called after new
// feedback lands; returns true when a retrain ran.
func (e *Engine) MaybeTrain(ctx context.Context, ratings []models.Rating) (bool, error) {
	if !e.trainRL.Allow() {
		return false, nil
	}
	return true, e.Train(ctx, ratings)
}

// Recommend returns the top k materials for the spec in descending
// score order. The second return reports whether the result came from
// cache.
func (e *Engine) Recommend(ctx context.Context, spec models.ProjectSpec, k int) ([]models.RankedResult, bool, error) {
	if k <= 0 {
		k = e.cfg.DefaultK
	}
	if k > e.cfg.MaxK {
		k = e.cfg.MaxK
	}

	if e.catalog.Len() == 0 {
		return []models.RankedResult{}, false, nil
	}

	key, err := queryKey(spec, k)
	if err == nil {
		if cached, ok := e.cache.get(key); ok {
			return cached, true, nil
		}
	}

	// Candidates in catalog insertion order; the stable sort below
	// preserves this order across equal scores.
	materials := e.catalog.Materials()
	candidates := make([]int, len(materials))
	for i := range materials {
		candidates[i] = materials[i].ID
	}

	criteriaScores, err2 := e.criteria.Score(ctx, spec, candidates)
	if err2 != nil {
		return nil, false, fmt.Errorf("criteria scoring: %w", err2)
	}
	similarityScores, err2 := e.ranker.Score(ctx, spec, candidates)
	if err2 != nil {
		return nil, false, fmt.Errorf("similarity scoring: %w", err2)
	}
	modelScores, err2 := e.model.Score(ctx, spec, candidates)
	if err2 != nil {
		return nil, false, fmt.Errorf("model scoring: %w", err2)
	}

	weights := e.effectiveWeights(criteriaScores, similarityScores, modelScores)

	results := make([]models.RankedResult, 0, len(candidates))
	for _, id := range candidates {
		breakdown := models.ScoreBreakdown{
			Criteria:   criteriaScores[id] / 10,
			Similarity: similarityScores[id],
		}
		if modelScores != nil {
			breakdown.Model = (modelScores[id] - 1) / 4
		}

		score := weights.Criteria*breakdown.Criteria +
			weights.Similarity*breakdown.Similarity +
			weights.Model*breakdown.Model

		results = append(results, models.RankedResult{
			MaterialID: id,
			Score:      score,
			Breakdown:  breakdown,
		})
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})

	if k < len(results) {
		results = results[:k]
	}
	for i := range results {
		results[i].Rank = i + 1
	}

	if key != "" {
		e.cache.put(key, results)
	}
	return results, false, nil
}

// Similar returns up to k materials most similar to the given one.
func (e *Engine) Similar(ctx context.Context, materialID, k int) ([]Neighbor, error) {
	if k <= 0 {
		k = e.cfg.DefaultK
	}
	if k > e.cfg.MaxK {
		k = e.cfg.MaxK
	}
	return e.ranker.Similar(ctx, materialID, k)
}

// Status reports each component's training state.
func (e *Engine) Status() []TrainingStatus {
	components := []Scorer{e.criteria, e.ranker, e.model}
	out := make([]TrainingStatus, 0, len(components))
	for _, s := range components {
		out = append(out, TrainingStatus{
			Name:          s.Name(),
			Trained:       s.IsTrained(),
			Version:       s.Version(),
			LastTrainedAt: s.LastTrainedAt(),
		})
	}
	return out
}

// CacheLen returns the number of cached rankings.
func (e *Engine) CacheLen() int {
	return e.cache.len()
}

// effectiveWeights drops components that returned no scores and
// renormalizes the remainder.
func (e *Engine) effectiveWeights(criteria, similarity, model map[int]float64) ComponentWeights {
	w := e.cfg.Weights
	if criteria == nil {
		w.Criteria = 0
	}
	if similarity == nil {
		w.Similarity = 0
	}
	if model == nil {
		w.Model = 0
	}
	return w.Normalize()
}

// queryKey hashes the spec and k into a cache key.
func queryKey(spec models.ProjectSpec, k int) (string, error) {
	raw, err := json.Marshal(spec)
	if err != nil {
		return "", err
	}
	h := fnv.New64a()
	_, _ = h.Write(raw)
	return fmt.Sprintf("rec:%d:%x", k, h.Sum64()), nil
}
