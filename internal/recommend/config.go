// Materium - Construction Material Recommendation Service
// Copyright 2026 Quarry Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/quarrylabs/materium

package recommend

import (
	"fmt"
	"time"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Weights defines the relative contribution of each component.
	// Weights are normalized at runtime, so they don't need to sum to 1.
	Weights ComponentWeights `json:"weights" koanf:"weights"`

	// DefaultK is the result count when a query does not specify one.
	DefaultK int `json:"default_k" koanf:"default_k"`

	// MaxK caps the requested result count.
	MaxK int `json:"max_k" koanf:"max_k"`

	// MinRatings is the feedback row count below which the regression
	// model stays untrained.
	MinRatings int `json:"min_ratings" koanf:"min_ratings"`

	// RidgeLambda is the regularization strength of the rating model.
	RidgeLambda float64 `json:"ridge_lambda" koanf:"ridge_lambda"`

	// CacheTTL bounds how long a ranked result is served from cache.
	CacheTTL time.Duration `json:"cache_ttl" koanf:"cache_ttl"`

	// CacheSize is the maximum number of cached rankings.
	CacheSize int `json:"cache_size" koanf:"cache_size"`

	// TrainInterval is the minimum time between model retrains.
	TrainInterval time.Duration `json:"train_interval" koanf:"train_interval"`
}

// ComponentWeights defines the relative contribution of each scoring
// component.
type ComponentWeights struct {
	// Criteria is the weight of the requirement-match scorer.
	Criteria float64 `json:"criteria" koanf:"criteria"`

	// Similarity is the weight of the nearest-neighbour ranker.
	Similarity float64 `json:"similarity" koanf:"similarity"`

	// Model is the weight of the feedback regression model.
	Model float64 `json:"model" koanf:"model"`
}

// Normalize returns a copy with weights normalized to sum to 1.0.
// All-zero weights normalize to equal thirds.
func (w ComponentWeights) Normalize() ComponentWeights {
	sum := w.Criteria + w.Similarity + w.Model
	if sum == 0 {
		const equal = 1.0 / 3.0
		return ComponentWeights{Criteria: equal, Similarity: equal, Model: equal}
	}
	return ComponentWeights{
		Criteria:   w.Criteria / sum,
		Similarity: w.Similarity / sum,
		Model:      w.Model / sum,
	}
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		Weights: ComponentWeights{
			Criteria:   0.5,
			Similarity: 0.3,
			Model:      0.2,
		},
		DefaultK:      5,
		MaxK:          15,
		MinRatings:    5,
		RidgeLambda:   1.0,
		CacheTTL:      5 * time.Minute,
		CacheSize:     256,
		TrainInterval: time.Minute,
	}
}

// Validate checks configuration bounds.
func (c Config) Validate() error {
	if c.DefaultK <= 0 {
		return fmt.Errorf("default_k must be positive, got %d", c.DefaultK)
	}
	if c.MaxK < c.DefaultK {
		return fmt.Errorf("max_k (%d) must be >= default_k (%d)", c.MaxK, c.DefaultK)
	}
	if c.MinRatings < 1 {
		return fmt.Errorf("min_ratings must be >= 1, got %d", c.MinRatings)
	}
	if c.RidgeLambda < 0 {
		return fmt.Errorf("ridge_lambda must be non-negative, got %f", c.RidgeLambda)
	}
	if c.Weights.Criteria < 0 || c.Weights.Similarity < 0 || c.Weights.Model < 0 {
		return fmt.Errorf("component weights must be non-negative")
	}
	return nil
}
