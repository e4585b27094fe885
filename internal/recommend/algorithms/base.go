// Materium - Construction Material Recommendation Service
// Copyright 2026 Quarry Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/quarrylabs/materium

// Package algorithms implements the scoring components of the
// recommendation engine.
//
// Each component implements the recommend.Scorer interface and is
// registered with the engine at startup.
//
// # Thread Safety
//
// All components are safe for concurrent use. Training acquires an
// exclusive lock while scoring uses a shared lock.
package algorithms

import (
	"sync"
	"time"
)

// BaseScorer provides common state handling for all components.
type BaseScorer struct {
	name          string
	trained       bool
	version       int
	lastTrainedAt time.Time
	mu            sync.RWMutex
}

// NewBaseScorer creates a new base with the given component name.
func NewBaseScorer(name string) BaseScorer {
	return BaseScorer{name: name}
}

// Name returns the component identifier.
func (b *BaseScorer) Name() string {
	return b.name
}

// IsTrained returns whether the component has been trained.
func (b *BaseScorer) IsTrained() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.trained
}

// Version returns the model version.
func (b *BaseScorer) Version() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.version
}

// LastTrainedAt returns when the component was last trained.
func (b *BaseScorer) LastTrainedAt() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastTrainedAt
}

// markTrained updates the trained state.
// Must be called while holding the training lock.
func (b *BaseScorer) markTrained() {
	b.trained = true
	b.version++
	b.lastTrainedAt = time.Now()
}

func (b *BaseScorer) acquireTrainLock() { b.mu.Lock() }
func (b *BaseScorer) releaseTrainLock() { b.mu.Unlock() }
func (b *BaseScorer) acquireScoreLock() { b.mu.RLock() }
func (b *BaseScorer) releaseScoreLock() { b.mu.RUnlock() }
