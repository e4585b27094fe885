// Materium - Construction Material Recommendation Service
// Copyright 2026 Quarry Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/quarrylabs/materium

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/quarrylabs/materium/internal/models"
)

// TrainEngine is the slice of the recommendation engine the trainer
// needs.
type TrainEngine interface {
	Train(ctx context.Context, ratings []models.Rating) error
}

// RatingSource provides the training data.
type RatingSource interface {
	RatingsForTraining(ctx context.Context) ([]models.Rating, error)
}

// TrainService periodically retrains the scoring components from
// stored ratings.
type TrainService struct {
	engine   TrainEngine
	source   RatingSource
	interval time.Duration
	logger   zerolog.Logger
}

// NewTrainService builds the trainer. Interval zero or below falls
// back to 15 minutes.
func NewTrainService(engine TrainEngine, source RatingSource, interval time.Duration, logger zerolog.Logger) *TrainService {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &TrainService{
		engine:   engine,
		source:   source,
		interval: interval,
		logger:   logger.With().Str("service", "trainer").Logger(),
	}
}

// Serve implements suture.Service. Training failures are logged and
// retried on the next tick rather than crashing the service.
func (s *TrainService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.trainOnce(ctx)
		}
	}
}

func (s *TrainService) trainOnce(ctx context.Context) {
	started := time.Now()

	ratings, err := s.source.RatingsForTraining(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("loading training ratings failed")
		return
	}

	if err := s.engine.Train(ctx, ratings); err != nil {
		s.logger.Warn().Err(err).Msg("scheduled retrain failed")
		return
	}

	s.logger.Info().
		Int("ratings", len(ratings)).
		Dur("took", time.Since(started)).
		Msg("scheduled retrain complete")
}

func (s *TrainService) String() string {
	return "trainer"
}
