// Materium - Construction Material Recommendation Service
// Copyright 2026 Quarry Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/quarrylabs/materium

// Package main is the entry point for the Materium server.
//
// Materium recommends construction materials for building projects. It
// scores a static material catalog against the requirements of a project
// (strength, durability, insulation, budget, environment) with three
// blended components: a criteria scorer, a nearest-neighbour similarity
// ranker, and a ridge regression model trained on user ratings.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: layered settings from file and environment (Koanf v2)
//  2. Database: DuckDB for users, projects, recommendations and ratings
//  3. Catalog: built-in material and supplier records
//  4. Engine: criteria + kNN + ridge scorers, trained from stored ratings
//  5. Badger: persistent comparison lists
//  6. Authentication: JWT token manager and account service
//  7. HTTP Server: REST API under /api/v1 with Prometheus metrics
//
// Services run under a suture supervisor tree so a crashed component is
// restarted without taking the process down.
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables with the MATERIUM_ prefix
//   - Config file (config.yaml, or MATERIUM_CONFIG)
//   - Built-in defaults
//
// A JWT secret of at least 32 characters is required:
//
//	export MATERIUM_AUTH_JWT_SECRET=$(openssl rand -base64 32)
//	./materium
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete
//   - Checkpoints and closes the DuckDB database
//   - Closes the Badger comparison store
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/dgraph-io/badger/v4"

	"github.com/quarrylabs/materium/internal/api"
	"github.com/quarrylabs/materium/internal/auth"
	"github.com/quarrylabs/materium/internal/catalog"
	"github.com/quarrylabs/materium/internal/compare"
	"github.com/quarrylabs/materium/internal/config"
	"github.com/quarrylabs/materium/internal/database"
	"github.com/quarrylabs/materium/internal/logging"
	"github.com/quarrylabs/materium/internal/recommend"
	"github.com/quarrylabs/materium/internal/recommend/algorithms"
	"github.com/quarrylabs/materium/internal/supervisor"
	"github.com/quarrylabs/materium/internal/supervisor/services"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(cfg.Logging.ToLogging())

	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Str("db_path", cfg.Database.Path).
		Msg("Starting Materium")

	db, err := database.New(cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	cat := catalog.New()
	logging.Info().
		Int("materials", cat.Len()).
		Int("suppliers", len(cat.Suppliers())).
		Msg("Catalog loaded")

	engine, err := recommend.NewEngine(
		cat,
		algorithms.NewCriteria(),
		algorithms.NewKNN(),
		algorithms.NewRidge(cfg.Engine.RidgeLambda, cfg.Engine.MinRatings),
		cfg.Engine,
	)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build recommendation engine")
	}

	// Train from whatever ratings survived previous runs. An empty
	// ratings table still trains the catalog-backed components.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ratings, err := db.RatingsForTraining(ctx)
	if err != nil {
		logging.Warn().Err(err).Msg("Failed to load stored ratings, training without feedback")
		ratings = nil
	}
	if err := engine.Train(ctx, ratings); err != nil {
		logging.Fatal().Err(err).Msg("Failed to train recommendation engine")
	}
	logging.Info().Int("ratings", len(ratings)).Msg("Recommendation engine trained")

	badgerOpts := badger.DefaultOptions(cfg.Compare.Path).WithLogger(nil)
	if cfg.Compare.Path == "" {
		badgerOpts = badgerOpts.WithInMemory(true)
		logging.Warn().Msg("Comparison store path not set, lists will not survive restarts")
	}
	bdb, err := badger.Open(badgerOpts)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open comparison store")
	}
	defer func() {
		if err := bdb.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing comparison store")
		}
	}()

	compareStore := compare.NewStore(bdb, cat, compare.Config{TTL: cfg.Compare.TTL})

	jwtManager, err := auth.NewJWTManager(cfg.Auth)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize JWT manager")
	}
	authService := auth.NewService(db, jwtManager)
	logging.Info().Dur("token_ttl", cfg.Auth.TokenTTL).Msg("JWT authentication enabled")

	handler := api.NewHandler(cat, engine, db, authService, compareStore)
	router := api.NewRouter(handler, jwtManager, cfg.Server)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree := supervisor.NewTree(logging.NewSlogLogger(), treeCfg)

	tree.AddDataService(services.NewTrainService(engine, db, cfg.Engine.TrainInterval, logging.Logger()))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	logging.Info().Msg("Starting supervisor tree")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	logging.Info().Msg("Application stopped gracefully")
}
