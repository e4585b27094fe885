// Materium - Construction Material Recommendation Service
// Copyright 2026 Quarry Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/quarrylabs/materium

// Package api provides the HTTP surface of the service: catalog
// browsing, recommendations, accounts, projects, ratings, comparison
// lists and chart data, all under /api/v1.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/quarrylabs/materium/internal/auth"
	"github.com/quarrylabs/materium/internal/catalog"
	"github.com/quarrylabs/materium/internal/compare"
	"github.com/quarrylabs/materium/internal/database"
	"github.com/quarrylabs/materium/internal/models"
	"github.com/quarrylabs/materium/internal/recommend"
)

// Handler bundles the dependencies the endpoint handlers need.
type Handler struct {
	catalog *catalog.Catalog
	engine  *recommend.Engine
	db      *database.DB
	auth    *auth.Service
	compare *compare.Store

	startedAt time.Time
}

// NewHandler builds the handler set.
func NewHandler(cat *catalog.Catalog, engine *recommend.Engine, db *database.DB, authSvc *auth.Service, cmp *compare.Store) *Handler {
	return &Handler{
		catalog:   cat,
		engine:    engine,
		db:        db,
		auth:      authSvc,
		compare:   cmp,
		startedAt: time.Now(),
	}
}

// Healthz reports liveness plus store reachability and training
// state for readiness probes.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := "ok"
	dbStatus := "ok"
	if err := h.db.Ping(ctx); err != nil {
		status = "degraded"
		dbStatus = err.Error()
	}

	components := make(map[string]interface{})
	for _, ts := range h.engine.Status() {
		components[ts.Name] = map[string]interface{}{
			"trained": ts.Trained,
			"version": ts.Version,
		}
	}

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}
	respondJSON(w, code, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"status":         status,
			"database":       dbStatus,
			"uptime_seconds": int64(time.Since(h.startedAt).Seconds()),
			"materials":      h.catalog.Len(),
			"scoring":        components,
		},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}
