// Materium - Construction Material Recommendation Service
// Copyright 2026 Quarry Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/quarrylabs/materium

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/quarrylabs/materium/internal/auth"
	"github.com/quarrylabs/materium/internal/config"
	"github.com/quarrylabs/materium/internal/middleware"
	"github.com/quarrylabs/materium/internal/models"
)

// Router assembles the HTTP routing tree.
type Router struct {
	handler *Handler
	jwt     *auth.JWTManager
	cfg     config.ServerConfig
}

// NewRouter builds the router.
func NewRouter(handler *Handler, jwt *auth.JWTManager, cfg config.ServerConfig) *Router {
	return &Router{handler: handler, jwt: jwt, cfg: cfg}
}

// Setup wires all routes and middleware.
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	if len(rt.cfg.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   rt.cfg.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.PrometheusMetrics)
		if rt.cfg.RateLimit > 0 {
			r.Use(httprate.Limit(
				rt.cfg.RateLimit,
				rt.cfg.RateWindow,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(rateLimited),
			))
		}

		// Public routes.
		r.Get("/healthz", rt.handler.Healthz)
		r.Post("/auth/register", rt.handler.Register)
		r.Post("/auth/login", rt.handler.Login)

		// Everything else needs a session token.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(rt.jwt))

			r.Get("/materials", rt.handler.Materials)
			r.Get("/materials/{id}", rt.handler.MaterialByID)
			r.Get("/materials/{id}/similar", rt.handler.SimilarMaterials)
			r.Get("/suppliers", rt.handler.Suppliers)
			r.Get("/suppliers/{id}", rt.handler.SupplierByID)

			r.Post("/recommendations", rt.handler.Recommend)

			r.Post("/projects", rt.handler.CreateProject)
			r.Get("/projects", rt.handler.ListProjects)
			r.Get("/projects/{id}", rt.handler.GetProject)
			r.Put("/projects/{id}", rt.handler.UpdateProject)
			r.Delete("/projects/{id}", rt.handler.DeleteProject)
			r.Get("/projects/{id}/recommendations", rt.handler.ProjectRecommendations)

			r.Post("/ratings", rt.handler.SaveRating)
			r.Get("/ratings", rt.handler.ListRatings)

			r.Post("/compare/{materialID}", rt.handler.CompareAdd)
			r.Get("/compare", rt.handler.CompareList)
			r.Delete("/compare/{materialID}", rt.handler.CompareRemove)
			r.Delete("/compare", rt.handler.CompareClear)

			r.Get("/charts/radar", rt.handler.ChartRadar)
			r.Get("/charts/scores", rt.handler.ChartScores)
			r.Get("/charts/costs", rt.handler.ChartCosts)
		})
	})

	return r
}

func rateLimited(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusTooManyRequests, models.ErrCodeRateLimited,
		"rate limit exceeded, slow down", nil)
}
