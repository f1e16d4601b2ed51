// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"meetlock/cliparse"
	"meetlock/handlers"
	"meetlock/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	planHandler := handlers.NewPlanHandler(db, cfg)
	responseHandler := handlers.NewResponseHandler(db, cfg)
	confirmHandler := handlers.NewConfirmHandler(db, cfg)
	snippetsHandler := handlers.NewSnippetsHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus metrics
	mux.Handle("GET /metrics", promhttp.Handler())

	// Plan management (host operations)
	mux.HandleFunc("POST /plans", middleware.WithLogging(planHandler.CreatePlan))
	mux.HandleFunc("POST /plans/{id}/confirm", middleware.WithLogging(confirmHandler.Confirm))

	// Voting (public)
	mux.HandleFunc("POST /plans/{id}/responses", middleware.WithLogging(responseHandler.SubmitResponse))

	// Reads (public, live summaries)
	mux.HandleFunc("GET /plans/{id}", middleware.WithLogging(planHandler.GetPlan))
	mux.HandleFunc("GET /plans/{id}/summary", middleware.WithLogging(planHandler.GetSummary))
	mux.HandleFunc("GET /plans/{id}/snippets", middleware.WithLogging(snippetsHandler.GetSnippets))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("meetlock API v1"))
	})

	return mux
}
