// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the meetlock API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health and metrics:

	GET /health
	GET /metrics

Plan management (host, requires X-Host-Token or ?host=):

	POST /plans              - Create plan (returns host_link)
	POST /plans/{id}/confirm - Lock in slot/venue (quorum gated)

Voting (public):

	POST /plans/{id}/responses - Submit/update a vote

Reads (public, summaries are live):

	GET /plans/{id}          - Plan with responses and summary
	GET /plans/{id}/summary  - Ranked summary only
	GET /plans/{id}/snippets - Copy-paste chat messages

# Handler Initialization

The router creates handler instances with dependency injection:

	planHandler := handlers.NewPlanHandler(db, cfg)
	responseHandler := handlers.NewResponseHandler(db, cfg)
	confirmHandler := handlers.NewConfirmHandler(db, cfg)
	snippetsHandler := handlers.NewSnippetsHandler(db, cfg)

All handlers receive the database connection and configuration.
*/
package router
