// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the meetlock API server.

Meetlock is a meet-up planning service: a host proposes candidate time
slots and venues, participants vote in a few taps, a live ranked summary
shows where the group is leaning, and the host locks in the final decision.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... go run main.go

Or with flags:

	go run main.go -p 3000 -d "postgres://..."

A .env file in the working directory is loaded automatically.

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL connection string

Optional settings:

  - PORT (-p): Server port (default: 3000)
  - SITE_URL (-site-url): Public base URL for share/host links
    (default: http://localhost:3000)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: Aggregation engine (tallies, ranking, ingestion, lifecycle)
    plus HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response and domain types
  - auth: Host token generation and identity hashing
  - monitoring: Prometheus counters
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
