// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - plans: Plan metadata, candidate slots/venues, lifecycle state
  - responses: One row per participant vote (merged in place within the
    ingestion window)
  - decisions: The host's locked-in choice, at most one per plan
  - host_tokens: Opaque tokens bound to a plan at creation

# Relationships

	plans 1──* responses
	plans 1──0..1 decisions
	plans 1──* host_tokens

All foreign keys use ON DELETE CASCADE.

# Indexes

Performance indexes on:

  - plans.status
  - responses.plan_id
  - responses.(plan_id, display_name, created_at DESC) for the
    most-recent-response lookup in the ingestion policy
  - host_tokens.plan_id

Candidate slot and venue choices are TEXT[] columns (pq.StringArray); slot
values are RFC3339 instants kept as text, matching what clients submit.
*/
package db
