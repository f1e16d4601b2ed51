// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Plans
CREATE TABLE IF NOT EXISTS plans (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    group_label TEXT,
    host_name TEXT NOT NULL,
    cut_off_utc TIMESTAMPTZ NOT NULL,
    options_slots TEXT[] NOT NULL,
    options_venues TEXT[] NOT NULL,
    currency TEXT NOT NULL DEFAULT 'GBP',
    status TEXT NOT NULL DEFAULT 'open' CHECK (status IN ('open', 'confirmed')),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_plans_status ON plans(status);

-- Responses
CREATE TABLE IF NOT EXISTS responses (
    id TEXT PRIMARY KEY,
    plan_id TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
    display_name TEXT NOT NULL,
    choice_slots TEXT[] NOT NULL,
    choice_venue TEXT,
    attendance TEXT NOT NULL CHECK (attendance IN ('in', 'maybe', 'out')),
    pledge_amount NUMERIC(10,2) CHECK (pledge_amount >= 0),
    notes TEXT,
    ip_hash TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_responses_plan_id ON responses(plan_id);
CREATE INDEX IF NOT EXISTS idx_responses_identity ON responses(plan_id, display_name, created_at DESC);

-- Decisions (at most one per plan)
CREATE TABLE IF NOT EXISTS decisions (
    plan_id TEXT PRIMARY KEY REFERENCES plans(id) ON DELETE CASCADE,
    slot TEXT NOT NULL,
    venue TEXT NOT NULL,
    per_person_estimate NUMERIC(10,2) CHECK (per_person_estimate >= 0),
    map_url TEXT,
    confirmed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Host tokens (bound to exactly one plan at creation)
CREATE TABLE IF NOT EXISTS host_tokens (
    token TEXT PRIMARY KEY,
    plan_id TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_host_tokens_plan_id ON host_tokens(plan_id);
`
