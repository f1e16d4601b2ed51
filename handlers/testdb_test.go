// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"testing"

	_ "github.com/lib/pq"

	"meetlock/testutil"
)

// testDB wraps *sql.DB so helpers can reach the raw handle via conn.DB
// while still promoting QueryRow/Exec/Close.
type testDB struct {
	*sql.DB
}

func setupTestDB(t *testing.T) *testDB {
	t.Helper()
	return &testDB{testutil.SetupTestDB(t)}
}
