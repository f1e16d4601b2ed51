// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the aggregation engine and HTTP request handlers.

# Engine Operations

The core logic is plain functions, usable without the HTTP layer:

	summary := handlers.ComputeSummary(planWithResponses)
	ranked := handlers.RankSlots(tallies)
	id, merged, err := handlers.IngestResponse(db, planID, req, ipHash, now)
	decision, err := handlers.ConfirmPlan(db, planID, req, hostToken, now)

ComputeSummary, RankSlots, RankVenues, SlotDelta, and VenueDelta are pure;
summaries are recomputed from raw responses on every read and never stored.

# Handler Types

Each handler is a struct with database and config dependencies:

  - PlanHandler: Plan creation and reads (plan, summary)
  - ResponseHandler: Vote submission through the ingestion policy
  - ConfirmHandler: Lifecycle transition open → confirmed
  - SnippetsHandler: Ready-to-paste chat messages for the host

Handlers are created via constructor functions that accept *sql.DB and Config:

	planHandler := handlers.NewPlanHandler(db, cfg)

# Ranking

Slots rank by in count, then maybe count, then earliest instant; out counts
are display-only. Venues rank by votes, then byte-wise name order. A lead
margin ("+2 over next", "+1 maybe edge") annotates the top entry when it is
strictly ahead.

# Ingestion Policy

A resubmission from the same (plan, display name) pair within MergeWindow
(30 seconds) overwrites the prior response in place instead of creating a
duplicate row. Plans reject votes once confirmed or past cut-off.

# Lifecycle

ConfirmPlan checks host token binding, upserts the decision keyed by plan
(re-confirm replaces), then flips status. The quorum gate (at least two
responses) lives in the Confirm handler, not in ConfirmPlan.

# Errors

Precondition failures are sentinel errors (ErrPlanNotFound, ErrPlanClosed,
ErrInvalidHostToken, ErrTokenMismatch) mapped to 404/409/401/403.
ErrPlanInconsistent marks a decision write whose status flip failed.
*/
package handlers
