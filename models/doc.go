// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreatePlanRequest: title, host_name, cut_off_utc, options_slots,
    options_venues, optional group_label/currency
  - SubmitResponseRequest: display_name, choice_slots, attendance,
    optional choice_venue/pledge_amount/notes
  - ConfirmPlanRequest: slot, venue, optional per_person_estimate/map_url

# Response Types

Types for JSON responses:

  - CreatePlanResponse: plan_id, host_link, share_link, cut_off_utc
  - SubmitResponseResponse: response_id, merged
  - ConfirmPlanResponse: plan_id, decision, confirmed_link
  - CopySnippetsResponse: kick_off, reminder, confirmation, host_link
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Plan: plan metadata, candidate options, lifecycle state
  - Response: a participant's vote
  - Decision: the host's locked-in choice (at most one per plan)
  - SlotTally, VenueTally: derived vote counts, never persisted
  - Headcount: in/maybe/out totals across all responses
  - SummaryResult: everything the summary view needs in one value

Money fields (pledge_amount, per_person_estimate) use
decimal.NullDecimal and scan directly from NUMERIC columns.

# Constants

Status values:

	StatusOpen      = "open"
	StatusConfirmed = "confirmed"

Attendance values:

	AttendanceIn    = "in"
	AttendanceMaybe = "maybe"
	AttendanceOut   = "out"
*/
package models
