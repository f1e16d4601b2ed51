package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Plan status constants
const (
	StatusOpen      = "open"
	StatusConfirmed = "confirmed"
)

// Attendance constants
const (
	AttendanceIn    = "in"
	AttendanceMaybe = "maybe"
	AttendanceOut   = "out"
)

// DefaultCurrency is applied when a plan is created without one.
const DefaultCurrency = "GBP"

// Request types

type CreatePlanRequest struct {
	Title         string   `json:"title"`
	GroupLabel    *string  `json:"group_label,omitempty"`
	HostName      string   `json:"host_name"`
	CutOffUTC     string   `json:"cut_off_utc"`
	OptionsSlots  []string `json:"options_slots"`
	OptionsVenues []string `json:"options_venues"`
	Currency      string   `json:"currency,omitempty"`
}

type SubmitResponseRequest struct {
	DisplayName  string              `json:"display_name"`
	ChoiceSlots  []string            `json:"choice_slots"`
	ChoiceVenue  *string             `json:"choice_venue,omitempty"`
	Attendance   string              `json:"attendance"`
	PledgeAmount decimal.NullDecimal `json:"pledge_amount,omitempty"`
	Notes        *string             `json:"notes,omitempty"`
}

type ConfirmPlanRequest struct {
	Slot              string              `json:"slot"`
	Venue             string              `json:"venue"`
	PerPersonEstimate decimal.NullDecimal `json:"per_person_estimate,omitempty"`
	MapURL            *string             `json:"map_url,omitempty"`
}

// Response types

type CreatePlanResponse struct {
	PlanID    string `json:"plan_id"`
	HostLink  string `json:"host_link"`
	ShareLink string `json:"share_link"`
	CutOffUTC string `json:"cut_off_utc"`
}

type SubmitResponseResponse struct {
	ResponseID string `json:"response_id"`
	Merged     bool   `json:"merged"`
}

type ConfirmPlanResponse struct {
	PlanID        string   `json:"plan_id"`
	Decision      Decision `json:"decision"`
	ConfirmedLink string   `json:"confirmed_link"`
}

type CopySnippetsResponse struct {
	KickOff      string  `json:"kick_off"`
	Reminder     *string `json:"reminder"`
	Confirmation *string `json:"confirmation"`
	HostLink     *string `json:"host_link"`
}

// Domain types

type Plan struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	GroupLabel    *string   `json:"group_label"`
	HostName      string    `json:"host_name"`
	CutOffUTC     time.Time `json:"cut_off_utc"`
	OptionsSlots  []string  `json:"options_slots"`
	OptionsVenues []string  `json:"options_venues"`
	Currency      string    `json:"currency"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

type Response struct {
	ID           string              `json:"id"`
	PlanID       string              `json:"plan_id"`
	DisplayName  string              `json:"display_name"`
	ChoiceSlots  []string            `json:"choice_slots"`
	ChoiceVenue  *string             `json:"choice_venue"`
	Attendance   string              `json:"attendance"`
	PledgeAmount decimal.NullDecimal `json:"pledge_amount"`
	Notes        *string             `json:"notes"`
	IPHash       *string             `json:"-"` // Never expose in JSON
	CreatedAt    time.Time           `json:"created_at"`
}

type Decision struct {
	PlanID            string              `json:"plan_id"`
	Slot              string              `json:"slot"`
	Venue             string              `json:"venue"`
	PerPersonEstimate decimal.NullDecimal `json:"per_person_estimate"`
	MapURL            *string             `json:"map_url"`
	ConfirmedAt       time.Time           `json:"confirmed_at"`
}

type PlanWithResponses struct {
	Plan      Plan       `json:"plan"`
	Decision  *Decision  `json:"decision,omitempty"`
	Responses []Response `json:"responses"`
}

// Tally types. Derived on every read, never persisted.

type SlotTally struct {
	Slot  string `json:"slot"`
	In    int    `json:"in"`
	Maybe int    `json:"maybe"`
	Out   int    `json:"out"`
}

type VenueTally struct {
	Venue string `json:"venue"`
	Votes int    `json:"votes"`
}

type Headcount struct {
	In    int `json:"in"`
	Maybe int `json:"maybe"`
	Out   int `json:"out"`
}

type NoteChip struct {
	Name string `json:"name"`
	Note string `json:"note"`
}

type SummaryResult struct {
	Plan           Plan         `json:"plan"`
	Decision       *Decision    `json:"decision,omitempty"`
	SlotTallies    []SlotTally  `json:"slot_tallies"`
	VenueTallies   []VenueTally `json:"venue_tallies"`
	RankedSlots    []SlotTally  `json:"ranked_slots"`
	RankedVenues   []VenueTally `json:"ranked_venues"`
	Headcount      Headcount    `json:"headcount"`
	BestSlotDelta  *string      `json:"best_slot_delta"`
	BestVenueDelta *string      `json:"best_venue_delta"`
	Notes          []NoteChip   `json:"notes"`
	ResponseCount  int          `json:"response_count"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
