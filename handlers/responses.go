// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"meetlock/auth"
	"meetlock/cliparse"
	"meetlock/middleware"
	"meetlock/models"
	"meetlock/monitoring"
)

// MergeWindow is how recently a prior response from the same
// (plan, display name) pair must have been created for a new submission to
// overwrite it in place. Absorbs double-taps and step-wizard resubmits.
const MergeWindow = 30 * time.Second

type ResponseHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewResponseHandler(db *sql.DB, cfg cliparse.Config) *ResponseHandler {
	return &ResponseHandler{db: db, cfg: cfg}
}

// IngestResponse applies the vote ingestion policy for a single submission.
//
// The target plan must exist and be open: status "open" and now at or before
// the cut-off instant. If the most recent response for the same
// (plan, display name) pair was created within MergeWindow of now, the
// submission overwrites that response in place (same identity, updated
// values); otherwise a new response row is created. Returns the response id
// and whether the submission merged.
//
// Identity here is a heuristic: two people sharing a display name inside one
// window merge into a single voter. That is a documented limitation of the
// policy, not something to quietly strengthen. The find-then-decide pair is
// also not serialized, so two truly simultaneous submissions can both
// insert; accepted as best-effort for low-stakes polling.
func IngestResponse(db *sql.DB, planID string, req models.SubmitResponseRequest, ipHash string, now time.Time) (string, bool, error) {
	var status string
	var cutOff time.Time
	err := db.QueryRow(`
		SELECT status, cut_off_utc FROM plans WHERE id = $1
	`, planID).Scan(&status, &cutOff)

	if err == sql.ErrNoRows {
		return "", false, ErrPlanNotFound
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query plan: %w", err)
	}

	if status == models.StatusConfirmed || now.After(cutOff) {
		return "", false, ErrPlanClosed
	}

	var existingID string
	var existingCreated time.Time
	err = db.QueryRow(`
		SELECT id, created_at
		FROM responses
		WHERE plan_id = $1 AND display_name = $2
		ORDER BY created_at DESC
		LIMIT 1
	`, planID, req.DisplayName).Scan(&existingID, &existingCreated)

	if err != nil && err != sql.ErrNoRows {
		return "", false, fmt.Errorf("failed to query prior response: %w", err)
	}

	if err == nil && now.Sub(existingCreated) <= MergeWindow {
		_, err = db.Exec(`
			UPDATE responses
			SET choice_slots = $1, choice_venue = $2, attendance = $3,
			    pledge_amount = $4, notes = $5, ip_hash = $6
			WHERE id = $7
		`, pq.StringArray(req.ChoiceSlots), req.ChoiceVenue, req.Attendance,
			req.PledgeAmount, req.Notes, ipHash, existingID)

		if err != nil {
			return "", false, fmt.Errorf("failed to update response: %w", err)
		}
		return existingID, true, nil
	}

	responseID := uuid.NewString()
	_, err = db.Exec(`
		INSERT INTO responses (id, plan_id, display_name, choice_slots, choice_venue,
		                       attendance, pledge_amount, notes, ip_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, responseID, planID, req.DisplayName, pq.StringArray(req.ChoiceSlots),
		req.ChoiceVenue, req.Attendance, req.PledgeAmount, req.Notes, ipHash, now)

	if err != nil {
		return "", false, fmt.Errorf("failed to insert response: %w", err)
	}
	return responseID, false, nil
}

// SubmitResponse handles POST /plans/{id}/responses
func (h *ResponseHandler) SubmitResponse(w http.ResponseWriter, r *http.Request) {
	planID := r.PathValue("id")
	if planID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "plan_id is required")
		return
	}

	var req models.SubmitResponseRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.DisplayName == "" || len(req.DisplayName) > 80 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "display_name must be 1-80 characters")
		return
	}
	if len(req.ChoiceSlots) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "choice_slots cannot be empty")
		return
	}
	if req.Attendance == "" {
		req.Attendance = models.AttendanceIn
	}
	switch req.Attendance {
	case models.AttendanceIn, models.AttendanceMaybe, models.AttendanceOut:
	default:
		middleware.ErrorResponse(w, http.StatusBadRequest, "attendance must be one of: in, maybe, out")
		return
	}
	if req.PledgeAmount.Valid && req.PledgeAmount.Decimal.IsNegative() {
		middleware.ErrorResponse(w, http.StatusBadRequest, "pledge_amount must be non-negative")
		return
	}
	if req.Notes != nil && len(*req.Notes) > 500 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "notes must be at most 500 characters")
		return
	}

	ipHash := auth.HashIdentity(middleware.GetClientIP(r), req.DisplayName)

	responseID, merged, err := IngestResponse(h.db, planID, req, ipHash, time.Now().UTC())
	if err == ErrPlanNotFound {
		monitoring.RecordResponseRejected("not_found")
		middleware.ErrorResponse(w, http.StatusNotFound, "Plan not found")
		return
	}
	if err == ErrPlanClosed {
		monitoring.RecordResponseRejected("closed")
		middleware.ErrorResponse(w, http.StatusConflict, "Plan is closed for voting")
		return
	}
	if err != nil {
		monitoring.RecordResponseRejected("error")
		slog.Error("failed to ingest response", "error", err, "plan_id", planID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save response")
		return
	}

	monitoring.RecordResponseIngested(merged)
	slog.Info("response ingested", "plan_id", planID, "response_id", responseID, "merged", merged)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitResponseResponse{
		ResponseID: responseID,
		Merged:     merged,
	})
}
