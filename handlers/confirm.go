// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"meetlock/cliparse"
	"meetlock/middleware"
	"meetlock/models"
	"meetlock/monitoring"
)

// Quorum is the minimum total response count before the confirm surface is
// reachable. Enforced here in the handler, not inside ConfirmPlan: the
// lifecycle operation trusts its caller to gate, which keeps re-confirms
// idempotent even if responses were to disappear.
const Quorum = 2

type ConfirmHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewConfirmHandler(db *sql.DB, cfg cliparse.Config) *ConfirmHandler {
	return &ConfirmHandler{db: db, cfg: cfg}
}

// ConfirmPlan runs the open-to-confirmed transition.
//
// Preconditions, checked in order: the host token must resolve to a plan
// binding (ErrInvalidHostToken), the bound plan must equal the target plan
// (ErrTokenMismatch), and the target plan must exist (ErrPlanNotFound).
//
// The decision is upserted keyed by plan, so confirming twice replaces the
// prior decision instead of erroring, then the plan status flips to
// confirmed. The two writes are sequential store operations, not a
// transaction; if the status flip fails after the decision write the error
// wraps ErrPlanInconsistent and the caller must not retry blindly.
func ConfirmPlan(db *sql.DB, planID string, req models.ConfirmPlanRequest, hostToken string, now time.Time) (models.Decision, error) {
	var boundPlanID string
	err := db.QueryRow(`
		SELECT plan_id FROM host_tokens WHERE token = $1
	`, hostToken).Scan(&boundPlanID)

	if err == sql.ErrNoRows {
		return models.Decision{}, ErrInvalidHostToken
	}
	if err != nil {
		return models.Decision{}, fmt.Errorf("failed to resolve host token: %w", err)
	}

	if boundPlanID != planID {
		return models.Decision{}, ErrTokenMismatch
	}

	var exists bool
	err = db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM plans WHERE id = $1)
	`, planID).Scan(&exists)
	if err != nil {
		return models.Decision{}, fmt.Errorf("failed to query plan: %w", err)
	}
	if !exists {
		return models.Decision{}, ErrPlanNotFound
	}

	decision := models.Decision{
		PlanID:            planID,
		Slot:              req.Slot,
		Venue:             req.Venue,
		PerPersonEstimate: req.PerPersonEstimate,
		MapURL:            req.MapURL,
		ConfirmedAt:       now,
	}

	_, err = db.Exec(`
		INSERT INTO decisions (plan_id, slot, venue, per_person_estimate, map_url, confirmed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (plan_id) DO UPDATE
		SET slot = EXCLUDED.slot,
		    venue = EXCLUDED.venue,
		    per_person_estimate = EXCLUDED.per_person_estimate,
		    map_url = EXCLUDED.map_url,
		    confirmed_at = EXCLUDED.confirmed_at
	`, planID, req.Slot, req.Venue, req.PerPersonEstimate, req.MapURL, now)

	if err != nil {
		return models.Decision{}, fmt.Errorf("failed to upsert decision: %w", err)
	}

	_, err = db.Exec(`
		UPDATE plans SET status = $1 WHERE id = $2
	`, models.StatusConfirmed, planID)

	if err != nil {
		// Decision row exists but the plan still reads open. Operator
		// remediation required; a blind retry could double-write.
		return decision, fmt.Errorf("%w: %v", ErrPlanInconsistent, err)
	}

	return decision, nil
}

// Confirm handles POST /plans/{id}/confirm
// The host token comes from the X-Host-Token header or the host query
// parameter (host links embed it as ?host=).
func (h *ConfirmHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	planID := r.PathValue("id")
	if planID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "plan_id is required")
		return
	}

	hostToken := r.Header.Get("X-Host-Token")
	if hostToken == "" {
		hostToken = r.URL.Query().Get("host")
	}
	if hostToken == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Host-Token header required")
		return
	}

	var req models.ConfirmPlanRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Slot == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slot is required")
		return
	}
	if req.Venue == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "venue is required")
		return
	}
	if req.PerPersonEstimate.Valid && req.PerPersonEstimate.Decimal.IsNegative() {
		middleware.ErrorResponse(w, http.StatusBadRequest, "per_person_estimate must be non-negative")
		return
	}

	// Quorum gate: confirming is only reachable once enough people voted.
	var responseCount int
	err := h.db.QueryRow(`
		SELECT COUNT(*) FROM responses WHERE plan_id = $1
	`, planID).Scan(&responseCount)
	if err != nil {
		slog.Error("failed to count responses", "error", err, "plan_id", planID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if responseCount < Quorum {
		middleware.ErrorResponse(w, http.StatusConflict,
			fmt.Sprintf("Plan needs at least %d responses before confirming", Quorum))
		return
	}

	decision, err := ConfirmPlan(h.db, planID, req, hostToken, time.Now().UTC())
	switch {
	case err == ErrInvalidHostToken:
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid host token")
		return
	case err == ErrTokenMismatch:
		middleware.ErrorResponse(w, http.StatusForbidden, "Host token does not match this plan")
		return
	case err == ErrPlanNotFound:
		middleware.ErrorResponse(w, http.StatusNotFound, "Plan not found")
		return
	case errors.Is(err, ErrPlanInconsistent):
		slog.Error("plan left inconsistent after confirm", "error", err, "plan_id", planID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Plan confirmation incomplete; contact the operator")
		return
	case err != nil:
		slog.Error("failed to confirm plan", "error", err, "plan_id", planID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to confirm plan")
		return
	}

	monitoring.RecordPlanConfirmed()
	slog.Info("plan confirmed", "plan_id", planID, "slot", decision.Slot, "venue", decision.Venue)

	middleware.JSONResponse(w, http.StatusOK, models.ConfirmPlanResponse{
		PlanID:        planID,
		Decision:      decision,
		ConfirmedLink: confirmedLink(h.cfg, planID),
	})
}
