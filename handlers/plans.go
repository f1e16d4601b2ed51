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

type PlanHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewPlanHandler(db *sql.DB, cfg cliparse.Config) *PlanHandler {
	return &PlanHandler{db: db, cfg: cfg}
}

// CreatePlan handles POST /plans
func (h *PlanHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePlanRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	if len(req.Title) < 3 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title must be at least 3 characters")
		return
	}
	if req.HostName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "host_name is required")
		return
	}
	cutOff, err := time.Parse(time.RFC3339, req.CutOffUTC)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "cut_off_utc must be an RFC3339 instant")
		return
	}
	if len(req.OptionsSlots) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "options_slots cannot be empty")
		return
	}
	for _, slot := range req.OptionsSlots {
		if _, err := time.Parse(time.RFC3339, slot); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "invalid slot instant: "+slot)
			return
		}
	}
	if len(req.OptionsVenues) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "options_venues cannot be empty")
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = models.DefaultCurrency
	}

	planID := uuid.NewString()

	_, err = h.db.Exec(`
		INSERT INTO plans (id, title, group_label, host_name, cut_off_utc, options_slots, options_venues, currency, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, planID, req.Title, req.GroupLabel, req.HostName, cutOff.UTC(),
		pq.StringArray(req.OptionsSlots), pq.StringArray(req.OptionsVenues),
		currency, models.StatusOpen, time.Now().UTC())

	if err != nil {
		slog.Error("failed to insert plan", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create plan")
		return
	}

	// Mint the host credential, bound to this plan for its lifetime
	token, err := auth.GenerateHostToken()
	if err != nil {
		slog.Error("failed to generate host token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create plan")
		return
	}

	_, err = h.db.Exec(`
		INSERT INTO host_tokens (token, plan_id, created_at)
		VALUES ($1, $2, $3)
	`, token, planID, time.Now().UTC())

	if err != nil {
		slog.Error("failed to insert host token", "error", err, "plan_id", planID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create plan")
		return
	}

	monitoring.RecordPlanCreated()
	slog.Info("plan created", "plan_id", planID, "host", req.HostName)

	middleware.JSONResponse(w, http.StatusCreated, models.CreatePlanResponse{
		PlanID:    planID,
		HostLink:  hostLink(h.cfg, planID, token),
		ShareLink: shareLink(h.cfg, planID),
		CutOffUTC: cutOff.UTC().Format(time.RFC3339),
	})
}

// GetPlan handles GET /plans/{id}
// Returns the plan with its responses plus the computed summary.
func (h *PlanHandler) GetPlan(w http.ResponseWriter, r *http.Request) {
	planID := r.PathValue("id")
	if planID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "plan_id is required")
		return
	}

	pw, err := fetchPlanWithResponses(h.db, planID)
	if err == ErrPlanNotFound {
		middleware.ErrorResponse(w, http.StatusNotFound, "Plan not found")
		return
	}
	if err != nil {
		slog.Error("failed to fetch plan", "error", err, "plan_id", planID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	summary := ComputeSummary(*pw)

	middleware.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"plan":    pw,
		"summary": summary,
	})
}

// GetSummary handles GET /plans/{id}/summary
// The summary is recomputed from raw responses on every read.
func (h *PlanHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	planID := r.PathValue("id")
	if planID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "plan_id is required")
		return
	}

	pw, err := fetchPlanWithResponses(h.db, planID)
	if err == ErrPlanNotFound {
		middleware.ErrorResponse(w, http.StatusNotFound, "Plan not found")
		return
	}
	if err != nil {
		slog.Error("failed to fetch plan", "error", err, "plan_id", planID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, ComputeSummary(*pw))
}

// fetchPlanWithResponses loads a plan, its decision (if any), and all
// responses ordered by creation time.
func fetchPlanWithResponses(db *sql.DB, planID string) (*models.PlanWithResponses, error) {
	var plan models.Plan
	var slots, venues pq.StringArray

	err := db.QueryRow(`
		SELECT id, title, group_label, host_name, cut_off_utc,
		       options_slots, options_venues, currency, status, created_at
		FROM plans
		WHERE id = $1
	`, planID).Scan(
		&plan.ID, &plan.Title, &plan.GroupLabel, &plan.HostName, &plan.CutOffUTC,
		&slots, &venues, &plan.Currency, &plan.Status, &plan.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query plan: %w", err)
	}

	plan.OptionsSlots = slots
	plan.OptionsVenues = venues

	var decision models.Decision
	err = db.QueryRow(`
		SELECT plan_id, slot, venue, per_person_estimate, map_url, confirmed_at
		FROM decisions
		WHERE plan_id = $1
	`, planID).Scan(
		&decision.PlanID, &decision.Slot, &decision.Venue,
		&decision.PerPersonEstimate, &decision.MapURL, &decision.ConfirmedAt,
	)

	pw := models.PlanWithResponses{Plan: plan}
	if err == nil {
		pw.Decision = &decision
	} else if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to query decision: %w", err)
	}

	rows, err := db.Query(`
		SELECT id, plan_id, display_name, choice_slots, choice_venue,
		       attendance, pledge_amount, notes, ip_hash, created_at
		FROM responses
		WHERE plan_id = $1
		ORDER BY created_at
	`, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to query responses: %w", err)
	}
	defer rows.Close()

	pw.Responses = []models.Response{}
	for rows.Next() {
		var resp models.Response
		var choiceSlots pq.StringArray
		if err := rows.Scan(
			&resp.ID, &resp.PlanID, &resp.DisplayName, &choiceSlots, &resp.ChoiceVenue,
			&resp.Attendance, &resp.PledgeAmount, &resp.Notes, &resp.IPHash, &resp.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan response: %w", err)
		}
		resp.ChoiceSlots = choiceSlots
		pw.Responses = append(pw.Responses, resp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate responses: %w", err)
	}

	return &pw, nil
}

// Link builders. SiteURL has no trailing slash (cliparse strips it).

func hostLink(cfg cliparse.Config, planID, token string) string {
	return cfg.SiteURL + "/p/" + planID + "/summary?host=" + token
}

func shareLink(cfg cliparse.Config, planID string) string {
	return cfg.SiteURL + "/p/" + planID
}

func confirmedLink(cfg cliparse.Config, planID string) string {
	return cfg.SiteURL + "/p/" + planID + "/confirmed"
}
