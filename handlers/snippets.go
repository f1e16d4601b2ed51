// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"meetlock/cliparse"
	"meetlock/middleware"
	"meetlock/models"
)

// reminderLeadTime is how much time must remain before the cut-off for the
// last-call reminder snippet to be offered.
const reminderLeadTime = 6 * time.Hour

type SnippetsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewSnippetsHandler(db *sql.DB, cfg cliparse.Config) *SnippetsHandler {
	return &SnippetsHandler{db: db, cfg: cfg}
}

// GetSnippets handles GET /plans/{id}/snippets
// Returns ready-to-paste chat messages for the host: a kick-off message, a
// last-call reminder (only while more than six hours remain), and a
// confirmation message (only once a decision exists).
func (h *SnippetsHandler) GetSnippets(w http.ResponseWriter, r *http.Request) {
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

	var hostToken sql.NullString
	err = h.db.QueryRow(`
		SELECT token FROM host_tokens WHERE plan_id = $1 LIMIT 1
	`, planID).Scan(&hostToken)
	if err != nil && err != sql.ErrNoRows {
		slog.Error("failed to query host token", "error", err, "plan_id", planID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	resp := buildSnippets(h.cfg, summary, hostToken, time.Now().UTC())
	middleware.JSONResponse(w, http.StatusOK, resp)
}

func buildSnippets(cfg cliparse.Config, summary models.SummaryResult, hostToken sql.NullString, now time.Time) models.CopySnippetsResponse {
	plan := summary.Plan
	share := shareLink(cfg, plan.ID)
	cutOffText := plan.CutOffUTC.Format("Mon 2 Jan 15:04 MST")

	resp := models.CopySnippetsResponse{
		KickOff: fmt.Sprintf(
			"👉 Tap to vote your times & venue (20–30s): %s\nCut-off: %s. I'll lock it after that.",
			share, cutOffText),
	}

	if hostToken.Valid {
		link := hostLink(cfg, plan.ID, hostToken.String)
		resp.HostLink = &link
	}

	if now.Before(plan.CutOffUTC.Add(-reminderLeadTime)) {
		reminder := fmt.Sprintf("⏰ Last call to vote: %s (closes %s)",
			share, humanize.Time(plan.CutOffUTC))
		resp.Reminder = &reminder
	}

	if summary.Decision != nil {
		confirmation := buildConfirmation(cfg, summary)
		resp.Confirmation = &confirmation
	}

	return resp
}

func buildConfirmation(cfg cliparse.Config, summary models.SummaryResult) string {
	plan := summary.Plan
	decision := summary.Decision

	when := decision.Slot
	if t, err := time.Parse(time.RFC3339, decision.Slot); err == nil {
		when = t.Format("Mon 2 Jan") + " @ " + t.Format("15:04")
	}

	mapText := "TBC"
	if decision.MapURL != nil && *decision.MapURL != "" {
		mapText = *decision.MapURL
	}

	perPerson := "TBC"
	if decision.PerPersonEstimate.Valid {
		perPerson = plan.Currency + " " + decision.PerPersonEstimate.Decimal.StringFixed(2)
	}

	notesText := "None"
	if len(summary.Notes) > 0 {
		chips := summary.Notes
		if len(chips) > 3 {
			chips = chips[:3]
		}
		parts := make([]string, len(chips))
		for i, chip := range chips {
			parts[i] = chip.Name + ": " + chip.Note
		}
		notesText = strings.Join(parts, "; ")
	}

	return fmt.Sprintf(
		"✅ Locked: %s\n📍 %s, map: %s\n👥 %d coming (%d maybe)\n💸 est. %s/person\nNotes: %s\nSave this: %s",
		when, decision.Venue, mapText,
		summary.Headcount.In, summary.Headcount.Maybe,
		perPerson, notesText, confirmedLink(cfg, plan.ID))
}
