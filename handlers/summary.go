// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"meetlock/models"
)

// ComputeSummary turns a plan and its responses into tallies, rankings,
// headcounts, and note chips. Pure and deterministic; safe to recompute on
// every read. Chosen slots or venues that match no declared option are
// ignored without error (stale options, client drift).
func ComputeSummary(pw models.PlanWithResponses) models.SummaryResult {
	plan := pw.Plan

	slotTallies := make([]models.SlotTally, len(plan.OptionsSlots))
	for i, slot := range plan.OptionsSlots {
		slotTallies[i] = models.SlotTally{Slot: slot}
	}
	venueTallies := make([]models.VenueTally, len(plan.OptionsVenues))
	for i, venue := range plan.OptionsVenues {
		venueTallies[i] = models.VenueTally{Venue: venue}
	}

	slotIndex := make(map[string]int, len(slotTallies))
	for i, entry := range slotTallies {
		slotIndex[entry.Slot] = i
	}
	venueIndex := make(map[string]int, len(venueTallies))
	for i, entry := range venueTallies {
		venueIndex[entry.Venue] = i
	}

	var headcount models.Headcount
	notes := []models.NoteChip{}

	for _, response := range pw.Responses {
		switch response.Attendance {
		case models.AttendanceIn:
			headcount.In++
		case models.AttendanceMaybe:
			headcount.Maybe++
		case models.AttendanceOut:
			headcount.Out++
		}

		// A response can vote for multiple slots; each chosen slot is
		// counted independently in the same attendance bucket.
		for _, slot := range response.ChoiceSlots {
			idx, ok := slotIndex[slot]
			if !ok {
				continue
			}
			switch response.Attendance {
			case models.AttendanceIn:
				slotTallies[idx].In++
			case models.AttendanceMaybe:
				slotTallies[idx].Maybe++
			case models.AttendanceOut:
				slotTallies[idx].Out++
			}
		}

		// An "out" participant's venue preference does not count toward
		// venue tallies.
		if response.ChoiceVenue != nil && response.Attendance != models.AttendanceOut {
			if idx, ok := venueIndex[*response.ChoiceVenue]; ok {
				venueTallies[idx].Votes++
			}
		}

		if response.Notes != nil && *response.Notes != "" {
			notes = append(notes, models.NoteChip{
				Name: response.DisplayName,
				Note: *response.Notes,
			})
		}
	}

	rankedSlots := RankSlots(slotTallies)
	rankedVenues := RankVenues(venueTallies)

	return models.SummaryResult{
		Plan:           plan,
		Decision:       pw.Decision,
		SlotTallies:    slotTallies,
		VenueTallies:   venueTallies,
		RankedSlots:    rankedSlots,
		RankedVenues:   rankedVenues,
		Headcount:      headcount,
		BestSlotDelta:  SlotDelta(rankedSlots),
		BestVenueDelta: VenueDelta(rankedVenues),
		Notes:          notes,
		ResponseCount:  len(pw.Responses),
	}
}
