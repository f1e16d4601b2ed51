// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"sort"
	"time"

	"meetlock/models"
)

// RankSlots orders slot tallies by descending preference: higher "in" count
// first, then higher "maybe" count, then earlier slot instant. The "out"
// count never participates in ordering. The input is not modified.
func RankSlots(tallies []models.SlotTally) []models.SlotTally {
	ranked := make([]models.SlotTally, len(tallies))
	copy(ranked, tallies)

	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]

		// 1. Higher in count wins
		if a.In != b.In {
			return a.In > b.In
		}

		// 2. Higher maybe count wins
		if a.Maybe != b.Maybe {
			return a.Maybe > b.Maybe
		}

		// 3. Earlier slot instant wins
		return compareSlotInstants(a.Slot, b.Slot) < 0
	})

	return ranked
}

// RankVenues orders venue tallies by descending vote count, breaking ties
// with byte-wise ascending order on venue name. The input is not modified.
func RankVenues(tallies []models.VenueTally) []models.VenueTally {
	ranked := make([]models.VenueTally, len(tallies))
	copy(ranked, tallies)

	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]

		if a.Votes != b.Votes {
			return a.Votes > b.Votes
		}

		return a.Venue < b.Venue
	})

	return ranked
}

// SlotDelta builds the lead-margin annotation for ranked slots. Nil when
// fewer than two entries exist or the top two are fully tied on in and
// maybe counts. Advisory display text only.
func SlotDelta(ranked []models.SlotTally) *string {
	if len(ranked) < 2 {
		return nil
	}

	top, next := ranked[0], ranked[1]

	if d := top.In - next.In; d > 0 {
		s := fmt.Sprintf("+%d over next", d)
		return &s
	}
	if d := top.Maybe - next.Maybe; d > 0 {
		s := fmt.Sprintf("+%d maybe edge", d)
		return &s
	}
	return nil
}

// VenueDelta builds the lead-margin annotation for ranked venues. Nil when
// fewer than two entries exist or the top two are tied.
func VenueDelta(ranked []models.VenueTally) *string {
	if len(ranked) < 2 {
		return nil
	}

	top, next := ranked[0], ranked[1]
	if d := top.Votes - next.Votes; d > 0 {
		s := fmt.Sprintf("+%d over next", d)
		return &s
	}
	return nil
}

// compareSlotInstants compares two RFC3339 slot values chronologically.
// Unparseable values fall back to string comparison so the order stays
// total and deterministic.
func compareSlotInstants(a, b string) int {
	ta, errA := time.Parse(time.RFC3339, a)
	tb, errB := time.Parse(time.RFC3339, b)
	if errA != nil || errB != nil {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	}
	return ta.Compare(tb)
}
