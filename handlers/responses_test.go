// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lib/pq"

	"meetlock/models"
	"meetlock/testutil"
)

func openPlan(t *testing.T, conn *testDB, cutOff time.Time) (string, []string) {
	t.Helper()
	slots := testutil.SlotInstants(time.Now().Add(48*time.Hour), 3)
	planID := testutil.CreateTestPlan(t, conn.DB, models.StatusOpen, cutOff, slots, []string{"The Crown", "Big Easy"})
	return planID, slots
}

func TestIngestResponse_MergesWithinWindow(t *testing.T) {
	conn := setupTestDB(t)
	defer conn.Close()

	planID, slots := openPlan(t, conn, time.Now().Add(24*time.Hour))
	base := time.Now().UTC()

	firstVenue := "The Crown"
	firstID, merged, err := IngestResponse(conn.DB, planID, models.SubmitResponseRequest{
		DisplayName: "Sam",
		ChoiceSlots: []string{slots[0]},
		ChoiceVenue: &firstVenue,
		Attendance:  models.AttendanceIn,
	}, "hash-1", base)
	if err != nil {
		t.Fatalf("first IngestResponse failed: %v", err)
	}
	if merged {
		t.Error("first submission should not merge")
	}

	secondVenue := "Big Easy"
	secondID, merged, err := IngestResponse(conn.DB, planID, models.SubmitResponseRequest{
		DisplayName: "Sam",
		ChoiceSlots: []string{slots[1], slots[2]},
		ChoiceVenue: &secondVenue,
		Attendance:  models.AttendanceMaybe,
	}, "hash-1", base.Add(10*time.Second))
	if err != nil {
		t.Fatalf("second IngestResponse failed: %v", err)
	}

	if !merged {
		t.Error("second submission within 30s should merge")
	}
	if secondID != firstID {
		t.Errorf("merged submission should keep identity %s, got %s", firstID, secondID)
	}

	// Exactly one stored row, reflecting the second submission's values
	var count int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM responses WHERE plan_id = $1`, planID).Scan(&count); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 response row, got %d", count)
	}

	var storedSlots pq.StringArray
	var storedVenue, storedAttendance string
	err = conn.QueryRow(`
		SELECT choice_slots, choice_venue, attendance FROM responses WHERE id = $1
	`, firstID).Scan(&storedSlots, &storedVenue, &storedAttendance)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if len(storedSlots) != 2 || storedSlots[0] != slots[1] {
		t.Errorf("expected second submission's slots, got %v", storedSlots)
	}
	if storedVenue != "Big Easy" {
		t.Errorf("expected venue 'Big Easy', got %q", storedVenue)
	}
	if storedAttendance != models.AttendanceMaybe {
		t.Errorf("expected attendance maybe, got %q", storedAttendance)
	}
}

func TestIngestResponse_NewRowAfterWindow(t *testing.T) {
	conn := setupTestDB(t)
	defer conn.Close()

	planID, slots := openPlan(t, conn, time.Now().Add(24*time.Hour))
	base := time.Now().UTC()

	firstID, _, err := IngestResponse(conn.DB, planID, models.SubmitResponseRequest{
		DisplayName: "Sam",
		ChoiceSlots: []string{slots[0]},
		Attendance:  models.AttendanceIn,
	}, "hash-1", base)
	if err != nil {
		t.Fatalf("first IngestResponse failed: %v", err)
	}

	secondID, merged, err := IngestResponse(conn.DB, planID, models.SubmitResponseRequest{
		DisplayName: "Sam",
		ChoiceSlots: []string{slots[1]},
		Attendance:  models.AttendanceIn,
	}, "hash-1", base.Add(35*time.Second))
	if err != nil {
		t.Fatalf("second IngestResponse failed: %v", err)
	}

	if merged {
		t.Error("submission after the window should not merge")
	}
	if secondID == firstID {
		t.Error("submission after the window should create a new identity")
	}

	var count int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM responses WHERE plan_id = $1`, planID).Scan(&count); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 response rows, got %d", count)
	}
}

func TestIngestResponse_DistinctNamesNeverMerge(t *testing.T) {
	conn := setupTestDB(t)
	defer conn.Close()

	planID, slots := openPlan(t, conn, time.Now().Add(24*time.Hour))
	base := time.Now().UTC()

	for i, name := range []string{"Sam", "Ana"} {
		_, merged, err := IngestResponse(conn.DB, planID, models.SubmitResponseRequest{
			DisplayName: name,
			ChoiceSlots: []string{slots[0]},
			Attendance:  models.AttendanceIn,
		}, "hash", base.Add(time.Duration(i)*time.Second))
		if err != nil {
			t.Fatalf("IngestResponse for %s failed: %v", name, err)
		}
		if merged {
			t.Errorf("different display names must not merge (%s)", name)
		}
	}
}

func TestIngestResponse_PlanNotFound(t *testing.T) {
	conn := setupTestDB(t)
	defer conn.Close()

	_, _, err := IngestResponse(conn.DB, "no-such-plan", models.SubmitResponseRequest{
		DisplayName: "Sam",
		ChoiceSlots: []string{"2025-07-04T18:00:00Z"},
		Attendance:  models.AttendanceIn,
	}, "hash", time.Now().UTC())

	if err != ErrPlanNotFound {
		t.Errorf("expected ErrPlanNotFound, got %v", err)
	}
}

func TestIngestResponse_RejectsConfirmedPlan(t *testing.T) {
	conn := setupTestDB(t)
	defer conn.Close()

	slots := testutil.SlotInstants(time.Now().Add(48*time.Hour), 2)
	planID := testutil.CreateTestPlan(t, conn.DB, models.StatusConfirmed,
		time.Now().Add(24*time.Hour), slots, []string{"The Crown"})

	_, _, err := IngestResponse(conn.DB, planID, models.SubmitResponseRequest{
		DisplayName: "Sam",
		ChoiceSlots: []string{slots[0]},
		Attendance:  models.AttendanceIn,
	}, "hash", time.Now().UTC())

	if err != ErrPlanClosed {
		t.Errorf("expected ErrPlanClosed for confirmed plan, got %v", err)
	}
}

func TestIngestResponse_RejectsPastCutOff(t *testing.T) {
	conn := setupTestDB(t)
	defer conn.Close()

	planID, slots := openPlan(t, conn, time.Now().Add(-time.Minute))

	_, _, err := IngestResponse(conn.DB, planID, models.SubmitResponseRequest{
		DisplayName: "Sam",
		ChoiceSlots: []string{slots[0]},
		Attendance:  models.AttendanceIn,
	}, "hash", time.Now().UTC())

	if err != ErrPlanClosed {
		t.Errorf("expected ErrPlanClosed past cut-off, got %v", err)
	}
}

func TestSubmitResponse_HTTP(t *testing.T) {
	conn := setupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	handler := NewResponseHandler(conn.DB, cfg)

	planID, slots := openPlan(t, conn, time.Now().Add(24*time.Hour))

	req := testutil.MakeRequest("POST", "/plans/"+planID+"/responses", models.SubmitResponseRequest{
		DisplayName: "Sam",
		ChoiceSlots: []string{slots[0]},
		Attendance:  models.AttendanceIn,
	}, nil)
	req.SetPathValue("id", planID)
	w := httptest.NewRecorder()

	handler.SubmitResponse(w, req)

	testutil.AssertStatus(t, w, 201)

	var resp models.SubmitResponseResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.ResponseID == "" {
		t.Error("expected a response_id")
	}
	if resp.Merged {
		t.Error("first submission should not report merged")
	}
}

func TestSubmitResponse_Validation(t *testing.T) {
	conn := setupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	handler := NewResponseHandler(conn.DB, cfg)
	planID, slots := openPlan(t, conn, time.Now().Add(24*time.Hour))

	tests := []struct {
		name string
		req  models.SubmitResponseRequest
	}{
		{"missing display name", models.SubmitResponseRequest{
			ChoiceSlots: []string{slots[0]}, Attendance: models.AttendanceIn}},
		{"empty slots", models.SubmitResponseRequest{
			DisplayName: "Sam", Attendance: models.AttendanceIn}},
		{"bad attendance", models.SubmitResponseRequest{
			DisplayName: "Sam", ChoiceSlots: []string{slots[0]}, Attendance: "definitely"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/plans/"+planID+"/responses", tt.req, nil)
			req.SetPathValue("id", planID)
			w := httptest.NewRecorder()

			handler.SubmitResponse(w, req)

			testutil.AssertStatus(t, w, 400)
		})
	}
}

func TestSubmitResponse_ClosedPlanConflict(t *testing.T) {
	conn := setupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	handler := NewResponseHandler(conn.DB, cfg)

	planID, slots := openPlan(t, conn, time.Now().Add(-time.Hour))

	req := testutil.MakeRequest("POST", "/plans/"+planID+"/responses", models.SubmitResponseRequest{
		DisplayName: "Sam",
		ChoiceSlots: []string{slots[0]},
		Attendance:  models.AttendanceIn,
	}, nil)
	req.SetPathValue("id", planID)
	w := httptest.NewRecorder()

	handler.SubmitResponse(w, req)

	testutil.AssertStatus(t, w, 409)
}
