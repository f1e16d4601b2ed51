// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import "errors"

// Precondition failures. Expected, recoverable by the caller, and mapped to
// specific HTTP statuses so the end user sees a concrete message.
var (
	ErrPlanNotFound     = errors.New("plan not found")
	ErrPlanClosed       = errors.New("plan is closed")
	ErrInvalidHostToken = errors.New("invalid host token")
	ErrTokenMismatch    = errors.New("host token does not match plan")
)

// ErrPlanInconsistent means the decision write succeeded but the status
// flip did not. The plan is left open with a decision present; this is
// surfaced for operator remediation, never retried blindly (a retry could
// double-write).
var ErrPlanInconsistent = errors.New("plan confirmed inconsistently: decision saved but status not updated")
