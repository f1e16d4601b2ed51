// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

// GenerateHostToken creates a random secure token for a plan host.
// The token is stored bound to exactly one plan and never rotated.
func GenerateHostToken() (string, error) {
	b := make([]byte, 24) // 24 bytes = 192 bits of entropy
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate host token: %w", err)
	}
	// URL-safe base64 without padding
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}

// HashIdentity creates a one-way hash of a client IP and display name.
// Stored on each response for audit; the ingestion merge key is
// (plan, display name) only, this hash does not participate.
func HashIdentity(ip, displayName string) string {
	if ip == "" {
		ip = "unknown"
	}
	sum := sha256.Sum256([]byte(ip + ":" + displayName))
	return hex.EncodeToString(sum[:])
}
