// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"strings"
	"testing"
)

func TestGenerateHostToken(t *testing.T) {
	token, err := GenerateHostToken()
	if err != nil {
		t.Fatalf("GenerateHostToken() error = %v", err)
	}

	if token == "" {
		t.Error("GenerateHostToken() returned empty string")
	}

	// Should be URL-safe (no padding)
	if strings.Contains(token, "=") {
		t.Error("GenerateHostToken() contains padding characters")
	}

	// Should be reasonably long (24 bytes encoded)
	if len(token) < 30 {
		t.Errorf("GenerateHostToken() too short: %d chars", len(token))
	}

	// Test randomness - should not produce duplicates
	tokens := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := GenerateHostToken()
		if err != nil {
			t.Fatalf("GenerateHostToken() error on iteration %d: %v", i, err)
		}
		if tokens[token] {
			t.Errorf("GenerateHostToken() produced duplicate token: %s", token)
		}
		tokens[token] = true
	}
}

func TestHashIdentity(t *testing.T) {
	tests := []struct {
		name        string
		ip          string
		displayName string
	}{
		{"IPv4", "192.168.1.1", "Sam"},
		{"IPv6", "2001:0db8:85a3::8a2e:0370:7334", "Sam"},
		{"empty ip falls back to unknown", "", "Sam"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash := HashIdentity(tt.ip, tt.displayName)

			// Should be 64 hex characters (sha256)
			if len(hash) != 64 {
				t.Errorf("HashIdentity() length = %d, want 64", len(hash))
			}

			// Should be valid hex
			for _, c := range hash {
				if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
					t.Errorf("HashIdentity() contains invalid hex char: %c", c)
				}
			}

			// Should be deterministic
			hash2 := HashIdentity(tt.ip, tt.displayName)
			if hash != hash2 {
				t.Error("HashIdentity() is not deterministic")
			}
		})
	}

	// Different IPs should produce different hashes
	if HashIdentity("192.168.1.1", "Sam") == HashIdentity("192.168.1.2", "Sam") {
		t.Error("HashIdentity() produced same hash for different IPs")
	}

	// Different names should produce different hashes
	if HashIdentity("192.168.1.1", "Sam") == HashIdentity("192.168.1.1", "Ana") {
		t.Error("HashIdentity() produced same hash for different names")
	}

	// Empty ip hashes as "unknown"
	if HashIdentity("", "Sam") != HashIdentity("unknown", "Sam") {
		t.Error("HashIdentity() empty ip should hash as unknown")
	}
}

func BenchmarkGenerateHostToken(b *testing.B) {
	for i := 0; i < b.N; i++ {
		GenerateHostToken()
	}
}

func BenchmarkHashIdentity(b *testing.B) {
	for i := 0; i < b.N; i++ {
		HashIdentity("192.168.1.1", "Sam")
	}
}
