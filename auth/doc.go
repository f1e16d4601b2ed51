// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides host token generation and identity hashing.

# Host Tokens

Host tokens are random 24-byte (192-bit) secrets:

	token, err := auth.GenerateHostToken()

Tokens are URL-safe base64 encoded without padding. Unlike a derived key, a
host token carries no structure: it is minted once at plan creation, stored
in the host_tokens table bound to its plan, and validated purely by lookup.
The engine only ever checks the token-to-plan binding; it never issues or
rotates tokens after creation.

# Identity Hashing

For privacy-preserving audit of who submitted a response:

	hash := auth.HashIdentity(ipAddress, displayName)

Returns the hex SHA-256 of "ip:name". A missing IP hashes as "unknown". The
hash is stored alongside each response but is deliberately not part of the
de-duplication key.
*/
package auth
