// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides access control and secret generation utilities.

# Access Keys

Each assessment gets an access key derived with HMAC-SHA256 from its ID:

	accessKey := auth.GenerateAccessKey(assessmentID, salt)
	err := auth.ValidateAccessKey(assessmentID, accessKey, salt)

The key is URL-safe base64 encoded without padding. It is returned once,
when the assessment is created, and must accompany every later request
for that assessment (X-Access-Key header). Since it's deterministic, it
never needs to be stored.

# Export Keys

The dataset export is guarded by a single configured key:

	err := auth.ValidateExportKey(r.Header.Get("X-Export-Key"), cfg.ExportKey)

With no key configured, export is disabled.

# Secrets

GenerateSecret returns a random 24-byte (192-bit) URL-safe secret for use
as ACCESS_KEY_SALT or EXPORT_KEY:

	secret, err := auth.GenerateSecret()

# ID Generation

Random hex IDs for database records:

	id, err := auth.GenerateID(16)  // 32 hex characters

# IP Hashing

Request logs carry a salted hash instead of the client address:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
