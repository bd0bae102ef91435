// Package utils provides common utility functions for cmdq.
//
// This file implements ID generation for command submissions. Every HTTP
// submission gets a random identifier that is carried into the journal entries
// of the commands it enqueued, so a client can correlate what it submitted with
// what the dispatcher executed.
//
// IDs are 32 hex characters drawn from crypto/rand. Logs show a 12-character
// prefix outside of DEBUG (see logging.FormatID).
package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// ShortIDLength is the number of characters shown for truncated IDs.
const ShortIDLength = 12

// GenerateID creates a unique 32-character hex identifier for a submission.
//
// Returns format: "a1b2c3d4e5f60718293a4b5c6d7e8f90"
func GenerateID() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// TruncateIDSafe returns the first ShortIDLength characters of id, or id
// itself when it is already short enough.
func TruncateIDSafe(id string) string {
	if len(id) <= ShortIDLength {
		return id
	}
	return id[:ShortIDLength]
}
