// Package secret generates the per-run secret key embedded in the rendered
// service configuration.
package secret

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// KeyBytes is the number of random bytes in a generated key (256 bits).
const KeyBytes = 32

// GenerateKey returns a fresh hex-encoded 256-bit secret key.
//
// A new key is generated on every call; keys are never persisted or reused
// across targets.
func GenerateKey() (string, error) {
	buf := make([]byte, KeyBytes)

	_, err := rand.Read(buf)
	if err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}
