package security

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const (
	apiKeyPrefix      = "ns_"
	apiKeyRandomBytes = 24
)

// NewAPIKey generates a per-user assistant API key: the "ns_" prefix followed
// by 24 random bytes in hex (48 characters).
func NewAPIKey() (string, error) {
	raw := make([]byte, apiKeyRandomBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate api key: %w", err)
	}
	return apiKeyPrefix + hex.EncodeToString(raw), nil
}

// MaskAPIKey keeps the first eight and last four characters visible so users
// can recognize a key without the UI ever re-exposing the whole secret.
func MaskAPIKey(key string) string {
	if len(key) < 12 {
		return key
	}
	return key[:8] + "••••••••••••••••" + key[len(key)-4:]
}
