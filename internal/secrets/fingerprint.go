package secrets

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint returns a short stable identifier for a webhook URL that is safe
// to log. Empty input yields an empty fingerprint.
func Fingerprint(webhookURL string) string {
	if webhookURL == "" {
		return ""
	}
	sum := blake2b.Sum256([]byte(webhookURL))
	return hex.EncodeToString(sum[:6])
}
