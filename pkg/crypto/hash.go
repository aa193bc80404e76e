/* pkg/crypto/hash.go */

package crypto

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashString returns the SHA256 hash of a string as hex. The audit trail
// records targets by HashString of the canonical path, never the path
// itself.
func HashString(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
