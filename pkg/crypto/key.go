// pkg/crypto/key.go

package crypto

import (
	"crypto/rand"

	cerr "github.com/cockroachdb/errors"
)

// randomBytes returns n bytes from the OS CSPRNG.
func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, cerr.Wrap(err, "failed to read from entropy source")
	}
	return b, nil
}

// SecureZero overwrites b in place. Used for scratch buffers that held
// plaintext outside guarded allocations.
func SecureZero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
