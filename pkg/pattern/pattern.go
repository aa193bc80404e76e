// pkg/pattern/pattern.go

// Package pattern produces the overwrite data used to scrub file contents.
// Every byte comes from the operating system CSPRNG; bytes are never reused
// across calls, so no two overwrite passes share pattern data.
package pattern

import (
	"crypto/rand"

	cerr "github.com/cockroachdb/errors"
)

// Generator yields cryptographically random overwrite patterns. The zero
// value is usable; the type exists so callers hold a collaborator rather
// than reaching for the entropy source directly.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Fill overwrites buf with fresh random bytes.
func (g *Generator) Fill(buf []byte) error {
	if _, err := rand.Read(buf); err != nil {
		return cerr.Wrap(err, "failed to read from entropy source")
	}
	return nil
}

// Pattern returns n fresh random bytes.
func (g *Generator) Pattern(n int) ([]byte, error) {
	if n < 0 {
		return nil, cerr.Newf("invalid pattern length %d", n)
	}
	buf := make([]byte, n)
	if err := g.Fill(buf); err != nil {
		return nil, err
	}
	return buf, nil
}
