// pkg/pipeline/config.go

package pipeline

import (
	cerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"github.com/CodeMonkeyCybersecurity/lethe/pkg/crypto"
)

// ErrInvalidConfig marks configuration rejected by Validate so callers
// can map it to a usage exit code instead of a runtime failure.
var ErrInvalidConfig = cerr.New("invalid configuration")

// Config carries every knob for one destruction run. Flag parsing and
// environment binding happen in the command layer; by the time a Config
// reaches the pipeline it is plain data.
type Config struct {
	Passes           int              `validate:"min=1,max=35"`
	Algorithm        crypto.Algorithm `validate:"oneof=aes-256-ctr chacha20"`
	SanitizeMetadata bool
	Recursive        bool
	Force            bool
	Audit            bool
	AuditPath        string
	Workers          int `validate:"min=1,max=32"`
	Verbose          bool
}

func DefaultConfig() Config {
	return Config{
		Passes:           3,
		Algorithm:        crypto.AlgorithmAES256CTR,
		SanitizeMetadata: true,
		Workers:          4,
	}
}

func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return cerr.Mark(cerr.Wrap(err, "configuration validation failed"), ErrInvalidConfig)
	}
	return nil
}

// IsConfigError reports whether err originated from Config.Validate.
func IsConfigError(err error) bool {
	return cerr.Is(err, ErrInvalidConfig)
}
