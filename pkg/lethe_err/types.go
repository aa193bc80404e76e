// pkg/lethe_err/types.go

package lethe_err

// UserError marks an error as expected and recoverable by the user.
// Declined confirmation prompts and similar outcomes wear this marker so
// the CLI can exit cleanly instead of reporting a failure.
type UserError struct {
	cause error
}

func (e *UserError) Error() string {
	return e.cause.Error()
}

func (e *UserError) Unwrap() error {
	return e.cause
}
