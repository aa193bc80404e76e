// pkg/pipeline/state.go

package pipeline

// JobState tracks where a job is in the destruction sequence. States only
// move forward; Done and Aborted are terminal.
type JobState int

const (
	StatePending JobState = iota
	StateEncrypting
	StateOverwriting
	StateSanitizingMetadata
	StateUnlinking
	StateDone
	StateAborted
)

func (s JobState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateEncrypting:
		return "encrypting"
	case StateOverwriting:
		return "overwriting"
	case StateSanitizingMetadata:
		return "sanitizing-metadata"
	case StateUnlinking:
		return "unlinking"
	case StateDone:
		return "done"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Outcomes written to the audit trail.
const (
	OutcomeDone        = "done"
	OutcomeWithWarning = "done-with-warning"
	OutcomeAborted     = "aborted"
)
