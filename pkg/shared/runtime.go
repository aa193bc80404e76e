// pkg/shared/runtime.go

package shared

import "go.uber.org/zap"

const (
	// LetheID is the canonical application identifier used for log paths,
	// telemetry service naming, and XDG directories.
	LetheID = "lethe"

	Version = "0.3.1"
)

const (
	LetheLogs    = "/var/log/lethe/lethe.log"
	LetheLogsPWD = "./lethe.log"

	AuditLogDir  = "/var/log/lethe"
	AuditLogFile = "audit.jsonl"
)

// SafeSync flushes the global logger, swallowing the EINVAL zap returns
// when stdout is not a regular file.
func SafeSync() {
	_ = zap.L().Sync()
}
