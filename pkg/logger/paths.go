/* pkg/logger/paths.go */

package logger

import (
	"runtime"

	"github.com/CodeMonkeyCybersecurity/lethe/pkg/shared"
	"github.com/CodeMonkeyCybersecurity/lethe/pkg/xdg"
)

// PlatformLogPaths returns fallback log paths in order of priority for the platform.
func PlatformLogPaths() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{
			xdg.XDGStatePath(shared.LetheID, "lethe.log"),
			shared.LetheLogsPWD,
			"/tmp/lethe/lethe.log",
		}
	case "linux":
		return []string{
			shared.LetheLogs, // best if writable (root or the lethe service user)
			xdg.XDGStatePath(shared.LetheID, "lethe.log"), // user-local fallback (e.g. ~/.local/state/lethe/lethe.log)
			shared.LetheLogsPWD,                           // current working dir
			"/tmp/lethe/lethe.log",                        // ephemeral
		}
	default:
		return []string{shared.LetheLogsPWD}
	}
}
