/* cmd/audit/audit.go */

package audit

import (
	"fmt"
	"os"
	"time"

	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	audittrail "github.com/CodeMonkeyCybersecurity/lethe/pkg/audit"
	"github.com/CodeMonkeyCybersecurity/lethe/pkg/lethe_cli"
	"github.com/CodeMonkeyCybersecurity/lethe/pkg/lethe_io"
)

// AuditCmd displays the trail of destroyed targets. Paths appear only as
// hashes; the trail proves destruction happened without naming what.
var AuditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show the audit trail of destroyed targets",
	Long: `Displays the audit trail written by destruction runs started with --log.

Each line records when a target reached a terminal state, the outcome,
how many overwrite passes completed, and a one-way hash of the path.`,
	RunE: lethe_cli.Wrap(func(rc *lethe_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		log := otelzap.Ctx(rc.Ctx)

		path, _ := cmd.Flags().GetString("log-file")
		if path == "" {
			path = audittrail.DefaultPath()
		}
		last, _ := cmd.Flags().GetInt("last")

		entries, err := audittrail.ReadEntries(path)
		if err != nil {
			if cerr.Is(err, os.ErrNotExist) {
				fmt.Printf("No audit trail at %s\n", path)
				return nil
			}
			return err
		}
		log.Info("Audit trail read", zap.String("path", path), zap.Int("entries", len(entries)))

		if last > 0 && len(entries) > last {
			entries = entries[len(entries)-last:]
		}
		if len(entries) == 0 {
			fmt.Println("Audit trail is empty.")
			return nil
		}

		fmt.Printf("%-25s  %-18s  %-6s  %-12s  %s\n", "TIMESTAMP", "OUTCOME", "PASSES", "ALGORITHM", "PATH HASH")
		for _, e := range entries {
			fmt.Printf("%-25s  %-18s  %-6d  %-12s  %s\n",
				e.Timestamp.Format(time.RFC3339), e.Outcome, e.Passes, e.Algorithm, e.PathHash)
		}
		return nil
	}),
}

func init() {
	AuditCmd.Flags().String("log-file", "", "Audit trail location to read")
	AuditCmd.Flags().IntP("last", "n", 0, "Show only the last N entries")
}
