// pkg/lethe_cli/wrap.go

package lethe_cli

import (
	"github.com/CodeMonkeyCybersecurity/lethe/pkg/lethe_err"
	"github.com/CodeMonkeyCybersecurity/lethe/pkg/lethe_io"
	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

// Wrap adapts a RuntimeContext handler into a cobra RunE, adding panic
// recovery, span finalization, and stack capture on unexpected errors.
func Wrap(fn func(rc *lethe_io.RuntimeContext, cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		rc := lethe_io.NewContext(cmd.Context(), cmd.Name())
		defer rc.End(&err)
		defer rc.HandlePanic(&err)

		err = fn(rc, cmd, args)
		if err != nil && !lethe_err.IsExpectedUserError(err) {
			err = cerr.WithStack(err)
		}
		return err
	}
}
