/* cmd/root.go */

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/awnumar/memguard"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	// Subcommands
	auditcmd "github.com/CodeMonkeyCybersecurity/lethe/cmd/audit"

	// Internal packages
	"github.com/CodeMonkeyCybersecurity/lethe/pkg/lethe_cli"
	"github.com/CodeMonkeyCybersecurity/lethe/pkg/lethe_err"
	"github.com/CodeMonkeyCybersecurity/lethe/pkg/lethe_io"
	"github.com/CodeMonkeyCybersecurity/lethe/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/lethe/pkg/pipeline"
)

var helpLogged bool // global guard to log help only once

// RootCmd is the base command for lethe. Destruction is the default
// action: paths are given as positional arguments.
var RootCmd = &cobra.Command{
	Use:   "lethe [flags] PATH...",
	Short: "Lethe destroys files beyond recovery",
	Long: `Lethe renders files unrecoverable before deleting them. Each target is
encrypted in place with a throwaway key, overwritten with random passes,
stripped of identifying metadata, and finally unlinked.

Deletion is permanent. There is no undo.`,
	// Positional arguments are target paths, not subcommand names.
	Args: cobra.ArbitraryArgs,
	RunE: lethe_cli.Wrap(runWipe),
}

// HelpCmd wraps help so that it can be invoked like a normal command.
var HelpCmd = &cobra.Command{
	Use:   "help",
	Short: "Help about any command",
	Long:  "Displays help for lethe or a specific subcommand.",
	RunE: lethe_cli.Wrap(func(rc *lethe_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		// If no arguments, show root help
		if len(args) == 0 {
			return RootCmd.Help()
		}
		// Otherwise, find the command and show its help.
		c, _, err := RootCmd.Find(args)
		if err != nil || c == nil {
			return fmt.Errorf("command not found: %s", strings.Join(args, " "))
		}
		return c.Help()
	}),
}

// RegisterCommands adds all subcommands to the root command.
func RegisterCommands() {
	RootCmd.SetHelpCommand(HelpCmd)

	log := logger.GetLogger()

	RootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if !helpLogged {
			log.Info("Global help triggered via --help or -h", zap.String("command", cmd.Name()))
			helpLogged = true
			defer log.Info("Global help display complete", zap.String("command", cmd.Name()))
		}
		if err := cmd.Root().Usage(); err != nil {
			log.Warn("Failed to print usage", zap.Error(err))
		}
	})

	RootCmd.AddCommand(auditcmd.AuditCmd)
}

// Execute initializes and runs the root command. Exit codes: 0 when every
// target was destroyed (or the user declined), 1 on any failed target,
// 2 on invalid configuration.
func Execute() {
	defer func() {
		if err := logger.Sync(); err != nil {
			fmt.Fprintf(os.Stderr, "⚠️  Failed to flush logs: %v\n", err)
		}
	}()

	logger.L().Info("Lethe starting")

	RegisterCommands()

	if err := RootCmd.Execute(); err != nil {
		switch {
		case lethe_err.IsExpectedUserError(err):
			logger.L().Warn("CLI completed with user error", zap.Error(err))
			os.Exit(0) // <-- gracefully allow 0 exit code for user errors
		case pipeline.IsConfigError(err):
			logger.L().Error("Invalid configuration", zap.Error(err))
			memguard.SafeExit(2)
		default:
			logger.L().Error("CLI execution error", zap.Error(err))
			memguard.SafeExit(1)
		}
	}
}
