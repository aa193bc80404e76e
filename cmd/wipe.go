/* cmd/wipe.go */

package cmd

import (
	"fmt"

	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/CodeMonkeyCybersecurity/lethe/pkg/audit"
	"github.com/CodeMonkeyCybersecurity/lethe/pkg/cli"
	"github.com/CodeMonkeyCybersecurity/lethe/pkg/crypto"
	"github.com/CodeMonkeyCybersecurity/lethe/pkg/interaction"
	"github.com/CodeMonkeyCybersecurity/lethe/pkg/lethe_err"
	"github.com/CodeMonkeyCybersecurity/lethe/pkg/lethe_io"
	"github.com/CodeMonkeyCybersecurity/lethe/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/lethe/pkg/pipeline"
	"github.com/CodeMonkeyCybersecurity/lethe/pkg/traversal"
)

func init() {
	cli.AddBoolFlag(RootCmd, "recursive", "r", false, "Recurse into directories and destroy their contents")
	cli.AddIntFlag(RootCmd, "passes", "p", 3, "Number of random overwrite passes (1-35)")
	cli.AddBoolFlag(RootCmd, "chacha20", "", false, "Use ChaCha20 instead of AES-256-CTR for the encryption stage")
	cli.AddBoolFlag(RootCmd, "no-metadata", "", false, "Skip timestamp randomization and name obfuscation")
	cli.AddBoolFlag(RootCmd, "log", "", false, "Append an audit entry per destroyed target")
	cli.AddStringFlag(RootCmd, "log-file", "", "", "Audit trail location (defaults to the system or XDG state directory)", false)
	cli.AddIntFlag(RootCmd, "workers", "", 4, "Concurrent destruction pipelines (1-32)")
	cli.AddBoolFlag(RootCmd, "force", "f", false, "Skip the confirmation prompt")
	cli.AddBoolFlag(RootCmd, "verbose", "v", false, "Enable debug logging")
}

func runWipe(rc *lethe_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	log := otelzap.Ctx(rc.Ctx)

	if len(args) == 0 {
		fmt.Println("⚠️  No targets given. Try `lethe help`.")
		return cmd.Help()
	}

	v := viper.New()
	if err := cli.BindFlagsToViper(cmd, v); err != nil {
		return err
	}
	cli.SetViperEnvPrefix(v, "LETHE")

	cfg := pipeline.DefaultConfig()
	cfg.Passes = v.GetInt("passes")
	cfg.SanitizeMetadata = !v.GetBool("no-metadata")
	cfg.Recursive = v.GetBool("recursive")
	cfg.Force = v.GetBool("force")
	cfg.Audit = v.GetBool("log")
	cfg.AuditPath = v.GetString("log-file")
	cfg.Workers = v.GetInt("workers")
	cfg.Verbose = v.GetBool("verbose")
	if v.GetBool("chacha20") {
		cfg.Algorithm = crypto.AlgorithmChaCha20
	}

	if cfg.Verbose {
		logger.SetLevel(zapcore.DebugLevel)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	// ASSESS
	log.Info("Assessing targets",
		zap.Int("targets", len(args)),
		zap.Bool("recursive", cfg.Recursive),
		zap.Int("passes", cfg.Passes),
		zap.String("algorithm", string(cfg.Algorithm)))

	plan, err := traversal.Collect(rc.Ctx, args, cfg.Recursive)
	if err != nil {
		return err
	}
	for _, bad := range plan.Bad {
		log.Warn("Target cannot be processed", zap.String("path", bad.Path), zap.Error(bad.Err))
	}

	if len(plan.Files)+len(plan.Dirs) > 0 && !cfg.Force {
		fmt.Println("")
		fmt.Printf("⚠️  About to permanently destroy %d file(s) and %d directory(s).\n", len(plan.Files), len(plan.Dirs))
		fmt.Println("   Contents are encrypted and overwritten first. There is no undo.")
		fmt.Println("")
		if !interaction.PromptYesNo(rc.Ctx, "Proceed with destruction?", false) {
			fmt.Println("Aborted. Nothing was touched.")
			return lethe_err.NewExpectedError(cerr.New("destruction declined by user"))
		}
	}

	trail := audit.NewNop()
	if cfg.Audit {
		path := cfg.AuditPath
		if path == "" {
			path = audit.DefaultPath()
		}
		opened, openErr := audit.Open(rc.Log, path)
		if openErr != nil {
			log.Warn("Audit trail unavailable, continuing without it", zap.Error(openErr))
		} else {
			trail = opened
			defer func() { _ = trail.Close() }()
			log.Info("Audit trail enabled", zap.String("path", path))
		}
	}

	// INTERVENE
	orch := pipeline.NewOrchestrator(cfg, rc.Log, trail)
	summary := pipeline.NewRunner(orch, rc.Log).Run(rc.Ctx, plan)

	// EVALUATE
	fmt.Println("")
	fmt.Println("Destruction summary:")
	fmt.Printf("  Processed: %d\n", summary.Processed)
	fmt.Printf("  Destroyed: %d\n", summary.Succeeded)
	if summary.Warned > 0 {
		fmt.Printf("  Warnings:  %d\n", summary.Warned)
	}
	if summary.Failed > 0 {
		fmt.Printf("  Failed:    %d\n", summary.Failed)
	}

	if summary.Failed > 0 {
		return cerr.Wrapf(summary.Err(), "%d of %d targets failed", summary.Failed, summary.Processed)
	}

	log.Info("All targets destroyed",
		zap.Int("processed", summary.Processed),
		zap.Int("warned", summary.Warned))
	return nil
}
