// pkg/pipeline/orchestrator.go

// Package pipeline sequences the destruction stages for each target:
// encrypt in place, overwrite, sanitize metadata, unlink, audit. The
// ordering guarantees that from the moment encryption starts, the bytes
// on disk are never plaintext again.
package pipeline

import (
	"context"
	"fmt"

	cerr "github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/CodeMonkeyCybersecurity/lethe/pkg/audit"
	"github.com/CodeMonkeyCybersecurity/lethe/pkg/crypto"
	"github.com/CodeMonkeyCybersecurity/lethe/pkg/overwrite"
	"github.com/CodeMonkeyCybersecurity/lethe/pkg/sanitize"
	"github.com/CodeMonkeyCybersecurity/lethe/pkg/traversal"
	"github.com/CodeMonkeyCybersecurity/lethe/pkg/unlink"
)

// JobResult is the terminal record of one target's journey through the
// pipeline.
type JobResult struct {
	ID       uuid.UUID
	Path     string
	Kind     traversal.Kind
	State    JobState
	Outcome  string
	Passes   int
	Warnings []string
	Err      error
}

// The stage contracts, satisfied by the concrete implementations and by
// test fakes that force specific failure modes.
type fileEncrypter interface {
	EncryptFile(ctx context.Context, path string, algorithm crypto.Algorithm) error
}

type fileOverwriter interface {
	Overwrite(ctx context.Context, path string, passes int) (int, error)
}

type pathSanitizer interface {
	Sanitize(ctx context.Context, path string) (string, error)
}

type pathRemover interface {
	Remove(ctx context.Context, path string) error
	RemoveDir(ctx context.Context, path string) error
}

// Orchestrator owns the stage implementations. Instances share no
// mutable state except the audit trail, which serializes its own writes,
// so one Orchestrator may serve many goroutines.
type Orchestrator struct {
	cfg        Config
	logger     *zap.Logger
	engine     fileEncrypter
	overwriter fileOverwriter
	sanitizer  pathSanitizer
	unlinker   pathRemover
	trail      *audit.Logger
}

func NewOrchestrator(cfg Config, logger *zap.Logger, trail *audit.Logger) *Orchestrator {
	return &Orchestrator{
		cfg:        cfg,
		logger:     logger.Named("pipeline"),
		engine:     crypto.NewEngine(logger),
		overwriter: overwrite.New(logger),
		sanitizer:  sanitize.New(logger),
		unlinker:   unlink.New(logger),
		trail:      trail,
	}
}

// ProcessFile destroys one file or symlink. Content stages run for
// regular files only; a symlink is destroyed as an entry, since pushing
// ciphertext through it would wipe the referent instead. The returned
// result is always terminal.
func (o *Orchestrator) ProcessFile(ctx context.Context, target traversal.Target) JobResult {
	res := JobResult{ID: uuid.New(), Path: target.Path, Kind: target.Kind, State: StatePending}
	canonical := traversal.Canonical(target.Path)
	log := o.logger.With(
		zap.String("job", res.ID.String()),
		zap.String("kind", target.Kind.String()))

	current := target.Path

	if target.Kind == traversal.KindFile {
		res.State = StateEncrypting
		if err := o.engine.EncryptFile(ctx, current, o.cfg.Algorithm); err != nil {
			return o.abort(log, &res, canonical, cerr.Wrap(err, "encryption stage failed"))
		}

		res.State = StateOverwriting
		completed, err := o.overwriter.Overwrite(ctx, current, o.cfg.Passes)
		res.Passes = completed
		if err != nil {
			if isCancelled(err) || completed == 0 {
				return o.abort(log, &res, canonical, cerr.Wrap(err, "overwrite stage failed"))
			}
			// At least one full pass of ciphertext-over-ciphertext is on
			// disk, so removal still leaves nothing recoverable. Finish
			// the job and surface the shortfall as a warning.
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("overwrite incomplete: %d of %d passes applied: %v", completed, o.cfg.Passes, err))
			log.Warn("Overwrite incomplete, continuing with removal",
				zap.Int("completed", completed),
				zap.Int("requested", o.cfg.Passes),
				zap.Error(err))
		}
	}

	if o.cfg.SanitizeMetadata {
		res.State = StateSanitizingMetadata
		next, err := o.sanitizer.Sanitize(ctx, current)
		current = next
		if err != nil {
			if isCancelled(err) {
				return o.abort(log, &res, canonical, err)
			}
			res.Warnings = append(res.Warnings, fmt.Sprintf("metadata sanitization incomplete: %v", err))
			log.Warn("Metadata sanitization incomplete, continuing with removal", zap.Error(err))
		}
	}

	res.State = StateUnlinking
	if err := o.unlinker.Remove(ctx, current); err != nil {
		return o.abort(log, &res, canonical, cerr.Wrap(err, "unlink stage failed"))
	}

	o.finish(log, &res, canonical)
	return res
}

// ProcessDir removes one directory after its children have been
// destroyed. Directories have no content to scrub, so only the metadata
// and unlink stages apply. A directory that still has entries aborts
// rather than recursing; tree order is the planner's job.
func (o *Orchestrator) ProcessDir(ctx context.Context, target traversal.Target) JobResult {
	res := JobResult{ID: uuid.New(), Path: target.Path, Kind: traversal.KindDir, State: StatePending}
	canonical := traversal.Canonical(target.Path)
	log := o.logger.With(
		zap.String("job", res.ID.String()),
		zap.String("kind", traversal.KindDir.String()))

	current := target.Path

	if o.cfg.SanitizeMetadata {
		res.State = StateSanitizingMetadata
		next, err := o.sanitizer.Sanitize(ctx, current)
		current = next
		if err != nil {
			if isCancelled(err) {
				return o.abort(log, &res, canonical, err)
			}
			res.Warnings = append(res.Warnings, fmt.Sprintf("metadata sanitization incomplete: %v", err))
			log.Warn("Metadata sanitization incomplete, continuing with removal", zap.Error(err))
		}
	}

	res.State = StateUnlinking
	if err := o.unlinker.RemoveDir(ctx, current); err != nil {
		return o.abort(log, &res, canonical, cerr.Wrap(err, "unlink stage failed"))
	}

	o.finish(log, &res, canonical)
	return res
}

func (o *Orchestrator) finish(log *zap.Logger, res *JobResult, canonical string) {
	res.State = StateDone
	res.Outcome = OutcomeDone
	if len(res.Warnings) > 0 {
		res.Outcome = OutcomeWithWarning
	}
	o.record(res, canonical)
	log.Info("Target destroyed",
		zap.String("outcome", res.Outcome),
		zap.Int("passes", res.Passes))
}

func (o *Orchestrator) abort(log *zap.Logger, res *JobResult, canonical string, err error) JobResult {
	stage := res.State
	res.State = StateAborted
	res.Outcome = OutcomeAborted
	res.Err = err
	o.record(res, canonical)
	log.Error("Target aborted",
		zap.String("stage", stage.String()),
		zap.Int("passes", res.Passes),
		zap.Error(err))
	return *res
}

// record appends the job's terminal outcome to the audit trail. A trail
// failure never changes the job's fate; it is reported as a warning.
func (o *Orchestrator) record(res *JobResult, canonical string) {
	algorithm := ""
	if res.Kind == traversal.KindFile {
		algorithm = string(o.cfg.Algorithm)
	}
	if err := o.trail.Record(canonical, res.Outcome, res.Passes, algorithm); err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("audit record failed: %v", err))
		o.logger.Warn("Audit record failed", zap.Error(err))
	}
}

func isCancelled(err error) bool {
	return cerr.Is(err, context.Canceled) || cerr.Is(err, context.DeadlineExceeded)
}
