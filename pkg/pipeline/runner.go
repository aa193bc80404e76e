// pkg/pipeline/runner.go

package pipeline

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/CodeMonkeyCybersecurity/lethe/pkg/traversal"
)

// Runner fans a plan's files out to a bounded worker pool, then removes
// directories sequentially in the plan's children-first order. Workers
// share one Orchestrator; the audit trail is the only mutable state they
// touch in common.
type Runner struct {
	orch   *Orchestrator
	logger *zap.Logger
}

func NewRunner(orch *Orchestrator, logger *zap.Logger) *Runner {
	return &Runner{orch: orch, logger: logger.Named("runner")}
}

func (r *Runner) Run(ctx context.Context, plan *traversal.Plan) Summary {
	var summary Summary

	// Rejected targets never enter the pipeline and never reach the
	// audit trail; they fail the run up front.
	for _, bad := range plan.Bad {
		summary.add(JobResult{
			ID:      uuid.New(),
			Path:    bad.Path,
			State:   StateAborted,
			Outcome: OutcomeAborted,
			Err:     bad.Err,
		})
	}

	r.runFiles(ctx, plan, &summary)

	for _, dir := range plan.Dirs {
		if err := ctx.Err(); err != nil {
			summary.add(JobResult{
				ID:      uuid.New(),
				Path:    dir.Path,
				Kind:    traversal.KindDir,
				State:   StateAborted,
				Outcome: OutcomeAborted,
				Err:     err,
			})
			continue
		}
		summary.add(r.orch.ProcessDir(ctx, dir))
	}

	r.logger.Info("Run complete",
		zap.Int("processed", summary.Processed),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("warned", summary.Warned),
		zap.Int("failed", summary.Failed))
	return summary
}

func (r *Runner) runFiles(ctx context.Context, plan *traversal.Plan, summary *Summary) {
	if len(plan.Files) == 0 {
		return
	}

	workers := r.orch.cfg.Workers
	if workers > len(plan.Files) {
		workers = len(plan.Files)
	}

	jobs := make(chan traversal.Target)
	results := make(chan JobResult, len(plan.Files))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for target := range jobs {
				results <- r.orch.ProcessFile(ctx, target)
			}
		}()
	}

	// Feed until done or cancelled. Targets never handed to a worker get
	// aborted results below so the summary always covers the whole plan.
	fed := 0
feed:
	for _, target := range plan.Files {
		select {
		case jobs <- target:
			fed++
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	close(results)

	for res := range results {
		summary.add(res)
	}
	for _, target := range plan.Files[fed:] {
		summary.add(JobResult{
			ID:      uuid.New(),
			Path:    target.Path,
			Kind:    target.Kind,
			State:   StateAborted,
			Outcome: OutcomeAborted,
			Err:     ctx.Err(),
		})
	}
}
