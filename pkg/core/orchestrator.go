// Copyright © 2018 One Concern

package core

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/oneconcern/texpack/pkg/config"
	"github.com/oneconcern/texpack/pkg/core/status"
	"github.com/oneconcern/texpack/pkg/model"
)

// JobRunner runs individual jobs
type JobRunner interface {
	Pack(context.Context, model.PackJob) error
	Unpack(context.Context, model.UnpackJob) error
}

// Provisioner makes the runnable jar available before any job runs
type Provisioner interface {
	EnsureAvailable(context.Context) error
}

// Outcome of a job
type Outcome struct {
	Kind     model.JobKind
	Name     string
	Err      error
	Duration time.Duration
}

// Report of a run
type Report struct {
	Unpacked []Outcome
	Packed   []Outcome

	// PackErr is the failure of the packing phase, when failures are ignored
	PackErr error
}

// Failures lists the jobs that failed
func (r *Report) Failures() []Outcome {
	var failed []Outcome
	for _, outcomes := range [][]Outcome{r.Unpacked, r.Packed} {
		for _, outcome := range outcomes {
			if outcome.Err != nil {
				failed = append(failed, outcome)
			}
		}
	}
	return failed
}

// Orchestrator runs the jobs of a job configuration:
// all unpacking jobs first, then all packing jobs.
type Orchestrator struct {
	Settings
	store  *config.Store
	runner JobRunner
}

// New orchestrator for the job configuration held by store
func New(store *config.Store, runner JobRunner, opts ...Option) *Orchestrator {
	settings := defaultSettings()
	for _, apply := range opts {
		apply(&settings)
	}
	return &Orchestrator{
		Settings: settings,
		store:    store,
		runner:   runner,
	}
}

// Run loads the job configuration, checks the runtime, provisions the runnable jar, then
// runs the unpacking phase followed by the packing phase.
//
// Jobs of a phase run concurrently and the phase completes when all its jobs have completed.
// A failed job does not interrupt its siblings. A failed unpacking phase stops the run before packing.
func (o *Orchestrator) Run(ctx context.Context) (*Report, error) {
	logger := o.logger

	logger.Info("searching for job configuration", zap.String("config", o.store.Path()))
	created, err := o.store.Initialize(ctx)
	if err != nil {
		logger.Error("cannot create default job configuration", zap.Error(err))
		return nil, err
	}
	if created {
		logger.Info("created default job configuration", zap.String("config", o.store.Path()))
	}
	cfg, err := o.store.Load(ctx)
	if err != nil {
		logger.Error("cannot load job configuration", zap.Error(err))
		return nil, err
	}

	if err = o.checkRuntime(); err != nil {
		logger.Error("runtime precondition failed", zap.Error(err))
		return nil, err
	}

	if err = o.provisioner.EnsureAvailable(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", status.ErrProvision, err)
	}

	report := &Report{}

	report.Unpacked, err = o.runPhase(ctx, unpackTasks(o.runner, cfg.UnpackingConfigs))
	if err != nil {
		logger.Error("error unpacking", zap.Error(err))
		return report, fmt.Errorf("%w: %w", status.ErrUnpackPhase, err)
	}

	report.Packed, err = o.runPhase(ctx, packTasks(o.runner, cfg.PackingConfigs))
	if err != nil {
		logger.Error("error packing", zap.Error(err), zap.Stringer("policy", o.packFailurePolicy))
		if o.packFailurePolicy == IgnorePackFailures {
			report.PackErr = err
			return report, nil
		}
		return report, fmt.Errorf("%w: %w", status.ErrPackPhase, err)
	}

	logger.Info("all jobs completed",
		zap.Int("unpacked", len(report.Unpacked)),
		zap.Int("packed", len(report.Packed)),
	)
	return report, nil
}

type task struct {
	kind model.JobKind
	name string
	run  func(context.Context) error
}

func unpackTasks(runner JobRunner, jobs []model.UnpackJob) []task {
	tasks := make([]task, 0, len(jobs))
	for _, toPin := range jobs {
		job := toPin
		tasks = append(tasks, task{
			kind: model.KindUnpack,
			name: job.Name,
			run:  func(ctx context.Context) error { return runner.Unpack(ctx, job) },
		})
	}
	return tasks
}

func packTasks(runner JobRunner, jobs []model.PackJob) []task {
	tasks := make([]task, 0, len(jobs))
	for _, toPin := range jobs {
		job := toPin
		tasks = append(tasks, task{
			kind: model.KindPack,
			name: job.Name,
			run:  func(ctx context.Context) error { return runner.Pack(ctx, job) },
		})
	}
	return tasks
}

// runPhase launches tasks in order and waits for all of them. It returns the first failure observed.
func (o *Orchestrator) runPhase(ctx context.Context, tasks []task) ([]Outcome, error) {
	outcomes := make([]Outcome, len(tasks))
	var group errgroup.Group
	if o.concurrency > 0 {
		group.SetLimit(o.concurrency)
	}

	for i := range tasks {
		i := i
		t := tasks[i]
		group.Go(func() error {
			start := time.Now()
			err := t.run(ctx)
			outcomes[i] = Outcome{
				Kind:     t.kind,
				Name:     t.name,
				Err:      err,
				Duration: time.Since(start),
			}
			if err != nil {
				o.logger.Error("job failed", zap.String("kind", string(t.kind)), zap.String("job", t.name), zap.Error(err))
				return err
			}
			o.logger.Info("job completed", zap.String("kind", string(t.kind)), zap.String("job", t.name), zap.Duration("duration", outcomes[i].Duration))
			return nil
		})
	}

	return outcomes, group.Wait()
}
