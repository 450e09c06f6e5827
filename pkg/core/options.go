package core

import (
	"context"

	"go.uber.org/zap"
)

// PackFailurePolicy tells what a failed packing phase does to the outcome of a run
type PackFailurePolicy int

const (
	// PropagatePackFailures makes the run fail when a packing job fails
	PropagatePackFailures PackFailurePolicy = iota

	// IgnorePackFailures logs failed packing jobs and lets the run succeed
	IgnorePackFailures
)

func (p PackFailurePolicy) String() string {
	switch p {
	case IgnorePackFailures:
		return "ignore"
	default:
		return "propagate"
	}
}

// Option sets options for the orchestrator
type Option func(*Settings)

// Settings defines the settings of a run
type Settings struct {
	logger            *zap.Logger
	provisioner       Provisioner
	checkRuntime      func() error
	packFailurePolicy PackFailurePolicy
	concurrency       int
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithProvisioner sets the provisioner of the runnable jar. By default, nothing is provisioned.
func WithProvisioner(provisioner Provisioner) Option {
	return func(s *Settings) {
		s.provisioner = provisioner
	}
}

// WithRuntimeCheck sets the precondition checked before provisioning. By default, no check is made.
func WithRuntimeCheck(check func() error) Option {
	return func(s *Settings) {
		s.checkRuntime = check
	}
}

// WithPackFailurePolicy sets how failed packing jobs affect the run. It defaults to PropagatePackFailures.
func WithPackFailurePolicy(policy PackFailurePolicy) Option {
	return func(s *Settings) {
		s.packFailurePolicy = policy
	}
}

// WithConcurrency caps the number of jobs running at the same time within a phase.
// It defaults to 0, meaning all jobs of a phase run at once.
func WithConcurrency(concurrency int) Option {
	return func(s *Settings) {
		if concurrency < 0 {
			concurrency = 0
		}
		s.concurrency = concurrency
	}
}

type noProvisioner struct{}

func (noProvisioner) EnsureAvailable(context.Context) error { return nil }

func defaultSettings() Settings {
	return Settings{
		logger:            zap.NewNop(),
		provisioner:       noProvisioner{},
		checkRuntime:      func() error { return nil },
		packFailurePolicy: PropagatePackFailures,
	}
}
