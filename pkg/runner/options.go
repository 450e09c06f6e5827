package runner

import "go.uber.org/zap"

// Option sets options for the runner
type Option func(*Runner)

// WithRuntime sets the java executable. It defaults to "java", looked up on the PATH.
func WithRuntime(runtime string) Option {
	return func(r *Runner) {
		if runtime != "" {
			r.runtime = runtime
		}
	}
}

// WithLogger sets the logger receiving the output of job processes
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}
