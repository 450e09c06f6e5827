// Copyright © 2018 One Concern

package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/oneconcern/texpack/pkg/errors"
	"github.com/oneconcern/texpack/pkg/model"
	"github.com/oneconcern/texpack/pkg/runner/status"
)

const (
	// DefaultRuntime is the java executable looked up on the PATH
	DefaultRuntime = "java"

	// UnpackerClass is the entry point of the texture unpacker in the runnable jar
	UnpackerClass = "com.badlogic.gdx.tools.texturepacker.TextureUnpacker"

	maxLineSize = 64 * 1024
)

var lookPath = exec.LookPath

// CheckRuntime resolves the java runtime on the PATH
func CheckRuntime(runtime string) (string, error) {
	if runtime == "" {
		runtime = DefaultRuntime
	}
	path, err := lookPath(runtime)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %w", status.ErrMissingRuntime, runtime, err)
	}
	return path, nil
}

// Runner runs jobs with the runnable jar
type Runner struct {
	runtime string
	jar     string
	logger  *zap.Logger
}

// New runner for the runnable jar at jar
func New(jar string, opts ...Option) *Runner {
	r := &Runner{
		runtime: DefaultRuntime,
		jar:     jar,
		logger:  zap.NewNop(),
	}
	for _, apply := range opts {
		apply(r)
	}
	return r
}

// PackCommand builds the command line of a packing job:
//
//	java -jar <jar> <rawDirectory> <outputDirectory> <packName>
func (r *Runner) PackCommand(job model.PackJob) []string {
	return []string{
		r.runtime, "-jar", r.jar,
		job.RawDirectory, job.OutputDirectory, job.PackName,
	}
}

// UnpackCommand builds the command line of an unpacking job:
//
//	java -cp <jar> <unpacker class> <atlasToUnpack> <atlas directory> <outputDirectory>
func (r *Runner) UnpackCommand(job model.UnpackJob) []string {
	return []string{
		r.runtime, "-cp", r.jar, UnpackerClass,
		job.AtlasToUnpack, job.AtlasDirectory(), job.OutputDirectory,
	}
}

// Pack runs a packing job
func (r *Runner) Pack(ctx context.Context, job model.PackJob) error {
	r.logger.Info("starting the pack", zap.String("job", job.Name))
	return r.Exec(ctx, job.Name, r.PackCommand(job)).Err()
}

// Unpack runs an unpacking job
func (r *Runner) Unpack(ctx context.Context, job model.UnpackJob) error {
	r.logger.Info("starting the unpack", zap.String("job", job.Name))
	return r.Exec(ctx, job.Name, r.UnpackCommand(job)).Err()
}

// Exec runs a command line as a child process and waits for it.
//
// The output of the process is logged line by line as it arrives. Exec always returns,
// whether or not the process could be started.
func (r *Runner) Exec(ctx context.Context, job string, argv []string) Result {
	if len(argv) == 0 {
		return FailedToStart(job, errors.New("empty command line"))
	}
	lg := r.logger.With(zap.String("job", job))

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return r.failedToStart(lg, job, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return r.failedToStart(lg, job, err)
	}

	lg.Info("starting process", zap.Strings("args", argv))
	if err = cmd.Start(); err != nil {
		return r.failedToStart(lg, job, err)
	}

	// pipes must be drained before Wait closes them
	var streams errgroup.Group
	streams.Go(streamLines(lg, "stdout", stdout))
	streams.Go(streamLines(lg, "stderr", stderr))
	if err = streams.Wait(); err != nil {
		lg.Warn("reading process output", zap.Error(err))
	}

	err = cmd.Wait()
	if err == nil {
		lg.Info("child process exited with code 0")
		return Exited(job, 0)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		lg.Info(fmt.Sprintf("child process exited with code %d", code))
		res := Exited(job, code)
		if ctxErr := ctx.Err(); ctxErr != nil {
			res.Cause = ctxErr
		}
		return res
	}

	lg.Error("waiting for process", zap.Error(err))
	return Result{Job: job, Started: true, ExitCode: -1, Cause: err}
}

func (r *Runner) failedToStart(lg *zap.Logger, job string, err error) Result {
	lg.Error("process failed to start", zap.Error(err))
	return FailedToStart(job, err)
}

// streamLines logs the output of a process line by line. Lines longer than
// maxLineSize are logged in chunks, flagged as partial.
func streamLines(lg *zap.Logger, stream string, rdr io.Reader) func() error {
	return func() error {
		br := bufio.NewReaderSize(rdr, maxLineSize)
		var continued bool
		for {
			line, isPrefix, err := br.ReadLine()
			if err != nil {
				if err == io.EOF {
					return nil
				}
				return err
			}
			fields := []zap.Field{zap.String("stream", stream)}
			if isPrefix || continued {
				fields = append(fields, zap.Bool("partial", true))
			}
			lg.Info(stream+": "+string(line), fields...)
			continued = isPrefix
		}
	}
}
