// Package tracer drives an instrumented target process and collects the
// execution trace it emits. The analysis engine only ever sees the
// resulting trace file path.
package tracer

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// TraceFileEnv names the environment variable the instrumented target
// reads to find out where to write its capture.
const TraceFileEnv = "DEADCODE_TRACE_FILE"

// RunOptions configures one capture run.
type RunOptions struct {
	// Executable is the instrumented target to launch.
	Executable string

	// Args are passed to the target verbatim.
	Args []string

	// OutputDir receives the trace file. Created if absent.
	OutputDir string

	// Scenario names the run; it becomes the trace file stem and the
	// scenario label in the final report.
	Scenario string

	// Duration bounds the run. Zero means wait for natural exit.
	Duration time.Duration

	// ExpectFailure inverts the exit-status check for scenarios that
	// exercise crash paths.
	ExpectFailure bool

	// Stdout and Stderr capture target output when non-nil.
	Stdout, Stderr *os.File
}

// Result describes a finished capture run.
type Result struct {
	TracePath string
	Scenario  string
	ExitCode  int
	Duration  time.Duration
}

// Runner launches capture runs.
type Runner struct{}

// NewRunner creates a runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Run executes one scenario and returns the path of the trace it
// produced. The context and Duration both bound the run; whichever
// fires first kills the target.
func (r *Runner) Run(ctx context.Context, opts RunOptions) (*Result, error) {
	if opts.Executable == "" {
		return nil, fmt.Errorf("capture run needs an executable")
	}
	if opts.Scenario == "" {
		opts.Scenario = "default"
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create trace output dir: %w", err)
	}

	tracePath, err := filepath.Abs(filepath.Join(opts.OutputDir, opts.Scenario+".trc"))
	if err != nil {
		return nil, err
	}

	if opts.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Duration)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, opts.Executable, opts.Args...)
	cmd.Env = append(os.Environ(), TraceFileEnv+"="+tracePath)
	if opts.Stdout != nil {
		cmd.Stdout = opts.Stdout
	}
	if opts.Stderr != nil {
		cmd.Stderr = opts.Stderr
	}

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	// A timeout kill is a run failure regardless of exit status.
	if ctx.Err() != nil && !opts.ExpectFailure {
		return nil, fmt.Errorf("scenario %s: %w", opts.Scenario, ctx.Err())
	}

	result := &Result{
		TracePath: tracePath,
		Scenario:  opts.Scenario,
		Duration:  elapsed,
	}
	if exitErr, ok := runErr.(*exec.ExitError); ok {
		result.ExitCode = exitErr.ExitCode()
	} else if runErr != nil {
		return nil, fmt.Errorf("scenario %s: %w", opts.Scenario, runErr)
	}

	failed := result.ExitCode != 0
	if failed != opts.ExpectFailure {
		if opts.ExpectFailure {
			return result, fmt.Errorf("scenario %s: expected failure but target exited cleanly", opts.Scenario)
		}
		return result, fmt.Errorf("scenario %s: target exited with status %d", opts.Scenario, result.ExitCode)
	}

	if _, err := os.Stat(tracePath); err != nil {
		return result, fmt.Errorf("scenario %s: target produced no trace at %s", opts.Scenario, tracePath)
	}
	return result, nil
}
