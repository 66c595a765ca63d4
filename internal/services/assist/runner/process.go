// Package runner executes the external assistant tool with timeout and retry
package runner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Spec describes one subprocess invocation
type Spec struct {
	Command string
	Args    []string
	// Stdin is written to the child's standard input in full
	Stdin string
	// Env entries appended to the inherited environment
	Env []string
	// Dir is the working directory (the scoped workspace)
	Dir string
}

// Result captures one finished invocation
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// ProcessRunner is the narrow seam between retry/timeout logic and the OS.
// Tests substitute a scripted fake; production uses ExecRunner
type ProcessRunner interface {
	Run(ctx context.Context, spec Spec) (Result, error)
}

// ExecRunner runs the tool via os/exec. Context cancellation kills the child;
// WaitDelay bounds how long we wait for pipes after the kill
type ExecRunner struct{}

// Run spawns the process, feeds stdin, and accumulates stdout/stderr
func (ExecRunner) Run(ctx context.Context, spec Spec) (Result, error) {
	cmd := exec.CommandContext(ctx, spec.Command, spec.Args...)
	cmd.Dir = spec.Dir
	cmd.Env = append(os.Environ(), spec.Env...)
	cmd.Stdin = strings.NewReader(spec.Stdin)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = 3 * time.Second

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			res.ExitCode = ee.ExitCode()
		}
		if ctx.Err() != nil {
			// the deadline killed it; report that rather than the exit status
			return res, ctx.Err()
		}
		return res, err
	}
	return res, nil
}
