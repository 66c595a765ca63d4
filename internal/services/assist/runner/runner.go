package runner

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	perr "codeassist/internal/platform/errors"
	"codeassist/internal/platform/logger"
	"codeassist/internal/services/assist/domain"
)

// Config shapes the wrapper's invocation and retry behavior
type Config struct {
	// Command is the assistant binary
	Command string
	// Args is the fixed flag set enabling non-interactive output
	Args []string
	// AuthMethod is exported to the child as CODEASSIST_AUTH_METHOD
	AuthMethod string
	// Timeout is the hard wall-clock budget for the whole execution,
	// retries included
	Timeout time.Duration
	// MaxRetries is the total attempt budget (attempt 1 counts)
	MaxRetries int
	// BackoffBase is the first inter-attempt delay; it doubles per attempt
	BackoffBase time.Duration
}

// Wrapper implements domain.RunnerPort: prompt assembly, a scoped temp
// workspace, subprocess execution with a hard deadline, and sequential
// exponential-backoff retry
type Wrapper struct {
	runner ProcessRunner
	cfg    Config
	log    *logger.Logger

	// seams for tests
	sleep       func(ctx context.Context, d time.Duration) error
	mkWorkspace func() (string, error)
}

// Option customizes a Wrapper
type Option func(*Wrapper)

// WithSleep swaps the inter-attempt sleep, for tests
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(w *Wrapper) { w.sleep = fn }
}

// WithWorkspace swaps the temp workspace factory, for tests
func WithWorkspace(fn func() (string, error)) Option {
	return func(w *Wrapper) { w.mkWorkspace = fn }
}

// New constructs a Wrapper over the given process runner
func New(runner ProcessRunner, cfg Config, opts ...Option) *Wrapper {
	if runner == nil {
		panic("runner.Wrapper requires a non-nil ProcessRunner")
	}
	if cfg.Command == "" {
		panic("runner.Wrapper requires a command")
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.BackoffBase <= 0 {
		cfg.BackoffBase = time.Second
	}
	w := &Wrapper{
		runner:      runner,
		cfg:         cfg,
		log:         logger.Named("runner"),
		sleep:       ctxSleep,
		mkWorkspace: func() (string, error) { return os.MkdirTemp("", "codeassist-*") },
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

// Execute runs the assistant for req and returns its raw stdout.
// Failure modes: ErrorCodeTimeout when the deadline expires (the child is
// killed), ErrorCodeExecution after the retry budget is spent
func (w *Wrapper) Execute(ctx context.Context, req domain.ExecutionRequest) (string, error) {
	prompt := BuildPrompt(req)

	dir, err := w.mkWorkspace()
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeExecution, "workspace unavailable")
	}
	defer func() {
		// cleanup failures are logged, never surfaced to the caller
		if rerr := os.RemoveAll(dir); rerr != nil {
			w.log.Error().Err(rerr).Str("dir", dir).Msg("workspace cleanup failed")
		}
	}()

	// one deadline covers the whole execution, retries included, so a stuck
	// tool fails within Timeout rather than Timeout * MaxRetries
	ctx, cancel := context.WithTimeout(ctx, w.cfg.Timeout)
	defer cancel()

	spec := Spec{
		Command: w.cfg.Command,
		Args:    w.cfg.Args,
		Stdin:   prompt,
		Dir:     dir,
		Env: []string{
			"HOME=" + dir,
			"CODEASSIST_AUTH_METHOD=" + w.cfg.AuthMethod,
		},
	}

	var lastErr error
	for attempt := 1; attempt <= w.cfg.MaxRetries; attempt++ {
		if attempt > 1 {
			delay := w.cfg.BackoffBase << (attempt - 2)
			if err := w.sleep(ctx, delay); err != nil {
				return "", w.timeoutErr()
			}
		}

		res, err := w.runner.Run(ctx, spec)
		if err == nil {
			if res.Stderr != "" {
				w.log.Debug().Str("stderr", trimForLog(res.Stderr)).Msg("assistant diagnostics")
			}
			return res.Stdout, nil
		}

		if errors.Is(err, context.DeadlineExceeded) {
			w.log.Warn().Int("attempt", attempt).Dur("timeout", w.cfg.Timeout).Msg("assistant timed out")
			return "", w.timeoutErr()
		}

		lastErr = err
		w.log.Warn().
			Err(err).
			Int("attempt", attempt).
			Int("exit_code", res.ExitCode).
			Str("stderr", trimForLog(res.Stderr)).
			Msg("assistant attempt failed")
	}

	return "", perr.Wrapf(lastErr, perr.ErrorCodeExecution,
		"assistant failed after %d attempts", w.cfg.MaxRetries)
}

func (w *Wrapper) timeoutErr() error {
	return perr.Timeoutf("assistant timed out after %s", w.cfg.Timeout)
}

// ctxSleep waits d or until ctx is done
func ctxSleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// trimForLog keeps log lines bounded on chatty tools
func trimForLog(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 512 {
		return s[:512] + "..."
	}
	return s
}
