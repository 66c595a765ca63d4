// Package service implements the assist request orchestrator
package service

import (
	"context"

	perr "codeassist/internal/platform/errors"
	"codeassist/internal/platform/logger"
	"codeassist/internal/services/assist/domain"
	"codeassist/internal/services/assist/extract"
)

// Config holds the orchestrator policy knobs
type Config struct {
	// SkipSuccesses removes admissions for successful calls from the window
	SkipSuccesses bool
	// Production hides underlying execution detail from API responses
	Production bool
}

// Service sequences auth, admission, execution and extraction.
// It is the only component aware of how stages compose
type Service struct {
	gate    domain.AuthPort
	limiter domain.LimiterPort
	runner  domain.RunnerPort
	cfg     Config
	log     *logger.Logger
}

// New constructs the orchestrator
func New(gate domain.AuthPort, limiter domain.LimiterPort, runner domain.RunnerPort, cfg Config) *Service {
	if gate == nil || limiter == nil || runner == nil {
		panic("assist.Service requires gate, limiter and runner")
	}
	return &Service{gate: gate, limiter: limiter, runner: runner, cfg: cfg, log: logger.Named("assist")}
}

// Process runs one request through the pipeline. The request shape has been
// validated by the transport before it gets here; auth and admission reject
// before any subprocess is spawned
func (s *Service) Process(
	ctx context.Context,
	meta domain.RequestMeta,
	req domain.ExecutionRequest,
) (domain.ExecutionResult, error) {
	var zero domain.ExecutionResult

	auth := s.gate.Authenticate(meta)
	if !auth.Valid {
		return zero, perr.Unauthorizedf("authentication failed: %s", auth.Reason)
	}

	rate := s.limiter.Check(auth.ClientID)
	if !rate.Allowed {
		return zero, perr.RateLimitedf(
			"rate limit exceeded: %d remaining, resets in %dms",
			rate.Remaining, rate.ResetMillis,
		)
	}

	raw, err := s.runner.Execute(ctx, req)
	if err != nil {
		s.log.Error().Err(err).Str("client_id", auth.ClientID).Str("action", string(req.Action)).
			Msg("assistant execution failed")
		if s.cfg.Production {
			// keep the code, swap the detail for a generic message
			return zero, perr.WithMessage(err, "assistant execution failed")
		}
		return zero, err
	}

	if s.cfg.SkipSuccesses {
		s.limiter.RecordSuccess(auth.ClientID, rate.Token)
	}

	return extract.Parse(raw, req.Action), nil
}
