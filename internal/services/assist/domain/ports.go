package domain

import "context"

// AuthPort validates caller credentials and derives the throttling identity
type AuthPort interface {
	Authenticate(meta RequestMeta) AuthDecision
}

// LimiterPort admits or denies requests against a per-client sliding window
type LimiterPort interface {
	Check(clientID string) RateDecision
	RecordSuccess(clientID, token string)
}

// RunnerPort executes the external assistant and returns its raw output
type RunnerPort interface {
	Execute(ctx context.Context, req ExecutionRequest) (string, error)
}

// ServicePort is the orchestrator boundary consumed by the HTTP layer
type ServicePort interface {
	Process(ctx context.Context, meta RequestMeta, req ExecutionRequest) (ExecutionResult, error)
}
