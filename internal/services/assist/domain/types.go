// Package domain holds the assist service types and ports
package domain

// Action is the kind of assistance the caller wants
type Action string

// Supported actions
const (
	ActionGenerate Action = "generate"
	ActionAnalyze  Action = "analyze"
	ActionOptimize Action = "optimize"
	ActionReview   Action = "review"
)

// CodeStyle preference for generated code
const (
	StyleModern = "modern"
	StyleLegacy = "legacy"
)

// RequestOptions tune how the assistant responds. All fields are optional
type RequestOptions struct {
	IncludeTests    bool   `json:"includeTests,omitempty"`
	IncludeComments bool   `json:"includeComments,omitempty"`
	CodeStyle       string `json:"codeStyle,omitempty" validate:"omitempty,oneof=modern legacy"`
	MaxTokens       int    `json:"maxTokens,omitempty" validate:"omitempty,min=100,max=8192"`
}

// ExecutionRequest is the validated, immutable inbound payload
type ExecutionRequest struct {
	Action    Action          `json:"action" validate:"required,oneof=generate analyze optimize review"`
	Prompt    string          `json:"prompt" validate:"required,min=1,max=10000"`
	Language  string          `json:"language,omitempty" validate:"omitempty,max=64"`
	Framework string          `json:"framework,omitempty" validate:"omitempty,max=64"`
	Options   *RequestOptions `json:"options,omitempty"`
}

// ExecutionResult is the structured form of the assistant's raw output.
// Which fields are populated depends on the action; explanation falls back to
// the raw text so at least one field always carries content
type ExecutionResult struct {
	Code        string   `json:"code,omitempty"`
	Analysis    string   `json:"analysis,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
}

// RequestMeta carries the connection/request metadata the gate and limiter
// need. Built by the HTTP layer, consumed below it
type RequestMeta struct {
	RemoteAddr    string
	UserAgent     string
	Origin        string
	Referer       string
	Authorization string
	CallerHint    string
	SessionID     string
}

// AuthDecision is the transient verdict of the auth gate
type AuthDecision struct {
	Valid    bool
	ClientID string
	Reason   string
}

// RateDecision is the transient verdict of the rate limiter.
// Token identifies the admitted entry so a later RecordSuccess can remove
// exactly this admission and no other
type RateDecision struct {
	Allowed     bool
	Remaining   int
	ResetMillis int64
	Token       string
}
