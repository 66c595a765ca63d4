package module

import (
	"time"

	"codeassist/internal/platform/config"

	"codeassist/internal/services/assist/authgate"
	"codeassist/internal/services/assist/ratelimit"
	"codeassist/internal/services/assist/runner"
	"codeassist/internal/services/assist/service"
)

// Options bundles the pipeline configuration for the assist module
type Options struct {
	Prefix  string
	Gate    authgate.Config
	Rate    ratelimit.Config
	Runner  runner.Config
	Service service.Config
}

// FromConfig reads the module options from an ASSIST_-scoped config view
func FromConfig(cfg config.Conf) Options {
	return Options{
		Prefix: cfg.MayString("PREFIX", "/v1"),
		Gate: authgate.Config{
			Secret:         cfg.MustString("API_KEY"),
			AllowedOrigins: cfg.MayCSV("ALLOWED_ORIGINS", nil),
			CallerHint:     cfg.MayString("CALLER_HINT", ""),
		},
		Rate: ratelimit.Config{
			MaxRequests: cfg.MayInt("RATE_MAX", 10),
			Window:      cfg.MayDuration("RATE_WINDOW", time.Minute),
		},
		Runner: runner.Config{
			Command:     cfg.MayString("TOOL_CMD", "codex"),
			Args:        cfg.MayCSV("TOOL_ARGS", []string{"--non-interactive"}),
			AuthMethod:  cfg.MayString("TOOL_AUTH_METHOD", "api-key"),
			Timeout:     cfg.MayDuration("TOOL_TIMEOUT", 30*time.Second),
			MaxRetries:  cfg.MayInt("TOOL_RETRIES", 3),
			BackoffBase: cfg.MayDuration("TOOL_BACKOFF", time.Second),
		},
		Service: service.Config{
			SkipSuccesses: cfg.MayBool("RATE_SKIP_SUCCESSES", false),
		},
	}
}
