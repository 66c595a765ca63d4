package module_test

import (
	"testing"
	"time"

	"codeassist/internal/platform/config"
	"codeassist/internal/platform/testkit"
	"codeassist/internal/services/assist/module"
)

func assistCfg(t *testing.T) config.Conf {
	t.Helper()
	t.Setenv("ASSIST_API_KEY", "sk-test")
	return config.New().Prefix("ASSIST_")
}

func TestFromConfigDefaults(t *testing.T) {
	opt := module.FromConfig(assistCfg(t))

	if opt.Prefix != "/v1" {
		t.Fatalf("prefix = %q", opt.Prefix)
	}
	if opt.Gate.Secret != "sk-test" || opt.Gate.AllowedOrigins != nil {
		t.Fatalf("gate = %+v", opt.Gate)
	}
	if opt.Rate.MaxRequests != 10 || opt.Rate.Window != time.Minute {
		t.Fatalf("rate = %+v", opt.Rate)
	}
	r := opt.Runner
	if r.Command != "codex" || len(r.Args) != 1 || r.Args[0] != "--non-interactive" {
		t.Fatalf("runner cmd = %+v", r)
	}
	if r.AuthMethod != "api-key" || r.Timeout != 30*time.Second ||
		r.MaxRetries != 3 || r.BackoffBase != time.Second {
		t.Fatalf("runner = %+v", r)
	}
	if opt.Service.SkipSuccesses {
		t.Fatalf("skip successes should default off")
	}
}

func TestFromConfigOverrides(t *testing.T) {
	cfg := assistCfg(t)
	t.Setenv("ASSIST_PREFIX", "/api")
	t.Setenv("ASSIST_ALLOWED_ORIGINS", "https://a.example.com,https://b.example.com")
	t.Setenv("ASSIST_RATE_MAX", "2")
	t.Setenv("ASSIST_RATE_WINDOW", "30s")
	t.Setenv("ASSIST_RATE_SKIP_SUCCESSES", "true")
	t.Setenv("ASSIST_TOOL_CMD", "mock-tool")
	t.Setenv("ASSIST_TOOL_ARGS", "-q,--json")
	t.Setenv("ASSIST_TOOL_TIMEOUT", "5s")
	t.Setenv("ASSIST_TOOL_RETRIES", "1")
	t.Setenv("ASSIST_TOOL_BACKOFF", "50ms")

	opt := module.FromConfig(cfg)
	if opt.Prefix != "/api" {
		t.Fatalf("prefix = %q", opt.Prefix)
	}
	if len(opt.Gate.AllowedOrigins) != 2 {
		t.Fatalf("origins = %v", opt.Gate.AllowedOrigins)
	}
	if opt.Rate.MaxRequests != 2 || opt.Rate.Window != 30*time.Second {
		t.Fatalf("rate = %+v", opt.Rate)
	}
	if !opt.Service.SkipSuccesses {
		t.Fatalf("skip successes not picked up")
	}
	r := opt.Runner
	if r.Command != "mock-tool" || len(r.Args) != 2 || r.Args[1] != "--json" {
		t.Fatalf("runner cmd = %+v", r)
	}
	if r.Timeout != 5*time.Second || r.MaxRetries != 1 || r.BackoffBase != 50*time.Millisecond {
		t.Fatalf("runner = %+v", r)
	}
}

func TestFromConfigRequiresAPIKey(t *testing.T) {
	cfg := config.New().Prefix("ASSIST_")
	t.Setenv("ASSIST_API_KEY", "")
	testkit.MustPanic(t, func() { _ = module.FromConfig(cfg) })
}

func TestModulePrefix(t *testing.T) {
	m := module.New(moduleOptions(t))
	if m.Prefix() != "/v1" {
		t.Fatalf("Prefix = %q", m.Prefix())
	}
	if m.Service() == nil {
		t.Fatalf("Service accessor returned nil")
	}
	m.Start()
	m.Stop()
}

func moduleOptions(t *testing.T) module.Options {
	t.Helper()
	return module.FromConfig(assistCfg(t))
}
