// Package module wires the assist service into HTTP and owns its lifecycle
package module

import (
	"net/http"

	phttp "codeassist/internal/platform/net/http"
	"codeassist/internal/platform/net/middleware"
	pstrings "codeassist/internal/platform/strings"

	"codeassist/internal/services/assist/authgate"
	assisthttp "codeassist/internal/services/assist/http"
	"codeassist/internal/services/assist/ratelimit"
	"codeassist/internal/services/assist/runner"
	"codeassist/internal/services/assist/service"
)

// Module owns the assist pipeline: gate, limiter + sweeper, runner, service
type Module struct {
	prefix  string
	svc     *service.Service
	sweeper *ratelimit.Sweeper

	mws []func(http.Handler) http.Handler
}

// New constructs the assist module from options
func New(opt Options) *Module {
	store := ratelimit.NewMemStore()
	limiter := ratelimit.New(store, opt.Rate)
	sweeper := ratelimit.NewSweeper(store, opt.Rate.Window)
	gate := authgate.New(opt.Gate)
	wrap := runner.New(runner.ExecRunner{}, opt.Runner)

	return &Module{
		prefix:  opt.Prefix,
		svc:     service.New(gate, limiter, wrap, opt.Service),
		sweeper: sweeper,
		mws: []func(http.Handler) http.Handler{
			middleware.AllowContentType("application/json"),
		},
	}
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r phttp.Router) {
	r.Route(m.prefix, func(rr phttp.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		assisthttp.Register(rr, m.svc)
	})
}

// Start launches the background sweeper
func (m *Module) Start() { m.sweeper.Start() }

// Stop halts the background sweeper
func (m *Module) Stop() { m.sweeper.Stop() }

// Prefix is the module route prefix
func (m *Module) Prefix() string { return pstrings.MustPrefix(m.prefix) }

// Service exposes the orchestrator port for tests and cross-module use
func (m *Module) Service() *service.Service { return m.svc }
