package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"codeassist/internal/platform/config"
	"codeassist/internal/platform/logger"
	phttp "codeassist/internal/platform/net/http"
	"codeassist/internal/platform/net/middleware"

	assistmod "codeassist/internal/services/assist/module"

	"github.com/go-chi/chi/v5"
)

func main() {
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")    // HTTP server scope (CORE_API_*)
	assistCfg := root.Prefix("ASSIST_")   // pipeline scope (ASSIST_*)

	// bring up logging early
	l := logger.Get()

	opt := assistmod.FromConfig(assistCfg)
	env := apiCfg.MayEnum("ENV", "development", "development", "production")
	opt.Service.Production = strings.EqualFold(env, "production")
	mod := assistmod.New(opt)

	// http server (reads CORE_API_PORT)
	srv := phttp.NewServer(apiCfg, func(m *chi.Mux) {
		for _, mw := range middleware.Defaults() {
			m.Use(mw)
		}
		m.Use(middleware.CORS(middleware.CORSOptions{
			AllowedOrigins: apiCfg.MayCSV("CORS_ORIGINS", []string{"*"}),
		}))
		m.Use(middleware.Session())
		m.Use(middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: time.Second}))
		m.Use(middleware.RecoverJSON)
		m.Use(middleware.Heartbeat("/healthz"))
	})

	phttp.MountProfiler(srv.Router(), "/debug", apiCfg.MayBool("PROFILER", false))
	mod.MountRoutes(srv.Router())

	mod.Start()
	defer mod.Stop()

	// graceful shutdown on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shCtx); err != nil {
			l.Error().Err(err).Msg("http shutdown failed")
		}
	}()

	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
