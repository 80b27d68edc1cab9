package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GregMSThompson/dashboard-backend/internal/bootstrap"
	"github.com/GregMSThompson/dashboard-backend/internal/catalog"
	"github.com/GregMSThompson/dashboard-backend/internal/config"
	"github.com/GregMSThompson/dashboard-backend/internal/handlers"
	"github.com/GregMSThompson/dashboard-backend/internal/metrics"
	"github.com/GregMSThompson/dashboard-backend/internal/perm"
	"github.com/GregMSThompson/dashboard-backend/internal/response"
	"github.com/GregMSThompson/dashboard-backend/internal/router"
	"github.com/GregMSThompson/dashboard-backend/internal/services"
	"github.com/GregMSThompson/dashboard-backend/pkg/logger"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()
	ctx = logger.ToContext(ctx, bs.Log)

	// metrics
	mc := metrics.New()

	// stores
	prefs := bs.PreferenceStore(cfg)

	// services
	dserv := services.NewDashboardService(catalog.Default(), perm.DefaultGrants, prefs,
		services.WithRecorder(mc),
		services.WithSessionGauge(mc.Sessions),
		services.WithIdleTimeout(cfg.SessionIdle),
	)
	go dserv.RunJanitor(ctx, cfg.SessionIdle/2)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.Auth = bs.Firebase
	deps.DashboardSvc = dserv
	deps.Metrics = mc.Handler()

	// router
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			bs.Log.Error("server shutdown failed", "error", err)
		}
	}()

	bs.Log.Info("server starting", "port", cfg.Port, "prefs_backend", string(cfg.PrefsBackend))
	err = srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		err = nil
	}

	// pending layout writes land before the backend clients close
	dserv.Close()
	exitOnError("server start failed", err, bs.Log)
}
