// Command dbseeder seeds and maintains the water-chemistry destination
// database from the five source programs.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	httpadapter "github.com/ugswater/dbseeder/internal/adapter/http"
	"github.com/ugswater/dbseeder/internal/config"
	"github.com/ugswater/dbseeder/internal/observability"
	"github.com/ugswater/dbseeder/internal/pipeline"
	"github.com/ugswater/dbseeder/internal/store"
)

func main() {
	root := &cobra.Command{
		Use:           "dbseeder",
		Short:         "Seed the water-chemistry database from source program extracts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newCreateDBCmd(), newSeedCmd(), newUpdateCmd(), newValidateCmd())

	if err := root.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// app bundles the wiring every database-touching command shares.
type app struct {
	cfg     *config.Config
	log     *slog.Logger
	metrics *observability.Metrics
	store   store.Store
	orch    *pipeline.Orchestrator
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	var st store.Store
	if cfg.DatabaseURL != "" {
		st, err = store.NewPostgres(ctx, cfg.DatabaseURL)
	} else {
		st, err = store.NewSQLite(cfg.SQLitePath)
	}
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:     cfg,
		log:     log,
		metrics: metrics,
		store:   st,
		orch:    pipeline.New(st, log, metrics, cfg.BatchSize, cfg.OrphanPolicy),
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.log.Error("store close error", "error", err)
	}
}

// CheckReadiness pings the destination; the /readyz probe calls it.
func (a *app) CheckReadiness(ctx context.Context) error {
	return a.store.Ping(ctx)
}

// serveOps starts the health and metrics server when HTTP_ADDR is set. The
// returned stop function drains it within the shutdown timeout.
func (a *app) serveOps() (stop func()) {
	if a.cfg.HTTPAddr == "" {
		return func() {}
	}

	srv := httpadapter.NewServer(a.cfg.HTTPAddr, a, a.orch, a.log)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("http server error", "error", err)
		}
	}()

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.log.Error("http server shutdown error", "error", err)
		}
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// sourceArgs resolves command arguments into format tags, defaulting to
// every known source.
func sourceArgs(args []string) []string {
	if len(args) == 0 {
		return pipeline.Tags()
	}
	return args
}
