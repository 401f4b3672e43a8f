package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"legally/internal/app"
	"legally/internal/backend"
	"legally/internal/httputil"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the advice HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := app.Build()
			if err != nil {
				return fmt.Errorf("build dependencies: %w", err)
			}
			defer func() {
				if err := deps.Close(); err != nil {
					deps.Log.Warn("close dependencies", "err", err)
				}
			}()
			if cmd.Flags().Changed("port") {
				deps.Config.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, deps)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "listen port (overrides PORT)")
	return cmd
}

func serve(ctx context.Context, deps app.Deps) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", deps.Config.Port),
		Handler:           newRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		deps.Log.Info("legally listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		deps.Log.Info("shutting down")
		return srv.Shutdown(shutCtx)
	})
	return g.Wait()
}

func newRouter(deps app.Deps) http.Handler {
	r := httputil.NewRouter(deps.Log, requestTimeout(deps))

	r.Post("/api/advice", adviceHandler(deps))
	r.Get("/api/samples", samplesHandler())
	r.Get("/api/cache/stats", cacheStatsHandler(deps))
	r.Post("/api/feedback", feedbackHandler(deps))
	r.Get("/healthz", httputil.HealthHandler(deps.Log))
	return r
}

// requestTimeout leaves room for the whole backend call budget plus translation.
func requestTimeout(deps app.Deps) time.Duration {
	cfg := deps.Config
	return backend.CallBudget(cfg.BackendAttempts, cfg.BackendTimeout, cfg.BackendRetryBase) + 30*time.Second
}
