package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/vigil"
	"github.com/aretw0/vigil/pkg/adapters/file"
	httpAdapter "github.com/aretw0/vigil/pkg/adapters/http"
	"github.com/aretw0/vigil/pkg/adapters/memory"
	"github.com/aretw0/vigil/pkg/adapters/redis"
	"github.com/aretw0/vigil/pkg/observability"
	"github.com/aretw0/vigil/pkg/ports"
	"github.com/aretw0/vigil/pkg/report"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP monitoring server",
	Long: `Starts a monitor behind a JSON API over HTTP. Lifecycle events are streamed
on /events, Prometheus metrics are exposed on /metrics and a performance
report is published every report.interval (in Redis when redis.addr is set,
as JSON files when report.dir is set, in memory otherwise).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port := cfg.Server.Port
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetInt("port")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		streams := httpAdapter.NewStreamManager(logger)
		opts, err := monitorOptions(reg, streams.Hooks())
		if err != nil {
			return err
		}
		monitor := vigil.New(opts...)
		if err := reg.Register(observability.NewCollector(monitor)); err != nil {
			return fmt.Errorf("failed to register metrics: %w", err)
		}

		store, managerOpts, closeStore := reportStore()
		defer closeStore()
		manager := report.NewManager(store, append(managerOpts, report.WithLogger(logger))...)
		poller := report.NewPoller(monitor, manager, cfg.Report.Interval, report.WithPollerLogger(logger))

		srv := &http.Server{
			Addr: fmt.Sprintf(":%d", port),
			Handler: httpAdapter.NewHandler(monitor,
				httpAdapter.WithReports(manager),
				httpAdapter.WithStreams(streams),
				httpAdapter.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})),
				httpAdapter.WithCORSOrigins(cfg.Server.CORSOrigins),
				httpAdapter.WithLogger(logger),
			),
		}

		g, gCtx := errgroup.WithContext(ctx)
		g.Go(func() error {
			logger.Info("starting vigil server", "addr", srv.Addr, "version", vigil.Version)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			return poller.Run(gCtx)
		})
		g.Go(func() error {
			<-gCtx.Done()
			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
				return srv.Close()
			}
			return nil
		})

		if err := g.Wait(); err != nil {
			return err
		}
		logger.Info("vigil server stopped gracefully")
		return nil
	},
}

// reportStore picks the report backend from the configuration.
func reportStore() (ports.ReportStore, []report.Option, func()) {
	if cfg.Redis.Addr == "" {
		if cfg.Report.Dir != "" {
			logger.Info("publishing reports to disk", "dir", cfg.Report.Dir)
			return file.New(cfg.Report.Dir), nil, func() {}
		}
		return memory.NewStore(), nil, func() {}
	}

	store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
		redis.WithPrefix(cfg.Redis.Prefix),
		redis.WithTTL(cfg.Report.TTL),
	)
	logger.Info("publishing reports to redis", "addr", cfg.Redis.Addr, "prefix", cfg.Redis.Prefix)
	locker := redis.NewLocker(store.Client(), cfg.Redis.Prefix)
	return store, []report.Option{report.WithLocker(locker)}, func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close redis store", "error", err)
		}
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on (overrides server.port)")
}
