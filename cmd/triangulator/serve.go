package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"triangulator/internal/config"
	"triangulator/internal/delaunay"
	"triangulator/internal/handler"
	"triangulator/internal/hub"
	"triangulator/internal/loader"
	"triangulator/internal/provider"
	"triangulator/internal/repository/sqlite"
	"triangulator/internal/service"
	"triangulator/internal/telemetry"
	"triangulator/internal/watcher"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}

	cmd.Flags().String("addr", "", "HTTP listen address")
	cmd.Flags().String("provider", "", "Point set source (store, http)")
	cmd.Flags().String("base-url", "", "PointSetManager base URL for the http provider")
	cmd.Flags().String("db", "", "SQLite database path for the store provider")
	cmd.Flags().String("fixtures", "", "YAML fixtures file loaded into the store")
	cmd.Flags().Bool("watch", false, "Reload the fixtures file when it changes")
	cmd.Flags().Int("max-points", -1, "Largest accepted point set (0 = unlimited)")

	return cmd
}

// applyServeFlags overrides config values with flags the user set
func applyServeFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("addr") {
		cfg.Server.Addr, _ = flags.GetString("addr")
	}
	if flags.Changed("provider") {
		v, _ := flags.GetString("provider")
		cfg.Provider.Mode = config.ParseProviderMode(v)
	}
	if flags.Changed("base-url") {
		cfg.Provider.BaseURL, _ = flags.GetString("base-url")
	}
	if flags.Changed("db") {
		cfg.Database.Path, _ = flags.GetString("db")
	}
	if flags.Changed("fixtures") {
		cfg.Fixtures.Path, _ = flags.GetString("fixtures")
	}
	if flags.Changed("watch") {
		cfg.Fixtures.Watch, _ = flags.GetBool("watch")
	}
	if flags.Changed("max-points") {
		cfg.Engine.MaxPoints, _ = flags.GetInt("max-points")
	}
	return cfg.Validate()
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, path, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyServeFlags(cmd, cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := newLogger(cfg)
	if path != "" {
		logger.Info("loaded config", "path", path)
	}
	for _, line := range strings.Split(cfg.Summary(), "\n") {
		logger.Info(line)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.SetupTracing(ctx, telemetry.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Endpoint:    cfg.Telemetry.Endpoint,
		Insecure:    cfg.Telemetry.Insecure,
	})
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Warn("tracing shutdown error", "error", err)
		}
	}()

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.Run(ctx)
}

// app wires the service graph for one serve invocation
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	handler http.Handler
	bus     *service.EventBus
	hub     *hub.Hub
	loader  *loader.Loader
	closers []io.Closer
}

func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	a := &app{
		cfg:    cfg,
		logger: logger,
		bus:    service.NewEventBus(),
		hub:    hub.New(logger),
	}

	var metrics *telemetry.Metrics
	if cfg.Metrics.IsEnabled() {
		metrics = telemetry.NewMetrics()
	}

	routes := handler.Routes{
		Events:  a.hub,
		Metrics: metrics,
		Logger:  logger,
		Tracing: cfg.Telemetry.Endpoint != "",
	}

	var p provider.Provider
	switch cfg.Provider.Mode {
	case config.ProviderHTTP:
		hp, err := provider.NewHTTPProvider(provider.HTTPConfig{
			BaseURL:         cfg.Provider.BaseURL,
			Timeout:         cfg.Provider.Timeout.Duration(),
			InitialInterval: cfg.Provider.Retry.InitialInterval.Duration(),
			MaxElapsed:      cfg.Provider.Retry.MaxElapsed.Duration(),
			Logger:          logger,
		})
		if err != nil {
			return nil, fmt.Errorf("http provider: %w", err)
		}
		p = hp
		if cfg.Fixtures.Path != "" {
			logger.Warn("fixtures are ignored with the http provider", "path", cfg.Fixtures.Path)
		}

	default:
		repo, err := sqlite.New(cfg.Database.Path)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		a.closers = append(a.closers, repo)
		p = provider.NewStoreProvider(repo)

		pointSets := service.NewPointSetService(repo, a.bus, metrics)
		pointSets.SetLogger(logger)

		ps := handler.NewPointSetHandler(pointSets)
		ps.SetMaxBodyBytes(cfg.Server.MaxBodyBytes)
		ps.SetLogger(logger)
		routes.PointSets = ps

		if cfg.Fixtures.Path != "" {
			a.loader = loader.New(cfg.Fixtures.Path, pointSets, metrics, logger)
			if _, err := a.loader.Load(ctx); err != nil {
				a.Close()
				return nil, err
			}
		}
	}

	triangulation := service.NewTriangulationService(p,
		service.WithEngineOptions(delaunay.Options{MaxPoints: cfg.Engine.MaxPoints}),
		service.WithEventBus(a.bus),
		service.WithMetrics(metrics),
		service.WithLogger(logger),
	)
	th := handler.NewTriangulationHandler(triangulation)
	th.SetMaxBodyBytes(cfg.Server.MaxBodyBytes)
	th.SetLogger(logger)
	routes.Triangulation = th

	a.handler = handler.NewRouter(routes)
	return a, nil
}

// Run serves until ctx is done, then shuts down gracefully
func (a *app) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:         a.cfg.Server.Addr,
		Handler:      a.handler,
		ReadTimeout:  a.cfg.Server.ReadTimeout.Duration(),
		WriteTimeout: a.cfg.Server.WriteTimeout.Duration(),
		IdleTimeout:  2 * a.cfg.Server.ReadTimeout.Duration(),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.hub.Run(gctx)
		return nil
	})
	g.Go(func() error {
		a.hub.Forward(gctx, a.bus)
		return nil
	})

	if a.loader != nil && a.cfg.Fixtures.Watch {
		w := watcher.New(a.loader.Path(), func() { a.loader.Reload(gctx) }).WithLogger(a.logger)
		g.Go(func() error {
			if err := w.Watch(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("watch fixtures: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		a.logger.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down server")
		sctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout.Duration())
		defer cancel()
		if err := server.Shutdown(sctx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	a.logger.Info("server stopped")
	return nil
}

// Close releases resources opened by newApp
func (a *app) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}
