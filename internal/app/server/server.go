package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"perfeval/internal/domain/directory"
	"perfeval/internal/domain/evaluation"
	"perfeval/internal/domain/frameworks"
	"perfeval/internal/domain/objectives"
	"perfeval/internal/domain/reports"
	"perfeval/internal/platform/config"
	"perfeval/internal/platform/jobs"
	"perfeval/internal/platform/metrics"
	"perfeval/internal/platform/seed"
	"perfeval/internal/store"
	"perfeval/internal/transport/http/api"
	directoryhandler "perfeval/internal/transport/http/handlers/directory"
	evaluationhandler "perfeval/internal/transport/http/handlers/evaluation"
	frameworkshandler "perfeval/internal/transport/http/handlers/frameworks"
	objectiveshandler "perfeval/internal/transport/http/handlers/objectives"
	reportshandler "perfeval/internal/transport/http/handlers/reports"
	"perfeval/internal/transport/http/middleware"
)

const cycleSweepJob = "cycle_status_sweep"

type App struct {
	Config  config.Config
	Router  http.Handler
	Logger  *zap.Logger
	Store   *store.Memory
	Metrics *metrics.Collector
	Jobs    *jobs.Service

	evaluations *evaluation.Service
}

// New builds the store, services and router. The demo organisation is loaded
// when cfg.SeedDemoData is set.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	st := store.NewMemory()
	if cfg.SeedDemoData {
		if err := seed.Load(ctx, st, logger); err != nil {
			return nil, fmt.Errorf("seed demo data: %w", err)
		}
	}

	collector := metrics.New()
	directoryService := directory.NewService(st, logger)
	objectivesService := objectives.NewService(st, logger)
	frameworksService := frameworks.NewService(st, logger)
	evaluationService := evaluation.NewService(st, directoryService, frameworksService, logger,
		evaluation.WithObserver(collector),
		evaluation.WithWeightChecker(objectivesService),
	)
	reportsService := reports.NewService(evaluationService, directoryService, logger)

	app := &App{
		Config:      cfg,
		Logger:      logger,
		Store:       st,
		Metrics:     collector,
		Jobs:        jobs.New(logger),
		evaluations: evaluationService,
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger, collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.IsProduction()))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := st.Ping(ctx); err != nil {
			http.Error(w, "store not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			snapshot := collector.Snapshot()
			snapshot["jobs"] = app.Jobs.History()
			api.Success(w, snapshot, middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		directoryhandler.NewHandler(directoryService).RegisterRoutes(r)
		objectiveshandler.NewHandler(objectivesService).RegisterRoutes(r)
		frameworkshandler.NewHandler(frameworksService).RegisterRoutes(r)
		evaluationhandler.NewHandler(evaluationService).RegisterRoutes(r)
		reportshandler.NewHandler(reportsService).RegisterRoutes(r)
	})

	app.Router = router
	return app, nil
}

// SweepCycles advances cycle statuses against now.
func (a *App) SweepCycles(ctx context.Context) (any, error) {
	changed, err := a.evaluations.AdvanceCycles(ctx, time.Now().UTC())
	ids := make([]string, 0, len(changed))
	for _, c := range changed {
		ids = append(ids, c.ID)
	}
	return map[string]any{"changed": ids}, err
}

// Run serves HTTP until ctx is cancelled, then shuts down within
// Config.ShutdownTimeout.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.Config.Addr,
		Handler:           a.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.Jobs.Start(gctx)
		return nil
	})
	g.Go(func() error {
		a.Jobs.Schedule(gctx, cycleSweepJob, a.Config.CycleSweepInterval, a.SweepCycles)
		return nil
	})
	g.Go(func() error {
		a.Logger.Info("perfeval server listening", zap.String("addr", a.Config.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.ShutdownTimeout)
		defer cancel()
		a.Logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
