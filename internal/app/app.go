package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"creditcli/internal/config"
	apierrors "creditcli/internal/errors"
	"creditcli/internal/exporter"
	"creditcli/internal/files"
	"creditcli/internal/infrastructure"
	custommw "creditcli/internal/middleware"
	"creditcli/internal/operations"
	"creditcli/internal/parsing"
	"creditcli/internal/services"
	transport "creditcli/internal/transport/http"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Application wires configuration, services, and the HTTP router.
type Application struct {
	Config *config.Config
	Logger *slog.Logger
	Paths  *config.Paths
	Router chi.Router

	server *http.Server
}

// NewApplication loads configuration and assembles the full service graph.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	paths := config.NewPaths(cfg.Paths)
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	a := &Application{
		Config: cfg,
		Logger: logger,
		Paths:  paths,
	}
	a.setupRouter()

	a.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return a, nil
}

func (a *Application) setupRouter() {
	errorHandler := apierrors.NewErrorHandler(a.Logger)

	fileManager := files.NewManager(a.Paths, a.Logger)
	parser := parsing.New(a.Logger, parsing.Options{
		MinClusterWords: a.Config.Processing.MinClusterWords,
		TopTolerance:    a.Config.Processing.TopTolerance,
	})
	pipeline := operations.NewManager(a.Logger,
		&operations.DecodeStep{},
		&operations.ParseStep{Parser: parser},
		&operations.ExportStep{
			JSON:     exporter.NewJSONWriter(a.Logger),
			Workbook: exporter.NewWorkbookWriter(a.Logger),
		},
	)

	reportService := services.NewReportService(fileManager, pipeline, a.Paths, a.Logger)
	healthService := services.NewHealthService(Version, a.Paths, a.Logger)

	reportHandler := transport.NewReportHandler(reportService, a.Config.Server.MaxUploadBytes, a.Logger, errorHandler)
	healthHandler := transport.NewHealthHandler(healthService, a.Logger)

	r := chi.NewRouter()

	r.Use(custommw.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(custommw.StructuredLogger(a.Logger))
	r.Use(errorHandler.Recoverer)
	if a.Config.Security.RateLimit.Enabled {
		r.Use(custommw.RateLimit(a.Config.Security.RateLimit, func(w http.ResponseWriter, r *http.Request) {
			errorHandler.HandleError(w, r, apierrors.ErrRateLimitExceeded)
		}))
	}
	r.Use(chimiddleware.Timeout(a.Config.Server.WriteTimeout))
	if a.Config.Security.EnableCORS {
		r.Use(custommw.CORS(a.Config.Security))
	}

	r.Get("/healthz", healthHandler.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Mount("/reports", reportHandler.Routes())
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		errorHandler.HandleError(w, r, apierrors.ErrNotFound)
	})

	a.Router = r
}

// Run starts the HTTP server and blocks until shutdown.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("server starting",
			slog.String("addr", a.server.Addr),
			slog.String("version", Version))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	a.Logger.Info("shutting down",
		slog.Duration("timeout", a.Config.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	a.Logger.Info("server stopped")
	return nil
}
