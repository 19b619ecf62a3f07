package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mrlokans/faculty/internal/config"
	http_controllers "github.com/mrlokans/faculty/internal/http"
	"github.com/mrlokans/faculty/internal/logger"
	"github.com/mrlokans/faculty/internal/scheduler"
	"github.com/mrlokans/faculty/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until ctx is cancelled or the listener fails,
// then shuts it down within the configured timeout.
func Serve(ctx context.Context, handler http.Handler, cfg *config.Config, log *logger.Logger, onShutdown ShutdownFunc) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server", "timeout", timeout)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		// Call shutdown callback first (e.g., to stop task queue)
		if onShutdown != nil {
			onShutdown(shutdownCtx)
		}

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		log.Info("Server exiting")
		return nil
	})

	return g.Wait()
}

// Run wires the application and serves until SIGINT or SIGTERM.
func Run(cfg *config.Config, version string) error {
	log, err := logger.New(cfg.Log.Mode, cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	log.Info("Starting faculty", "version", version, "db_driver", cfg.Database.Driver)

	app, err := NewApp(cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Error("Error closing database", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Without a queue the cleanup runs inline on the cron goroutine
	var enqueuer scheduler.CleanupEnqueuer = tasks.InlineAuditCleanup{Cleaner: app.Audit, Log: log}

	var taskClient *tasks.Client
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(tasks.ConfigFrom(cfg.Tasks), log)
		if err != nil {
			return fmt.Errorf("failed to initialize task queue: %w", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Error("Error closing task client", "error", err)
			}
		}()

		taskClient.Register(tasks.NewCleanupAuditEventsQueue(app.Audit, log))
		taskClient.Start(ctx)
		enqueuer = taskClient
	}

	cleanup := scheduler.NewAuditCleanupScheduler(enqueuer, cfg.Audit.CleanupSchedule, cfg.Audit.RetentionDays, log)
	if err := cleanup.Start(ctx); err != nil {
		return err
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Students:    app.Students,
		Grades:      app.Grades,
		Audit:       app.Audit,
		Database:    app.DB,
		Logger:      log,
		CORSOrigins: cfg.CORS.AllowOrigins,
		Version:     version,
	})

	onShutdown := func(ctx context.Context) {
		cleanup.Stop()
		if taskClient != nil {
			taskClient.Stop(ctx)
		}
	}

	return Serve(ctx, router, cfg, log, onShutdown)
}
