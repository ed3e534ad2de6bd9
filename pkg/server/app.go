package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	domrepo "github.com/mandarab76/ATS-NSE-Stock-Suite/internal/domain/repository"
	"github.com/mandarab76/ATS-NSE-Stock-Suite/internal/scheduler"
	"github.com/mandarab76/ATS-NSE-Stock-Suite/internal/service/ratelimit"
	"github.com/mandarab76/ATS-NSE-Stock-Suite/pkg/config"
	xhttp "github.com/mandarab76/ATS-NSE-Stock-Suite/pkg/http"
	"github.com/mandarab76/ATS-NSE-Stock-Suite/pkg/http/middleware"
	applogger "github.com/mandarab76/ATS-NSE-Stock-Suite/pkg/logger"
	"github.com/mandarab76/ATS-NSE-Stock-Suite/pkg/queue"

	"github.com/labstack/echo/v4"
)

const slowRequestThreshold = time.Second

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	handler    xhttp.Handler
	sched      *scheduler.Scheduler
	consumer   *queue.RedisQueue
	store      domrepo.SnapshotStore
	limiter    *ratelimit.PerClient
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies. consumer may be nil
// when no redis queue is configured.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	handler xhttp.Handler,
	sched *scheduler.Scheduler,
	consumer *queue.RedisQueue,
	store domrepo.SnapshotStore,
	limiter *ratelimit.PerClient,
) *App {
	return &App{
		cfg:      cfg,
		logger:   logger,
		handler:  handler,
		sched:    sched,
		consumer: consumer,
		store:    store,
		limiter:  limiter,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	mw := []echo.MiddlewareFunc{middleware.Metrics(a.logger, slowRequestThreshold)}
	if a.cfg.RateLimit.Enabled {
		mw = append(mw, middleware.RateLimit(a.limiter))
	}

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithMiddleware(mw...),
	)

	// Start queue consumer if configured
	if a.consumer != nil {
		if err := a.consumer.Start(); err != nil {
			a.logger.Error("queue consumer start error", applogger.Error(err))
			return err
		}
	}

	// Seed history and start the capture schedule
	a.sched.RunCaptureNow()
	a.sched.Start()

	// Start HTTP server
	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("server running",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("environment", a.cfg.Environment))

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	a.sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if a.consumer != nil {
		if err := a.consumer.Stop(shutdownCtx); err != nil {
			a.logger.Warn("queue consumer stop error", applogger.Error(err))
		}
	}

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if err := a.store.Close(); err != nil {
		a.logger.Warn("snapshot store close error", applogger.Error(err))
	}

	a.logger.Info("shutdown complete")
	return nil
}
