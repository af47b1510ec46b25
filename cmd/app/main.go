package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orderlifecycle/api"
	"orderlifecycle/cmd"
	grpcserver "orderlifecycle/internal/adapters/in/grpc"
	httpadapter "orderlifecycle/internal/adapters/in/http"
	"orderlifecycle/internal/adapters/out/postgres"
	"orderlifecycle/internal/jobs"
	"orderlifecycle/internal/platform/observability"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

const shutdownTimeout = 15 * time.Second

func main() {
	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	instruments, shutdownTelemetry, err := observability.Init(ctx, observability.Settings{
		ServiceName:  cmd.ServiceName,
		Environment:  configs.Environment,
		OTLPEndpoint: configs.OTLPEndpoint,
	})
	if err != nil {
		log.Fatalf("Error initialising telemetry: %v", err)
	}
	logger := instruments.Logger
	logger.InfoContext(ctx, "starting", "config", configs.String())

	gormDB, err := postgres.Open(ctx, configs.DatabaseSettings(), logger)
	if err != nil {
		log.Fatalf("Error opening order store: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, instruments)
	if err != nil {
		log.Fatalf("Error wiring application: %v", err)
	}

	jobManager := jobs.NewJobManager(logger, app.Jobs()...)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}

	stopGRPC, err := grpcserver.Start(configs.GRPCAddress, app.NewGRPCServer(), app.Verifier(), logger)
	if err != nil {
		log.Fatalf("Error starting gRPC server: %v", err)
	}

	e, err := newWebServer(app, logger)
	if err != nil {
		log.Fatalf("Error building HTTP server: %v", err)
	}
	go func() {
		if serveErr := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logger.Error("http server stopped", "error", serveErr)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err = errors.Join(
		e.Shutdown(shutdownCtx),
		stopGRPC(shutdownCtx),
	)
	jobManager.StopAll()
	err = errors.Join(err,
		app.Close(),
		postgres.Close(gormDB),
		shutdownTelemetry(shutdownCtx),
	)
	if err != nil {
		logger.Error("shutdown", "error", err)
		os.Exit(1)
	}
}

func newWebServer(app *cmd.CompositionRoot, logger *slog.Logger) (*echo.Echo, error) {
	doc, err := api.Load()
	if err != nil {
		return nil, err
	}
	return httpadapter.NewRouter(app.NewHTTPServer(), httpadapter.RouterOptions{
		ServiceName: cmd.ServiceName,
		Verifier:    app.Verifier(),
		Spec:        doc,
		Logger:      logger,
	})
}
