package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"dispatch/cmd"
	apihttp "dispatch/internal/adapters/in/http"
	"dispatch/internal/generated/servers"
	"dispatch/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

const apiBasePath = "/api/v1"

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to the YAML config file")
	flag.Parse()

	configs, err := cmd.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	if err = configs.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	appLogger := logger.New(configs.Logging, os.Stdout)
	slog.SetDefault(appLogger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := cmd.NewCompositionRoot(ctx, configs, appLogger)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}
	defer func() {
		if closeErr := app.Close(context.Background()); closeErr != nil {
			appLogger.Error("failed to release resources", "error", closeErr)
		}
	}()

	if configs.Reconciliation.Enabled {
		jobManager := app.CreateJobManager()
		if err = jobManager.StartAll(); err != nil {
			appLogger.Error("failed to start jobs", "error", err)
			return
		}
		defer jobManager.StopAll()
	}

	if err = startWebServer(ctx, app, configs, appLogger); err != nil {
		appLogger.Error("web server stopped", "error", err)
	}
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, configs cmd.Config, appLogger *slog.Logger) error {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.INFO)
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	docs, err := servers.GetSwagger()
	if err != nil {
		return err
	}
	if err = apihttp.RegisterSwagger(e, docs); err != nil {
		return err
	}

	contract, err := servers.GetSwagger()
	if err != nil {
		return err
	}
	validator, err := apihttp.RequestValidator(contract, apiBasePath)
	if err != nil {
		return err
	}

	api := e.Group(apiBasePath,
		validator,
		apihttp.RateLimit(app.CreateRateLimiter(ctx), configs.HTTP.RateLimit, configs.HTTP.RateWindow),
	)
	servers.RegisterHandlers(api, apihttp.NewServer(app.HTTPHandlers(), appLogger))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(fmt.Sprintf("0.0.0.0:%d", configs.HTTP.Port))
	}()

	select {
	case err = <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), configs.HTTP.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
