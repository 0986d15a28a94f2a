package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	adminController "github.com/raditia/gerai/internal/admin/controller"
	adminService "github.com/raditia/gerai/internal/admin/service"
	"github.com/raditia/gerai/internal/config"
	"github.com/raditia/gerai/internal/constants"
	"github.com/raditia/gerai/internal/infra"
	"github.com/raditia/gerai/internal/log"
	"github.com/raditia/gerai/internal/middleware"
	"github.com/raditia/gerai/internal/otel"
	"github.com/raditia/gerai/internal/repository"
)

func runAdminService(c context.Context) {
	appName := constants.AppAdmin

	logger := log.InitLogger(fmt.Sprintf("/var/log/%s.log", appName)).
		With().
		Str(log.KeyAppName, appName).
		Logger()
	c = logger.WithContext(c)

	cfg := config.InitConfig(c, appName)

	logger.Info().Str(log.KeyProcess, "InitOtelSdk").Msg("initializing otel sdk")
	shutdownFuncs, err := otel.InitOtelSdk(c, appName, cfg.Otel)
	if err != nil {
		logger.Error().
			Err(err).
			Str(log.KeyProcess, "InitOtelSdk").
			Msgf("failed initializing otel sdk with error=%s", err.Error())
	}
	logger.Info().Str(log.KeyProcess, "InitOtelSdk").Msg("initialized otel sdk")

	pool := infra.NewDatabaseClient(c, cfg.Database)
	defer pool.Close()
	queries := repository.New(pool)

	cache := infra.NewCacheClient(c, cfg.Cache)
	defer cache.Close()

	storage := infra.NewStorageClient(logger, cfg.Storage)

	logger.Info().Str(log.KeyProcess, "Start Server").Msg("initializing router")
	router := mux.NewRouter()
	router.Use(otelmux.Middleware(appName), middleware.Logging, middleware.RecoverPanic)

	authed := router.NewRoute().Subrouter()
	authed.Use(middleware.Auth(cfg.Application.SecretKey, cache), middleware.AdminOnly(cache))

	adminSvc := adminService.NewAdminService(queries, cache, storage, cfg.Storage)
	adminController.AttachAdminController(authed, adminSvc)
	logger.Info().Str(log.KeyProcess, "Start Server").Msg("initialized router")

	server := http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Application.Host, cfg.Application.Port),
		BaseContext:  func(net.Listener) context.Context { return c },
		Handler:      router,
		ReadTimeout:  45 * time.Second,
		WriteTimeout: 45 * time.Second,
	}

	go func() {
		logger.Info().
			Str(log.KeyProcess, "Start Server").
			Msgf("start listening request at %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().
				Err(err).
				Str(log.KeyProcess, "Shutdown Server").
				Msgf("error=%s occured while server is running", err.Error())
		}
	}()

	<-c.Done()
	logger.Info().
		Str(log.KeyProcess, "Shutdown Server").
		Msg("received interruption signal shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().
			Err(err).
			Str(log.KeyProcess, "Shutdown Server").
			Msgf("failed shutting down server with error=%s", err.Error())
	}
	if err := otel.ShutdownOtel(shutdownCtx, shutdownFuncs); err != nil {
		logger.Error().
			Err(err).
			Str(log.KeyProcess, "Shutdown Server").
			Msgf("failed shutting down otel with error=%s", err.Error())
	}
	logger.Info().Str(log.KeyProcess, "Shutdown Server").Msg("shutdown server")
}
