package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	cartController "github.com/raditia/gerai/internal/cart/controller"
	cartService "github.com/raditia/gerai/internal/cart/service"
	"github.com/raditia/gerai/cart/pkg/store"
	"github.com/raditia/gerai/internal/clock"
	"github.com/raditia/gerai/internal/config"
	"github.com/raditia/gerai/internal/constants"
	"github.com/raditia/gerai/internal/infra"
	"github.com/raditia/gerai/internal/log"
	"github.com/raditia/gerai/internal/middleware"
	"github.com/raditia/gerai/internal/otel"
	"github.com/raditia/gerai/internal/repository"
	notificationController "github.com/raditia/gerai/internal/notification/controller"
	notificationService "github.com/raditia/gerai/internal/notification/service"
	orderController "github.com/raditia/gerai/internal/order/controller"
	orderService "github.com/raditia/gerai/internal/order/service"
	productController "github.com/raditia/gerai/internal/product/controller"
	productService "github.com/raditia/gerai/internal/product/service"
	userController "github.com/raditia/gerai/internal/user/controller"
	userService "github.com/raditia/gerai/internal/user/service"
)

func runStorefrontService(c context.Context) {
	appName := constants.AppStorefront

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

	carts := store.NewManager(store.NewRedisPersister(cache))
	carts.OnSaveError = func(sessionId string, err error) {
		logger.Error().
			Err(err).
			Str(log.KeySessionID, sessionId).
			Msgf("failed persisting cart with error=%s", err.Error())
	}

	registry := prometheus.NewRegistry()

	logger.Info().Str(log.KeyProcess, "Start Server").Msg("initializing router")
	router := mux.NewRouter()
	router.Use(otelmux.Middleware(appName), middleware.Logging, middleware.RecoverPanic)
	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).
		Methods(http.MethodGet)

	// Storefront traffic honors the opening schedule; metrics scraping does not.
	api := router.NewRoute().Subrouter()
	api.Use(middleware.ShopSchedule(cfg.Schedule, clock.System{}))
	authed := api.NewRoute().Subrouter()
	authed.Use(middleware.Auth(cfg.Application.SecretKey, cache))

	cartSvc := cartService.NewCartService(queries, carts, registry)
	cartController.AttachCartController(api, &cartSvc)

	checkoutSvc := orderService.NewCheckoutService(queries, carts, cfg.Whatsapp)
	orderController.AttachCheckoutController(api, checkoutSvc)

	productSvc := productService.NewProductService(queries, cache)
	productController.AttachProductController(api, &productSvc)

	userSvc := userService.NewUserService(queries, cache, cfg.Application, clock.System{})
	userController.AttachUserController(api, authed, userSvc)

	notificationSvc := notificationService.NewNotificationService(queries, cache)
	notificationSvc.StartSubscriber(c)
	defer func() {
		if err := notificationSvc.Close(); err != nil {
			logger.Error().
				Err(err).
				Msgf("failed closing notification subscriber with error=%s", err.Error())
		}
	}()
	notificationController.AttachNotificationController(authed, notificationSvc)
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
