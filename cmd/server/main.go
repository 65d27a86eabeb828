package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"                      // optional .env for local runs
	"github.com/labstack/echo/v4"                   // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware" // request id and panic recovery

	"github.com/iliyamo/gotanda-lunch/internal/config"
	"github.com/iliyamo/gotanda-lunch/internal/database"
	"github.com/iliyamo/gotanda-lunch/internal/handler"
	"github.com/iliyamo/gotanda-lunch/internal/logging"
	"github.com/iliyamo/gotanda-lunch/internal/middleware"
	"github.com/iliyamo/gotanda-lunch/internal/queue"
	"github.com/iliyamo/gotanda-lunch/internal/repository"
	"github.com/iliyamo/gotanda-lunch/internal/router"
	"github.com/iliyamo/gotanda-lunch/internal/service"
)

func main() {
	_ = godotenv.Load() // a missing .env is fine; real deployments use the environment

	boot := logging.New(os.Stderr, os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	cfg, err := config.Load()
	if err != nil {
		boot.Fatal().Err(err).Msg("configuration error")
	}
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat).With().Str("env", cfg.Env).Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	target, _ := config.ParseStoreURL(cfg.StoreURL) // validated by config.Load
	db, err := database.Open(ctx, target, cfg.StoreAccessKey)
	if err != nil {
		logger.Fatal().Err(err).Str("addr", target.Addr).Msg("store connection failed")
	}
	defer db.Close()

	rdb := config.NewRedisClient(ctx)
	if rdb == nil {
		logger.Warn().Msg("redis unavailable, review rate limiting disabled")
	} else {
		defer rdb.Close()
	}

	catalog := service.NewCatalogService(repository.NewRestaurantRepo(db))
	reviews := service.NewReviewService(catalog, queue.NewPublisher(cfg.RabbitMQURL), nil)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(logger))

	router.RegisterRoutes(e, db)
	router.RegisterPublic(e, handler.NewRestaurantHandler(catalog))
	router.RegisterReviews(e, handler.NewReviewHandler(reviews),
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	addr := ":" + cfg.Port
	go func() {
		logger.Info().Str("addr", addr).Msg("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
}
