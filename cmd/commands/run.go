package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"komari"
	"komari/internal/application/state"
	"komari/internal/application/usecase"
	"komari/internal/infrastructure/broker"
	"komari/internal/infrastructure/database"
	"komari/internal/infrastructure/fetcher"
	"komari/internal/infrastructure/grpcserver"
	"komari/internal/infrastructure/minio"
	"komari/internal/infrastructure/wallpaper"
	"komari/internal/presentation"
	"komari/internal/presentation/handler"
	"komari/internal/presentation/middleware"
	"komari/pkg/logger"
)

func HandleRun(args []string) {
	cfg := loadConfig(args)

	logger.Info("running komari", "version", komari.StringVersion())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg.DBConfig)
	if err != nil {
		ExitOnError(err)
	}

	dbFinder := database.NewWallpaperFinder(db)
	dbRetriever := database.NewWallpaperRetriever(db)
	gateway := usecase.NewGateway(dbFinder, dbRetriever)

	holder := state.NewHolder(ctx, gateway)
	holder.Refresh()
	holder.TestConnection()

	brokerClient, err := broker.NewClient(cfg.BrokerConfig)
	if err != nil {
		ExitOnError(err)
	}

	brokerPublisher := broker.NewPublisher(brokerClient, cfg.PublisherConfig)

	minIOClient, err := minio.New(&cfg.MinIOClient)
	if err != nil {
		ExitOnError(err)
	}

	if err := minIOClient.EnsureBucket(ctx, cfg.MinIOUploader.Bucket); err != nil {
		ExitOnError(err)
	}

	minIOUploader := minio.NewUploader(minIOClient.MinioClient, &cfg.MinIOUploader)
	imageFetcher := fetcher.New(cfg.Fetcher)

	downloader := usecase.NewDownloader(brokerPublisher, dbRetriever, imageFetcher, minIOUploader)
	applier := usecase.NewApplier(brokerPublisher, dbRetriever, imageFetcher, wallpaper.NewSetter(cfg.Wallpaper))

	grpcServer := grpcserver.New(cfg.GRPCServer)
	go grpcServer.Follow(ctx, holder.Connection().Watch(ctx))

	go func() {
		if err := grpcServer.Start(); err != nil {
			ExitOnError(fmt.Errorf("grpc server: %w", err))
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType, echo.HeaderContentLength},
		AllowMethods: []string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodOptions},
		MaxAge:       86400,
	}))
	e.Use(echoMiddleware.RequestIDWithConfig(echoMiddleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.Secure())
	e.Use(echoMiddleware.BodyLimit(cfg.Default.BodyLimit))
	e.Use(echoMiddleware.RateLimiter(echoMiddleware.NewRateLimiterMemoryStore(rateLimit(cfg.Default.RateLimit))))

	handler.Register(e, handler.Handlers{
		Wallpaper:   handler.NewWallpaperHandler(holder, gateway),
		Tab:         handler.NewTabHandler(holder),
		Download:    handler.NewDownloadHandler(downloader),
		Set:         handler.NewSetHandler(applier),
		Diagnostics: handler.NewDiagnosticsHandler(holder),
	}, middleware.AuthMiddleware(presentation.DiagnoseAction, cfg.AdminPubKeys))

	go func() {
		if err := e.Start(cfg.Default.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			ExitOnError(fmt.Errorf("shutting down server: %w", err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down komari")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", "err", err)
	}

	grpcServer.Stop()
	holder.Wait()

	if err := brokerClient.Close(); err != nil {
		logger.Error("broker close failed", "err", err)
	}

	if err := db.Stop(); err != nil {
		ExitOnError(err)
	}
}

func rateLimit(perSecond int) rate.Limit {
	if perSecond <= 0 {
		return 20
	}

	return rate.Limit(perSecond)
}
