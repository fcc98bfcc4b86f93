package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brandworks/crm-api/config"
	"github.com/brandworks/crm-api/logger"
	"github.com/brandworks/crm-api/models"
	"github.com/brandworks/crm-api/routes"
	"github.com/brandworks/crm-api/services"
	"github.com/brandworks/crm-api/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zaplog, err := logger.Init(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zaplog.Sync() }()

	if err := run(cfg, zaplog); err != nil {
		zaplog.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zaplog *zap.Logger) error {
	zaplog.Info("starting CRM API server", zap.String("env_file", cfg.EnvFile))

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := config.ConnectDatabase(cfg); err != nil {
		return err
	}
	if err := config.GetDB().AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	zaplog.Info("database migration completed", zap.String("driver", cfg.DatabaseDriver))

	if err := initImageService(cfg); err != nil {
		return err
	}

	router, err := routes.NewRouter(cfg, zaplog)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zaplog.Info("server is listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zaplog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// initImageService selects where employee uploads are stored
func initImageService(cfg *config.Config) error {
	switch cfg.UploadBackend {
	case "s3":
		s3Service, err := services.NewS3Service(context.Background(), cfg)
		if err != nil {
			return err
		}
		services.SetImageService(services.NewS3ImageService(s3Service))
		zap.L().Info("storing uploads in S3", zap.String("bucket", cfg.AWSS3Bucket))
	default:
		utils.UploadDir = cfg.UploadDir
		services.SetImageService(services.NewLocalImageService(cfg.UploadDir))
		zap.L().Info("storing uploads on disk", zap.String("dir", cfg.UploadDir))
	}
	return nil
}
