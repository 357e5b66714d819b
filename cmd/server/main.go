// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
	"gorm.io/gorm"

	"github.com/javajoker/dress-catalog/internal/catalog"
	"github.com/javajoker/dress-catalog/internal/config"
	"github.com/javajoker/dress-catalog/internal/database"
	"github.com/javajoker/dress-catalog/internal/kvstore"
	"github.com/javajoker/dress-catalog/internal/middleware"
	"github.com/javajoker/dress-catalog/internal/router"
	"github.com/javajoker/dress-catalog/internal/services"
	"github.com/javajoker/dress-catalog/internal/urlstate"
)

const sessionSweepInterval = time.Minute

func main() {
	envFile := flag.StringP("env-file", "e", ".env", "path to an env file")
	seedFile := flag.StringP("seed-file", "s", "", "JSON file with the baseline catalog (overrides CATALOG_SEED_FILE)")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*envFile)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if *seedFile != "" {
		cfg.Catalog.SeedFile = *seedFile
	}

	setupLogging(cfg)

	kv, db, err := openKVStore(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to open storage")
	}
	if db != nil {
		defer database.Close(db)
	}

	baseline, err := catalog.NewSeedProvider(cfg.Catalog.SeedFile).Baseline()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load baseline catalog")
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	store := catalog.NewStore(baseline, kv, catalog.Options{
		DefaultBrand: cfg.Catalog.DefaultBrand,
		Merchant:     cfg.Catalog.SiteLabel,
	})
	store.Load(ctx)

	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize image storage")
	}

	catalogService := services.NewCatalogService(store, urlstate.Defaults{
		MinPrice:  cfg.Catalog.MinPrice,
		MaxPrice:  cfg.Catalog.MaxPrice,
		SiteLabel: cfg.Catalog.SiteLabel,
	})
	sessionService := services.NewSessionService(catalogService, time.Duration(cfg.Catalog.SessionTTL)*time.Minute)
	go sessionService.RunSweeper(ctx, sessionSweepInterval)

	limiters := middleware.NewLimiters()
	limiters.RunCleanup(ctx)

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := router.Initialize(cfg, router.Services{
		Catalog:  catalogService,
		Sessions: sessionService,
		Storage:  storageService,
	}, limiters)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		logrus.WithFields(logrus.Fields{
			"port":     cfg.Server.Port,
			"storage":  cfg.Storage.Driver,
			"products": store.Count(),
			"s3":       storageService.UsesS3(),
		}).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Server forced to shutdown")
		return
	}

	logrus.Info("Server exited")
}

func setupLogging(cfg *config.Config) {
	if cfg.IsProduction() {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.WithField("level", cfg.LogLevel).Warn("Unknown log level, using info")
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

// openKVStore returns the configured backend, plus the database handle when one was opened.
func openKVStore(cfg *config.Config) (kvstore.Store, *gorm.DB, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		return kvstore.NewMemoryStore(), nil, nil
	case config.StorageDriverPostgres:
		db, err := database.Initialize(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		if err := database.RunMigrations(db); err != nil {
			database.Close(db)
			return nil, nil, err
		}
		return kvstore.NewGormStore(db), db, nil
	default:
		return kvstore.NewFileStore(cfg.Storage.Dir), nil, nil
	}
}
