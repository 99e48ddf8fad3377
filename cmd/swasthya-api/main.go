package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Rohanpawar9921/Swasthya/internal/config"
	"github.com/Rohanpawar9921/Swasthya/internal/database"
	httpapi "github.com/Rohanpawar9921/Swasthya/internal/http"
	"github.com/Rohanpawar9921/Swasthya/internal/logger"
	"github.com/Rohanpawar9921/Swasthya/internal/repository"
	"github.com/Rohanpawar9921/Swasthya/internal/service"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "swasthya-api")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Stores: Postgres when available, in-memory fallback so local
	// `go run` still serves the dashboard without a database.
	var db *sql.DB
	var usersRepo repository.UsersRepo = repository.NewMemoryUsersRepo()
	var reportsRepo repository.ReportsRepo = repository.NewMemoryReportsRepo()
	var sensorsRepo repository.SensorsRepo = repository.NewMemorySensorsRepo()

	if cfg.DBEnabled {
		if d, err := database.NewPostgres(&cfg.Database); err == nil {
			db = d
			usersRepo = repository.NewPostgresUsersRepo(db)
			reportsRepo = repository.NewPostgresReportsRepo(db)
			sensorsRepo = repository.NewPostgresSensorsRepo(db)
			log.Info("DB enabled for swasthya-api")
		} else {
			log.Warn("DB enabled but connection failed, falling back to in-memory stores", zap.Error(err))
		}
	}

	tokens := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.TokenTTL)
	authService := service.NewAuthService(usersRepo, tokens, log)
	reportService := service.NewReportService(reportsRepo, log)
	sensorService := service.NewSensorService(sensorsRepo, log)

	auth := httpapi.NewAuthenticator(tokens, usersRepo, log)
	router := httpapi.NewRouter(log)
	router.RegisterRootRoute()
	router.RegisterAuthRoutes(httpapi.NewAuthHandler(authService, tokens, log))
	router.RegisterHealthInputRoutes(httpapi.NewHealthInputHandler(reportService, log), auth)
	router.RegisterSensorRoutes(httpapi.NewSensorHandler(sensorService, log))

	srv := service.NewServer(cfg.HTTP.Addr, httpapi.CORS(router), log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("HTTP server exited", zap.Error(err))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
	if db != nil {
		_ = db.Close()
	}
}
