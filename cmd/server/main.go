// Package main starts the development API server: configuration, logging,
// PostgreSQL, repositories, services, handlers and the HTTP router.
package main

import (
	"cmp"
	"context"
	"fmt"
	"time"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/vietsport/eprofile/internal/config"
	"github.com/vietsport/eprofile/internal/db"
	"github.com/vietsport/eprofile/internal/logger"
	"github.com/vietsport/eprofile/internal/repository"
	"github.com/vietsport/eprofile/internal/server/handler/http"
	"github.com/vietsport/eprofile/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("load config: %v", err))
	}

	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("init logger: %v", err))
	}
	defer func() { _ = log.Sync() }()

	postgresDB, err := db.InitPostgres(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal("cannot init database", zap.Error(err))
	}

	db.StartSoftDeleteCleaner(context.Background(), postgresDB,
		time.Hour,       // interval
		30*24*time.Hour, // retention: 30 days
		log,
	)

	usersRepo := repository.NewPostgresUsersRepository(postgresDB)
	recordsRepo := repository.NewPostgresRecordsRepository(postgresDB)

	tokens := service.NewTokenIssuer(cfg.JWTSecret, time.Duration(cfg.AccessTokenTTLMinutes)*time.Minute)
	authService := service.NewAuthService(usersRepo, tokens)
	recordsService := service.NewRecordsService(recordsRepo, usersRepo)

	authHandler := &http.AuthHandler{AuthService: authService}
	recordsHandler := &http.RecordsHandler{RecordsService: recordsService}

	router := http.NewRouter(authHandler, recordsHandler, log, []byte(cfg.JWTSecret))

	server := &nethttp.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	log.Info("starting HTTP server", zap.String("addr", cfg.Addr))
	if err := server.ListenAndServe(); err != nil {
		log.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
