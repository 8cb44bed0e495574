// Package main initializes and starts the password vault HTTP server,
// setting up configuration, logging, the SQLite store, repositories,
// services, and handlers.
package main

import (
	"cmp"
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"github.com/mconti/passvault/internal/config"
	"github.com/mconti/passvault/internal/db"
	"github.com/mconti/passvault/internal/logger"
	"github.com/mconti/passvault/internal/repository"
	"github.com/mconti/passvault/internal/server/handler/http"
	"github.com/mconti/passvault/internal/service"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()
	addr := options.Port
	dbPath := options.DatabasePath

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Open the vault database and ensure the schema exists.
	vaultDB, err := db.InitSQLite(dbPath)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}
	defer vaultDB.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Periodic WAL checkpoint and optimize.
	db.StartMaintenance(ctx, vaultDB, time.Hour, zapLogger)

	// Initialize repositories for the master secret and the credentials.
	masterRepo := repository.NewSQLiteMasterRepository(vaultDB)
	credRepo := repository.NewSQLiteCredentialRepository(vaultDB)

	// Initialize the vault service.
	vaultService := service.NewVaultService(masterRepo, credRepo)

	// Create HTTP handlers for the vault endpoints.
	vaultHandler := &http.VaultHandler{VaultService: vaultService}

	// Build the router with middleware and routes.
	router := http.NewRouter(vaultHandler, zapLogger)

	// Create and start the HTTP server. The service is local-only; the
	// default address binds to loopback.
	server := &nethttp.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zapLogger.Error("server shutdown failed", zap.Error(err))
		}
	}()

	zapLogger.Info("starting HTTP server", zap.String("addr", addr), zap.String("db", dbPath))
	if err := server.ListenAndServe(); err != nil && err != nethttp.ErrServerClosed {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
	zapLogger.Info("server stopped")
}
