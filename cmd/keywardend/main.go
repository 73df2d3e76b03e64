// Package main initializes and starts the keywarden vault daemon,
// setting up configuration, logging, the entry store, handlers, and TLS.
package main

import (
	"cmp"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"github.com/keywarden/keywarden/internal/certgen"
	"github.com/keywarden/keywarden/internal/config"
	"github.com/keywarden/keywarden/internal/db"
	"github.com/keywarden/keywarden/internal/logger"
	"github.com/keywarden/keywarden/internal/repository"
	"github.com/keywarden/keywarden/internal/server/handler/http"
	"github.com/keywarden/keywarden/internal/service"
	"github.com/keywarden/keywarden/internal/storage"
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

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Shut down on SIGINT/SIGTERM; the same context stops the purger.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Pick the entry store: Postgres when a DSN is configured, the JSON
	// file store otherwise.
	var store service.KeyStore
	if options.DatabaseDSN != "" {
		postgresDB, err := db.InitPostgres(options.DatabaseDSN)
		if err != nil {
			zapLogger.Fatal("cannot init database", zap.Error(err))
		}

		db.StartTombstoneCleaner(ctx, postgresDB,
			time.Hour,       // interval
			30*24*time.Hour, // retention: 30 days
			zapLogger,
		)
		store = repository.NewPostgresEntryRepository(postgresDB)
	} else {
		fileStore, err := storage.NewFileStore(options.StoreFile)
		if err != nil {
			zapLogger.Fatal("cannot open file store", zap.Error(err))
		}
		store = fileStore
	}

	// Initialize the business-logic service and HTTP handlers.
	keeper := service.NewKeeperService(store)
	keysHandler := &http.KeysHandler{KeeperService: keeper}
	verifyHandler := &http.VerifyHandler{}

	// Build the router with middleware and routes.
	router := http.NewRouter(keysHandler, verifyHandler, zapLogger)

	// Make sure the serving certificate exists, generating it on first run.
	certPath, keyPath, err := certgen.EnsureServerCert(options.CertDir)
	if err != nil {
		zapLogger.Fatal("failed to provision TLS cert/key", zap.Error(err))
	}

	server := &nethttp.Server{
		Addr:      options.Address,
		Handler:   router,
		TLSConfig: &tls.Config{MinVersion: tls.VersionTLS12},
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zapLogger.Error("shutdown failed", zap.Error(err))
		}
	}()

	zapLogger.Info("starting HTTPS server", zap.String("addr", options.Address))
	if err := server.ListenAndServeTLS(certPath, keyPath); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		zapLogger.Fatal("failed to start HTTPS server", zap.Error(err))
	}
	zapLogger.Info("server stopped")
}
