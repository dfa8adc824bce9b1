package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/saucerburger/pos-service/internal/auth"
	"github.com/saucerburger/pos-service/internal/backup"
	"github.com/saucerburger/pos-service/internal/config"
	"github.com/saucerburger/pos-service/internal/mail"
	"github.com/saucerburger/pos-service/internal/menu"
	"github.com/saucerburger/pos-service/internal/order"
	"github.com/saucerburger/pos-service/internal/storage"
	"github.com/saucerburger/pos-service/internal/transport"
	"github.com/saucerburger/pos-service/internal/version"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	log.Logger = log.With().Str("service", "pos-service").Logger()

	log.Info().Msg("POS service starting...")

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	store := openStore(cfg.App.DataPath)
	defer store.Close()

	catalog := loadCatalog(cfg.App.CatalogPath)

	backups := backup.NewService(store, cfg.Backup.MaxSnapshots)
	repo := order.NewRepository(store)

	ctx := context.Background()

	// Every store mutation snapshots in the background; failures are
	// logged and never block order flow.
	orders := order.NewService(ctx, repo, func(list []order.Order) {
		if _, err := backups.CreateSnapshot(context.Background(), list, ""); err != nil {
			log.Error().Err(err).Msg("auto-backup snapshot failed")
		}
	})

	var mailer mail.Mailer = mail.Noop{}
	if cfg.Backup.EmailEndpoint != "" {
		mailer = mail.NewClient(cfg.Backup.EmailEndpoint)
	}

	var gate version.Gate = version.Open{}
	if cfg.VersionGate.Endpoint != "" {
		gate = version.NewClient(cfg.VersionGate.Endpoint, cfg.App.Version)
	}

	allowed := cfg.Auth.AllowedUsers
	if len(allowed) == 0 {
		allowed = auth.DefaultAllowedUsers
	}
	secret := cfg.Auth.JWTSecret
	if secret == "" {
		secret = randomSecret()
		log.Warn().Msg("JWT_SECRET not set, using a random secret; sessions will not survive restarts")
	}
	loginGate := auth.NewGate(allowed, secret, cfg.Auth.SessionTTL)

	stopBackups := startPeriodicBackup(orders, backups, mailer, cfg.Backup.Email, cfg.Backup.Interval)
	defer stopBackups()

	router := transport.NewRouter(transport.Deps{
		Catalog:     catalog,
		Orders:      orders,
		Backups:     backups,
		Gate:        loginGate,
		VersionGate: gate,
		Mailer:      mailer,
		BackupEmail: cfg.Backup.Email,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.App.Port).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	log.Info().Msg("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Shutdown failed")
	}
	log.Info().Msg("Server stopped")
}

// openStore opens the local database file, falling back to an in-memory
// store so the counter can keep taking orders even when the disk is
// unusable.
func openStore(path string) storage.Store {
	store, err := storage.OpenBolt(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("failed to open local storage, running in-memory; orders will not survive a restart")
		return storage.NewMemStore()
	}
	return store
}

func loadCatalog(path string) *menu.Catalog {
	if path == "" {
		return menu.Default()
	}
	catalog, err := menu.LoadFile(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("failed to load catalog file, using built-in catalog")
		return menu.Default()
	}
	log.Info().Str("path", path).Int("items", len(catalog.Items)).Msg("catalog loaded")
	return catalog
}

// startPeriodicBackup snapshots and emails the order store on a schedule.
// Both are best-effort: failures are logged and the next tick tries again.
func startPeriodicBackup(orders order.Service, backups *backup.Service, mailer mail.Mailer, email string, interval time.Duration) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
				list := orders.Orders(ctx)
				if _, err := backups.CreateSnapshot(ctx, list, ""); err != nil {
					log.Error().Err(err).Msg("scheduled backup snapshot failed")
				}
				if err := mailer.SendBackup(ctx, list, email); err != nil {
					log.Error().Err(err).Msg("scheduled backup email failed")
				}
				cancel()
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	return func() { close(done) }
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		log.Fatal().Err(err).Msg("failed to generate session secret")
	}
	return hex.EncodeToString(buf)
}
