package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/lib/pq"

	"leasehold/internal/docstore"
	"leasehold/internal/household/handler"
	householdmetrics "leasehold/internal/household/metrics"
	"leasehold/internal/household/service"
	childstore "leasehold/internal/household/store/child"
	documentstore "leasehold/internal/household/store/document"
	tenantstore "leasehold/internal/household/store/tenant"
	"leasehold/internal/notify"
	"leasehold/internal/platform/config"
	"leasehold/internal/platform/httpserver"
	"leasehold/internal/platform/logger"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in internal/household.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	metrics := householdmetrics.New()
	notifier := notify.NewLogNotifier(log, cfg.MailFrom)
	blobs := docstore.NewLocal(os.TempDir(), cfg.AgreementBaseURL)

	var (
		stores service.Stores
		tx     service.StoreTx
	)
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Error("failed to open database", "error", err.Error())
			os.Exit(1)
		}
		if err := db.PingContext(context.Background()); err != nil {
			log.Error("failed to reach database", "error", err.Error())
			os.Exit(1)
		}
		stores = service.Stores{
			Tenants:   tenantstore.NewPostgres(db),
			Children:  childstore.NewPostgres(db),
			Documents: documentstore.NewPostgres(db),
		}
		tx = newHouseholdPostgresTx(db, config.TxTimeout)
	} else {
		// No DATABASE_URL: run on in-memory stores. Useful for local
		// iteration; state does not survive restarts.
		log.Warn("DATABASE_URL not set, using in-memory stores")
		stores = service.Stores{
			Tenants:   tenantstore.NewInMemory(),
			Children:  childstore.NewInMemory(),
			Documents: documentstore.NewInMemory(),
		}
		tx = service.NewInMemoryStoreTx(stores)
	}

	svc := service.New(stores.Tenants, stores.Children, stores.Documents, tx,
		service.WithLogger(log),
		service.WithMetrics(metrics),
		service.WithNotifier(notifier),
		service.WithBlobStore(blobs),
	)

	router := chi.NewRouter()
	handler.New(svc, log).Register(router)
	router.Handle("/metrics", promhttp.Handler())

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting leasehold server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err.Error())
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err.Error())
		os.Exit(1)
	}
}
