package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rcarvalho-pb/billing_engine-go/internal/application/batch"
	"github.com/rcarvalho-pb/billing_engine-go/internal/application/billing"
	"github.com/rcarvalho-pb/billing_engine-go/internal/infra/config"
	"github.com/rcarvalho-pb/billing_engine-go/internal/infra/logging"
	"github.com/rcarvalho-pb/billing_engine-go/internal/infra/metrics"
	"github.com/rcarvalho-pb/billing_engine-go/internal/infrastructure/eventbus"
	httpapi "github.com/rcarvalho-pb/billing_engine-go/internal/infrastructure/http"
	"github.com/rcarvalho-pb/billing_engine-go/internal/infrastructure/notifications"
	"github.com/rcarvalho-pb/billing_engine-go/internal/infrastructure/outbox"
	"github.com/rcarvalho-pb/billing_engine-go/internal/infrastructure/persistence/sqlite"
	"github.com/rcarvalho-pb/billing_engine-go/internal/infrastructure/providers"
	"github.com/rcarvalho-pb/billing_engine-go/internal/infrastructure/scheduling"
	"github.com/rcarvalho-pb/billing_engine-go/internal/infrastructure/seed"
)

func main() {
	cfg := config.Load()

	logger, err := logging.NewZapLogger(cfg.Development)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := sqlite.RunMigrations(db); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	invoiceRepo := sqlite.NewInvoiceRepository(db)
	customerRepo := sqlite.NewCustomerRepository(db)

	if cfg.SeedOnEmpty {
		existing, err := invoiceRepo.FindAll()
		if err != nil {
			log.Fatalf("check seed state: %v", err)
		}
		if len(existing) == 0 {
			if err := seed.Run(customerRepo, invoiceRepo, logger); err != nil {
				log.Fatalf("seed: %v", err)
			}
		}
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	outboxRepo := outbox.NewSQLiteRepository(db)
	recorder := &outbox.Recorder{Repo: outboxRepo}

	bus := eventbus.NewInMemoryBus()
	bus.SubscribeAll((&notifications.LogHandler{Logger: logger}).Handle)

	dispatcher := &outbox.Dispatcher{
		Repo:         outboxRepo,
		EventBus:     bus,
		Logger:       logger,
		PollInterval: cfg.OutboxPoll,
		BatchSize:    cfg.OutboxBatch,
	}
	go dispatcher.Run(ctx)

	billingService := &billing.Service{
		Provider:  providers.NewRandomPaymentProvider(time.Now().UnixNano(), 0.3),
		Converter: providers.NewRateTableConverter(),
		Customers: customerRepo,
		Invoices:  invoiceRepo,
		Events:    recorder,
		Logger:    logger,
		Metrics:   m,
	}

	retrier := &billing.Retrier{
		Charger:    billingService,
		MaxRetries: cfg.MaxRetries,
		Delay:      cfg.RetryDelay,
		Logger:     logger,
		Metrics:    m,
	}

	job, err := batch.NewJob(invoiceRepo, retrier, logger, m, cfg.MaxWorkers)
	if err != nil {
		log.Fatalf("batch job: %v", err)
	}

	scheduler := scheduling.New(cfg.BillingCron, job, logger)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("scheduler: %v", err)
	}

	handler := &httpapi.Handler{
		Invoices:  invoiceRepo,
		Customers: customerRepo,
		Job:       job,
		Logger:    logger,
	}

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      httpapi.NewRouter(handler),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  time.Minute,
	}

	go func() {
		logger.Info("http server listening", map[string]any{"addr": cfg.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server stopped", map[string]any{"error": err.Error()})
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down", nil)

	<-scheduler.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", map[string]any{"error": err.Error()})
	}
}
