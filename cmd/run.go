package cmd

import (
	"context"
	"fmt"
	"time"

	"lottostore/application"
	"lottostore/config"
	"lottostore/database"
	"lottostore/domain/interfaces"
	"lottostore/domain/services"
	"lottostore/infrastructure"
	"lottostore/server"

	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Info("Starting lottostore...")

	cfg := config.Get()

	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	log.Info("Database connection established")

	// Event publishing degrades to a no-op if NATS is unreachable; the
	// storefront itself doesn't depend on the bus
	var eventPublisher interfaces.EventPublisher
	natsClient := infrastructure.NewNATSClient(cfg.NATSServers)
	if err := natsClient.Connect(ctx); err != nil {
		log.WithError(err).Warn("NATS unavailable, events disabled")
		eventPublisher = infrastructure.NewNoopEventPublisher()
	} else {
		defer natsClient.Close()
		if err := natsClient.EnsureEventStream(); err != nil {
			return fmt.Errorf("failed to ensure event stream: %w", err)
		}
		eventPublisher = infrastructure.NewNATSEventPublisher(natsClient, infrastructure.NewEventSubjectMapper())
	}

	uowFactory := infrastructure.NewUnitOfWorkFactory(db, eventPublisher)

	worker := application.NewSettlementWorker(uowFactory, services.NewNumberGenerator())
	stopWorker := worker.Start(ctx)
	defer stopWorker()

	srv := server.New(server.Config{
		Addr:            cfg.HTTPAddr,
		JWTSecret:       cfg.JWTSecret,
		TokenTTL:        cfg.TokenTTL,
		StartingBalance: cfg.StartingBalance,
		Environment:     cfg.Environment,
	}, uowFactory)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Run()
	}()

	log.Infof("Storefront is running in %s mode", cfg.Environment)

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("HTTP server shutdown failed")
	}

	log.Info("Shutdown completed")
	return nil
}
