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

	auction "bazario-bidding/internal/auctionService"
	"bazario-bidding/internal/closer"
	"bazario-bidding/internal/config"
	"bazario-bidding/internal/events"
	"bazario-bidding/internal/metrics"
	"bazario-bidding/internal/repository"
	"bazario-bidding/internal/server"
	"bazario-bidding/utils"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg := config.Load()

	store, err := newStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize storage: %v\n", err)
		os.Exit(1)
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	publisher := events.NewPublisher(cfg.KafkaBrokers)
	defer publisher.Close()

	auctionSvc := auction.NewAuctionService(store).
		WithLockTimeout(cfg.LockTimeout).
		WithPublisher(publisher).
		WithMetrics(m)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	auctionCloser := closer.New(auctionSvc, cfg.CloserInterval)
	go auctionCloser.Run(ctx)

	router := server.SetupRouter(auctionSvc, m)
	srv := &http.Server{
		Addr:    cfg.Port,
		Handler: router,
	}

	go func() {
		utils.Info("Starting auction server", map[string]any{
			"addr":            cfg.Port,
			"storage":         cfg.Storage,
			"closer_interval": cfg.CloserInterval.String(),
			"events_enabled":  publisher.Enabled(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Fatal("Failed to start server", map[string]any{"error": err.Error()})
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Error("Server shutdown failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	utils.Info("Server stopped", nil)
}

// newStore selects the AuctionStore implementation from config
func newStore(cfg config.Config) (repository.AuctionStore, error) {
	switch cfg.Storage {
	case "postgres":
		return repository.NewPostgresStore(cfg.PostgresURL)
	case "memory", "":
		return repository.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Storage)
	}
}
