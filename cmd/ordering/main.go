package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quickbite/ordering/internal/cart"
	"github.com/quickbite/ordering/internal/catalog"
	"github.com/quickbite/ordering/internal/config"
	"github.com/quickbite/ordering/internal/db"
	"github.com/quickbite/ordering/internal/events"
	httpapi "github.com/quickbite/ordering/internal/http"
	"github.com/quickbite/ordering/internal/order"
	"github.com/quickbite/ordering/internal/user"
)

func main() {
	logger := log.New(os.Stdout, "[ordering] ", log.LstdFlags|log.Lshortfile)

	cfg := config.Load()

	policy, ok := order.ParseMissingProductPolicy(cfg.MissingProductPolicy)
	if !ok {
		logger.Fatalf("invalid MISSING_PRODUCT_POLICY %q", cfg.MissingProductPolicy)
	}

	database, err := db.Open(cfg)
	if err != nil {
		logger.Fatalf("open db: %v", err)
	}
	defer database.Close()

	if err := db.Migrate(database, cfg.DBDriver, logger); err != nil {
		logger.Fatalf("migrate: %v", err)
	}

	catalogRepo := catalog.NewRepository(database)
	userRepo := user.NewRepository(database)
	orderRepo := order.NewRepository(database, cfg.DBDriver)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := catalog.Seed(ctx, catalogRepo); err != nil {
		cancel()
		logger.Fatalf("seed catalog: %v", err)
	}
	cancel()

	// Event publishing is opt-in; without a broker orders are simply not
	// announced.
	var publisher *events.Publisher
	if cfg.RabbitURL != "" {
		conn, err := events.Dial(cfg.RabbitURL)
		if err != nil {
			logger.Fatalf("rabbitmq: %v", err)
		}
		defer conn.Close()

		publisher, err = events.NewPublisher(conn)
		if err != nil {
			logger.Fatalf("rabbitmq publisher: %v", err)
		}
		defer publisher.Close()
	}

	handler := httpapi.NewHandler(
		catalogRepo, userRepo, orderRepo,
		cart.NewSessions(), publisher, policy, logger,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpapi.NewRouter(handler),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Printf("ordering listening on :%s (db=%s, policy=%s)", cfg.Port, cfg.DBDriver, policy)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}
