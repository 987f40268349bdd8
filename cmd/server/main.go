package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kamaljewellers/reserveops-backend/internal/adapter/httpapi"
	"github.com/kamaljewellers/reserveops-backend/internal/adapter/notify"
	"github.com/kamaljewellers/reserveops-backend/internal/adapter/repository/postgres"
	"github.com/kamaljewellers/reserveops-backend/internal/config"
	"github.com/kamaljewellers/reserveops-backend/internal/usecase/ledger"
	"github.com/kamaljewellers/reserveops-backend/internal/usecase/notifier"
	"github.com/kamaljewellers/reserveops-backend/internal/usecase/reconciler"
	"github.com/kamaljewellers/reserveops-backend/internal/usecase/seeder"
	"github.com/kamaljewellers/reserveops-backend/internal/usecase/sequence"
)

func main() {
	cfg := config.Load()

	// 1. Setup Database
	// Add 2-second delay to ensure Postgres is up (Simple retry)
	time.Sleep(2 * time.Second)

	db, err := postgres.NewDB(cfg.DBConnStr)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := postgres.Migrate(context.Background(), db); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	// 2. Initialize Repositories (Postgres)
	reserveRepo := postgres.NewReserveRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	recordRepo := postgres.NewRecordRepository(db)
	cashMovementRepo := postgres.NewCashMovementRepository(db)
	userRepo := postgres.NewUserRepository(db)
	tokenRepo := postgres.NewTokenRepository(db)
	orderRepo := postgres.NewOrderRepository(db)

	// 3. Initialize Services (Use Cases)
	var forwarder notifier.Forwarder
	if cfg.DiscordEnabled() {
		discord, err := notify.NewDiscordForwarder(cfg.DiscordBotToken, cfg.DiscordChannelID)
		if err != nil {
			log.Fatalf("Failed to create discord forwarder: %v", err)
		}
		defer discord.Close()
		forwarder = discord
		log.Println("Discord alert forwarding enabled")
	}

	ledgerService := ledger.NewService(reserveRepo)
	notifierService := notifier.NewService(notificationRepo, forwarder)
	reconcilerService := reconciler.NewService(ledgerService, notifierService, recordRepo, cashMovementRepo)
	tokenService := sequence.NewTokenService(tokenRepo)
	orderService := sequence.NewOrderService(orderRepo)

	// Initialize Reserve Seeder and run it
	reserveSeeder := seeder.NewReserveSeeder(reserveRepo)
	ctx := context.Background()
	if err := reserveSeeder.Seed(ctx); err != nil {
		log.Fatalf("Failed to seed reserve documents: %v", err)
	}
	log.Println("Reserve documents seeded successfully")

	// 4. Start HTTP Server
	api := httpapi.NewServer(reconcilerService, ledgerService, notifierService, tokenService, orderService, recordRepo, userRepo)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	mux.Handle("/v1/", httpapi.Auth(cfg.APIToken)(api.Router()))

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mux,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("HTTP server listening on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to serve HTTP server: %v", err)
		}
	}()

	// Graceful shutdown
	waitForShutdown(server)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(server *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.Printf("Received signal: %v. Shutting down gracefully...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}
	log.Println("HTTP server stopped")
}
