package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"rosterdesk/internal/config"
	"rosterdesk/internal/dashboard"
	"rosterdesk/internal/queue"
	"rosterdesk/internal/roster"
	"rosterdesk/internal/store"
)

// Worker consumes roster change messages published by the API and writes an
// audit line plus the refreshed cohort summary for each of them.
func main() {
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("shutdown signal received")
		cancel()
	}()

	if cfg.StoreBackend == config.BackendMemory || cfg.QueueBackend != config.BackendRedis {
		log.Fatalf("worker needs a shared roster and queue: set STORE_BACKEND=postgres|sqlite and QUEUE_BACKEND=redis (got %s/%s)",
			cfg.StoreBackend, cfg.QueueBackend)
	}

	db, err := store.NewDB(ctx, cfg.StoreBackend, cfg.DSN())
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer db.Close()

	repo := roster.NewSQLRepository(db.Client)
	if err := repo.Migrate(ctx); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}

	redisClient := store.NewRedis(cfg.RedisAddr)
	defer redisClient.Close()
	if !redisClient.Healthy(ctx) {
		log.Printf("WARNING: redis at %s not reachable, will keep polling", cfg.RedisAddr)
	}

	// read-only: nothing is published from here
	svc := dashboard.NewService(roster.NewStore(repo), nil, nil)

	messages, err := queue.NewRedisQueue(redisClient.Client, queue.DefaultKey).Consume(ctx)
	if err != nil {
		log.Fatalf("queue consume init failed: %v", err)
	}

	log.Println("worker started, waiting for messages...")
	n := dashboard.Audit(ctx, messages, svc)
	log.Printf("worker stopped after %d messages", n)
}
