package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"classtrack/internal/attendance"
	"classtrack/internal/config"
	"classtrack/internal/metrics"
	"classtrack/internal/queue"
	"classtrack/internal/store"
)

// Worker consumes submission messages and keeps per-class attendance tallies
// warm in Redis so dashboards read them without hitting Postgres.
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

	db, err := store.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer db.Close()

	redisClient := store.NewRedis(cfg.RedisAddr)

	var q queue.Queue
	if cfg.QueueBackend == "memory" {
		q = queue.NewInMemory(64)
	} else {
		q = queue.NewRedisQueue(redisClient.Client, "classtrack:submissions")
	}

	repo := attendance.NewRepository(db)

	messages, err := q.Consume(ctx)
	if err != nil {
		log.Fatalf("queue consume init failed: %v", err)
	}

	log.Println("tally worker started, waiting for submissions...")
	for msg := range messages {
		if msg.Type != queue.TypeSubmission {
			continue
		}

		sessionID := string(msg.Body)
		log.Printf("recomputing tallies for session %s", sessionID)

		classKey, err := repo.ClassKey(ctx, sessionID)
		if err != nil {
			log.Printf("class lookup for %s failed: %v", sessionID, err)
			continue
		}

		tallies, err := repo.TalliesForClass(ctx, sessionID)
		if err != nil {
			log.Printf("tally query for %s failed: %v", sessionID, err)
			continue
		}

		redisClient.SetJSON(ctx, "classtrack:tally:"+classKey, tallies, 24*time.Hour)
		metrics.TalliesProcessedTotal.Inc()
		log.Printf("session %s: %d student tallies cached for class %s", sessionID, len(tallies), classKey)
	}

	log.Println("worker stopped")
}
