// FILE: cmd/chessmated/main.go
// Package main implements the chessmate game server: a RESTful API backing
// two-player chess games with SQLite persistence.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chessmate/internal/httpapi"
	"chessmate/internal/service"
	"chessmate/internal/storage"
)

const gracefulShutdownTimeout = time.Second * 5

func main() {
	// Command-line flags
	var (
		apiHost     = flag.String("api-host", "localhost", "API server host")
		apiPort     = flag.Int("api-port", 8080, "API server port")
		dev         = flag.Bool("dev", false, "Development mode (WAL journal, relaxed rate limits)")
		storagePath = flag.String("storage-path", "chessmate.db", "Path to SQLite database file")
	)
	flag.Parse()

	// 1. Initialize storage
	log.Printf("Initializing storage at: %s", *storagePath)
	store, err := storage.NewStore(*storagePath, *dev)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	if err := store.InitDB(); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("Warning: failed to close storage cleanly: %v", err)
		}
	}()

	// 2. Initialize the service on top of storage
	svc := service.New(store)

	// 3. Initialize the Fiber app
	app := httpapi.NewFiberApp(svc, store, *dev)

	apiAddr := fmt.Sprintf("%s:%d", *apiHost, *apiPort)

	// Start API server in a goroutine
	go func() {
		log.Printf("Chessmate API server starting...")
		log.Printf("API Listening on: http://%s", apiAddr)
		if *dev {
			log.Printf("Rate Limit: 20 requests/second per IP (DEV MODE)")
		} else {
			log.Printf("Rate Limit: 10 requests/second per IP")
		}
		log.Printf("API Endpoints: http://%s/api/v1/games", apiAddr)
		log.Printf("Health: http://%s/health", apiAddr)

		if err := app.Listen(apiAddr); err != nil {
			log.Printf("API server listen error: %v", err)
		}
	}()

	// Wait for an interrupt signal to gracefully shut down
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
