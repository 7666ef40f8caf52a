package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rsathishtechit/video-player/internal/api"
	"github.com/rsathishtechit/video-player/internal/store"
	"github.com/rsathishtechit/video-player/pkg/util"
)

// main entry point - sets up everything and starts the server
func main() {
	// load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		log.Printf("Warning: Failed to load .env file: %s\n", err)
		// not a big deal - the installer sets these anyway
	}

	dataDir := util.GetDataDirectory()
	if !util.EnsureDirectoryExists(dataDir) {
		log.Fatalf("Could not create data directory: %s\n", dataDir)
	}
	log.Printf("Data directory configured: %s\n", dataDir)

	// open the library snapshot - a missing or unreadable file just
	// means we start with an empty library
	st := store.Open(util.SnapshotPath(dataDir))

	// wire everything together
	server := api.NewServer(st)
	handler := api.EnableCORS(api.RequestLogger(server)) // needed for frontend requests

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	httpServer := &http.Server{
		Addr:    ":" + port,
		Handler: handler,
	}

	// shut down cleanly on ctrl-c so the final snapshot flush runs
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		fmt.Println("Starting server on :" + port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Could not start server: %s\n", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown error: %s\n", err)
	}

	// the store writes any pending changes synchronously here - losing
	// this write means losing the user's recent watch progress
	if err := st.Close(); err != nil {
		log.Printf("ERROR: failed to write library snapshot on shutdown: %s\n", err)
		os.Exit(1)
	}
	log.Println("Library snapshot saved, goodbye")
}
