package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/IzumiH2005/hearthcliff-flash-forge-decks-00-sub000/internal/catalog"
	"github.com/IzumiH2005/hearthcliff-flash-forge-decks-00-sub000/internal/database"
	"github.com/IzumiH2005/hearthcliff-flash-forge-decks-00-sub000/internal/remote"
	"github.com/IzumiH2005/hearthcliff-flash-forge-decks-00-sub000/internal/session"
	"github.com/joho/godotenv"
)

func main() {
	dbPath := flag.String("db", "", "Path to the local SQLite database file (default data/flashforge.db)")
	flag.Parse()

	// .env is optional; real env vars win either way
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	if *dbPath == "" {
		*dbPath = os.Getenv("FLASHFORGE_DB")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := database.Connect(*dbPath); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Make sure a session exists before anything touches the store.
	sessions := session.NewManager()
	ok, err := sessions.VerifySession(ctx)
	if err != nil {
		log.Fatalf("Failed to verify session: %v", err)
	}
	if !ok {
		key, err := session.GenerateKey()
		if err != nil {
			log.Fatalf("Failed to generate session key: %v", err)
		}
		if err := sessions.SaveKey(ctx, key); err != nil {
			log.Fatalf("Failed to save session key: %v", err)
		}
		log.Printf("Started new session %s", key)
	}

	// The remote mirror is optional: without it the app is fully local
	// and public flags simply queue until a mirror is configured.
	remoteURL := os.Getenv("FLASHFORGE_REMOTE_URL")
	if remoteURL != "" {
		remoteDB, err := remote.Connect(remoteURL)
		if err != nil {
			log.Printf("Remote store unavailable, running local-only: %v", err)
		} else {
			defer remoteDB.Close()

			mirror := remote.NewMirror(remoteDB)
			syncer := remote.NewSyncer(mirror)
			syncer.Drain(ctx)

			publicCatalog := catalog.New(mirror, syncer)
			channel := os.Getenv("FLASHFORGE_LISTEN_CHANNEL")
			if err := publicCatalog.Start(ctx, remoteURL, channel); err != nil {
				log.Printf("Failed to start public deck catalog: %v", err)
			} else {
				defer publicCatalog.Stop()
			}
		}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	log.Println("flash-forge started. Press Ctrl+C to stop.")
	sig := <-sigChan
	log.Printf("Received signal: %v, shutting down", sig)
	cancel()
}
