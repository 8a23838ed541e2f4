package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/harmonia-labs/moodcraft/internal/adapters/jsonstore"
	openaidesc "github.com/harmonia-labs/moodcraft/internal/adapters/openai"
	"github.com/harmonia-labs/moodcraft/internal/adapters/rest"
	"github.com/harmonia-labs/moodcraft/internal/adapters/spotify"
	"github.com/harmonia-labs/moodcraft/internal/adapters/sqlite"
	"github.com/harmonia-labs/moodcraft/internal/core/plan"
	"github.com/harmonia-labs/moodcraft/internal/core/ports"
	"github.com/harmonia-labs/moodcraft/internal/core/services"
	"github.com/harmonia-labs/moodcraft/internal/worker"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	clientID := os.Getenv("SPOTIFY_CLIENT_ID")
	clientSecret := os.Getenv("SPOTIFY_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		log.Fatal("FATAL: SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET environment variables are required")
	}

	var repo ports.PlaylistRepository
	var repoCloser func() error

	storageDriver := envOr("STORAGE_DRIVER", "json")
	switch storageDriver {
	case "json":
		store, err := jsonstore.New(envOr("STORE_PATH", "playlists.json"))
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize store: %v", err)
		}
		repo = store
	case "sqlite":
		dbAdapter, err := sqlite.NewAdapter(envOr("STORE_PATH", "moodcraft.db"))
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize database: %v", err)
		}
		repo = dbAdapter
		repoCloser = dbAdapter.Close
	default:
		log.Fatalf("Unknown storage driver: %s", storageDriver)
	}
	if repoCloser != nil {
		defer repoCloser()
	}

	catalog := spotify.NewClient(clientID, clientSecret)

	var describer ports.Describer
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		describer = openaidesc.New(key, os.Getenv("OPENAI_MODEL"))
	}

	pool := worker.NewPool(repo, 100)
	pool.Start(2)
	defer pool.Stop()

	svc := &services.Orchestrator{
		Catalog:    catalog,
		Repository: repo,
		Describer:  describer,
		Planner: plan.Planner{
			PreferredMarkets: splitMarkets(os.Getenv("SPOTIFY_MARKETS")),
			DefaultMarket:    envOr("SPOTIFY_MARKET", "IN"),
		},
		Analyzer: pool,
	}

	handler := rest.NewHandler(svc)

	addr := ":" + envOr("PORT", "8080")
	log.Printf("moodcraft API listening on %s", addr)

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Fatal(err)
		}
	case <-ctx.Done():
		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitMarkets(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, m := range strings.Split(raw, ",") {
		if m = strings.TrimSpace(m); m != "" {
			out = append(out, m)
		}
	}
	return out
}
