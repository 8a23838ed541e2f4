package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/harmonia-labs/moodcraft/internal/adapters/jsonstore"
	openaidesc "github.com/harmonia-labs/moodcraft/internal/adapters/openai"
	"github.com/harmonia-labs/moodcraft/internal/adapters/spotify"
	"github.com/harmonia-labs/moodcraft/internal/adapters/sqlite"
	"github.com/harmonia-labs/moodcraft/internal/core/mood"
	"github.com/harmonia-labs/moodcraft/internal/core/plan"
	"github.com/harmonia-labs/moodcraft/internal/core/ports"
	"github.com/harmonia-labs/moodcraft/internal/core/services"
)

// buildService wires the orchestrator from the environment the same way the
// API binary does. The returned closer may be nil.
func buildService() (*services.Orchestrator, func() error, error) {
	clientID := os.Getenv("SPOTIFY_CLIENT_ID")
	clientSecret := os.Getenv("SPOTIFY_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		return nil, nil, fmt.Errorf("SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET are required")
	}

	repo, closer, err := buildRepository()
	if err != nil {
		return nil, nil, err
	}

	var describer ports.Describer
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		describer = openaidesc.New(key, os.Getenv("OPENAI_MODEL"))
	}

	svc := &services.Orchestrator{
		Catalog:    spotify.NewClient(clientID, clientSecret),
		Repository: repo,
		Classifier: buildClassifier(),
		Describer:  describer,
		Planner: plan.Planner{
			PreferredMarkets: splitList(os.Getenv("SPOTIFY_MARKETS")),
			DefaultMarket:    envOr("SPOTIFY_MARKET", "IN"),
		},
	}
	return svc, closer, nil
}

// buildClassifier is the single construction point for the mood classifier,
// shared by the service wiring and the standalone mood command.
func buildClassifier() ports.MoodClassifier {
	return mood.LexiconClassifier{}
}

// buildRepository opens only the store, for commands that never touch the
// catalog.
func buildRepository() (ports.PlaylistRepository, func() error, error) {
	switch driver := envOr("STORAGE_DRIVER", "json"); driver {
	case "json":
		store, err := jsonstore.New(envOr("STORE_PATH", "playlists.json"))
		if err != nil {
			return nil, nil, err
		}
		return store, nil, nil
	case "sqlite":
		adapter, err := sqlite.NewAdapter(envOr("STORE_PATH", "moodcraft.db"))
		if err != nil {
			return nil, nil, err
		}
		return adapter, adapter.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver: %s", driver)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
