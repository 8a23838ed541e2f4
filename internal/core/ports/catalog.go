// Package ports declares the interfaces the core services are written against.
package ports

import (
	"context"

	"github.com/harmonia-labs/moodcraft/internal/core/domain"
)

// CatalogProvider is the external music catalog contract. Every method maps to
// one documented endpoint; implementations are expected to retry 429/5xx with
// backoff and to refresh credentials on 401 exactly once. Callers must treat
// any error as "no results from this call" and continue.
type CatalogProvider interface {
	// SearchTracks runs a track search scoped to a market, with pagination.
	SearchTracks(ctx context.Context, query, market string, limit, offset int) ([]domain.Track, error)

	// SearchPlaylists returns ids of editorial/user playlists matching the query.
	SearchPlaylists(ctx context.Context, query, market string, limit, offset int) ([]string, error)

	// PlaylistTracks returns member tracks of a playlist, with pagination.
	PlaylistTracks(ctx context.Context, playlistID, market string, limit, offset int) ([]domain.Track, error)

	// ArtistGenres resolves artist ids to their catalog-reported genre strings.
	// Callers batch ids to at most 50 per call.
	ArtistGenres(ctx context.Context, ids []string) (map[string][]string, error)

	// AudioFeatures resolves track ids to audio features. Callers batch ids to
	// at most 100 per call. Tracks the catalog has no features for are absent
	// from the result.
	AudioFeatures(ctx context.Context, ids []string) (map[string]domain.FeatureSet, error)

	// Recommend requests recommendations seeded by a catalog seed-genre token.
	Recommend(ctx context.Context, seedGenre, market string, limit int) ([]domain.Track, error)

	// GenreSeeds returns the catalog's canonical seed-genre tokens.
	GenreSeeds(ctx context.Context) ([]string, error)
}
