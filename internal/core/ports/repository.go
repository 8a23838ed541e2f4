package ports

import (
	"context"

	"github.com/harmonia-labs/moodcraft/internal/core/domain"
)

// PlaylistRepository is the persistence contract for generated playlists.
// Implementations must self-heal malformed persisted structures into the
// canonical list form without losing repairable rows.
type PlaylistRepository interface {
	Save(ctx context.Context, p domain.SavedPlaylist) error
	List(ctx context.Context) ([]domain.PlaylistSummary, error)
	// Load returns domain.ErrNotFound when the id does not exist.
	Load(ctx context.Context, id string) (domain.SavedPlaylist, error)
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, id string) (bool, error)
	// UpdateTrackEnergy backfills analyzer-derived energy on a stored track.
	UpdateTrackEnergy(ctx context.Context, playlistID, trackID string, energy float64) error
}
