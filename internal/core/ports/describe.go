package ports

import (
	"context"

	"github.com/harmonia-labs/moodcraft/internal/core/domain"
)

// Describer produces a short human-readable playlist description. Errors are
// tolerated; callers fall back to static copy.
type Describer interface {
	Describe(ctx context.Context, mood, activity string, tracks []domain.RankedTrack) (string, error)
}
