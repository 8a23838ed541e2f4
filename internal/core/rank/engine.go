package rank

import (
	"context"
	"log"
	"math/rand"
	"sort"

	"github.com/harmonia-labs/moodcraft/internal/core/domain"
	"github.com/harmonia-labs/moodcraft/internal/core/plan"
)

// ShortlistSize caps the candidates that get audio-feature fetches. Cheap
// boost-only ranking picks the shortlist first; only the survivors pay for
// feature calls.
const ShortlistSize = 60

const featureBatchSize = 100

// FeatureSource is the slice of the catalog the engine needs.
type FeatureSource interface {
	AudioFeatures(ctx context.Context, ids []string) (map[string]domain.FeatureSet, error)
}

// Request describes one ranking run.
type Request struct {
	Mood            string
	Activity        string
	VibeText        string
	Genres          []string
	ExcludeExplicit bool
	// ArtistGenres is the per-call genre cache built during retrieval.
	ArtistGenres map[string][]string
	// Rng drives tie-break jitter; nil gets a time-seeded stream.
	Rng *rand.Rand
}

// Engine ranks candidate tracks for one generation call.
type Engine struct {
	Features FeatureSource
}

// Rank orders candidates by mood-target distance plus text-match boosts.
// A failed feature fetch degrades to boost-only ordering rather than failing
// the call.
func (e Engine) Rank(ctx context.Context, candidates []domain.Track, req Request) []domain.RankedTrack {
	if len(candidates) == 0 {
		return nil
	}
	rng := req.Rng
	if rng == nil {
		rng = plan.NewRng(0)
	}

	if req.ExcludeExplicit {
		kept := make([]domain.Track, 0, len(candidates))
		for _, t := range candidates {
			if !t.Explicit {
				kept = append(kept, t)
			}
		}
		// Filter to empty degrades to the unfiltered set.
		if len(kept) > 0 {
			candidates = kept
		} else {
			log.Printf("WARN rank: explicit filter would empty the result set; keeping unfiltered candidates")
		}
	}

	vibeTokens := plan.Tokenize(req.VibeText)

	// Stage 1: cheap boost-only ordering to shortlist before feature fetches.
	if len(candidates) > ShortlistSize {
		type boosted struct {
			track domain.Track
			score float64
		}
		pre := make([]boosted, 0, len(candidates))
		for _, t := range candidates {
			b := Boost(t, genresFor(req.ArtistGenres, t), vibeTokens, req.Genres) + jitter(rng)
			pre = append(pre, boosted{track: t, score: b})
		}
		sort.SliceStable(pre, func(i, j int) bool { return pre[i].score > pre[j].score })
		candidates = candidates[:0:0]
		for _, b := range pre[:ShortlistSize] {
			candidates = append(candidates, b.track)
		}
	}

	feats := e.fetchFeatures(ctx, candidates)
	targets := MoodTargets(req.Mood, req.Activity)

	ranked := make([]domain.RankedTrack, 0, len(candidates))
	for _, t := range candidates {
		feat := feats[t.ID]
		score := Score(targets, feat) +
			Boost(t, genresFor(req.ArtistGenres, t), vibeTokens, req.Genres) +
			jitter(rng)
		ranked = append(ranked, domain.RankedTrack{Track: t, Score: score, Reason: feat.Reason()})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	return ranked
}

func (e Engine) fetchFeatures(ctx context.Context, tracks []domain.Track) map[string]domain.FeatureSet {
	out := make(map[string]domain.FeatureSet, len(tracks))
	if e.Features == nil {
		return out
	}
	ids := make([]string, 0, len(tracks))
	for _, t := range tracks {
		if t.ID != "" {
			ids = append(ids, t.ID)
		}
	}
	for start := 0; start < len(ids); start += featureBatchSize {
		end := start + featureBatchSize
		if end > len(ids) {
			end = len(ids)
		}
		got, err := e.Features.AudioFeatures(ctx, ids[start:end])
		if err != nil {
			log.Printf("WARN rank: audio features fetch failed: %v", err)
			continue
		}
		for id, fs := range got {
			out[id] = fs
		}
	}
	return out
}

func genresFor(cache map[string][]string, t domain.Track) []string {
	if cache == nil {
		return nil
	}
	var out []string
	for _, id := range t.ArtistIDs() {
		out = append(out, cache[id]...)
	}
	return out
}

// jitter breaks exact score ties without introducing bias.
func jitter(rng *rand.Rand) float64 {
	return (rng.Float64() - 0.5) * 0.02 // ±0.01
}
