// Package services hosts the core orchestration: the tiered catalog retrieval
// cascade and the playlist generation pipeline.
package services

import (
	"context"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/harmonia-labs/moodcraft/internal/core/domain"
	"github.com/harmonia-labs/moodcraft/internal/core/plan"
	"github.com/harmonia-labs/moodcraft/internal/core/ports"
)

// DefaultBudget is the wall-clock budget for one retrieval run. Every pass
// checks remaining time before starting further work and returns whatever has
// accumulated once the budget is gone.
const DefaultBudget = 7 * time.Second

const (
	searchTries        = 3
	miningTries        = 2
	maxPlaylistsMined  = 3
	perPlaylistLimit   = 30
	maxSearchOffset    = 450
	maxPlaylistOffset  = 200
	artistBatchSize    = 50
	emergencyPageLimit = 50
)

// Emergency regions appended when every filtered pass came back empty.
var broadMarkets = []string{"US", "GB", "IN"}

// RetrievalContext carries the per-call mutable state: the shared used-id set,
// the artist-genre memo and the seeded random stream. It is scoped to one
// generation call; nothing here is shared across requests.
type RetrievalContext struct {
	usedIDs  map[string]struct{}
	genres   map[string][]string
	rng      *rand.Rand
	deadline time.Time
}

// NewRetrievalContext seeds a context with ids the caller has already used
// (tracks from earlier builds that must not be re-emitted).
func NewRetrievalContext(usedIDs []string, seed int64, budget time.Duration) *RetrievalContext {
	if budget <= 0 {
		budget = DefaultBudget
	}
	used := make(map[string]struct{}, len(usedIDs))
	for _, id := range usedIDs {
		used[id] = struct{}{}
	}
	return &RetrievalContext{
		usedIDs:  used,
		genres:   map[string][]string{},
		rng:      plan.NewRng(seed),
		deadline: time.Now().Add(budget),
	}
}

// ArtistGenres exposes the per-call genre cache for the ranking boosts.
func (rc *RetrievalContext) ArtistGenres() map[string][]string { return rc.genres }

// UsedIDs returns the ids consumed so far, for callers chaining builds.
func (rc *RetrievalContext) UsedIDs() []string {
	out := make([]string, 0, len(rc.usedIDs))
	for id := range rc.usedIDs {
		out = append(out, id)
	}
	return out
}

func (rc *RetrievalContext) expired() bool { return time.Now().After(rc.deadline) }

func (rc *RetrievalContext) markUsed(id string) bool {
	if _, dup := rc.usedIDs[id]; dup {
		return false
	}
	rc.usedIDs[id] = struct{}{}
	return true
}

// Retriever executes the tiered search passes against the catalog.
type Retriever struct {
	Catalog ports.CatalogProvider
}

// Retrieve walks the pass cascade until the target count is met, the budget
// expires, or every pass is exhausted. Partial results are acceptable; an
// empty result is a defined terminal state, not an error.
func (r Retriever) Retrieve(ctx context.Context, p plan.Plan, target int, rc *RetrievalContext) []domain.Track {
	if target < 1 {
		return nil
	}
	var out []domain.Track

	// Pass 1: direct track search, language + genre strict.
	out = r.searchPass(ctx, rc, out, p, target, p.Language, p.Genres, searchTries)

	// Pass 2: playlist mining, same filters.
	if len(out) < target && !rc.expired() {
		out = r.miningPass(ctx, rc, out, p, target)
	}

	// Pass 3: seed-genre recommendations, genre strict.
	if len(out) < target && len(p.Genres) > 0 && !rc.expired() {
		out = r.recommendPass(ctx, rc, out, p, target)
	}

	// Pass 4: relax language only, still under half the target.
	if len(out) < maxInt(1, target/2) && p.Language != "" && !rc.expired() {
		out = r.searchPass(ctx, rc, out, p, target, "", p.Genres, miningTries)
	}

	// Emergency: drop all filters and broaden the regions.
	if len(out) == 0 && !rc.expired() {
		out = r.emergencyPass(ctx, rc, out, p, target)
	}

	if len(out) > target {
		out = out[:target]
	}
	return out
}

func (r Retriever) searchPass(ctx context.Context, rc *RetrievalContext, acc []domain.Track,
	p plan.Plan, target int, lang string, genres []string, tries int) []domain.Track {
	pageLimit := maxInt(30, target*3)
	if pageLimit > 50 {
		pageLimit = 50
	}
	for _, q := range p.Queries {
		if len(acc) >= target || rc.expired() {
			return acc
		}
		for _, market := range p.Markets {
			if len(acc) >= target || rc.expired() {
				break
			}
			for try := 0; try < tries; try++ {
				if rc.expired() {
					break
				}
				offset := rc.rng.Intn(maxSearchOffset + 1)
				tracks, err := r.Catalog.SearchTracks(ctx, q, market, pageLimit, offset)
				if err != nil {
					log.Printf("WARN retrieve: track search %q market=%s failed: %v", q, market, err)
					continue
				}
				acc = r.keepMatching(ctx, rc, acc, tracks, lang, genres, target)
				if len(acc) >= target {
					break
				}
			}
		}
	}
	return acc
}

func (r Retriever) miningPass(ctx context.Context, rc *RetrievalContext, acc []domain.Track,
	p plan.Plan, target int) []domain.Track {
	for _, q := range p.Queries {
		if len(acc) >= target || rc.expired() {
			return acc
		}
		for _, market := range p.Markets {
			if len(acc) >= target || rc.expired() {
				break
			}
			for try := 0; try < miningTries; try++ {
				if rc.expired() {
					break
				}
				offset := rc.rng.Intn(maxPlaylistOffset + 1)
				ids, err := r.Catalog.SearchPlaylists(ctx, q, market, maxPlaylistsMined, offset)
				if err != nil {
					log.Printf("WARN retrieve: playlist search %q market=%s failed: %v", q, market, err)
					continue
				}
				found := false
				for _, plID := range ids {
					if len(acc) >= target || rc.expired() {
						break
					}
					tracks, err := r.Catalog.PlaylistTracks(ctx, plID, market, perPlaylistLimit, rc.rng.Intn(maxPlaylistOffset+1))
					if err != nil {
						log.Printf("WARN retrieve: playlist tracks %s failed: %v", plID, err)
						continue
					}
					before := len(acc)
					acc = r.keepMatching(ctx, rc, acc, tracks, p.Language, p.Genres, target)
					if len(acc) > before {
						found = true
					}
				}
				if found {
					break
				}
			}
		}
	}
	return acc
}

func (r Retriever) recommendPass(ctx context.Context, rc *RetrievalContext, acc []domain.Track,
	p plan.Plan, target int) []domain.Track {
	seeds, err := r.Catalog.GenreSeeds(ctx)
	if err != nil {
		log.Printf("WARN retrieve: genre seeds failed: %v", err)
		return acc
	}
	seed := closestSeed(p.Genres, seeds)
	if seed == "" {
		return acc
	}
	for _, market := range p.Markets {
		if len(acc) >= target || rc.expired() {
			break
		}
		tracks, err := r.Catalog.Recommend(ctx, seed, market, target-len(acc))
		if err != nil {
			log.Printf("WARN retrieve: recommendations seed=%s market=%s failed: %v", seed, market, err)
			continue
		}
		// Recommendations skip the language filter; the seed already scopes
		// the style, but genre strictness is kept.
		acc = r.keepMatching(ctx, rc, acc, tracks, "", p.Genres, target)
	}
	return acc
}

func (r Retriever) emergencyPass(ctx context.Context, rc *RetrievalContext, acc []domain.Track,
	p plan.Plan, target int) []domain.Track {
	markets := emergencyMarkets(p.Markets)
	for _, q := range p.Queries {
		if len(acc) >= target || rc.expired() {
			return acc
		}
		for _, market := range markets {
			if len(acc) >= target || rc.expired() {
				break
			}
			tracks, err := r.Catalog.SearchTracks(ctx, q, market, emergencyPageLimit, 0)
			if err != nil {
				log.Printf("WARN retrieve: emergency search %q market=%s failed: %v", q, market, err)
				continue
			}
			acc = r.keepMatching(ctx, rc, acc, tracks, "", nil, target)
		}
	}
	return acc
}

// emergencyMarkets widens the planned markets with the broad fallbacks while
// keeping order and dropping duplicates, so no market is queried twice.
func emergencyMarkets(planned []string) []string {
	seen := make(map[string]bool, len(planned)+len(broadMarkets))
	out := make([]string, 0, len(planned)+len(broadMarkets))
	for _, m := range append(append([]string{}, planned...), broadMarkets...) {
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}

// keepMatching filters a page of candidates by language script and artist
// genres, de-duplicates against the shared used-id set, and appends survivors.
func (r Retriever) keepMatching(ctx context.Context, rc *RetrievalContext, acc []domain.Track,
	tracks []domain.Track, lang string, genres []string, target int) []domain.Track {
	if len(genres) > 0 {
		r.ensureArtistGenres(ctx, rc, tracks)
	}
	for _, t := range tracks {
		if len(acc) >= target {
			break
		}
		if t.ID == "" {
			continue
		}
		if _, dup := rc.usedIDs[t.ID]; dup {
			continue
		}
		if !trackMatchesLanguage(t, lang) {
			continue
		}
		if len(genres) > 0 && !plan.GenresMatch(genres, rc.artistGenresOf(t)) {
			continue
		}
		rc.markUsed(t.ID)
		acc = append(acc, t)
	}
	return acc
}

// ensureArtistGenres batch-fetches genres for artists not in the per-call
// cache, at most 50 ids per catalog call.
func (r Retriever) ensureArtistGenres(ctx context.Context, rc *RetrievalContext, tracks []domain.Track) {
	var missing []string
	seen := map[string]struct{}{}
	for _, t := range tracks {
		for _, id := range t.ArtistIDs() {
			if _, cached := rc.genres[id]; cached {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			missing = append(missing, id)
		}
	}
	for start := 0; start < len(missing); start += artistBatchSize {
		end := start + artistBatchSize
		if end > len(missing) {
			end = len(missing)
		}
		got, err := r.Catalog.ArtistGenres(ctx, missing[start:end])
		if err != nil {
			log.Printf("WARN retrieve: artist genres fetch failed: %v", err)
			continue
		}
		for id, genres := range got {
			rc.genres[id] = genres
		}
	}
}

func (rc *RetrievalContext) artistGenresOf(t domain.Track) []string {
	var out []string
	for _, id := range t.ArtistIDs() {
		out = append(out, rc.genres[id]...)
	}
	return out
}

func trackMatchesLanguage(t domain.Track, lang string) bool {
	if lang == "" {
		return true
	}
	names := []string{t.Name, t.AlbumName}
	for _, a := range t.Artists {
		names = append(names, a.Name)
	}
	return plan.TrackTextMatchesLanguage(lang, names...)
}

// closestSeed finds the catalog seed-genre token nearest a requested genre,
// tolerating substrings in either direction.
func closestSeed(genres, seeds []string) string {
	for _, g := range genres {
		for _, want := range plan.GenreTokenSet(g) {
			for _, s := range seeds {
				if containsEither(want, s) {
					return s
				}
			}
		}
	}
	return ""
}

func containsEither(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
