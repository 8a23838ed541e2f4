package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/harmonia-labs/moodcraft/internal/core/domain"
)

const (
	createdAtLayout = "2006-01-02T15:04:05"
	// recencyHalfLifeDays halves a playlist's influence on the profile every
	// 30 days since it was saved.
	recencyHalfLifeDays = 30
)

const (
	topMoodCount    = 5
	topGenreCount   = 5
	topArtistCount  = 8
	topWeekdayCount = 3
	topHourCount    = 3
)

// RecommendParams is the input of a profile-seeded recommendation. Every
// field is optional; blanks fall back to the user's taste profile.
type RecommendParams struct {
	Vibe            string
	Mood            string
	GenreOrLanguage string
	ExcludeExplicit bool
	Limit           int
	Seed            int64
}

// BuildProfile aggregates the whole playlist store into a taste profile.
// Recent saves weigh more than old ones; rows that fail to load are skipped
// rather than failing the whole profile.
func (o *Orchestrator) BuildProfile(ctx context.Context) (domain.TasteProfile, error) {
	summaries, err := o.Repository.List(ctx)
	if err != nil {
		return domain.TasteProfile{}, fmt.Errorf("build profile: %w", err)
	}

	moods := map[string]float64{}
	genres := map[string]float64{}
	artists := map[string]float64{}
	weekdays := map[string]float64{}
	hours := map[string]float64{}
	seenTracks := map[string]bool{}
	var savedIDs []string

	for _, s := range summaries {
		p, err := o.Repository.Load(ctx, s.ID)
		if err != nil {
			log.Printf("WARN profile: skipping playlist %s: %v", s.ID, err)
			continue
		}
		w := recencyWeight(p.CreatedAt, o.now())
		if m := strings.ToLower(strings.TrimSpace(p.Request.Mood)); m != "" {
			moods[m] += w
		}
		if g := strings.ToLower(strings.TrimSpace(p.Request.GenreOrLanguage)); g != "" {
			genres[g] += w
		}
		day, hour := timeBuckets(p.CreatedAt)
		weekdays[day] += w
		hours[hour] += w
		for _, t := range p.Tracks {
			if t.ID != "" && !seenTracks[t.ID] {
				seenTracks[t.ID] = true
				savedIDs = append(savedIDs, t.ID)
			}
			for _, name := range strings.Split(t.Artists, ",") {
				if name = strings.ToLower(strings.TrimSpace(name)); name != "" {
					artists[name] += w
				}
			}
		}
	}

	return domain.TasteProfile{
		Stats: domain.ProfileStats{
			TotalPlaylists:    len(summaries),
			TotalUniqueTracks: len(seenTracks),
		},
		TopMoods:   topEntries(moods, topMoodCount),
		TopGenres:  topEntries(genres, topGenreCount),
		TopArtists: topEntries(artists, topArtistCount),
		TimePatterns: domain.TimePatterns{
			TopWeekdays: topEntries(weekdays, topWeekdayCount),
			TopHours:    topEntries(hours, topHourCount),
		},
		SavedTrackIDs: savedIDs,
	}, nil
}

// RecommendForUser generates a playlist seeded by the user's taste profile.
// Explicit params win; blanks fall back to the profile's top mood and genre,
// and every previously saved track is excluded from the result.
func (o *Orchestrator) RecommendForUser(ctx context.Context, params RecommendParams) (GenerateResult, error) {
	limit := params.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 1 || limit > MaxLimit {
		return GenerateResult{}, fmt.Errorf("%w: %d", domain.ErrInvalidLimit, limit)
	}

	prof, err := o.BuildProfile(ctx)
	if err != nil {
		return GenerateResult{}, err
	}

	moodLabel := strings.ToLower(strings.TrimSpace(params.Mood))
	if moodLabel == "" {
		moodLabel = domain.FirstPreference(prof.TopMoods, "chill")
	}
	genre := strings.TrimSpace(params.GenreOrLanguage)
	if genre == "" {
		genre = domain.FirstPreference(prof.TopGenres, "")
	}
	vibe := strings.TrimSpace(params.Vibe)
	if vibe == "" {
		vibe = fmt.Sprintf("Songs aligned with my usual %s vibe", moodLabel)
	}

	// Ask for more than the caller wants so the saved-track exclusion still
	// leaves a full playlist.
	ask := maxInt(DefaultLimit, limit*2)
	if ask > MaxLimit {
		ask = MaxLimit
	}

	result, err := o.Generate(ctx, GenerateParams{
		Vibe:            vibe,
		Mood:            moodLabel,
		GenreOrLanguage: genre,
		ExcludeExplicit: params.ExcludeExplicit,
		Limit:           ask,
		Seed:            params.Seed,
		UsedIDs:         prof.SavedTrackIDs,
	})
	if err != nil {
		return GenerateResult{}, err
	}
	if len(result.Tracks) > limit {
		result.Tracks = result.Tracks[:limit]
	}
	return result, nil
}

// recencyWeight decays by half every recencyHalfLifeDays. Rows with an
// unparseable timestamp keep full weight.
func recencyWeight(createdAt string, now time.Time) float64 {
	t, err := time.Parse(createdAtLayout, createdAt)
	if err != nil {
		return 1
	}
	days := now.Sub(t).Hours() / 24
	if days < 0 {
		days = 0
	}
	return math.Pow(0.5, days/recencyHalfLifeDays)
}

// timeBuckets maps a created-at timestamp to its weekday and hour buckets,
// e.g. ("mon", "09"). Unparseable rows land in ("unknown", "00").
func timeBuckets(createdAt string) (string, string) {
	t, err := time.Parse(createdAtLayout, createdAt)
	if err != nil {
		return "unknown", "00"
	}
	return strings.ToLower(t.Format("Mon")), t.Format("15")
}

// topEntries ranks a weight map, rounds scores to three decimals and keeps
// the top n. Ties break alphabetically so the output is deterministic.
func topEntries(scores map[string]float64, n int) []domain.ProfileEntry {
	entries := make([]domain.ProfileEntry, 0, len(scores))
	for value, score := range scores {
		entries = append(entries, domain.ProfileEntry{
			Value: value,
			Score: math.Round(score*1000) / 1000,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Value < entries[j].Value
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
