package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/harmonia-labs/moodcraft/internal/core/domain"
	"github.com/harmonia-labs/moodcraft/internal/core/plan"
)

// fakeCatalog is a scriptable in-memory catalog.
type fakeCatalog struct {
	searchResults   map[string][]domain.Track // keyed by query
	playlists       map[string][]domain.Track
	playlistIDs     []string
	artistGenres    map[string][]string
	recommendations []domain.Track
	seeds           []string

	searchErr  error
	searchHits int
	artistHits int
}

func (f *fakeCatalog) SearchTracks(ctx context.Context, query, market string, limit, offset int) ([]domain.Track, error) {
	f.searchHits++
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchResults[query], nil
}

func (f *fakeCatalog) SearchPlaylists(ctx context.Context, query, market string, limit, offset int) ([]string, error) {
	return f.playlistIDs, nil
}

func (f *fakeCatalog) PlaylistTracks(ctx context.Context, playlistID, market string, limit, offset int) ([]domain.Track, error) {
	return f.playlists[playlistID], nil
}

func (f *fakeCatalog) ArtistGenres(ctx context.Context, ids []string) (map[string][]string, error) {
	f.artistHits++
	if len(ids) > 50 {
		return nil, fmt.Errorf("batch too large: %d", len(ids))
	}
	out := map[string][]string{}
	for _, id := range ids {
		if g, ok := f.artistGenres[id]; ok {
			out[id] = g
		}
	}
	return out, nil
}

func (f *fakeCatalog) AudioFeatures(ctx context.Context, ids []string) (map[string]domain.FeatureSet, error) {
	return map[string]domain.FeatureSet{}, nil
}

func (f *fakeCatalog) Recommend(ctx context.Context, seedGenre, market string, limit int) ([]domain.Track, error) {
	return f.recommendations, nil
}

func (f *fakeCatalog) GenreSeeds(ctx context.Context) ([]string, error) {
	return f.seeds, nil
}

func mkTrack(id, name string) domain.Track {
	return domain.Track{ID: id, Name: name, Artists: []domain.ArtistRef{{ID: "artist-" + id, Name: "Artist " + id}}}
}

func simplePlan(queries ...string) plan.Plan {
	return plan.Plan{Queries: queries, Markets: []string{"IN"}}
}

func TestRetrieveDirectSearch(t *testing.T) {
	cat := &fakeCatalog{searchResults: map[string][]domain.Track{
		"lofi": {mkTrack("1", "One"), mkTrack("2", "Two"), mkTrack("3", "Three")},
	}}
	r := Retriever{Catalog: cat}
	rc := NewRetrievalContext(nil, 1, time.Second)

	got := r.Retrieve(context.Background(), simplePlan("lofi"), 2, rc)
	if len(got) != 2 {
		t.Fatalf("tracks: got %d, want 2", len(got))
	}
}

func TestRetrieveNeverDuplicates(t *testing.T) {
	// Every query returns the same page; the used-id set must dedupe.
	page := []domain.Track{mkTrack("1", "One"), mkTrack("2", "Two")}
	cat := &fakeCatalog{searchResults: map[string][]domain.Track{"a": page, "b": page}}
	r := Retriever{Catalog: cat}
	rc := NewRetrievalContext(nil, 1, time.Second)

	got := r.Retrieve(context.Background(), simplePlan("a", "b"), 10, rc)
	seen := map[string]bool{}
	for _, tr := range got {
		if seen[tr.ID] {
			t.Fatalf("duplicate id %s in %v", tr.ID, got)
		}
		seen[tr.ID] = true
	}
	if len(got) != 2 {
		t.Fatalf("tracks: got %d, want 2", len(got))
	}
}

func TestRetrieveHonorsUsedIDs(t *testing.T) {
	cat := &fakeCatalog{searchResults: map[string][]domain.Track{
		"q": {mkTrack("used", "Old"), mkTrack("new", "New")},
	}}
	r := Retriever{Catalog: cat}
	rc := NewRetrievalContext([]string{"used"}, 1, time.Second)

	got := r.Retrieve(context.Background(), simplePlan("q"), 10, rc)
	for _, tr := range got {
		if tr.ID == "used" {
			t.Fatalf("previously used id re-emitted: %v", got)
		}
	}
	if len(got) != 1 || got[0].ID != "new" {
		t.Fatalf("tracks: got %v", got)
	}
}

func TestRetrieveLanguageFilter(t *testing.T) {
	cat := &fakeCatalog{searchResults: map[string][]domain.Track{
		"q": {
			mkTrack("latin", "English Song"),
			{ID: "si", Name: "සිංදුව", Artists: []domain.ArtistRef{{ID: "a-si", Name: "ගායකයා"}}},
		},
	}}
	r := Retriever{Catalog: cat}
	rc := NewRetrievalContext(nil, 1, time.Second)

	p := simplePlan("q")
	p.Language = "sinhala"
	got := r.Retrieve(context.Background(), p, 1, rc)

	if len(got) != 1 || got[0].ID != "si" {
		t.Fatalf("language filter: got %v", got)
	}
}

func TestRetrieveGenreFilterUsesArtistCache(t *testing.T) {
	cat := &fakeCatalog{
		searchResults: map[string][]domain.Track{
			"q": {mkTrack("hh", "Beat"), mkTrack("cl", "Sonata")},
		},
		artistGenres: map[string][]string{
			"artist-hh": {"underground hip hop"},
			"artist-cl": {"baroque"},
		},
	}
	r := Retriever{Catalog: cat}
	rc := NewRetrievalContext(nil, 1, time.Second)

	p := simplePlan("q")
	p.Genres = []string{"hip hop"}
	got := r.Retrieve(context.Background(), p, 1, rc)

	if len(got) != 1 || got[0].ID != "hh" {
		t.Fatalf("genre filter: got %v", got)
	}
	if len(rc.ArtistGenres()) == 0 {
		t.Fatal("artist genre cache should be populated for ranking")
	}
}

func TestRetrieveFallsBackToPlaylistMining(t *testing.T) {
	cat := &fakeCatalog{
		searchResults: map[string][]domain.Track{},
		playlistIDs:   []string{"pl1"},
		playlists: map[string][]domain.Track{
			"pl1": {mkTrack("p1", "Mined One"), mkTrack("p2", "Mined Two")},
		},
	}
	r := Retriever{Catalog: cat}
	rc := NewRetrievalContext(nil, 1, time.Second)

	got := r.Retrieve(context.Background(), simplePlan("q"), 2, rc)
	if len(got) != 2 {
		t.Fatalf("mining fallback: got %v", got)
	}
}

func TestRetrieveRelaxesLanguageWhenShort(t *testing.T) {
	// Only non-matching-language tracks exist; the relax pass recovers them.
	cat := &fakeCatalog{searchResults: map[string][]domain.Track{
		"q": {mkTrack("only", "Latin Song")},
	}}
	r := Retriever{Catalog: cat}
	rc := NewRetrievalContext(nil, 1, time.Second)

	p := simplePlan("q")
	p.Language = "thai"
	got := r.Retrieve(context.Background(), p, 3, rc)

	if len(got) != 1 || got[0].ID != "only" {
		t.Fatalf("language relax: got %v", got)
	}
}

func TestRetrieveEmergencyPassDropsGenreFilter(t *testing.T) {
	// The only candidate never matches the genre; the emergency pass serves
	// it unfiltered rather than returning nothing.
	cat := &fakeCatalog{
		searchResults: map[string][]domain.Track{
			"q": {mkTrack("only", "Song")},
		},
		artistGenres: map[string][]string{"artist-only": {"baroque"}},
	}
	r := Retriever{Catalog: cat}
	rc := NewRetrievalContext(nil, 1, time.Second)

	p := simplePlan("q")
	p.Genres = []string{"hip hop"}
	got := r.Retrieve(context.Background(), p, 3, rc)

	if len(got) != 1 || got[0].ID != "only" {
		t.Fatalf("emergency pass: got %v", got)
	}
}

func TestEmergencyMarketsNeverRepeat(t *testing.T) {
	cases := []struct {
		planned []string
		want    []string
	}{
		{[]string{"IN", "LK"}, []string{"IN", "LK", "US", "GB"}},
		// The default market overlaps the broad fallbacks; it must be
		// queried once, in its planned position.
		{[]string{"IN"}, []string{"IN", "US", "GB"}},
		{[]string{"US", "GB", "IN"}, []string{"US", "GB", "IN"}},
		{nil, []string{"US", "GB", "IN"}},
	}
	for _, c := range cases {
		got := emergencyMarkets(c.planned)
		if !reflect.DeepEqual(got, c.want) {
			t.Fatalf("emergencyMarkets(%v): got %v, want %v", c.planned, got, c.want)
		}
	}
}

func TestRetrieveStopsOnExpiredBudget(t *testing.T) {
	cat := &fakeCatalog{searchResults: map[string][]domain.Track{
		"q": {mkTrack("1", "One")},
	}}
	r := Retriever{Catalog: cat}
	rc := NewRetrievalContext(nil, 1, time.Nanosecond)
	time.Sleep(time.Millisecond)

	got := r.Retrieve(context.Background(), simplePlan("q"), 5, rc)
	if len(got) != 0 {
		t.Fatalf("expired budget should return nothing, got %v", got)
	}
	if cat.searchHits != 0 {
		t.Fatalf("expired budget should not hit the catalog, got %d calls", cat.searchHits)
	}
}

func TestRetrieveDegradesOnSearchError(t *testing.T) {
	cat := &fakeCatalog{searchErr: errors.New("rate limited")}
	r := Retriever{Catalog: cat}
	rc := NewRetrievalContext(nil, 1, time.Second)

	got := r.Retrieve(context.Background(), simplePlan("q"), 5, rc)
	if got == nil {
		got = []domain.Track{}
	}
	if len(got) != 0 {
		t.Fatalf("errors should degrade to empty, got %v", got)
	}
}
