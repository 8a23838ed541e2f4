package spotify

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func newTokenServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"access_token":"tok-%d","token_type":"Bearer","expires_in":3600}`, atomic.LoadInt32(hits))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func newTestClient(t *testing.T, api *httptest.Server, tokenHits *int32) *Client {
	t.Helper()
	tokens := newTokenServer(t, tokenHits)
	return NewClient("id", "secret",
		WithBaseURL(api.URL),
		WithTokenURL(tokens.URL),
		WithRetry(3, time.Millisecond),
	)
}

const searchBody = `{
	"tracks": {"items": [
		{"id": "t1", "name": "First", "explicit": true,
		 "artists": [{"id": "a1", "name": "One"}, {"id": "a2", "name": "Two"}],
		 "album": {"name": "Album"},
		 "preview_url": "https://cdn/p.mp3",
		 "external_urls": {"spotify": "https://open/t1"}},
		{"id": "", "name": "Null track"}
	]}
}`

func TestSearchTracksDecodes(t *testing.T) {
	var gotQuery atomic.Value
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery.Store(r.URL.Query())
		if got := r.Header.Get("Authorization"); !strings.HasPrefix(got, "Bearer tok-") {
			t.Errorf("missing bearer token, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, searchBody)
	}))
	defer api.Close()

	var tokenHits int32
	c := newTestClient(t, api, &tokenHits)

	tracks, err := c.SearchTracks(context.Background(), "happy morning", "IN", 30, 60)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(tracks) != 1 {
		t.Fatalf("tracks: got %d, want 1 (empty-id items skipped)", len(tracks))
	}

	got := tracks[0]
	if got.ID != "t1" || got.Name != "First" || !got.Explicit {
		t.Errorf("track: got %+v", got)
	}
	if len(got.Artists) != 2 || got.Artists[0].Name != "One" {
		t.Errorf("artists: got %+v", got.Artists)
	}
	if got.AlbumName != "Album" || got.PreviewURL != "https://cdn/p.mp3" || got.ExternalURL != "https://open/t1" {
		t.Errorf("metadata: got %+v", got)
	}

	q := gotQuery.Load().(url.Values)
	for key, want := range map[string]string{
		"q": "happy morning", "type": "track", "market": "IN", "limit": "30", "offset": "60",
	} {
		if got := q[key]; len(got) != 1 || got[0] != want {
			t.Errorf("query %s: got %v, want %q", key, got, want)
		}
	}
	if atomic.LoadInt32(&tokenHits) != 1 {
		t.Errorf("token fetches: got %d, want 1", tokenHits)
	}
}

func TestGetJSONRetriesTransientStatuses(t *testing.T) {
	statuses := []int{http.StatusServiceUnavailable, http.StatusTooManyRequests, http.StatusOK}
	var attempt int32
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		i := atomic.AddInt32(&attempt, 1) - 1
		status := statuses[i]
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		fmt.Fprint(w, searchBody)
	}))
	defer api.Close()

	var tokenHits int32
	c := newTestClient(t, api, &tokenHits)

	tracks, err := c.SearchTracks(context.Background(), "q", "", 10, 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(tracks) != 1 {
		t.Fatalf("tracks: got %d", len(tracks))
	}
	if got := atomic.LoadInt32(&attempt); got != 3 {
		t.Errorf("attempts: got %d, want 3", got)
	}
}

func TestGetJSONExhaustsRetries(t *testing.T) {
	var attempt int32
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempt, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer api.Close()

	var tokenHits int32
	tokens := newTokenServer(t, &tokenHits)
	c := NewClient("id", "secret",
		WithBaseURL(api.URL),
		WithTokenURL(tokens.URL),
		WithRetry(2, time.Millisecond),
	)

	_, err := c.SearchTracks(context.Background(), "q", "", 10, 0)
	if err == nil {
		t.Fatal("expected error after exhausted retries")
	}
	if !strings.Contains(err.Error(), "after 2 attempts") {
		t.Errorf("error: got %v", err)
	}
	if got := atomic.LoadInt32(&attempt); got != 2 {
		t.Errorf("attempts: got %d, want 2", got)
	}
}

func TestGetJSONDoesNotRetryClientErrors(t *testing.T) {
	var attempt int32
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempt, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer api.Close()

	var tokenHits int32
	c := newTestClient(t, api, &tokenHits)

	_, err := c.SearchTracks(context.Background(), "q", "", 10, 0)
	if err == nil || !strings.Contains(err.Error(), "status 404") {
		t.Fatalf("error: got %v", err)
	}
	if got := atomic.LoadInt32(&attempt); got != 1 {
		t.Errorf("attempts: got %d, want 1", got)
	}
}

func TestGetJSONRefreshesTokenOn401(t *testing.T) {
	var attempt int32
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempt, 1) == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, searchBody)
	}))
	defer api.Close()

	var tokenHits int32
	c := newTestClient(t, api, &tokenHits)

	tracks, err := c.SearchTracks(context.Background(), "q", "", 10, 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(tracks) != 1 {
		t.Fatalf("tracks: got %d", len(tracks))
	}
	if got := atomic.LoadInt32(&tokenHits); got != 2 {
		t.Errorf("token fetches: got %d, want 2 (refresh after 401)", got)
	}
}

func TestGetJSONGivesUpAfterSecond401(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer api.Close()

	var tokenHits int32
	c := newTestClient(t, api, &tokenHits)

	_, err := c.SearchTracks(context.Background(), "q", "", 10, 0)
	if err == nil || !strings.Contains(err.Error(), "status 401") {
		t.Fatalf("error: got %v", err)
	}
	if got := atomic.LoadInt32(&tokenHits); got != 2 {
		t.Errorf("token fetches: got %d, want 2", got)
	}
}

func TestParseRetryAfter(t *testing.T) {
	mk := func(header string) *http.Response {
		resp := &http.Response{Header: http.Header{}}
		if header != "" {
			resp.Header.Set("Retry-After", header)
		}
		return resp
	}

	if got := parseRetryAfter(mk("")); got != 0 {
		t.Errorf("empty header: got %v", got)
	}
	if got := parseRetryAfter(mk("7")); got != 7*time.Second {
		t.Errorf("seconds: got %v", got)
	}
	if got := parseRetryAfter(mk("garbage")); got != 0 {
		t.Errorf("garbage: got %v", got)
	}

	future := time.Now().Add(30 * time.Second).UTC().Format(http.TimeFormat)
	if got := parseRetryAfter(mk(future)); got <= 0 || got > 30*time.Second {
		t.Errorf("http date: got %v", got)
	}
	past := time.Now().Add(-time.Minute).UTC().Format(http.TimeFormat)
	if got := parseRetryAfter(mk(past)); got != 0 {
		t.Errorf("past date: got %v", got)
	}
}

func TestArtistGenresChunksRequests(t *testing.T) {
	var calls int32
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		ids := strings.Split(r.URL.Query().Get("ids"), ",")
		if len(ids) > maxArtistsPerCall {
			t.Errorf("batch too large: %d ids", len(ids))
		}
		var items []string
		for _, id := range ids {
			items = append(items, fmt.Sprintf(`{"id":%q,"name":"n","genres":["pop"]}`, id))
		}
		fmt.Fprintf(w, `{"artists":[%s]}`, strings.Join(items, ","))
	}))
	defer api.Close()

	var tokenHits int32
	c := newTestClient(t, api, &tokenHits)

	ids := make([]string, 0, 60)
	for i := 0; i < 60; i++ {
		ids = append(ids, fmt.Sprintf("a%02d", i))
	}
	genres, err := c.ArtistGenres(context.Background(), ids)
	if err != nil {
		t.Fatalf("artist genres: %v", err)
	}
	if len(genres) != 60 {
		t.Fatalf("resolved: got %d, want 60", len(genres))
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("calls: got %d, want 2", got)
	}
	if got := genres["a00"]; len(got) != 1 || got[0] != "pop" {
		t.Errorf("genres for a00: got %v", got)
	}
}

func TestAudioFeaturesSkipsNullAnalysis(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"audio_features":[
			{"id":"t1","energy":0.8,"valence":0.6,"tempo":120},
			null,
			{"id":"t3","energy":0.2}
		]}`)
	}))
	defer api.Close()

	var tokenHits int32
	c := newTestClient(t, api, &tokenHits)

	feats, err := c.AudioFeatures(context.Background(), []string{"t1", "t2", "t3"})
	if err != nil {
		t.Fatalf("audio features: %v", err)
	}
	if len(feats) != 2 {
		t.Fatalf("features: got %d, want 2", len(feats))
	}
	t1 := feats["t1"]
	if t1.Energy == nil || *t1.Energy != 0.8 || t1.Tempo == nil || *t1.Tempo != 120 {
		t.Errorf("t1 features: got %+v", t1)
	}
	if t1.Danceability != nil {
		t.Errorf("absent field should stay nil, got %v", *t1.Danceability)
	}
	if _, ok := feats["t2"]; ok {
		t.Error("null analysis entry should be omitted")
	}
}
