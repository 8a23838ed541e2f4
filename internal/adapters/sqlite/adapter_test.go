package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/harmonia-labs/moodcraft/internal/core/domain"
)

func newAdapter(t *testing.T) *Adapter {
	t.Helper()
	a, err := NewAdapter(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("new adapter: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func samplePlaylist(id, createdAt string) domain.SavedPlaylist {
	return domain.SavedPlaylist{
		ID:          id,
		Title:       "Playlist " + id,
		CreatedAt:   createdAt,
		Description: "desc",
		Request: domain.PlaylistRequest{
			Vibe:            "late night drive",
			Mood:            "chill",
			Activity:        "driving",
			GenreOrLanguage: "lofi",
			Limit:           2,
		},
		Tracks: []domain.TrackRecord{
			{ID: "t1", Name: "First", Artists: "A, B", AlbumName: "Album", URL: "u1",
				PreviewURL: "p1", Explicit: true, Score: 0.91, Reason: "energy=0.70"},
			{ID: "t2", Name: "Second", Artists: "C", Score: 0.55},
		},
	}
}

func TestAdapterSaveAndLoad(t *testing.T) {
	a := newAdapter(t)
	ctx := context.Background()

	want := samplePlaylist("p1", "2026-09-01T10:00:00")
	if err := a.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := a.Load(ctx, "p1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Title != want.Title || got.Description != want.Description {
		t.Errorf("playlist: got %+v", got)
	}
	if got.Request.Mood != "chill" || got.Request.GenreOrLanguage != "lofi" {
		t.Errorf("request: got %+v", got.Request)
	}
	if len(got.Tracks) != 2 {
		t.Fatalf("tracks: got %d", len(got.Tracks))
	}
	first := got.Tracks[0]
	if first.ID != "t1" || first.Artists != "A, B" || !first.Explicit || first.Score != 0.91 {
		t.Errorf("first track: got %+v", first)
	}
	if second := got.Tracks[1]; second.AlbumName != "" || second.Explicit {
		t.Errorf("second track: got %+v", second)
	}

	if _, err := a.Load(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("missing id: got %v", err)
	}
}

func TestAdapterListNewestFirst(t *testing.T) {
	a := newAdapter(t)
	ctx := context.Background()

	if err := a.Save(ctx, samplePlaylist("old", "2026-08-30T09:00:00")); err != nil {
		t.Fatal(err)
	}
	if err := a.Save(ctx, samplePlaylist("new", "2026-09-01T09:00:00")); err != nil {
		t.Fatal(err)
	}

	rows, err := a.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 || rows[0].ID != "new" || rows[1].ID != "old" {
		t.Fatalf("order: got %v", rows)
	}
	if rows[0].TrackCount != 2 || rows[0].Mood != "chill" || rows[0].Activity != "driving" {
		t.Errorf("summary: got %+v", rows[0])
	}
}

func TestAdapterDelete(t *testing.T) {
	a := newAdapter(t)
	ctx := context.Background()

	if err := a.Save(ctx, samplePlaylist("p1", "2026-09-01T10:00:00")); err != nil {
		t.Fatal(err)
	}

	removed, err := a.Delete(ctx, "p1")
	if err != nil || !removed {
		t.Fatalf("delete: removed=%v err=%v", removed, err)
	}
	removed, err = a.Delete(ctx, "p1")
	if err != nil || removed {
		t.Fatalf("second delete: removed=%v err=%v", removed, err)
	}
	if _, err := a.Load(ctx, "p1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("load after delete: got %v", err)
	}
}

func TestAdapterUpdateTrackEnergy(t *testing.T) {
	a := newAdapter(t)
	ctx := context.Background()

	if err := a.Save(ctx, samplePlaylist("p1", "2026-09-01T10:00:00")); err != nil {
		t.Fatal(err)
	}
	if err := a.UpdateTrackEnergy(ctx, "p1", "t2", 0.66); err != nil {
		t.Fatalf("update energy: %v", err)
	}

	got, err := a.Load(ctx, "p1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Tracks[1].Energy != 0.66 {
		t.Errorf("energy: got %v", got.Tracks[1].Energy)
	}
	if got.Tracks[0].Energy != 0 {
		t.Errorf("untouched track energy: got %v", got.Tracks[0].Energy)
	}

	// Unknown ids update nothing and report no error.
	if err := a.UpdateTrackEnergy(ctx, "nope", "t1", 0.5); err != nil {
		t.Errorf("unknown playlist: %v", err)
	}
}
