package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PlaylistRequest is the request metadata persisted alongside a saved playlist.
type PlaylistRequest struct {
	Vibe            string `json:"vibe"`
	Mood            string `json:"mood,omitempty"`
	Activity        string `json:"activity,omitempty"`
	GenreOrLanguage string `json:"genre_or_language,omitempty"`
	ExcludeExplicit bool   `json:"exclude_explicit,omitempty"`
	Limit           int    `json:"limit"`
}

// TrackRecord is a ranked track flattened for persistence.
type TrackRecord struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Artists    string  `json:"artists"`
	AlbumName  string  `json:"album_name,omitempty"`
	URL        string  `json:"url,omitempty"`
	PreviewURL string  `json:"preview_url,omitempty"`
	Explicit   bool    `json:"explicit,omitempty"`
	Score      float64 `json:"score"`
	Reason     string  `json:"reason,omitempty"`
	Energy     float64 `json:"energy,omitempty"`
}

// SavedPlaylist is one row in the playlist store. The id is immutable once
// assigned and the store is append-only.
type SavedPlaylist struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	CreatedAt   string          `json:"created_at"`
	Request     PlaylistRequest `json:"request"`
	Description string          `json:"description,omitempty"`
	Tracks      []TrackRecord   `json:"tracks"`
}

// PlaylistSummary is the lightweight listing shape (newest first in List).
type PlaylistSummary struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	CreatedAt       string `json:"created_at"`
	TrackCount      int    `json:"n_tracks"`
	Mood            string `json:"mood,omitempty"`
	Activity        string `json:"activity,omitempty"`
	GenreOrLanguage string `json:"genre_or_language,omitempty"`
}

// NewPlaylistID builds the time+random composite id, e.g. 20260901-142233-9f3ac1.
func NewPlaylistID(now time.Time) string {
	return fmt.Sprintf("%s-%s", now.Format("20060102-150405"), strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
}

// NewSavedPlaylist assembles a playlist row from ranked tracks. A blank title
// falls back to "Playlist <id>".
func NewSavedPlaylist(title string, req PlaylistRequest, ranked []RankedTrack, description string, now time.Time) SavedPlaylist {
	id := NewPlaylistID(now)
	title = strings.TrimSpace(title)
	if title == "" {
		title = "Playlist " + id
	}
	records := make([]TrackRecord, 0, len(ranked))
	for _, rt := range ranked {
		names := make([]string, 0, len(rt.Track.Artists))
		for _, a := range rt.Track.Artists {
			names = append(names, a.Name)
		}
		records = append(records, TrackRecord{
			ID:         rt.Track.ID,
			Name:       rt.Track.Name,
			Artists:    strings.Join(names, ", "),
			AlbumName:  rt.Track.AlbumName,
			URL:        rt.Track.ExternalURL,
			PreviewURL: rt.Track.PreviewURL,
			Explicit:   rt.Track.Explicit,
			Score:      rt.Score,
			Reason:     rt.Reason,
		})
	}
	return SavedPlaylist{
		ID:          id,
		Title:       title,
		CreatedAt:   now.Format("2006-01-02T15:04:05"),
		Request:     req,
		Description: description,
		Tracks:      records,
	}
}

// Summary flattens a playlist to its listing shape.
func (p SavedPlaylist) Summary() PlaylistSummary {
	return PlaylistSummary{
		ID:              p.ID,
		Title:           p.Title,
		CreatedAt:       p.CreatedAt,
		TrackCount:      len(p.Tracks),
		Mood:            p.Request.Mood,
		Activity:        p.Request.Activity,
		GenreOrLanguage: p.Request.GenreOrLanguage,
	}
}
