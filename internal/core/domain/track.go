package domain

import "fmt"

// ArtistRef is the (id, name) pair the catalog attaches to a track.
type ArtistRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Track is a candidate track fetched from the catalog. Immutable once fetched;
// identity is the catalog id.
type Track struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Artists     []ArtistRef `json:"artists"`
	AlbumName   string      `json:"album_name"`
	ExternalURL string      `json:"external_url"`
	PreviewURL  string      `json:"preview_url,omitempty"`
	Explicit    bool        `json:"explicit"`
}

// ArtistIDs returns the non-empty artist ids in order.
func (t Track) ArtistIDs() []string {
	out := make([]string, 0, len(t.Artists))
	for _, a := range t.Artists {
		if a.ID != "" {
			out = append(out, a.ID)
		}
	}
	return out
}

// FeatureSet holds per-track audio features. The catalog may omit any field,
// so every field is optional.
type FeatureSet struct {
	Energy           *float64 `json:"energy,omitempty"`
	Valence          *float64 `json:"valence,omitempty"`
	Danceability     *float64 `json:"danceability,omitempty"`
	Tempo            *float64 `json:"tempo,omitempty"`
	Instrumentalness *float64 `json:"instrumentalness,omitempty"`
}

// Empty reports whether no feature is present.
func (f FeatureSet) Empty() bool {
	return f.Energy == nil && f.Valence == nil && f.Danceability == nil &&
		f.Tempo == nil && f.Instrumentalness == nil
}

// Reason builds the compact explainability string for a track, e.g.
// "energy=0.68, valence=0.31, danceability=0.55, tempo=92".
func (f FeatureSet) Reason() string {
	parts := make([]string, 0, 4)
	if f.Energy != nil {
		parts = append(parts, fmt.Sprintf("energy=%.2f", *f.Energy))
	}
	if f.Valence != nil {
		parts = append(parts, fmt.Sprintf("valence=%.2f", *f.Valence))
	}
	if f.Danceability != nil {
		parts = append(parts, fmt.Sprintf("danceability=%.2f", *f.Danceability))
	}
	if f.Tempo != nil {
		parts = append(parts, fmt.Sprintf("tempo=%d", int(*f.Tempo)))
	}
	if len(parts) == 0 {
		return "features unavailable"
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += ", " + p
	}
	return out
}

// RankedTrack pairs a track with its score and reason. Scores order tracks
// within one generation call only; the absolute scale is not comparable
// across calls.
type RankedTrack struct {
	Track  Track   `json:"track"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}
