package domain

// ProfileEntry is one ranked item in a taste profile, with its accumulated
// recency-decayed weight.
type ProfileEntry struct {
	Value string  `json:"value"`
	Score float64 `json:"score"`
}

// ProfileStats summarizes the store the profile was built from.
type ProfileStats struct {
	TotalPlaylists    int `json:"total_playlists"`
	TotalUniqueTracks int `json:"total_unique_tracks"`
}

// TimePatterns captures when the user tends to build playlists.
type TimePatterns struct {
	TopWeekdays []ProfileEntry `json:"top_weekdays"`
	TopHours    []ProfileEntry `json:"top_hours"`
}

// TasteProfile aggregates saved playlists into listening preferences. Recent
// saves weigh more than old ones; SavedTrackIDs feeds the used-id exclusion
// when recommending.
type TasteProfile struct {
	Stats         ProfileStats   `json:"stats"`
	TopMoods      []ProfileEntry `json:"top_moods"`
	TopGenres     []ProfileEntry `json:"top_genres_or_languages"`
	TopArtists    []ProfileEntry `json:"top_artists"`
	TimePatterns  TimePatterns   `json:"time_patterns"`
	SavedTrackIDs []string       `json:"saved_track_ids"`
}

// FirstPreference returns the top entry's value or the fallback when the
// ranking is empty.
func FirstPreference(entries []ProfileEntry, fallback string) string {
	if len(entries) == 0 {
		return fallback
	}
	return entries[0].Value
}
