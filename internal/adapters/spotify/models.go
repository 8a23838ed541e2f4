package spotify

// Wire shapes for the Web API responses. Only the fields the adapter reads
// are declared.

type wireTrack struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Artists      []wireArtist `json:"artists"`
	Album        wireAlbum    `json:"album"`
	PreviewURL   string       `json:"preview_url"`
	Explicit     bool         `json:"explicit"`
	ExternalURLs wireURLs     `json:"external_urls"`
}

type wireArtist struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Genres []string `json:"genres,omitempty"`
}

type wireAlbum struct {
	Name string `json:"name"`
}

type wireURLs struct {
	Spotify string `json:"spotify"`
}

type wireSearchResponse struct {
	Tracks struct {
		Items []wireTrack `json:"items"`
	} `json:"tracks"`
	Playlists struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
	} `json:"playlists"`
}

// Playlist items wrap the track one level deeper than search results do.
type wirePlaylistTracks struct {
	Items []struct {
		Track wireTrack `json:"track"`
	} `json:"items"`
}

type wireArtistsResponse struct {
	Artists []wireArtist `json:"artists"`
}

type wireAudioFeatures struct {
	ID               string   `json:"id"`
	Energy           *float64 `json:"energy"`
	Valence          *float64 `json:"valence"`
	Danceability     *float64 `json:"danceability"`
	Tempo            *float64 `json:"tempo"`
	Instrumentalness *float64 `json:"instrumentalness"`
}

type wireFeaturesResponse struct {
	AudioFeatures []*wireAudioFeatures `json:"audio_features"`
}

type wireRecommendations struct {
	Tracks []wireTrack `json:"tracks"`
}

type wireGenreSeeds struct {
	Genres []string `json:"genres"`
}
