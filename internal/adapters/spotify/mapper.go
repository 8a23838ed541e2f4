package spotify

import "github.com/harmonia-labs/moodcraft/internal/core/domain"

// mapTrackToDomain converts a raw Web API track to a clean domain track.
func mapTrackToDomain(wt wireTrack) domain.Track {
	artists := make([]domain.ArtistRef, 0, len(wt.Artists))
	for _, a := range wt.Artists {
		artists = append(artists, domain.ArtistRef{ID: a.ID, Name: a.Name})
	}
	return domain.Track{
		ID:          wt.ID,
		Name:        wt.Name,
		Artists:     artists,
		AlbumName:   wt.Album.Name,
		ExternalURL: wt.ExternalURLs.Spotify,
		PreviewURL:  wt.PreviewURL,
		Explicit:    wt.Explicit,
	}
}

func mapTracksToDomain(wts []wireTrack) []domain.Track {
	out := make([]domain.Track, 0, len(wts))
	for _, wt := range wts {
		if wt.ID == "" {
			continue
		}
		out = append(out, mapTrackToDomain(wt))
	}
	return out
}

// mapFeaturesToDomain keeps nil pointers nil so missing measurements stay
// distinguishable from zeroes downstream.
func mapFeaturesToDomain(wf *wireAudioFeatures) domain.FeatureSet {
	if wf == nil {
		return domain.FeatureSet{}
	}
	return domain.FeatureSet{
		Energy:           wf.Energy,
		Valence:          wf.Valence,
		Danceability:     wf.Danceability,
		Tempo:            wf.Tempo,
		Instrumentalness: wf.Instrumentalness,
	}
}
