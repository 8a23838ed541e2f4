package rank

import (
	"math"
	"strings"

	"github.com/harmonia-labs/moodcraft/internal/core/domain"
	"github.com/harmonia-labs/moodcraft/internal/core/plan"
)

// Distance weights per feature dimension.
const (
	wValence    = 1.0
	wEnergy     = 1.2
	wTempo      = 0.6
	wDance      = 0.6
	wInstrument = 0.4
)

// Score converts the weighted distance between a track's features and the
// targets into a score in (0, 1]; higher is better. Pull terms apply only
// when both target and feature are present; violated bounds add proportional
// penalties, with tempo scaled down by /200.
func Score(t Targets, feat domain.FeatureSet) float64 {
	d := 0.0
	if t.TargetValence != nil && feat.Valence != nil {
		d += wValence * math.Abs(*feat.Valence-*t.TargetValence)
	}
	if t.TargetEnergy != nil && feat.Energy != nil {
		d += wEnergy * math.Abs(*feat.Energy-*t.TargetEnergy)
	}
	if t.MinTempo != nil && feat.Tempo != nil && *feat.Tempo < *t.MinTempo {
		d += wTempo * (*t.MinTempo - *feat.Tempo) / 200.0
	}
	if t.MaxTempo != nil && feat.Tempo != nil && *feat.Tempo > *t.MaxTempo {
		d += wTempo * (*feat.Tempo - *t.MaxTempo) / 200.0
	}
	if t.MinEnergy != nil && feat.Energy != nil && *feat.Energy < *t.MinEnergy {
		d += wEnergy * (*t.MinEnergy - *feat.Energy)
	}
	if t.MaxEnergy != nil && feat.Energy != nil && *feat.Energy > *t.MaxEnergy {
		d += wEnergy * (*feat.Energy - *t.MaxEnergy)
	}
	if t.MaxValence != nil && feat.Valence != nil && *feat.Valence > *t.MaxValence {
		d += wValence * (*feat.Valence - *t.MaxValence)
	}
	if t.MinDance != nil && feat.Danceability != nil && *feat.Danceability < *t.MinDance {
		d += wDance * (*t.MinDance - *feat.Danceability)
	}
	if t.MinInstrument != nil && feat.Instrumentalness != nil && *feat.Instrumentalness < *t.MinInstrument {
		d += wInstrument * (*t.MinInstrument - *feat.Instrumentalness)
	}
	return 1.0 / (1.0 + d)
}

// Boost rewards literal vibe-token and genre matches in the track, artist and
// album names, and genre overlap with the artist's cached catalog genres.
// Always non-negative.
func Boost(track domain.Track, artistGenres []string, vibeTokens, requiredGenres []string) float64 {
	name := strings.ToLower(track.Name)
	album := strings.ToLower(track.AlbumName)
	var artistNames strings.Builder
	for _, a := range track.Artists {
		artistNames.WriteString(strings.ToLower(a.Name))
		artistNames.WriteByte(' ')
	}
	artists := artistNames.String()

	boost := 0.0
	for _, vt := range vibeTokens {
		if vt == "" {
			continue
		}
		if strings.Contains(name, vt) || strings.Contains(artists, vt) || strings.Contains(album, vt) {
			boost += 0.02
		}
	}
	for _, g := range requiredGenres {
		if g == "" {
			continue
		}
		if plan.GenresMatch([]string{g}, artistGenres) {
			boost += 0.05
		}
		if strings.Contains(name, g) || strings.Contains(artists, g) || strings.Contains(album, g) {
			boost += 0.03
		}
	}
	return boost
}
