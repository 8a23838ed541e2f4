package rank

import (
	"testing"

	"github.com/harmonia-labs/moodcraft/internal/core/domain"
)

func TestScore(t *testing.T) {
	happy := MoodTargets("happy", "")

	perfect := domain.FeatureSet{Valence: f(0.85), Energy: f(0.9)}
	offTarget := domain.FeatureSet{Valence: f(0.1), Energy: f(0.2)}

	sPerfect := Score(happy, perfect)
	sOff := Score(happy, offTarget)

	if sPerfect != 1.0 {
		t.Fatalf("zero-distance score: got %v, want 1.0", sPerfect)
	}
	if sOff >= sPerfect {
		t.Fatalf("off-target score %v should trail on-target %v", sOff, sPerfect)
	}
	if sOff <= 0 {
		t.Fatalf("score must stay positive, got %v", sOff)
	}
}

func TestScoreMissingFeaturesAreNeutral(t *testing.T) {
	targets := MoodTargets("chill", "")
	if got := Score(targets, domain.FeatureSet{}); got != 1.0 {
		t.Fatalf("no-feature score: got %v, want 1.0", got)
	}
}

func TestScoreTempoPenaltyScaledDown(t *testing.T) {
	targets := MoodTargets("chill", "")

	slightlyFast := Score(targets, domain.FeatureSet{Tempo: f(130)})
	veryFast := Score(targets, domain.FeatureSet{Tempo: f(190)})

	if slightlyFast <= veryFast {
		t.Fatalf("faster tempo should score lower: %v vs %v", slightlyFast, veryFast)
	}
	// 20 BPM over the 110 cap: d = 0.6*20/200 = 0.06, score 1/1.06.
	if want := 1.0 / 1.06; abs(slightlyFast-want) > 1e-9 {
		t.Fatalf("tempo penalty: got %v, want %v", slightlyFast, want)
	}
}

func TestMoodTargetsActivityOverrides(t *testing.T) {
	base := MoodTargets("chill", "")
	if base.MinTempo != nil {
		t.Fatalf("chill alone should not set a tempo floor")
	}

	workout := MoodTargets("chill", "workout")
	if workout.MinTempo == nil || *workout.MinTempo != 120 {
		t.Fatalf("workout should force MinTempo=120, got %+v", workout.MinTempo)
	}
	if workout.MinEnergy == nil || *workout.MinEnergy != 0.8 {
		t.Fatalf("workout should force MinEnergy=0.8, got %+v", workout.MinEnergy)
	}

	unknown := MoodTargets("mysterious", "")
	if unknown.TargetValence == nil || *unknown.TargetValence != 0.7 {
		t.Fatalf("unknown mood default: got %+v", unknown.TargetValence)
	}
}

func TestBoost(t *testing.T) {
	track := domain.Track{
		ID:        "t1",
		Name:      "Lofi Rain",
		Artists:   []domain.ArtistRef{{ID: "a1", Name: "Chillhop Collective"}},
		AlbumName: "Night Beats",
	}

	tests := []struct {
		name     string
		genres   []string
		vibe     []string
		required []string
		want     float64
	}{
		{"no matches", nil, []string{"metal"}, nil, 0},
		{"vibe token in name", nil, []string{"rain"}, nil, 0.02},
		{"genre in artist cache", []string{"lofi beats"}, nil, []string{"lofi"}, 0.05 + 0.03},
		{"genre literal only", nil, nil, []string{"night"}, 0.03},
		{"stacked", []string{"lofi beats"}, []string{"rain", "chillhop"}, []string{"lofi"}, 0.02 + 0.02 + 0.05 + 0.03},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Boost(track, tt.genres, tt.vibe, tt.required)
			if abs(got-tt.want) > 1e-9 {
				t.Fatalf("boost: got %v, want %v", got, tt.want)
			}
		})
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
