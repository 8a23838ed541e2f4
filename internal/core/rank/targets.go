// Package rank scores candidate tracks against mood-derived audio-feature
// targets and produces the final ordered list.
package rank

import "strings"

// Targets holds per-feature pull targets and one-sided bounds. Nil means the
// dimension is unconstrained.
type Targets struct {
	TargetValence *float64
	TargetEnergy  *float64
	MinEnergy     *float64
	MaxEnergy     *float64
	MaxValence    *float64
	MinTempo      *float64
	MaxTempo      *float64
	MinDance      *float64
	MinInstrument *float64
}

func f(v float64) *float64 { return &v }

// MoodTargets maps a mood label and optional activity to feature targets.
// Unknown moods get a mildly positive default. Activity adjustments are
// applied after the mood table and may override it.
func MoodTargets(mood, activity string) Targets {
	var t Targets
	switch strings.ToLower(strings.TrimSpace(mood)) {
	case "happy":
		t = Targets{TargetValence: f(0.85), MinEnergy: f(0.6)}
	case "sad":
		t = Targets{TargetValence: f(0.25), MaxEnergy: f(0.5)}
	case "energetic":
		t = Targets{TargetValence: f(0.7), MinEnergy: f(0.8)}
	case "chill":
		t = Targets{TargetValence: f(0.6), MaxEnergy: f(0.55), MaxTempo: f(110)}
	case "focus":
		t = Targets{MaxEnergy: f(0.55), MaxValence: f(0.7), MinInstrument: f(0.2)}
	case "romantic":
		t = Targets{TargetValence: f(0.7), MaxEnergy: f(0.7)}
	case "angry":
		t = Targets{MinEnergy: f(0.85)}
	case "calm":
		t = Targets{MaxEnergy: f(0.45), MaxTempo: f(100)}
	default:
		t = Targets{TargetValence: f(0.7)}
	}

	switch strings.ToLower(strings.TrimSpace(activity)) {
	case "workout":
		t.MinEnergy = f(0.8)
		t.MinTempo = f(120)
	case "study":
		t.MaxEnergy = f(0.55)
		t.MaxTempo = f(110)
	case "party":
		t.MinEnergy = f(0.75)
		t.MinDance = f(0.7)
	case "sleep":
		t.MaxEnergy = f(0.35)
		t.MaxTempo = f(90)
	}
	return t
}
