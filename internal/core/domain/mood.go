package domain

import "sort"

// Canonical mood vocabulary. Signal sources may introduce labels outside this
// set (the Likert quiz emits "relaxed"); those are preserved, not dropped.
var Moods = []string{"happy", "sad", "chill", "angry", "workout", "sleep", "calm", "focus", "romantic", "energetic"}

// MoodDistribution is a probability-like weighting over mood labels.
// After Normalize the weights are non-negative and sum to 1.
type MoodDistribution map[string]float64

// Normalize floors negative weights to zero and rescales so the weights sum
// to 1. An all-zero distribution is left as-is (divisor defaults to 1).
func (d MoodDistribution) Normalize() MoodDistribution {
	sum := 0.0
	for k, v := range d {
		if v < 0 {
			d[k] = 0
			v = 0
		}
		sum += v
	}
	if sum == 0 {
		sum = 1.0
	}
	for k, v := range d {
		d[k] = v / sum
	}
	return d
}

// Best returns the argmax label and its weight. Ties break toward the
// lexicographically smaller label so the result is stable across runs.
func (d MoodDistribution) Best() (string, float64) {
	best, bestW := "", -1.0
	for _, label := range d.Labels() {
		if w := d[label]; w > bestW {
			best, bestW = label, w
		}
	}
	if best == "" {
		return "", 0
	}
	return best, bestW
}

// Labels returns the label set in sorted order.
func (d MoodDistribution) Labels() []string {
	out := make([]string, 0, len(d))
	for k := range d {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Clone returns an independent copy.
func (d MoodDistribution) Clone() MoodDistribution {
	out := make(MoodDistribution, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// FusedMood is the final output of mood fusion.
// Invariant: Label == argmax(Distribution) and Confidence == Distribution[Label].
type FusedMood struct {
	Label        string           `json:"label"`
	Confidence   float64          `json:"confidence"`
	Distribution MoodDistribution `json:"distribution"`
}

// NewFusedMood normalizes d and derives label and confidence from it.
func NewFusedMood(d MoodDistribution) FusedMood {
	d = d.Normalize()
	label, conf := d.Best()
	return FusedMood{Label: label, Confidence: conf, Distribution: d}
}
