// Package mood converts heterogeneous mood signals (free text, colors, emoji,
// valence/arousal pairs, quizzes) into distributions over a shared label
// vocabulary, and fuses them into a single mood.
package mood

import "github.com/harmonia-labs/moodcraft/internal/core/domain"

// Static priors per color name. Unknown colors fall back to a uniform-ish
// neutral prior.
var colorPriors = map[string]domain.MoodDistribution{
	"yellow": {"happy": 0.7, "chill": 0.2, "workout": 0.1},
	"green":  {"chill": 0.6, "happy": 0.3, "sleep": 0.1},
	"red":    {"angry": 0.6, "workout": 0.3, "happy": 0.1},
	"blue":   {"sad": 0.6, "chill": 0.3, "sleep": 0.1},
	"purple": {"sleep": 0.4, "chill": 0.4, "sad": 0.2},
	"orange": {"happy": 0.5, "workout": 0.4, "chill": 0.1},
	"black":  {"sad": 0.5, "sleep": 0.3, "angry": 0.2},
	"white":  {"chill": 0.5, "happy": 0.3, "sleep": 0.2},
}

var emojiPriors = map[string]domain.MoodDistribution{
	"😄": {"happy": 0.8, "chill": 0.2},
	"🙂": {"chill": 0.6, "happy": 0.4},
	"😠": {"angry": 0.8, "workout": 0.2},
	"😢": {"sad": 0.9, "sleep": 0.1},
	"💪": {"workout": 0.85, "happy": 0.15},
	"😴": {"sleep": 0.9, "chill": 0.1},
}

func neutralPrior() domain.MoodDistribution {
	return domain.MoodDistribution{"chill": 0.34, "happy": 0.33, "sleep": 0.33}
}

// FromColor maps a named color to a mood prior.
func FromColor(color string) domain.MoodDistribution {
	if prior, ok := colorPriors[lower(color)]; ok {
		return prior.Clone().Normalize()
	}
	return neutralPrior().Normalize()
}

// FromEmoji maps an emoji to a mood prior.
func FromEmoji(emoji string) domain.MoodDistribution {
	if prior, ok := emojiPriors[emoji]; ok {
		return prior.Clone().Normalize()
	}
	return neutralPrior().Normalize()
}

// FromSAM maps a Self-Assessment-Manikin (valence, arousal) pair in [0,1]² to
// a mood via quadrant rules with soft weights. Thresholds sit at 0.6 on each
// axis.
func FromSAM(valence, arousal float64) domain.MoodDistribution {
	out := domain.MoodDistribution{}
	switch {
	case valence >= 0.6 && arousal >= 0.6:
		out["happy"], out["workout"] = 0.6, 0.4
	case valence >= 0.6:
		out["chill"], out["happy"] = 0.7, 0.3
	case arousal >= 0.6:
		out["angry"], out["workout"] = 0.7, 0.3
	default:
		out["sad"], out["sleep"] = 0.6, 0.4
	}
	return out.Normalize()
}

// QuickQuizAnswers is the small 3-question quiz: energy low|medium|high,
// social solo|group, focus relax|party|gym|study.
type QuickQuizAnswers struct {
	Energy string `json:"energy"`
	Social string `json:"social"`
	Focus  string `json:"focus"`
}

// FromQuickQuiz converts quiz answers to a mood prior by additive weights.
func FromQuickQuiz(a QuickQuizAnswers) domain.MoodDistribution {
	out := domain.MoodDistribution{}
	switch lower(a.Energy) {
	case "high":
		out["workout"] += 0.5
		out["happy"] += 0.3
	case "low":
		out["sleep"] += 0.5
		out["sad"] += 0.2
	}
	switch lower(a.Social) {
	case "group":
		out["happy"] += 0.3
		out["workout"] += 0.2
	case "solo":
		out["chill"] += 0.3
		out["sad"] += 0.1
	}
	switch lower(a.Focus) {
	case "gym":
		out["workout"] += 0.5
	case "party":
		out["happy"] += 0.5
	case "study":
		out["chill"] += 0.5
	default: // relax
		out["chill"] += 0.3
		out["sleep"] += 0.2
	}
	return out.Normalize()
}
