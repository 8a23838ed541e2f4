package mood

import (
	"strings"

	"github.com/harmonia-labs/moodcraft/internal/core/domain"
	"github.com/harmonia-labs/moodcraft/internal/core/ports"
)

// Keyword lexicon used when no trained classifier is configured.
var lexicon = map[string][]string{
	"happy":   {"happy", "joy", "excited", "fun", "party", "energetic", "dance", "vibe", "good", "great", "cheerful", "uplift", "smile"},
	"sad":     {"sad", "down", "blue", "depressed", "cry", "lonely", "heartbroken", "miss", "nostalgic", "slow", "melancholy", "exhausted"},
	"chill":   {"chill", "calm", "relax", "lofi", "coffee", "study", "focus", "mellow", "soft", "ambient", "smooth", "peaceful"},
	"angry":   {"angry", "mad", "rage", "furious", "aggressive", "scream"},
	"workout": {"workout", "gym", "run", "cardio", "training", "hiit", "beast", "motivation", "pump", "power"},
	"sleep":   {"sleep", "bedtime", "asleep", "doze", "night", "lullaby", "soothing", "white", "noise"},
	"calm":    {"calm", "serene", "soothing", "gentle", "quiet", "tranquil"},
}

// LexiconClassifier scores text by keyword hits per label and converts the
// counts into a pseudo-probability distribution. It is the fallback behind
// ports.MoodClassifier when no statistical model is available.
type LexiconClassifier struct{}

var _ ports.MoodClassifier = LexiconClassifier{}

// ClassifyText guarantees a complete distribution summing to 1 with the
// winning label holding at least 0.15 of the mass. Confidence floors at 0.15
// when no keyword matches.
func (LexiconClassifier) ClassifyText(text string) (string, float64, domain.MoodDistribution) {
	tokens := normalizeWords(text)
	counts := domain.MoodDistribution{}
	for label := range lexicon {
		counts[label] = 0
	}
	for label, vocab := range lexicon {
		for _, tok := range tokens {
			for _, w := range vocab {
				if tok == w {
					counts[label]++
					break
				}
			}
		}
	}

	best, bestHits := "chill", 0.0
	for _, label := range counts.Labels() {
		if counts[label] > bestHits {
			best, bestHits = label, counts[label]
		}
	}

	conf := 0.15
	if bestHits > 0 {
		conf = 0.45 + 0.1*bestHits
		if conf > 0.95 {
			conf = 0.95
		}
	}

	probs := counts.Normalize()
	if probs[best] < 0.15 {
		// Rescale the losers so the winner keeps at least 0.15 of the mass
		// and the weights still sum to 1.
		rest := 0.0
		for label, w := range probs {
			if label != best {
				rest += w
			}
		}
		if rest == 0 {
			probs[best] = 1.0
		} else {
			for label, w := range probs {
				if label != best {
					probs[label] = w / rest * 0.85
				}
			}
			probs[best] = 0.15
		}
	}
	return best, conf, probs
}

func normalizeWords(text string) []string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Fields(b.String())
}

func lower(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
