package ports

import "github.com/harmonia-labs/moodcraft/internal/core/domain"

// MoodClassifier turns free text into a mood label, a confidence, and a
// complete distribution summing to 1. Implementations are polymorphic over a
// trained model and the keyword-lexicon fallback.
type MoodClassifier interface {
	ClassifyText(text string) (label string, confidence float64, dist domain.MoodDistribution)
}
