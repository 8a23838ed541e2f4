package mood

import "github.com/harmonia-labs/moodcraft/internal/core/domain"

// Default signal weights. When only text and the Likert quiz are present the
// split is 0.7/0.3; the five-signal defaults mirror the full fusion surface.
const (
	WeightTextOnly = 0.7
	WeightQuizOnly = 0.3

	WeightText  = 0.6
	WeightColor = 0.1
	WeightEmoji = 0.15
	WeightSAM   = 0.1
	WeightQuiz  = 0.05
)

// Signal is one weighted mood distribution entering fusion. A nil or empty
// distribution contributes zero weight rather than being an error.
type Signal struct {
	Dist   domain.MoodDistribution
	Weight float64
}

// Fuse combines weighted distributions over the union of all labels any
// source introduced, then renormalizes. Labels are never silently dropped.
func Fuse(signals ...Signal) domain.FusedMood {
	labels := map[string]struct{}{}
	for _, s := range signals {
		for label := range s.Dist {
			labels[label] = struct{}{}
		}
	}
	if len(labels) == 0 {
		for _, m := range domain.Moods {
			labels[m] = struct{}{}
		}
	}

	fused := domain.MoodDistribution{}
	for label := range labels {
		fused[label] = 0
	}
	for _, s := range signals {
		if len(s.Dist) == 0 || s.Weight <= 0 {
			continue
		}
		expanded := expand(s.Dist, labels)
		for label, w := range expanded {
			fused[label] += s.Weight * w
		}
	}
	return domain.NewFusedMood(fused)
}

// FuseWithQuiz fuses text and quiz signals and then applies quiz precedence:
// a non-empty quiz label (including the focus override) replaces the fused
// label, with confidence = max(fused, quiz). The distribution is rebalanced so
// the label/argmax/confidence invariants keep holding.
func FuseWithQuiz(text domain.MoodDistribution, quiz QuizResult, wText, wQuiz float64) domain.FusedMood {
	fused := Fuse(
		Signal{Dist: text, Weight: wText},
		Signal{Dist: quiz.Distribution(), Weight: wQuiz},
	)
	return PromoteQuizLabel(fused, quiz)
}

// PromoteQuizLabel applies the quiz>fused precedence rule to an already fused
// mood. Promotion never decreases confidence.
func PromoteQuizLabel(fused domain.FusedMood, quiz QuizResult) domain.FusedMood {
	if quiz.Empty() {
		return fused
	}
	conf := fused.Confidence
	if quiz.Confidence > conf {
		conf = quiz.Confidence
	}
	dist := fused.Distribution.Clone()
	rebalance(dist, quiz.Label, conf)
	return domain.FusedMood{Label: quiz.Label, Confidence: conf, Distribution: dist}
}

// rebalance pins dist[label] to weight, scaling the remaining labels to share
// the leftover mass proportionally. The result sums to 1 and label is argmax
// as long as weight >= the previous maximum.
func rebalance(dist domain.MoodDistribution, label string, weight float64) {
	rest := 0.0
	for l, w := range dist {
		if l != label {
			rest += w
		}
	}
	if rest > 0 {
		scale := (1 - weight) / rest
		for l, w := range dist {
			if l != label {
				dist[l] = w * scale
			}
		}
	} else if weight < 1 {
		// Quiz label is the only label; it owns all the mass.
		weight = 1
	}
	dist[label] = weight
}

func expand(d domain.MoodDistribution, labels map[string]struct{}) domain.MoodDistribution {
	out := domain.MoodDistribution{}
	for label := range labels {
		out[label] = 0
	}
	for label, w := range d {
		out[label] = w
	}
	return out.Normalize()
}
