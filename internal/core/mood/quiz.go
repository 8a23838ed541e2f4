package mood

import (
	"math"

	"github.com/harmonia-labs/moodcraft/internal/core/domain"
)

// Likert answer codes for questions 1-9.
const (
	StronglyAgree    = "SA"
	Agree            = "A"
	CantSay          = "CS"
	Disagree         = "D"
	StronglyDisagree = "SD"
)

type point struct{ x, y float64 }

// Per-question lookup from a Likert answer to a (valence, energy) point in
// [0,1]². Questions 1-3 weight agreement toward low valence/energy, 4-6 toward
// high; 7-9 mix anger/sadness/irritability axes.
var likertWeights = map[int]map[string]point{
	1: {StronglyAgree: {0.0, 0.0}, Agree: {0.25, 0.25}, CantSay: {0.5, 0.5}, Disagree: {0.375, 0.375}, StronglyDisagree: {0.5, 0.5}},
	2: {StronglyAgree: {0.0, 0.0}, Agree: {0.25, 0.25}, CantSay: {0.5, 0.5}, Disagree: {0.375, 0.375}, StronglyDisagree: {0.5, 0.5}},
	3: {StronglyAgree: {0.0, 0.0}, Agree: {0.25, 0.25}, CantSay: {0.5, 0.5}, Disagree: {0.75, 0.75}, StronglyDisagree: {0.875, 0.875}},
	4: {StronglyAgree: {1.0, 1.0}, Agree: {0.75, 0.75}, CantSay: {0.5, 0.5}, Disagree: {0.25, 0.25}, StronglyDisagree: {0.0, 0.0}},
	5: {StronglyAgree: {1.0, 1.0}, Agree: {0.75, 0.75}, CantSay: {0.5, 0.5}, Disagree: {0.25, 0.25}, StronglyDisagree: {0.0, 0.0}},
	6: {StronglyAgree: {1.0, 1.0}, Agree: {0.75, 0.75}, CantSay: {0.5, 0.5}, Disagree: {0.25, 0.25}, StronglyDisagree: {0.0, 0.0}},
	7: {StronglyAgree: {0.1, 1.0}, Agree: {0.25, 1.0}, CantSay: {0.5, 0.5}, Disagree: {0.5, 1.0}, StronglyDisagree: {0.75, 0.75}},
	8: {StronglyAgree: {0.75, 0.0}, Agree: {0.5, 0.0}, CantSay: {0.5, 0.5}, Disagree: {0.25, 0.25}, StronglyDisagree: {0.0, 0.0}},
	9: {StronglyAgree: {0.0, 1.0}, Agree: {0.25, 1.0}, CantSay: {0.5, 0.5}, Disagree: {0.6, 0.4}, StronglyDisagree: {0.8, 0.2}},
}

// QuizResult is the 10-item Likert quiz outcome. Label may be outside the
// canonical vocabulary ("relaxed"); downstream code preserves it.
type QuizResult struct {
	Label      string  `json:"label"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Confidence float64 `json:"confidence"`
}

// Empty reports whether the quiz produced no label.
func (r QuizResult) Empty() bool { return r.Label == "" }

// Distribution projects the quiz result to a one-hot mood distribution so it
// can enter fusion like any other signal.
func (r QuizResult) Distribution() domain.MoodDistribution {
	if r.Empty() {
		return domain.MoodDistribution{}
	}
	return domain.MoodDistribution{r.Label: r.Confidence}.Normalize()
}

// EvaluateLikertQuiz scores the 10-item quiz. answers maps question index
// (1..9) to a Likert code; focusYes is question 10's binary focus override.
//
// "Can't Say" answers are excluded from the plain average but included in the
// exponential moving average computed over all answers in question order; the
// final point is the midpoint of the two. Unifying the two paths changes
// classification outcomes.
func EvaluateLikertQuiz(answers map[int]string, focusYes *bool) QuizResult {
	var xs, ys, xsAll, ysAll []float64
	for q := 1; q <= 9; q++ {
		opt, ok := answers[q]
		if !ok {
			continue
		}
		p, ok := likertWeights[q][opt]
		if !ok {
			continue
		}
		xsAll = append(xsAll, p.x)
		ysAll = append(ysAll, p.y)
		if opt != CantSay {
			xs = append(xs, p.x)
			ys = append(ys, p.y)
		}
	}

	if len(xs) == 0 {
		xs = xsAll
	}
	if len(ys) == 0 {
		ys = ysAll
	}
	if len(xs) == 0 {
		xs = []float64{0.5}
	}
	if len(ys) == 0 {
		ys = []float64{0.5}
	}

	xFinal := (mean(xs) + ema(pick(xsAll, xs))) / 2.0
	yFinal := (mean(ys) + ema(pick(ysAll, ys))) / 2.0

	if focusYes != nil && *focusYes {
		return QuizResult{Label: "focus", X: xFinal, Y: yFinal, Confidence: 0.9}
	}

	conf := 0.5 + math.Min(0.5, math.Hypot(xFinal-0.5, yFinal-0.5))
	if conf > 0.99 {
		conf = 0.99
	}
	return QuizResult{Label: quadrantLabel(xFinal, yFinal), X: xFinal, Y: yFinal, Confidence: conf}
}

// quadrantLabel maps a point to a mood with the origin shifted to (0.5, 0.5):
// quadrant I happy, II angry, III sad, IV relaxed.
func quadrantLabel(x, y float64) string {
	dx, dy := x-0.5, y-0.5
	switch {
	case dx >= 0 && dy >= 0:
		return "happy"
	case dx < 0 && dy >= 0:
		return "angry"
	case dx < 0 && dy < 0:
		return "sad"
	default:
		return "relaxed"
	}
}

func mean(vals []float64) float64 {
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// ema smooths in question order with alpha 0.5, seeding on the first value.
func ema(vals []float64) float64 {
	if len(vals) == 0 {
		return 0.5
	}
	out := vals[0]
	for _, v := range vals[1:] {
		out = 0.5*v + 0.5*out
	}
	return out
}

func pick(primary, fallback []float64) []float64 {
	if len(primary) > 0 {
		return primary
	}
	return fallback
}
