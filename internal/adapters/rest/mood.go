package rest

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/harmonia-labs/moodcraft/internal/core/domain"
	"github.com/harmonia-labs/moodcraft/internal/core/mood"
)

type fuseMoodRequest struct {
	Text  string `json:"text,omitempty"`
	Color string `json:"color,omitempty"`
	Emoji string `json:"emoji,omitempty"`
	// SAM is the valence/arousal self-assessment pair, both in [0, 1].
	SAM *struct {
		Valence float64 `json:"valence"`
		Arousal float64 `json:"arousal"`
	} `json:"sam,omitempty"`
	QuizAnswers map[int]string         `json:"quiz_answers,omitempty"`
	FocusYes    *bool                  `json:"focus_yes,omitempty"`
	QuickQuiz   *mood.QuickQuizAnswers `json:"quick_quiz,omitempty"`
}

type fuseMoodResponse struct {
	Mood domain.FusedMood `json:"mood"`
	Quiz *mood.QuizResult `json:"quiz,omitempty"`
}

// FuseMood handles POST /mood/fuse. At least one signal must be present.
func (h *Handler) FuseMood(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req fuseMoodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var signals []mood.Signal
	if strings.TrimSpace(req.Text) != "" {
		_, _, dist := h.svc.TextClassifier().ClassifyText(req.Text)
		signals = append(signals, mood.Signal{Dist: dist, Weight: mood.WeightText})
	}
	if req.Color != "" {
		signals = append(signals, mood.Signal{Dist: mood.FromColor(req.Color), Weight: mood.WeightColor})
	}
	if req.Emoji != "" {
		signals = append(signals, mood.Signal{Dist: mood.FromEmoji(req.Emoji), Weight: mood.WeightEmoji})
	}
	if req.SAM != nil {
		signals = append(signals, mood.Signal{Dist: mood.FromSAM(req.SAM.Valence, req.SAM.Arousal), Weight: mood.WeightSAM})
	}
	if req.QuickQuiz != nil {
		signals = append(signals, mood.Signal{Dist: mood.FromQuickQuiz(*req.QuickQuiz), Weight: mood.WeightQuiz})
	}

	var quiz mood.QuizResult
	// A focus override alone is a valid quiz submission.
	if len(req.QuizAnswers) > 0 || req.FocusYes != nil {
		quiz = mood.EvaluateLikertQuiz(req.QuizAnswers, req.FocusYes)
		signals = append(signals, mood.Signal{Dist: quiz.Distribution(), Weight: mood.WeightQuiz})
	}

	if len(signals) == 0 {
		writeError(w, http.StatusBadRequest, "at least one mood signal is required")
		return
	}

	fused := mood.Fuse(signals...)
	if !quiz.Empty() {
		fused = mood.PromoteQuizLabel(fused, quiz)
	}

	resp := fuseMoodResponse{Mood: fused}
	if !quiz.Empty() {
		resp.Quiz = &quiz
	}
	writeJSON(w, http.StatusOK, resp)
}
