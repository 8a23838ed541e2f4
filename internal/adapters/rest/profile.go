package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/harmonia-labs/moodcraft/internal/core/domain"
	"github.com/harmonia-labs/moodcraft/internal/core/services"
)

// GetProfile handles GET /profile
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	prof, err := h.svc.BuildProfile(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if prof.SavedTrackIDs == nil {
		prof.SavedTrackIDs = []string{}
	}
	writeJSON(w, http.StatusOK, prof)
}

type recommendRequest struct {
	Vibe            string `json:"vibe,omitempty"`
	Mood            string `json:"mood,omitempty"`
	GenreOrLanguage string `json:"genre_or_language,omitempty"`
	ExcludeExplicit bool   `json:"exclude_explicit,omitempty"`
	Limit           int    `json:"limit,omitempty"`
	Seed            int64  `json:"seed,omitempty"`
}

type recommendResponse struct {
	Mood        domain.FusedMood     `json:"mood"`
	Description string               `json:"description"`
	Items       []domain.RankedTrack `json:"items"`
	Count       int                  `json:"count"`
}

// RecommendForProfile handles POST /profile/recommendations. Every field is
// optional; blanks fall back to the stored taste profile.
func (h *Handler) RecommendForProfile(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.svc.RecommendForUser(r.Context(), services.RecommendParams{
		Vibe:            req.Vibe,
		Mood:            req.Mood,
		GenreOrLanguage: req.GenreOrLanguage,
		ExcludeExplicit: req.ExcludeExplicit,
		Limit:           req.Limit,
		Seed:            req.Seed,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidLimit) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	items := result.Tracks
	if items == nil {
		items = []domain.RankedTrack{}
	}
	writeJSON(w, http.StatusOK, recommendResponse{
		Mood:        result.Mood,
		Description: result.Description,
		Items:       items,
		Count:       len(items),
	})
}
