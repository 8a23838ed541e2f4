package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/harmonia-labs/moodcraft/internal/core/domain"
	"github.com/harmonia-labs/moodcraft/internal/core/services"
)

type generateRequest struct {
	Vibe            string         `json:"vibe"`
	Mood            string         `json:"mood,omitempty"`
	Activity        string         `json:"activity,omitempty"`
	GenreOrLanguage string         `json:"genre_or_language,omitempty"`
	ExcludeExplicit bool           `json:"exclude_explicit,omitempty"`
	Limit           int            `json:"limit,omitempty"`
	QuizAnswers     map[int]string `json:"quiz_answers,omitempty"`
	FocusYes        *bool          `json:"focus_yes,omitempty"`
	Seed            int64          `json:"seed,omitempty"`
	UsedIDs         []string       `json:"used_ids,omitempty"`
	// Save persists the result in the same call; Title only applies then.
	Save  bool   `json:"save,omitempty"`
	Title string `json:"title,omitempty"`
}

type generateResponse struct {
	Mood        domain.FusedMood      `json:"mood"`
	Description string                `json:"description"`
	Tracks      []domain.RankedTrack  `json:"tracks"`
	Saved       *domain.SavedPlaylist `json:"saved,omitempty"`
}

// GeneratePlaylist handles POST /playlists/generate
func (h *Handler) GeneratePlaylist(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.svc.Generate(r.Context(), services.GenerateParams{
		Vibe:            req.Vibe,
		Mood:            req.Mood,
		Activity:        req.Activity,
		GenreOrLanguage: req.GenreOrLanguage,
		ExcludeExplicit: req.ExcludeExplicit,
		Limit:           req.Limit,
		QuizAnswers:     req.QuizAnswers,
		FocusYes:        req.FocusYes,
		Seed:            req.Seed,
		UsedIDs:         req.UsedIDs,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmptyVibe) || errors.Is(err, domain.ErrInvalidLimit) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := generateResponse{
		Mood:        result.Mood,
		Description: result.Description,
		Tracks:      result.Tracks,
	}

	if req.Save {
		saved, err := h.svc.Save(r.Context(), req.Title, domain.PlaylistRequest{
			Vibe:            req.Vibe,
			Mood:            result.Mood.Label,
			Activity:        req.Activity,
			GenreOrLanguage: req.GenreOrLanguage,
			ExcludeExplicit: req.ExcludeExplicit,
			Limit:           len(result.Tracks),
		}, result)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		resp.Saved = &saved
		w.Header().Set("Location", "/playlists/"+saved.ID)
		writeJSON(w, http.StatusCreated, resp)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

type savePlaylistRequest struct {
	Title       string                 `json:"title"`
	Request     domain.PlaylistRequest `json:"request"`
	Description string                 `json:"description,omitempty"`
	Tracks      []domain.RankedTrack   `json:"tracks"`
}

// SavePlaylist handles POST /playlists for clients that generated earlier and
// decide to persist later.
func (h *Handler) SavePlaylist(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req savePlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Tracks) == 0 {
		writeError(w, http.StatusBadRequest, "tracks are required")
		return
	}

	saved, err := h.svc.Save(r.Context(), req.Title, req.Request, services.GenerateResult{
		Tracks:      req.Tracks,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Location", "/playlists/"+saved.ID)
	writeJSON(w, http.StatusCreated, saved)
}

// ListPlaylists handles GET /playlists
func (h *Handler) ListPlaylists(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if summaries == nil {
		summaries = []domain.PlaylistSummary{}
	}
	writeJSON(w, http.StatusOK, summaries)
}

// GetPlaylist handles GET /playlists/{id}
func (h *Handler) GetPlaylist(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	playlist, err := h.svc.Load(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "playlist not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, playlist)
}

// DeletePlaylist handles DELETE /playlists/{id}
func (h *Handler) DeletePlaylist(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	removed, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "playlist not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
