// Package rest exposes the playlist service over HTTP.
package rest

import (
	"encoding/json"
	"log"
	"mime"
	"net/http"

	"github.com/harmonia-labs/moodcraft/internal/core/services"
)

// Handler manages the HTTP interface for the service.
type Handler struct {
	svc    *services.Orchestrator
	router *http.ServeMux
}

// NewHandler initializes the HTTP adapter and sets up routes.
func NewHandler(svc *services.Orchestrator) *Handler {
	h := &Handler{
		svc:    svc,
		router: http.NewServeMux(),
	}
	h.routes()
	return h
}

// ServeHTTP satisfies the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) routes() {
	h.router.HandleFunc("GET /health", h.HealthCheck)

	h.router.HandleFunc("POST /playlists/generate", h.GeneratePlaylist)
	h.router.HandleFunc("POST /playlists", h.SavePlaylist)
	h.router.HandleFunc("GET /playlists", h.ListPlaylists)
	h.router.HandleFunc("GET /playlists/{id}", h.GetPlaylist)
	h.router.HandleFunc("DELETE /playlists/{id}", h.DeletePlaylist)

	h.router.HandleFunc("POST /mood/fuse", h.FuseMood)

	h.router.HandleFunc("GET /profile", h.GetProfile)
	h.router.HandleFunc("POST /profile/recommendations", h.RecommendForProfile)
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func isJSONContentType(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return mediaType == "application/json"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("WARN rest: encode response: %v", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
