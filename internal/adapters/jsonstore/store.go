// Package jsonstore persists playlists as a single JSON file, healing
// malformed shapes left behind by older versions or manual edits.
package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/harmonia-labs/moodcraft/internal/core/domain"
	"github.com/harmonia-labs/moodcraft/internal/core/ports"
)

// Store implements the repository port on one JSON file guarded by a mutex.
type Store struct {
	path string
	mu   sync.Mutex
}

var _ ports.PlaylistRepository = (*Store)(nil)

// New opens (or creates) the store file at path.
func New(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("jsonstore: create dir: %w", err)
	}
	s := &Store{path: path}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := s.write(nil); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Save appends one playlist row.
func (s *Store) Save(ctx context.Context, p domain.SavedPlaylist) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.load()
	rows = append(rows, p)
	return s.write(rows)
}

// List returns summaries, newest first by created_at then id.
func (s *Store) List(ctx context.Context) ([]domain.PlaylistSummary, error) {
	s.mu.Lock()
	rows := s.load()
	s.mu.Unlock()

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].CreatedAt != rows[j].CreatedAt {
			return rows[i].CreatedAt > rows[j].CreatedAt
		}
		return rows[i].ID > rows[j].ID
	})
	out := make([]domain.PlaylistSummary, 0, len(rows))
	for _, p := range rows {
		out = append(out, p.Summary())
	}
	return out, nil
}

// Load fetches one playlist by id.
func (s *Store) Load(ctx context.Context, id string) (domain.SavedPlaylist, error) {
	s.mu.Lock()
	rows := s.load()
	s.mu.Unlock()

	for _, p := range rows {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.SavedPlaylist{}, domain.ErrNotFound
}

// Delete removes one playlist, reporting whether it was present.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.load()
	kept := rows[:0]
	removed := false
	for _, p := range rows {
		if p.ID == id {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	if !removed {
		return false, nil
	}
	return true, s.write(kept)
}

// UpdateTrackEnergy backfills analyzer energy on one stored track. A missing
// playlist or track is not an error; the backfill is best effort.
func (s *Store) UpdateTrackEnergy(ctx context.Context, playlistID, trackID string, energy float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.load()
	changed := false
	for i := range rows {
		if rows[i].ID != playlistID {
			continue
		}
		for j := range rows[i].Tracks {
			if rows[i].Tracks[j].ID == trackID {
				rows[i].Tracks[j].Energy = energy
				changed = true
			}
		}
	}
	if !changed {
		return nil
	}
	return s.write(rows)
}

// load reads and heals the store file. Every recognized legacy shape is
// coerced into the canonical list; unreadable files are moved aside and the
// store resets to empty rather than failing every later call.
func (s *Store) load() []domain.SavedPlaylist {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("WARN jsonstore: read %s: %v", s.path, err)
		}
		return nil
	}
	if len(raw) == 0 {
		return nil
	}

	var rows []domain.SavedPlaylist
	if err := json.Unmarshal(raw, &rows); err == nil {
		return rows
	}

	if rows, ok := healObject(raw); ok {
		log.Printf("WARN jsonstore: healed legacy shape in %s (%d rows)", s.path, len(rows))
		if err := s.write(rows); err != nil {
			log.Printf("WARN jsonstore: rewrite after heal: %v", err)
		}
		return rows
	}

	bak := s.path + ".bak"
	log.Printf("WARN jsonstore: %s is corrupt, moving to %s and resetting", s.path, bak)
	if err := os.Rename(s.path, bak); err != nil {
		log.Printf("WARN jsonstore: backup rename: %v", err)
	}
	if err := s.write(nil); err != nil {
		log.Printf("WARN jsonstore: reset: %v", err)
	}
	return nil
}

// healObject recovers rows from the legacy object shapes: {"items": [...]},
// a dict keyed by id, or one bare playlist object.
func healObject(raw []byte) ([]domain.SavedPlaylist, bool) {
	var wrapper struct {
		Items []domain.SavedPlaylist `json:"items"`
	}
	if err := json.Unmarshal(raw, &wrapper); err == nil && wrapper.Items != nil {
		return wrapper.Items, true
	}

	var single domain.SavedPlaylist
	if err := json.Unmarshal(raw, &single); err == nil && single.ID != "" {
		return []domain.SavedPlaylist{single}, true
	}

	var byID map[string]domain.SavedPlaylist
	if err := json.Unmarshal(raw, &byID); err == nil && len(byID) > 0 {
		rows := make([]domain.SavedPlaylist, 0, len(byID))
		for id, p := range byID {
			if p.ID == "" {
				p.ID = id
			}
			rows = append(rows, p)
		}
		sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
		valid := rows[:0]
		for _, p := range rows {
			if p.ID != "" {
				valid = append(valid, p)
			}
		}
		if len(valid) > 0 {
			return valid, true
		}
	}

	// An object json parses into map[string]SavedPlaylist only when every
	// value is an object; anything else falls through to the corrupt path.
	return nil, false
}

func (s *Store) write(rows []domain.SavedPlaylist) error {
	if rows == nil {
		rows = []domain.SavedPlaylist{}
	}
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("jsonstore: marshal: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("jsonstore: write: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("jsonstore: replace: %w", err)
	}
	return nil
}
