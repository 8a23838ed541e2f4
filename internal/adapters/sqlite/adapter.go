// Package sqlite provides a SQLite-backed implementation of the repository port.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // Import the driver anonymously

	"github.com/harmonia-labs/moodcraft/internal/core/domain"
	"github.com/harmonia-labs/moodcraft/internal/core/ports"
)

// Adapter implements the repository port for SQLite.
type Adapter struct {
	db *sql.DB
}

var _ ports.PlaylistRepository = (*Adapter)(nil)

// NewAdapter opens the database and runs the schema migration.
func NewAdapter(storagePath string) (*Adapter, error) {
	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	a := &Adapter{db: db}
	if err := a.migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return a, nil
}

// Close shuts the connection down.
func (a *Adapter) Close() error { return a.db.Close() }

func (a *Adapter) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS playlists (
		id          TEXT PRIMARY KEY,
		title       TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		description TEXT,
		request     TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS playlist_tracks (
		playlist_id TEXT NOT NULL,
		position    INTEGER NOT NULL,
		track_id    TEXT NOT NULL,
		name        TEXT NOT NULL,
		artists     TEXT NOT NULL,
		album_name  TEXT,
		url         TEXT,
		preview_url TEXT,
		explicit    INTEGER NOT NULL DEFAULT 0,
		score       REAL NOT NULL DEFAULT 0,
		reason      TEXT,
		energy      REAL,
		PRIMARY KEY (playlist_id, position),
		FOREIGN KEY (playlist_id) REFERENCES playlists(id) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS idx_playlist_tracks_track ON playlist_tracks(track_id);
	`
	_, err := a.db.Exec(schema)
	return err
}

// Save inserts the playlist row and its tracks in one transaction.
func (a *Adapter) Save(ctx context.Context, p domain.SavedPlaylist) error {
	reqJSON, err := json.Marshal(p.Request)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO playlists (id, title, created_at, description, request) VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.CreatedAt, p.Description, string(reqJSON),
	); err != nil {
		return fmt.Errorf("failed to insert playlist: %w", err)
	}

	for i, t := range p.Tracks {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO playlist_tracks
			 (playlist_id, position, track_id, name, artists, album_name, url, preview_url, explicit, score, reason, energy)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, i, t.ID, t.Name, t.Artists, t.AlbumName, t.URL, t.PreviewURL, boolToInt(t.Explicit), t.Score, t.Reason, nullableFloat(t.Energy),
		); err != nil {
			return fmt.Errorf("failed to insert playlist track: %w", err)
		}
	}

	return tx.Commit()
}

// List returns stored summaries, newest first.
func (a *Adapter) List(ctx context.Context) ([]domain.PlaylistSummary, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT p.id, p.title, p.created_at, p.request,
			(SELECT COUNT(*) FROM playlist_tracks pt WHERE pt.playlist_id = p.id)
		FROM playlists p
		ORDER BY p.created_at DESC, p.id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	defer rows.Close()

	var out []domain.PlaylistSummary
	for rows.Next() {
		var (
			s       domain.PlaylistSummary
			reqJSON string
		)
		if err := rows.Scan(&s.ID, &s.Title, &s.CreatedAt, &reqJSON, &s.TrackCount); err != nil {
			return nil, fmt.Errorf("failed to scan playlist: %w", err)
		}
		var req domain.PlaylistRequest
		if err := json.Unmarshal([]byte(reqJSON), &req); err == nil {
			s.Mood = req.Mood
			s.Activity = req.Activity
			s.GenreOrLanguage = req.GenreOrLanguage
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate playlists: %w", err)
	}
	return out, nil
}

// Load fetches one playlist and its tracks in stored order.
func (a *Adapter) Load(ctx context.Context, id string) (domain.SavedPlaylist, error) {
	row := a.db.QueryRowContext(ctx,
		`SELECT id, title, created_at, description, request FROM playlists WHERE id = ?`, id)

	var (
		p       domain.SavedPlaylist
		desc    sql.NullString
		reqJSON string
	)
	if err := row.Scan(&p.ID, &p.Title, &p.CreatedAt, &desc, &reqJSON); err != nil {
		if err == sql.ErrNoRows {
			return domain.SavedPlaylist{}, domain.ErrNotFound
		}
		return domain.SavedPlaylist{}, fmt.Errorf("failed to load playlist: %w", err)
	}
	if desc.Valid {
		p.Description = desc.String
	}
	if err := json.Unmarshal([]byte(reqJSON), &p.Request); err != nil {
		return domain.SavedPlaylist{}, fmt.Errorf("failed to decode request: %w", err)
	}

	trackRows, err := a.db.QueryContext(ctx, `
		SELECT track_id, name, artists, album_name, url, preview_url, explicit, score, reason, energy
		FROM playlist_tracks
		WHERE playlist_id = ?
		ORDER BY position ASC
	`, p.ID)
	if err != nil {
		return domain.SavedPlaylist{}, fmt.Errorf("failed to load playlist tracks: %w", err)
	}
	defer trackRows.Close()

	p.Tracks = []domain.TrackRecord{}
	for trackRows.Next() {
		var (
			t          domain.TrackRecord
			albumName  sql.NullString
			url        sql.NullString
			previewURL sql.NullString
			reason     sql.NullString
			energy     sql.NullFloat64
			explicit   int
		)
		if err := trackRows.Scan(&t.ID, &t.Name, &t.Artists, &albumName, &url, &previewURL,
			&explicit, &t.Score, &reason, &energy); err != nil {
			return domain.SavedPlaylist{}, fmt.Errorf("failed to scan playlist track: %w", err)
		}
		t.AlbumName = albumName.String
		t.URL = url.String
		t.PreviewURL = previewURL.String
		t.Reason = reason.String
		t.Explicit = explicit != 0
		if energy.Valid {
			t.Energy = energy.Float64
		}
		p.Tracks = append(p.Tracks, t)
	}
	if err := trackRows.Err(); err != nil {
		return domain.SavedPlaylist{}, fmt.Errorf("failed to iterate playlist tracks: %w", err)
	}

	return p, nil
}

// Delete removes one playlist and its tracks, reporting whether it existed.
func (a *Adapter) Delete(ctx context.Context, id string) (bool, error) {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM playlist_tracks WHERE playlist_id = ?`, id); err != nil {
		return false, fmt.Errorf("failed to delete playlist tracks: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM playlists WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete playlist: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to count deleted rows: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit delete: %w", err)
	}
	return n > 0, nil
}

// UpdateTrackEnergy backfills analyzer energy on a stored track.
func (a *Adapter) UpdateTrackEnergy(ctx context.Context, playlistID, trackID string, energy float64) error {
	_, err := a.db.ExecContext(ctx,
		`UPDATE playlist_tracks SET energy = ? WHERE playlist_id = ? AND track_id = ?`,
		energy, playlistID, trackID)
	if err != nil {
		return fmt.Errorf("failed to update track energy: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullableFloat(v float64) any {
	if v == 0 {
		return nil
	}
	return v
}
