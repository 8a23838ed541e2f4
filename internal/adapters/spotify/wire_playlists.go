package spotify

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/harmonia-labs/moodcraft/internal/core/domain"
)

// PlaylistTracks pages through one playlist's member tracks. Local tracks and
// removed items come back with empty ids and are dropped during mapping.
func (c *Client) PlaylistTracks(ctx context.Context, playlistID, market string, limit, offset int) ([]domain.Track, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(clampLimit(limit, 100)))
	q.Set("offset", strconv.Itoa(maxZero(offset)))
	if market != "" {
		q.Set("market", market)
	}
	u := fmt.Sprintf("%s/playlists/%s/tracks?%s", c.baseURL, url.PathEscape(playlistID), q.Encode())

	var body wirePlaylistTracks
	if err := c.getJSON(ctx, u, &body); err != nil {
		return nil, fmt.Errorf("spotify adapter: playlist tracks %s: %w", playlistID, err)
	}
	tracks := make([]wireTrack, 0, len(body.Items))
	for _, item := range body.Items {
		tracks = append(tracks, item.Track)
	}
	return mapTracksToDomain(tracks), nil
}
