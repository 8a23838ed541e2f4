package spotify

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/harmonia-labs/moodcraft/internal/core/domain"
)

// SearchTracks runs a market-scoped track search against /search.
func (c *Client) SearchTracks(ctx context.Context, query, market string, limit, offset int) ([]domain.Track, error) {
	u := c.searchURL(query, "track", market, limit, offset)
	log.Printf("DEBUG spotify adapter: track search URL: %s", u)

	var body wireSearchResponse
	if err := c.getJSON(ctx, u, &body); err != nil {
		return nil, fmt.Errorf("spotify adapter: track search %q: %w", query, err)
	}
	return mapTracksToDomain(body.Tracks.Items), nil
}

// SearchPlaylists returns ids of playlists matching the query. Null items in
// the response page are skipped.
func (c *Client) SearchPlaylists(ctx context.Context, query, market string, limit, offset int) ([]string, error) {
	u := c.searchURL(query, "playlist", market, limit, offset)

	var body wireSearchResponse
	if err := c.getJSON(ctx, u, &body); err != nil {
		return nil, fmt.Errorf("spotify adapter: playlist search %q: %w", query, err)
	}
	ids := make([]string, 0, len(body.Playlists.Items))
	for _, item := range body.Playlists.Items {
		if item.ID == "" {
			continue
		}
		ids = append(ids, item.ID)
	}
	return ids, nil
}

func (c *Client) searchURL(query, kind, market string, limit, offset int) string {
	q := url.Values{}
	q.Set("q", query)
	q.Set("type", kind)
	q.Set("limit", strconv.Itoa(clampLimit(limit, 50)))
	q.Set("offset", strconv.Itoa(maxZero(offset)))
	if market != "" {
		q.Set("market", market)
	}
	return fmt.Sprintf("%s/search?%s", c.baseURL, q.Encode())
}

func clampLimit(limit, max int) int {
	if limit < 1 {
		return 1
	}
	if limit > max {
		return max
	}
	return limit
}

func maxZero(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
