package spotify

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

const maxArtistsPerCall = 50

// ArtistGenres resolves artist ids to genre strings via /artists. Ids beyond
// the per-call cap are fetched in further calls transparently.
func (c *Client) ArtistGenres(ctx context.Context, ids []string) (map[string][]string, error) {
	out := make(map[string][]string, len(ids))
	for start := 0; start < len(ids); start += maxArtistsPerCall {
		end := start + maxArtistsPerCall
		if end > len(ids) {
			end = len(ids)
		}
		q := url.Values{}
		q.Set("ids", strings.Join(ids[start:end], ","))
		u := fmt.Sprintf("%s/artists?%s", c.baseURL, q.Encode())

		var body wireArtistsResponse
		if err := c.getJSON(ctx, u, &body); err != nil {
			return nil, fmt.Errorf("spotify adapter: artists: %w", err)
		}
		for _, a := range body.Artists {
			if a.ID == "" {
				continue
			}
			out[a.ID] = a.Genres
		}
	}
	return out, nil
}
