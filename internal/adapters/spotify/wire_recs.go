package spotify

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/harmonia-labs/moodcraft/internal/core/domain"
)

// Recommend requests tracks seeded by one catalog seed-genre token.
func (c *Client) Recommend(ctx context.Context, seedGenre, market string, limit int) ([]domain.Track, error) {
	q := url.Values{}
	q.Set("seed_genres", seedGenre)
	q.Set("limit", strconv.Itoa(clampLimit(limit, 100)))
	if market != "" {
		q.Set("market", market)
	}
	u := fmt.Sprintf("%s/recommendations?%s", c.baseURL, q.Encode())

	var body wireRecommendations
	if err := c.getJSON(ctx, u, &body); err != nil {
		return nil, fmt.Errorf("spotify adapter: recommendations seed=%s: %w", seedGenre, err)
	}
	return mapTracksToDomain(body.Tracks), nil
}

// GenreSeeds fetches the canonical seed-genre token list.
func (c *Client) GenreSeeds(ctx context.Context) ([]string, error) {
	u := fmt.Sprintf("%s/recommendations/available-genre-seeds", c.baseURL)

	var body wireGenreSeeds
	if err := c.getJSON(ctx, u, &body); err != nil {
		return nil, fmt.Errorf("spotify adapter: genre seeds: %w", err)
	}
	return body.Genres, nil
}
