package spotify

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/harmonia-labs/moodcraft/internal/core/domain"
)

const maxFeaturesPerCall = 100

// AudioFeatures resolves track ids to audio features via /audio-features.
// Tracks the API returns null analysis for are omitted from the result so
// callers can tell "no features" from "zero features".
func (c *Client) AudioFeatures(ctx context.Context, ids []string) (map[string]domain.FeatureSet, error) {
	out := make(map[string]domain.FeatureSet, len(ids))
	for start := 0; start < len(ids); start += maxFeaturesPerCall {
		end := start + maxFeaturesPerCall
		if end > len(ids) {
			end = len(ids)
		}
		q := url.Values{}
		q.Set("ids", strings.Join(ids[start:end], ","))
		u := fmt.Sprintf("%s/audio-features?%s", c.baseURL, q.Encode())

		var body wireFeaturesResponse
		if err := c.getJSON(ctx, u, &body); err != nil {
			return nil, fmt.Errorf("spotify adapter: audio features: %w", err)
		}
		for _, wf := range body.AudioFeatures {
			if wf == nil || wf.ID == "" {
				continue
			}
			out[wf.ID] = mapFeaturesToDomain(wf)
		}
	}
	return out, nil
}
