// Package openai generates playlist descriptions with a chat completion.
package openai

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/harmonia-labs/moodcraft/internal/core/domain"
	"github.com/harmonia-labs/moodcraft/internal/core/ports"
)

const (
	defaultModel = "gpt-4o-mini"
	// Sample at most this many track names into the prompt.
	promptTrackSample = 8
)

// Describer implements the description port over the OpenAI chat API.
type Describer struct {
	client *openai.Client
	model  string
}

var _ ports.Describer = (*Describer)(nil)

// New builds a describer. An empty model uses the default.
func New(apiKey, model string) *Describer {
	if model == "" {
		model = defaultModel
	}
	return &Describer{client: openai.NewClient(apiKey), model: model}
}

// NewWithBaseURL points the describer at a compatible endpoint, mainly for
// tests and proxies.
func NewWithBaseURL(apiKey, model, baseURL string) *Describer {
	if model == "" {
		model = defaultModel
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return &Describer{client: openai.NewClientWithConfig(cfg), model: model}
}

// Describe asks the model for one or two sentences about the playlist.
// Callers are expected to fall back to static copy on error.
func (d *Describer) Describe(ctx context.Context, mood, activity string, tracks []domain.RankedTrack) (string, error) {
	sys := "You write one or two short sentences describing a music playlist. " +
		"Warm, concrete, no hashtags, no emoji, no quotes around the text."

	var sample []string
	for i, rt := range tracks {
		if i == promptTrackSample {
			break
		}
		var artists []string
		for _, a := range rt.Track.Artists {
			artists = append(artists, a.Name)
		}
		sample = append(sample, fmt.Sprintf("%s by %s", rt.Track.Name, strings.Join(artists, ", ")))
	}

	user := fmt.Sprintf("Mood: %s.", mood)
	if strings.TrimSpace(activity) != "" {
		user += fmt.Sprintf(" Activity: %s.", activity)
	}
	if len(sample) > 0 {
		user += " Tracks: " + strings.Join(sample, "; ") + "."
	}

	resp, err := d.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: d.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: sys},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.7,
		MaxTokens:   120,
	})
	if err != nil {
		return "", fmt.Errorf("openai describer: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai describer: empty response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
