package mood

import (
	"math"
	"testing"
)

func TestLexiconClassifierClassifyText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantBest string
		wantConf float64
	}{
		{
			name:     "happy keywords",
			text:     "happy party dance all night",
			wantBest: "happy",
			wantConf: 0.75,
		},
		{
			name:     "single workout keyword",
			text:     "gym time",
			wantBest: "workout",
			wantConf: 0.55,
		},
		{
			name:     "no keywords falls back to chill",
			text:     "xylophone zanzibar",
			wantBest: "chill",
			wantConf: 0.15,
		},
		{
			name:     "punctuation and case ignored",
			text:     "SAD!!! heartbroken, lonely...",
			wantBest: "sad",
			wantConf: 0.75,
		},
		{
			name:     "confidence capped",
			text:     "happy joy excited fun party energetic dance vibe",
			wantBest: "happy",
			wantConf: 0.95,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			best, conf, dist := LexiconClassifier{}.ClassifyText(tt.text)
			if best != tt.wantBest {
				t.Fatalf("best: got %q, want %q", best, tt.wantBest)
			}
			if math.Abs(conf-tt.wantConf) > 1e-9 {
				t.Fatalf("conf: got %v, want %v", conf, tt.wantConf)
			}
			sum := 0.0
			for _, w := range dist {
				if w < 0 {
					t.Fatalf("negative weight in distribution: %v", dist)
				}
				sum += w
			}
			if math.Abs(sum-1) > 1e-9 {
				t.Fatalf("distribution sums to %v, want 1", sum)
			}
			if dist[best] < 0.15-1e-9 {
				t.Fatalf("winner mass %v below floor", dist[best])
			}
		})
	}
}

func TestNormalizeWords(t *testing.T) {
	got := normalizeWords("Lo-Fi, beats & CHILL 24/7!")
	want := []string{"lo", "fi", "beats", "chill", "24", "7"}
	if len(got) != len(want) {
		t.Fatalf("tokens: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tokens: got %v, want %v", got, want)
		}
	}
}
