package plan

import (
	"reflect"
	"testing"
)

func TestSplitLanguageAndGenres(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantLang   string
		wantGenres []string
	}{
		{
			name:       "genre and language comma separated",
			input:      "hip hop, sinhala",
			wantLang:   "sinhala",
			wantGenres: []string{"hip hop"},
		},
		{
			name:       "language alias alone",
			input:      "sinhalese",
			wantLang:   "sinhala",
			wantGenres: nil,
		},
		{
			name:       "multiple genres pipe separated",
			input:      "lofi | jazz",
			wantLang:   "",
			wantGenres: []string{"lofi", "jazz"},
		},
		{
			name:       "quoted phrase stays atomic",
			input:      `"indie rock", tamil`,
			wantLang:   "tamil",
			wantGenres: []string{"indie rock"},
		},
		{
			name:       "multiword stitching",
			input:      "lo fi / r and b",
			wantLang:   "",
			wantGenres: []string{"lofi", "r&b"},
		},
		{
			name:       "empty input",
			input:      "  ",
			wantLang:   "",
			wantGenres: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lang, genres := SplitLanguageAndGenres(tt.input)
			if lang != tt.wantLang {
				t.Fatalf("language: got %q, want %q", lang, tt.wantLang)
			}
			if !reflect.DeepEqual(genres, tt.wantGenres) {
				t.Fatalf("genres: got %v, want %v", genres, tt.wantGenres)
			}
		})
	}
}

func TestGenresMatch(t *testing.T) {
	tests := []struct {
		name     string
		required []string
		artist   []string
		want     bool
	}{
		{"no requirement matches all", nil, []string{"trap"}, true},
		{"exact", []string{"jazz"}, []string{"jazz"}, true},
		{"substring either way", []string{"hip hop"}, []string{"underground hip hop"}, true},
		{"alias expansion", []string{"hip hop"}, []string{"rap"}, true},
		{"rnb alias", []string{"r&b"}, []string{"rnb"}, true},
		{"no overlap", []string{"classical"}, []string{"death metal"}, false},
		{"required but artist unknown", []string{"jazz"}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GenresMatch(tt.required, tt.artist); got != tt.want {
				t.Fatalf("GenresMatch(%v, %v): got %v, want %v", tt.required, tt.artist, got, tt.want)
			}
		})
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize(`"late night" Drive drive LATE`)
	want := []string{"late night", "drive", "late"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize: got %v, want %v", got, want)
	}
}

func TestGenreTokenSet(t *testing.T) {
	set := GenreTokenSet("rap")
	found := false
	for _, tok := range set {
		if tok == "hip hop" {
			found = true
		}
	}
	if !found {
		t.Fatalf("rap should expand to the hip hop alias set, got %v", set)
	}
	if got := GenreTokenSet("bubblegum"); !reflect.DeepEqual(got, []string{"bubblegum"}) {
		t.Fatalf("unknown genre should return itself, got %v", got)
	}
}
