package plan

import "strings"

// Genre alias groups: every alias collapses to one canonical token, and a
// requested genre expands to its full alias set for substring-tolerant
// matching against catalog-reported artist genres.
var genreAliases = map[string][]string{
	"lofi":      {"lofi", "lo-fi", "lo_fi", "lowfi"},
	"hip hop":   {"hip hop", "hip-hop", "rap"},
	"r&b":       {"r&b", "rnb", "r and b"},
	"edm":       {"edm", "electronic", "dance"},
	"k-pop":     {"k-pop", "kpop"},
	"j-pop":     {"j-pop", "jpop"},
	"pop":       {"pop"},
	"rock":      {"rock", "alt rock", "alternative"},
	"indie":     {"indie", "indie pop", "indie rock"},
	"classical": {"classical", "orchestral"},
	"jazz":      {"jazz"},
	"sinhala":   {"sinhala"},
	"tamil":     {"tamil"},
	"hindi":     {"hindi"},
	"english":   {"english"},
}

// GenreTokenSet expands a genre to its canonical token plus aliases.
// Unrecognized genres return themselves.
func GenreTokenSet(genre string) []string {
	g := normToken(genre)
	for canon, aliases := range genreAliases {
		if g == canon {
			return append([]string{canon}, aliases...)
		}
		for _, a := range aliases {
			if g == a {
				return append([]string{canon}, aliases...)
			}
		}
	}
	return []string{g}
}

// GenresMatch reports whether any requested genre (alias-expanded) overlaps
// the artist genre list, tolerating substrings in either direction, so
// "hip hop" matches "underground hip hop". Short aliases bring some noise
// ("rap" also matches "trap").
func GenresMatch(required []string, artistGenres []string) bool {
	if len(required) == 0 {
		return true
	}
	normalized := make([]string, 0, len(artistGenres))
	for _, ag := range artistGenres {
		normalized = append(normalized, normToken(ag))
	}
	for _, want := range required {
		for _, w := range GenreTokenSet(want) {
			for _, ag := range normalized {
				if ag == "" || w == "" {
					continue
				}
				if strings.Contains(ag, w) || strings.Contains(w, ag) {
					return true
				}
			}
		}
	}
	return false
}

// SplitLanguageAndGenres parses the single free-text genre-or-language field
// into (language, genres). Language aliases take precedence; every other
// token is a genre/vibe token, de-duplicated in order.
func SplitLanguageAndGenres(genreOrLanguage string) (string, []string) {
	if strings.TrimSpace(genreOrLanguage) == "" {
		return "", nil
	}

	var tokens []string
	for _, m := range quotedRe.FindAllStringSubmatch(genreOrLanguage, -1) {
		if p := normToken(m[1]); p != "" {
			tokens = append(tokens, p)
		}
	}
	remainder := quotedRe.ReplaceAllString(genreOrLanguage, " ")
	for _, chunk := range splitRe.Split(remainder, -1) {
		chunk = normToken(chunk)
		if chunk == "" {
			continue
		}
		tokens = append(tokens, strings.Fields(chunk)...)
	}
	tokens = stitchMultiWord(tokens)

	lang := ""
	var genres []string
	seen := map[string]struct{}{}
	for _, tok := range tokens {
		if l := languageForToken(tok); l != "" {
			lang = l
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		genres = append(genres, tok)
	}
	return lang, genres
}
