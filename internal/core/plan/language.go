package plan

// Alias table mapping user tokens to canonical language names. A token that is
// a language alias is never treated as a genre.
var langAliases = map[string][]string{
	"sinhala":    {"si", "sinhala", "sinhalese"},
	"tamil":      {"ta", "tamil"},
	"hindi":      {"hi", "hindi"},
	"english":    {"en", "english"},
	"korean":     {"ko", "korean", "hangul"},
	"japanese":   {"ja", "japanese", "nihongo"},
	"spanish":    {"es", "spanish", "español"},
	"portuguese": {"pt", "portuguese", "português", "brasileiro", "brazilian"},
	"french":     {"fr", "french", "français"},
	"german":     {"de", "german", "deutsch"},
	"arabic":     {"ar", "arabic", "عربي", "arab"},
	"turkish":    {"tr", "turkish", "türkçe"},
	"russian":    {"ru", "russian", "русский"},
	"indonesian": {"id", "indonesian", "bahasa"},
	"thai":       {"th", "thai"},
	"chinese":    {"zh", "chinese", "mandarin", "cantonese", "zh-hans", "zh-hant"},
}

func languageForToken(tok string) string {
	for lang, aliases := range langAliases {
		for _, a := range aliases {
			if tok == a {
				return lang
			}
		}
	}
	return ""
}

type runeRange struct{ lo, hi rune }

var scriptRanges = map[string][]runeRange{
	"sinhala":  {{0x0D80, 0x0DFF}},
	"tamil":    {{0x0B80, 0x0BFF}},
	"hindi":    {{0x0900, 0x097F}}, // Devanagari
	"korean":   {{0x1100, 0x11FF}, {0x3130, 0x318F}, {0xAC00, 0xD7AF}},
	"japanese": {{0x3040, 0x309F}, {0x30A0, 0x30FF}}, // hiragana + katakana
	"arabic":   {{0x0600, 0x06FF}, {0x0750, 0x077F}},
	"thai":     {{0x0E00, 0x0E7F}},
	"russian":  {{0x0400, 0x04FF}}, // Cyrillic
	"chinese":  {{0x4E00, 0x9FFF}}, // CJK ideographs
}

// Checked in order; CJK last because kana already claimed Japanese.
var scriptOrder = []string{"sinhala", "tamil", "hindi", "korean", "japanese", "arabic", "thai", "russian", "chinese"}

func hasScript(text, lang string) bool {
	ranges, ok := scriptRanges[lang]
	if !ok {
		return false
	}
	for _, r := range text {
		for _, rr := range ranges {
			if r >= rr.lo && r <= rr.hi {
				return true
			}
		}
	}
	return false
}

// DetectLanguage infers a language from the dominant Unicode script in raw
// text. Latin text returns "" (likely English, but not asserted).
func DetectLanguage(text string) string {
	if text == "" {
		return ""
	}
	for _, lang := range scriptOrder {
		if hasScript(text, lang) {
			return lang
		}
	}
	return ""
}

// TrackTextMatchesLanguage reports whether any of the given name strings is
// written in the desired language's script. English acts as a language-neutral
// pass since Latin names dominate every market. An empty language matches all.
func TrackTextMatchesLanguage(lang string, names ...string) bool {
	if lang == "" || lang == "english" {
		return true
	}
	scripts := []string{lang}
	// Japanese track names frequently use CJK ideographs without kana.
	if lang == "japanese" {
		scripts = append(scripts, "chinese")
	}
	for _, name := range names {
		for _, s := range scripts {
			if hasScript(name, s) {
				return true
			}
		}
	}
	return false
}

// Language → preferred catalog market codes, tried in order.
var langMarkets = map[string][]string{
	"sinhala":    {"LK", "IN"},
	"tamil":      {"LK", "IN"},
	"hindi":      {"IN"},
	"english":    {"US", "GB"},
	"korean":     {"KR"},
	"japanese":   {"JP"},
	"spanish":    {"ES", "MX", "US"},
	"portuguese": {"BR", "PT"},
	"french":     {"FR", "CA"},
	"german":     {"DE", "AT", "CH"},
	"arabic":     {"SA", "AE", "EG"},
	"turkish":    {"TR"},
	"russian":    {"RU"},
	"indonesian": {"ID"},
	"thai":       {"TH"},
	// The catalog does not operate in mainland China.
	"chinese": {"TW", "HK", "SG"},
}
