package plan

import (
	"math/rand"
	"strings"
	"time"
)

// MaxQueryVariants caps the ordered query list handed to retrieval.
const MaxQueryVariants = 6

// Request carries the user inputs the planner works from.
type Request struct {
	Vibe            string
	Mood            string
	Activity        string
	GenreOrLanguage string
	// Seed pins the variant shuffle for deterministic runs; zero means
	// time-seeded novelty, the production default.
	Seed int64
}

// Plan is the planner output: ordered query variants and the prioritized
// market list, plus the parsed language/genre constraints retrieval filters by.
type Plan struct {
	Queries  []string
	Markets  []string
	Language string
	Genres   []string
}

// Planner derives search plans. PreferredMarkets and DefaultMarket come from
// configuration (user preference list plus a global fallback).
type Planner struct {
	PreferredMarkets []string
	DefaultMarket    string
}

// Build tokenizes the vibe, splits language from genres (inferring language
// from the dominant script when no alias is present), assembles de-duplicated
// query variants shuffled once per call, and prioritizes markets with
// language hints first.
func (p Planner) Build(req Request) Plan {
	lang, genres := SplitLanguageAndGenres(req.GenreOrLanguage)
	if lang == "" {
		lang = DetectLanguage(req.Vibe)
	}

	variants := p.queryVariants(req)
	rng := newRng(req.Seed)
	rng.Shuffle(len(variants), func(i, j int) {
		variants[i], variants[j] = variants[j], variants[i]
	})
	if len(variants) > MaxQueryVariants {
		variants = variants[:MaxQueryVariants]
	}

	return Plan{
		Queries:  variants,
		Markets:  p.markets(lang),
		Language: lang,
		Genres:   genres,
	}
}

func (p Planner) queryVariants(req Request) []string {
	tokens := Tokenize(req.Vibe)
	var combos []string
	if len(tokens) >= 2 {
		combos = append(combos, tokens[0]+" "+tokens[1])
	}
	if len(tokens) >= 1 {
		combos = append(combos, tokens[0])
	}
	for _, hint := range []string{req.Mood, req.Activity, req.GenreOrLanguage} {
		if hint != "" && normToken(hint) != "none" {
			combos = append(combos, hint)
		}
	}

	seen := map[string]struct{}{}
	var variants []string
	for _, q := range combos {
		qn := normToken(q)
		if qn == "" {
			continue
		}
		if _, dup := seen[qn]; dup {
			continue
		}
		seen[qn] = struct{}{}
		variants = append(variants, q)
	}
	if req.Vibe != "" {
		if _, dup := seen[normToken(req.Vibe)]; !dup {
			variants = append(variants, req.Vibe)
		}
	}
	return variants
}

// markets concatenates language hints, configured preferences and the global
// default, de-duplicated with order preserved.
func (p Planner) markets(lang string) []string {
	def := p.DefaultMarket
	if def == "" {
		def = "IN"
	}
	var out []string
	seen := map[string]struct{}{}
	add := func(m string) {
		m = strings.ToUpper(strings.TrimSpace(m))
		if m == "" {
			return
		}
		if _, dup := seen[m]; dup {
			return
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	for _, m := range langMarkets[lang] {
		add(m)
	}
	for _, m := range p.PreferredMarkets {
		add(m)
	}
	add(def)
	return out
}

func newRng(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// NewRng exposes the seeded rng constructor to the retrieval and ranking
// layers so one request shares a single reproducible stream.
func NewRng(seed int64) *rand.Rand { return newRng(seed) }
