// Package plan turns a vibe description plus mood/genre/language hints into
// catalog search queries and a prioritized market list.
package plan

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	quotedRe = regexp.MustCompile(`"([^"]+)"`)
	wordRe   = regexp.MustCompile(`[A-Za-z0-9\-']+`)
	splitRe  = regexp.MustCompile(`[,\|/]+`)
)

func normToken(s string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFKC.String(s)))
}

// Tokenize extracts tokens from free text: double-quoted phrases stay atomic,
// the remainder is split into words, and duplicates are dropped while
// preserving order.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	var toks []string
	for _, m := range quotedRe.FindAllStringSubmatch(text, -1) {
		if p := strings.TrimSpace(m[1]); p != "" {
			toks = append(toks, p)
		}
	}
	remainder := quotedRe.ReplaceAllString(text, " ")
	toks = append(toks, wordRe.FindAllString(remainder, -1)...)

	seen := map[string]struct{}{}
	out := make([]string, 0, len(toks))
	for _, t := range toks {
		tn := normToken(t)
		if tn == "" {
			continue
		}
		if _, dup := seen[tn]; dup {
			continue
		}
		seen[tn] = struct{}{}
		out = append(out, tn)
	}
	return out
}

// stitchMultiWord collapses known two/three-word terms back into single
// semantic tokens ("hip hop", "r and b" -> "r&b", "lo fi" -> "lofi").
func stitchMultiWord(tokens []string) []string {
	fixed := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); {
		t := tokens[i]
		nxt, nxt2 := "", ""
		if i+1 < len(tokens) {
			nxt = tokens[i+1]
		}
		if i+2 < len(tokens) {
			nxt2 = tokens[i+2]
		}
		switch {
		case t == "hip" && nxt == "hop":
			fixed = append(fixed, "hip hop")
			i += 2
		case t == "r" && nxt == "and" && nxt2 == "b":
			fixed = append(fixed, "r&b")
			i += 3
		case t == "lo" && nxt == "fi":
			fixed = append(fixed, "lofi")
			i += 2
		default:
			fixed = append(fixed, t)
			i++
		}
	}
	return fixed
}
