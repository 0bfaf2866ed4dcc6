// Package names holds the string kernel used by the resolver: normalization,
// tokenization, similarity scores and fingerprint extraction for racket names.
package names

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	reLeadingPala  = regexp.MustCompile(`(?i)^pala\s+`)
	reTrailingPala = regexp.MustCompile(`(?i)\s*(?:\(pala\)|\[pala\])$`)
	reAlnumRun     = regexp.MustCompile(`[a-z0-9]+`)
	reNotKeyChar   = regexp.MustCompile(`[^a-z0-9]+`)
)

// one-letter tokens that still tell variants apart
var shortTokens = map[string]struct{}{"w": {}, "v": {}, "s": {}, "x": {}}

// Normalize: trim, drop the "Pala " prefix and "(Pala)"/"[Pala]" suffix,
// collapse spaces, lowercase.
func Normalize(name string) string {
	s := strings.TrimSpace(name)
	if s == "" {
		return ""
	}
	s = reLeadingPala.ReplaceAllString(s, "")
	s = reTrailingPala.ReplaceAllString(s, "")
	return strings.ToLower(collapseSpaces(s))
}

// ComparisonKey is Normalize folded to ASCII with everything but [a-z0-9] removed.
func ComparisonKey(name string) string {
	return reNotKeyChar.ReplaceAllString(FoldASCII(Normalize(name)), "")
}

// FoldASCII decomposes (NFKD), drops combining marks and any rune left outside ASCII.
func FoldASCII(s string) string {
	t := transform.Chain(
		norm.NFKD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Tokenize returns the alphanumeric runs of Normalize(name), keeping tokens of
// two or more characters and the short variant letters.
func Tokenize(name string) []string {
	all := reAlnumRun.FindAllString(Normalize(name), -1)
	out := all[:0]
	for _, t := range all {
		if len(t) >= 2 {
			out = append(out, t)
			continue
		}
		if _, ok := shortTokens[t]; ok {
			out = append(out, t)
		}
	}
	return out
}

func tokenSet(tokens []string) map[string]struct{} {
	m := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		m[t] = struct{}{}
	}
	return m
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
