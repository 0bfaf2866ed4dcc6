package names

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const (
	minYear = 2023
	maxYear = 2027
)

// Fingerprint is what the matcher compares before any fuzzy scoring.
type Fingerprint struct {
	Year     int      `json:"year,omitempty"` // 0 when the name has none
	Suffixes []string `json:"suffixes"`       // sorted set
	Clean    string   `json:"clean"`
}

// HasYear reports whether a model year was found.
func (f Fingerprint) HasYear() bool { return f.Year != 0 }

// SameSuffixes is exact set equality, empty included.
func (f Fingerprint) SameSuffixes(o Fingerprint) bool {
	if len(f.Suffixes) != len(o.Suffixes) {
		return false
	}
	for i := range f.Suffixes {
		if f.Suffixes[i] != o.Suffixes[i] {
			return false
		}
	}
	return true
}

// Closed list of variant markers. Naming differs between stores, keep both spellings.
var variantSuffixes = []string{
	"woman", "w", "light", "lite", "air", "junior", "jr", "hybrid",
	"ctrl", "control", "attack", "comfort", "cmf", "master", "limited", "ltd",
	"pro", "team", "elite", "flow", "12k", "18k", "24k", "3k", "carbon",
}

var fillerWords = []string{"de", "para", "la", "el"}

// Removed as plain substrings, so "palas" loses its "pala" too.
var fillerSubstrings = []string{"pala", "padel", "racket"}

// Player and signature names that stores add or omit at will.
var playerTokens = []string{
	"jon sanz", "paquito", "navarro", "lebron", "galan", "tapia", "coello",
	"chingotto", "stupa", "di nenno", "sanyo", "bela", "belasteguin", "momo",
	"alex ruiz", "tello", "yanguas", "garrido", "ari sanchez", "paulita",
	"josemaria", "triay", "salazar", "bea gonzalez", "martita", "ortega",
}

var (
	reYearWord    = regexp.MustCompile(`\b\d{4}\b`)
	reYearToken   = regexp.MustCompile(`\b20\d{2}\b`)
	reFiller      = wordAlternation(fillerWords)
	rePlayers     = wordAlternation(playerTokens)
	reDecimalZero = regexp.MustCompile(`(\d)\.0\b`)
	reSuffixes    = compileSuffixes(variantSuffixes)
)

func wordAlternation(words []string) *regexp.Regexp {
	ws := append([]string(nil), words...)
	// longest first so multi-word names win over their parts
	sort.SliceStable(ws, func(i, j int) bool { return len(ws[i]) > len(ws[j]) })
	for i := range ws {
		ws[i] = regexp.QuoteMeta(ws[i])
	}
	return regexp.MustCompile(`\b(?:` + strings.Join(ws, "|") + `)\b`)
}

func compileSuffixes(list []string) map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp, len(list))
	for _, s := range list {
		// \b treats '-' as a boundary as well
		m[s] = regexp.MustCompile(`\b` + regexp.QuoteMeta(s) + `\b`)
	}
	return m
}

// Extract builds the fingerprint of a racket name.
func Extract(name string) Fingerprint {
	lower := strings.ToLower(name)
	return Fingerprint{
		Year:     ExtractYear(lower),
		Suffixes: ExtractSuffixes(lower),
		Clean:    CleanName(name),
	}
}

// ExtractYear returns the first standalone 4-digit word within the model-year range, or 0.
func ExtractYear(name string) int {
	for _, w := range reYearWord.FindAllString(name, -1) {
		y, err := strconv.Atoi(w)
		if err != nil {
			continue
		}
		if y >= minYear && y <= maxYear {
			return y
		}
	}
	return 0
}

// ExtractSuffixes returns the sorted set of variant markers present in name.
func ExtractSuffixes(name string) []string {
	lower := strings.ToLower(name)
	out := make([]string, 0, 2)
	for _, s := range variantSuffixes {
		if reSuffixes[s].MatchString(lower) {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

// CleanName strips years, filler, player names and punctuation, leaving the model core.
func CleanName(name string) string {
	s := FoldASCII(strings.ToLower(name))
	s = reYearToken.ReplaceAllString(s, " ")
	for _, f := range fillerSubstrings {
		s = strings.ReplaceAll(s, f, "")
	}
	s = reFiller.ReplaceAllString(s, " ")
	s = rePlayers.ReplaceAllString(s, " ")
	s = reDecimalZero.ReplaceAllString(s, "$1")
	s = reNotKeyChar.ReplaceAllString(s, " ")
	return collapseSpaces(s)
}
