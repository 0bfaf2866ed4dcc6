package service

import "padel-catalog/internal/catalog/names"

// Side is the per-name half of a Comparison.
type Side struct {
	Name        string   `json:"name"`
	Normalized  string   `json:"normalized"`
	Key         string   `json:"key"`
	Clean       string   `json:"clean"`
	Year        int      `json:"year,omitempty"`
	Suffixes    []string `json:"suffixes"`
	RescuedFrom string   `json:"rescued_brand,omitempty"`
}

// Comparison explains how the matcher sees two product names.
type Comparison struct {
	A           Side    `json:"a"`
	B           Side    `json:"b"`
	Levenshtein float64 `json:"levenshtein"`
	Jaccard     float64 `json:"jaccard"`
	KeywordsOK  bool    `json:"critical_keywords_ok"`
	Compatible  bool    `json:"compatible"`
	Score       float64 `json:"score"`
	Threshold   float64 `json:"threshold"`
	WouldMatch  bool    `json:"would_match"`
}

// Compare runs the name kernels on a and b. Brands are not gated here.
func Compare(a, b string, threshold float64) Comparison {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	fa, fb := names.Extract(a), names.Extract(b)
	c := Comparison{
		A:           side(a, fa),
		B:           side(b, fb),
		Levenshtein: names.Levenshtein(fa.Clean, fb.Clean),
		Jaccard:     names.Jaccard(fa.Clean, fb.Clean),
		KeywordsOK:  names.CriticalKeywordCheck(a, b),
		Threshold:   threshold,
	}
	c.Score, c.Compatible = Score(fa, fb)
	c.WouldMatch = c.Compatible && c.Score >= threshold
	return c
}

func side(name string, fp names.Fingerprint) Side {
	s := Side{
		Name:       name,
		Normalized: names.Normalize(name),
		Key:        names.ComparisonKey(name),
		Clean:      fp.Clean,
		Year:       fp.Year,
		Suffixes:   fp.Suffixes,
	}
	if s.Suffixes == nil {
		s.Suffixes = []string{}
	}
	if b, _, ok := names.RescueBrand(name); ok {
		s.RescuedFrom = b
	}
	return s
}
