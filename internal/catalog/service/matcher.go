package service

import (
	"strings"

	"padel-catalog/internal/catalog/model"
	"padel-catalog/internal/catalog/names"
)

const (
	DefaultThreshold = 88.0
	sameYearBoost    = 5.0
)

// Bundles and accessories never enter the catalog.
var excludedKeywords = []string{
	"pack", "duo", "conjunto", "oferta", "+", "mochila", "paletero", "zapatillas",
}

// IsExcluded reports whether name looks like a bundle or a non-racket product.
func IsExcluded(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range excludedKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

type Method string

const (
	MethodURL         Method = "url"
	MethodFingerprint Method = "fingerprint"
	MethodNew         Method = "new"
)

// Decision is the matcher verdict. Slug is empty for MethodNew.
type Decision struct {
	Slug   string  `json:"slug,omitempty"`
	Method Method  `json:"method"`
	Score  float64 `json:"score,omitempty"` // best fuzzy score seen, 0..105
}

type Matcher struct {
	Threshold float64
}

func NewMatcher(threshold float64) Matcher {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return Matcher{Threshold: threshold}
}

// Match decides whether p is an existing racket of s or a new one.
// p.Brand must already be committed (see commitBrand).
func (m Matcher) Match(s *Store, p model.ScrapedProduct) Decision {
	// (1) known source URL
	if slug, ok := s.Lookup(p.URL); ok {
		return Decision{Slug: slug, Method: MethodURL}
	}

	// (2) fingerprint search
	fp := names.Extract(p.Name)
	bestSlug := ""
	best := -1.0

	s.Each(func(r *model.Racket) bool {
		brand := r.Brand
		if brand == model.UnknownBrand {
			// in-memory only; the merge persists a rescued brand
			if b, _, ok := names.RescueBrand(r.Model); ok {
				brand = b
			}
		}
		if !strings.EqualFold(p.Brand, brand) {
			return true
		}
		sc, ok := Score(fp, s.fingerprint(r))
		if !ok {
			return true
		}
		// strict: ties keep the first racket in catalog order
		if sc > best {
			best = sc
			bestSlug = r.ID
		}
		return true
	})

	if bestSlug != "" && best >= m.Threshold {
		return Decision{Slug: bestSlug, Method: MethodFingerprint, Score: best}
	}
	d := Decision{Method: MethodNew}
	if best > 0 {
		d.Score = best
	}
	return d
}

// Score compares two fingerprints. ok is false when they are structurally
// incompatible (different model years or variant sets); no score then.
func Score(a, b names.Fingerprint) (score float64, ok bool) {
	if a.HasYear() && b.HasYear() && a.Year != b.Year {
		return 0, false
	}
	if !a.SameSuffixes(b) {
		return 0, false
	}
	score = max(names.Jaccard(a.Clean, b.Clean), names.Levenshtein(a.Clean, b.Clean)) * 100
	if a.HasYear() && b.HasYear() {
		score += sameYearBoost
	}
	return score, true
}
