package names

// Words whose presence on one side only means a different racket line.
var criticalKeywords = []string{
	"attack", "control", "hybrid", "air", "pro", "master", "ltd", "limited",
	"team", "junior", "jr", "woman", "light", "comfort", "ultimate", "motion",
	"elite", "flow", "drive", "soft", "hard", "tour", "precision",
	// shorts
	"w", "ls", "xs", "ul",
}

// CriticalKeywordCheck reports whether a and b agree on every critical keyword.
// An empty side always passes.
func CriticalKeywordCheck(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return true
	}
	ta := tokenSet(reAlnumRun.FindAllString(na, -1))
	tb := tokenSet(reAlnumRun.FindAllString(nb, -1))
	for _, kw := range criticalKeywords {
		_, inA := ta[kw]
		_, inB := tb[kw]
		if inA != inB {
			return false
		}
	}
	return true
}
