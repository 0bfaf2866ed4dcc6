package names

import (
	"sort"
	"strings"
)

// knownBrands in display form. Matching goes through byLength so that
// compound names ("RS Padel", "Star Vie") are tried before their prefixes.
var knownBrands = []string{
	"Adidas", "Babolat", "Bullpadel", "Head", "Nox", "Siux", "StarVie",
	"Star Vie", "Varlion", "Wilson", "Dunlop", "Drop Shot", "Dropshot",
	"Black Crown", "Royal Padel", "Vibor-A", "Vibora", "Kelme", "Joma",
	"Puma", "Asics", "Lok", "Enebe", "Kuikma", "Oxdog", "Slazenger",
	"Prince", "Tecnifibre", "Harlem", "Softee", "Akkeron", "Endless",
	"Mystica", "Orygen", "Power Padel", "RS Padel", "RS", "J'hayber",
	"Jhayber", "Sane", "Tactical Padel", "Wingpadel", "Vision", "Steel Custom",
	"Cartri", "Munich", "Lacoste", "Yonex", "Eme Padel", "East", "Side Spin",
	"Sidespin", "Legend", "Padel Session", "Hirostar", "Tiebreak",
}

var byLength = func() []string {
	out := append([]string(nil), knownBrands...)
	sort.SliceStable(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
	return out
}()

// KnownBrands returns the rescue list, longest first.
func KnownBrands() []string { return append([]string(nil), byLength...) }

// RescueBrand finds a known brand as a word-complete, case-insensitive prefix of name.
// It returns the brand in display form and the remainder of the name.
func RescueBrand(name string) (brand, rest string, ok bool) {
	trimmed := strings.TrimSpace(name)
	for _, b := range byLength {
		if len(trimmed) < len(b) || !strings.EqualFold(trimmed[:len(b)], b) {
			continue
		}
		if len(trimmed) > len(b) {
			// next char must end the word
			if c := trimmed[len(b)]; c != ' ' && c != '-' {
				continue
			}
		}
		return canonicalBrand(b), strings.TrimLeft(trimmed[len(b):], " -"), true
	}
	return "", trimmed, false
}

// Aliases that are matched but stored under the main spelling.
var brandAliases = map[string]string{
	"Star Vie": "StarVie",
	"Dropshot": "Drop Shot",
	"Vibora":   "Vibor-A",
	"Jhayber":  "J'hayber",
	"Sidespin": "Side Spin",
}

func canonicalBrand(b string) string {
	if c, ok := brandAliases[b]; ok {
		return c
	}
	return b
}
