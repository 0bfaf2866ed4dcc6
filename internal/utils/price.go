package utils

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var rxKeepNums = regexp.MustCompile(`[^\d.,\-]`)

// ParsePrice parses shop price strings: "1.234,50 €", "199,95", "$1,299.00",
// "1 234,50" (NBSP/NNBSP). The right-most separator is the decimal one when both
// appear; a lone separator followed by exactly three digits is a thousands mark.
func ParsePrice(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	neg := strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")")
	s = rxKeepNums.ReplaceAllString(s, "")
	if strings.HasPrefix(s, "-") {
		neg = true
	}
	s = strings.ReplaceAll(s, "-", "")
	if s == "" {
		return 0, false
	}

	lastDot, lastComma := strings.LastIndex(s, "."), strings.LastIndex(s, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		s = singleSeparator(s, ",")
	case lastDot >= 0:
		s = singleSeparator(s, ".")
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if neg {
		f = -f
	}
	return f, true
}

func singleSeparator(s, sep string) string {
	parts := strings.Split(s, sep)
	if len(parts) > 2 {
		return strings.Join(parts, "")
	}
	if len(parts[1]) == 3 && parts[0] != "" && parts[0] != "0" {
		return parts[0] + parts[1]
	}
	return parts[0] + "." + parts[1]
}
