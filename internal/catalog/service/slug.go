package service

import (
	"regexp"
	"strings"

	"padel-catalog/internal/catalog/model"
	"padel-catalog/internal/catalog/names"
)

var (
	reSlugDrop = regexp.MustCompile(`[^a-z0-9\s-]+`)
	reSlugSep  = regexp.MustCompile(`[\s-]+`)
)

const (
	genericBrandSlug = "generic"
	fallbackSlug     = "racket"
)

// Slugify: lowercase, ASCII fold, keep [a-z0-9 -], dash-join, trim dashes.
func Slugify(s string) string {
	s = names.FoldASCII(strings.ToLower(s))
	s = reSlugDrop.ReplaceAllString(s, "")
	s = reSlugSep.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// slugBase is the collision-free candidate for brand+name.
// "Unknown" brands become "generic" here only; the stored brand is unchanged.
func slugBase(brand, name string) string {
	b := strings.TrimSpace(brand)
	if b == "" || strings.EqualFold(b, model.UnknownBrand) {
		b = genericBrandSlug
	}
	base := Slugify(b + "-" + name)
	if base == "" {
		return fallbackSlug
	}
	return base
}
