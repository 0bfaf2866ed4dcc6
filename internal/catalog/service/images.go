package service

import (
	"net/url"
	"regexp"
	"strings"
)

// Shopify size variants before the extension: _600x600, _600x, _x600, each
// optionally followed by _crop_center. Repeats are folded in one pass.
var reShopifySize = regexp.MustCompile(`(?:_(?:\d+x\d*|x\d+)(?:_crop_center)?)+(\.[A-Za-z0-9]+)$`)

// CanonicalImageURL rewrites an image URL to the form stored in the catalog.
// Rules are per host; unknown hosts pass through untouched.
func CanonicalImageURL(raw string) string {
	u := strings.TrimSpace(raw)
	if u == "" {
		return ""
	}
	if strings.HasPrefix(u, "//") {
		u = "https:" + u
	}

	parsed, err := url.Parse(u)
	if err != nil {
		return u
	}
	host := strings.ToLower(parsed.Hostname())

	switch {
	case hostIs(host, "cdn.shopify.com"):
		parsed.Path = reShopifySize.ReplaceAllString(parsed.Path, "$1")
		parsed.RawPath = ""
		v := parsed.Query().Get("v")
		parsed.RawQuery = ""
		parsed.ForceQuery = false
		if v != "" {
			parsed.RawQuery = url.Values{"v": {v}}.Encode()
		}
		return parsed.String()

	case hostIs(host, "padelnuestro.com"):
		parsed.RawQuery = ""
		parsed.ForceQuery = false
		return parsed.String()
	}
	return u
}

func hostIs(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}

// galleryOf returns [p.Image] + p.Images, the primary image only when the
// gallery doesn't already carry it.
func galleryOf(image string, images []string) []string {
	out := make([]string, 0, len(images)+1)
	image = strings.TrimSpace(image)
	if image != "" && !contains(images, image) {
		out = append(out, image)
	}
	return append(out, images...)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
