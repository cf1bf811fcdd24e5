package webctx

import "strings"

// IsWebURL reports whether u uses an http or https scheme.
func IsWebURL(u string) bool {
	lower := strings.ToLower(strings.TrimSpace(u))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// CoerceWebURL forces u to a web URL. Custom schemes and blank values are
// replaced with origin+fallbackPath so the payment widget never receives a
// redirect target it cannot navigate to.
func CoerceWebURL(u, origin, fallbackPath string) string {
	if IsWebURL(u) {
		return u
	}
	return origin + fallbackPath
}
