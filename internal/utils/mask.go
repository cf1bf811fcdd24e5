package utils

import "strings"

// Mask shortens a key for log output, keeping the identifying prefix.
func Mask(key string) string {
	if len(key) <= 8 {
		return key
	}
	return key[:8] + "…"
}

// TokenPreview renders a bearer token safe for diagnostics.
func TokenPreview(token string) string {
	if token == "" {
		return ""
	}
	t := strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	if len(t) > 10 {
		t = t[:10]
	}
	return t + "...(hidden)"
}
