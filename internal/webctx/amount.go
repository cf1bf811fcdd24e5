package webctx

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ParseAmount coerces any externally supplied amount into a non-negative
// integer. Strings are stripped of non-digit characters; unparsable input
// yields 0.
func ParseAmount(v interface{}) int {
	switch n := v.(type) {
	case nil:
		return 0
	case int:
		return clampAmount(float64(n))
	case int64:
		return clampAmount(float64(n))
	case float64:
		return clampAmount(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return clampAmount(f)
	case string:
		return parseAmountString(n)
	default:
		return 0
	}
}

func parseAmountString(s string) int {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	n, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return clampAmount(n)
}

func clampAmount(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0
	}
	return int(math.Floor(f))
}
