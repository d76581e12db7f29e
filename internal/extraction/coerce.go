package extraction

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// ClampScore rounds half-up and bounds the score to [MinCultureScore, MaxCultureScore].
func ClampScore(v float64) int {
	if math.IsNaN(v) {
		return MinCultureScore
	}
	rounded := math.Floor(v + 0.5)
	switch {
	case rounded < MinCultureScore:
		return MinCultureScore
	case rounded > MaxCultureScore:
		return MaxCultureScore
	default:
		return int(rounded)
	}
}

// coerceNumber never fails: anything that does not parse counts as zero.
// Values beyond float64 keep their infinite sign so clamping still applies.
func coerceNumber(v any) float64 {
	switch t := v.(type) {
	case json.Number:
		return parseFloat(t.String())
	case float64:
		return t
	case bool:
		if t {
			return 1
		}
		return 0
	case string:
		return parseFloat(strings.ReplaceAll(strings.TrimSpace(t), ",", "."))
	default:
		return 0
	}
}

func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	return f
}

// coerceBool follows truthiness: a missing value is false and any non-empty
// string outside the known negatives is true.
func coerceBool(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case json.Number:
		return parseFloat(t.String()) != 0
	case float64:
		return t != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "", "false", "0", "no", "n", "nao", "não":
			return false
		default:
			return true
		}
	default:
		return true
	}
}
