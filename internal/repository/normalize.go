package repository

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/zackmeach/gridironlabs/internal/model"
)

// --------------------------------------------------------------------------
// Scalar coercion. Malformed optional values degrade to nil; callers that
// need a mandatory value check for nil themselves.
// --------------------------------------------------------------------------

func normalizeText(raw any) *string {
	if raw == nil {
		return nil
	}
	var text string
	switch v := raw.(type) {
	case string:
		text = v
	case time.Time:
		text = v.Format(time.RFC3339)
	default:
		text = fmt.Sprint(v)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	return &text
}

func textOr(raw any, fallback string) string {
	if s := normalizeText(raw); s != nil {
		return *s
	}
	return fallback
}

func asInt(raw any) *int {
	var n int
	switch v := raw.(type) {
	case nil:
		return nil
	case bool:
		if v {
			n = 1
		}
	case int:
		n = v
	case int32:
		n = int(v)
	case int64:
		n = int(v)
	case float32:
		return floatToInt(float64(v))
	case float64:
		return floatToInt(v)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil
		}
		n = parsed
	default:
		return nil
	}
	return &n
}

func floatToInt(f float64) *int {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	n := int(f)
	return &n
}

func asFloat(raw any) *float64 {
	var f float64
	switch v := raw.(type) {
	case nil:
		return nil
	case bool:
		if v {
			f = 1
		}
	case int:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case float32:
		f = float64(v)
	case float64:
		f = v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	return &f
}

func asBool(raw any) bool {
	switch v := raw.(type) {
	case bool:
		return v
	case int64:
		return v != 0
	case float64:
		return v != 0
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		return err == nil && b
	}
	return false
}

// --------------------------------------------------------------------------
// Dates
// --------------------------------------------------------------------------

const dateLayout = "2006-01-02"

var datetimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05",
	dateLayout,
}

func normalizeDate(raw any) *time.Time {
	switch v := raw.(type) {
	case time.Time:
		d := time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)
		return &d
	case string:
		d, err := time.Parse(dateLayout, strings.TrimSpace(v))
		if err != nil {
			return nil
		}
		return &d
	}
	return nil
}

// normalizeDatetime parses native timestamps or ISO-like strings. Strings
// without an offset are read as UTC.
func normalizeDatetime(raw any) *time.Time {
	switch v := raw.(type) {
	case time.Time:
		return &v
	case string:
		text := strings.TrimSpace(v)
		for _, layout := range datetimeLayouts {
			if t, err := time.Parse(layout, text); err == nil {
				return &t
			}
		}
	}
	return nil
}

// --------------------------------------------------------------------------
// Nested columns
// --------------------------------------------------------------------------

func parseRatings(raw any) *model.RatingBreakdown {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	return &model.RatingBreakdown{
		Overall:     asFloat(m["overall"]),
		Athleticism: asFloat(m["athleticism"]),
		Technical:   asFloat(m["technical"]),
		Intangibles: asFloat(m["intangibles"]),
		Potential:   asFloat(m["potential"]),
	}
}

func parseStats(raw any) map[string]float64 {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	stats := make(map[string]float64, len(m))
	for k, v := range m {
		if n := asFloat(v); n != nil {
			stats[k] = *n
		}
	}
	if len(stats) == 0 {
		return nil
	}
	return stats
}
