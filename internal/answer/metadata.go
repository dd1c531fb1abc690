package answer

import "trackpulse/internal/types"

// Metadata accessors tolerant of both in-memory values and values that
// round-tripped through JSON (where numbers become float64 and string
// slices become []any).

func metaString(md types.Metadata, key string) string {
	if v, ok := md[key].(string); ok {
		return v
	}
	return ""
}

func metaBool(md types.Metadata, key string) bool {
	if v, ok := md[key].(bool); ok {
		return v
	}
	return false
}

func metaFloat(md types.Metadata, key string) float64 {
	switch v := md[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	}
	return 0
}

func metaStrings(md types.Metadata, key string) []string {
	switch v := md[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
