package timeparse

import (
	"encoding/json"
	"strings"
	"time"
)

// Local date layouts seen across the structured providers, tried in order.
var localLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006-01-02",
	"2006/01/02",
}

// ISO-8601 variants. RFC 3339 first, then the common zoneless form.
var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// RFC 2822 family, as produced by RSS pubDate.
var rfc2822Layouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
}

// Millis converts a heterogeneous timestamp value into epoch milliseconds.
// It never fails: unparseable input falls back to the current time so the
// pump keeps making forward progress on malformed upstream data.
func Millis(v any) int64 {
	switch t := v.(type) {
	case nil:
		return nowMillis()
	case int:
		return int64(t)
	case int64:
		return t
	case float64:
		return int64(t)
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return int64(f)
		}
		return nowMillis()
	case time.Time:
		return t.UnixMilli()
	case string:
		return parseString(t)
	default:
		return nowMillis()
	}
}

func parseString(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nowMillis()
	}
	for _, layout := range localLayouts {
		if dt, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return dt.UnixMilli()
		}
	}
	for _, layout := range isoLayouts {
		if dt, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return dt.UnixMilli()
		}
	}
	for _, layout := range rfc2822Layouts {
		if dt, err := time.Parse(layout, s); err == nil {
			return dt.UnixMilli()
		}
	}
	return nowMillis()
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}
