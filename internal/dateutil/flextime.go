package dateutil

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Time is a time.Time that accepts the date shapes found in stored plan
// documents: RFC 3339 strings, bare dates, and epoch timestamps. Callers see
// a single normalized time.Time; nothing downstream branches on the wire
// representation. It marshals back as RFC 3339.
type Time struct {
	time.Time
}

// At wraps a time.Time.
func At(t time.Time) Time {
	return Time{Time: t}
}

// stringLayouts are tried in order when decoding a string value.
var stringLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// UnmarshalJSON decodes a string, number, or null into a normalized time.
func (t *Time) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		t.Time = time.Time{}
		return nil
	}

	if s[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		for _, layout := range stringLayouts {
			if parsed, err := time.Parse(layout, raw); err == nil {
				t.Time = parsed
				return nil
			}
		}
		return fmt.Errorf("unrecognized time format %q", raw)
	}

	var epoch float64
	if err := json.Unmarshal(data, &epoch); err != nil {
		return fmt.Errorf("unrecognized time value %s", s)
	}
	// Heuristic: values past the year 5000 in seconds are milliseconds.
	if epoch > 1e11 {
		t.Time = time.UnixMilli(int64(epoch)).UTC()
	} else {
		t.Time = time.Unix(int64(epoch), 0).UTC()
	}
	return nil
}

// MarshalJSON writes RFC 3339, or null for the zero time.
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339Nano))
}
