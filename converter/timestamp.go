package converter

import (
	"fmt"
	"time"
)

// isoLayout matches the millisecond UTC form browsers emit (Date.toISOString)
const isoLayout = "2006-01-02T15:04:05.000Z"

var receiveLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// FormatTimestamp renders t the way the send shape carries timestamps
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

// ParseTimestamp accepts RFC 3339 and zone-less ISO local date-times (read as UTC)
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range receiveLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}
