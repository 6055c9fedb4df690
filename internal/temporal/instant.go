package temporal

import (
	"fmt"
	"time"
)

// ErrInvalidInstant is returned when an instant string fails validation.
var ErrInvalidInstant = fmt.Errorf("invalid instant")

// instantLayouts are the accepted extended-format datetime layouts: an
// explicit offset (Z or ±HH:MM) is mandatory.
var instantLayouts = []string{
	"2006-01-02T15:04:05.999999Z07:00",
	"2006-01-02T15:04:05Z07:00",
}

// ParseInstant validates and parses an extended-format ISO-8601 datetime
// with an explicit offset into microseconds since the Unix epoch.
func ParseInstant(s string) (Ticks, error) {
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UnixMicro(), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidInstant, s)
}

// FormatInstant renders microseconds since the Unix epoch as an extended
// RFC3339 instant with microsecond precision in UTC.
func FormatInstant(micros Ticks) string {
	t := time.UnixMicro(micros).UTC()
	return t.Format("2006-01-02T15:04:05.999999Z")
}
