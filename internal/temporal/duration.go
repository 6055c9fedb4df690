package temporal

import (
	"fmt"
	"regexp"
	"strconv"
)

// durationPattern matches the accepted ISO-8601 duration subset:
// PT[nH][nM][nS], fractional seconds permitted up to microsecond precision.
var durationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+(?:\.\d{1,6})?)S)?$`)

// ErrInvalidDuration is returned when a duration string fails validation.
var ErrInvalidDuration = fmt.Errorf("invalid duration")

// ParseDuration validates and parses an ISO-8601 "PT[nH][nM][nS]" duration
// string into microseconds. The duration must be non-negative and must
// specify at least one component.
func ParseDuration(s string) (Ticks, error) {
	m := durationPattern.FindStringSubmatch(s)
	if m == nil || (m[1] == "" && m[2] == "" && m[3] == "") {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}

	var micros int64
	if m[1] != "" {
		h, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
		}
		micros += h * 3_600_000_000
	}
	if m[2] != "" {
		mins, err := strconv.ParseInt(m[2], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
		}
		micros += mins * 60_000_000
	}
	if m[3] != "" {
		secMicros, err := parseSecondsToMicros(m[3])
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
		}
		micros += secMicros
	}
	if micros < 0 {
		return 0, fmt.Errorf("%w: %q is negative", ErrInvalidDuration, s)
	}
	return micros, nil
}

func parseSecondsToMicros(s string) (int64, error) {
	dot := -1
	for i, r := range s {
		if r == '.' {
			dot = i
			break
		}
	}
	if dot < 0 {
		whole, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, err
		}
		return whole * 1_000_000, nil
	}
	whole, err := strconv.ParseInt(s[:dot], 10, 64)
	if err != nil {
		return 0, err
	}
	frac := s[dot+1:]
	for len(frac) < 6 {
		frac += "0"
	}
	fracMicros, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, err
	}
	return whole*1_000_000 + fracMicros, nil
}

// FormatDuration renders microseconds back to the PT[nH][nM][nS] subset.
func FormatDuration(micros Ticks) string {
	if micros == 0 {
		return "PT0S"
	}
	h := micros / 3_600_000_000
	rem := micros % 3_600_000_000
	m := rem / 60_000_000
	rem %= 60_000_000
	secMicros := rem

	out := "PT"
	if h > 0 {
		out += fmt.Sprintf("%dH", h)
	}
	if m > 0 {
		out += fmt.Sprintf("%dM", m)
	}
	if secMicros > 0 || (h == 0 && m == 0) {
		whole := secMicros / 1_000_000
		frac := secMicros % 1_000_000
		if frac == 0 {
			out += fmt.Sprintf("%dS", whole)
		} else {
			out += fmt.Sprintf("%d.%06dS", whole, frac)
		}
	}
	return out
}
