package auth

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultTokenExpiry applies when no expiry is configured.
const DefaultTokenExpiry = 7 * 24 * time.Hour

var (
	digitsOnly     = regexp.MustCompile(`^\d+$`)
	durationPhrase = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*([a-z]+)$`)
)

var durationUnits = map[string]time.Duration{
	"ms": time.Millisecond, "msec": time.Millisecond, "msecs": time.Millisecond,
	"millisecond": time.Millisecond, "milliseconds": time.Millisecond,
	"s": time.Second, "sec": time.Second, "secs": time.Second, "second": time.Second, "seconds": time.Second,
	"m": time.Minute, "min": time.Minute, "mins": time.Minute, "minute": time.Minute, "minutes": time.Minute,
	"h": time.Hour, "hr": time.Hour, "hrs": time.Hour, "hour": time.Hour, "hours": time.Hour,
	"d": 24 * time.Hour, "day": 24 * time.Hour, "days": 24 * time.Hour,
	"w": 7 * 24 * time.Hour, "week": 7 * 24 * time.Hour, "weeks": 7 * 24 * time.Hour,
	"y": 36525 * 24 * time.Hour / 100, "yr": 36525 * 24 * time.Hour / 100, "yrs": 36525 * 24 * time.Hour / 100,
	"year": 36525 * 24 * time.Hour / 100, "years": 36525 * 24 * time.Hour / 100,
}

// ParseExpiry turns a configured expiry into a duration. A digits-only value counts
// seconds; anything else is a duration expression such as "7d", "12 hours" or "1h30m".
// An empty value yields DefaultTokenExpiry.
func ParseExpiry(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultTokenExpiry, nil
	}

	if digitsOnly.MatchString(raw) {
		secs, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid expiry %q: %w", raw, err)
		}
		return positive(raw, time.Duration(secs)*time.Second)
	}

	if m := durationPhrase.FindStringSubmatch(strings.ToLower(raw)); m != nil {
		unit, ok := durationUnits[m[2]]
		if ok {
			n, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				return 0, fmt.Errorf("invalid expiry %q: %w", raw, err)
			}
			return positive(raw, time.Duration(n*float64(unit)))
		}
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid expiry %q", raw)
	}
	return positive(raw, d)
}

func positive(raw string, d time.Duration) (time.Duration, error) {
	if d <= 0 {
		return 0, fmt.Errorf("invalid expiry %q: must be positive", raw)
	}
	return d, nil
}
