// Package duration implements the duration and temporal coercion rules of
// the expression evaluator's arithmetic semantics: parsing duration literals
// such as "30d" into milliseconds, parsing permissive date/date-time
// strings, and shifting/differencing temporal values.
package duration

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var durationPattern = regexp.MustCompile(`(?i)^(-?\d+)\s*(ms|milliseconds?|s|seconds?|m|minutes?|h|hours?|d|days?|w|weeks?)$`)

const (
	msPerMs     = 1
	msPerSecond = 1000
	msPerMinute = 60000
	msPerHour   = 3600000
	msPerDay    = 86400000
	msPerWeek   = 604800000
)

// unitScale maps a normalized unit token to its millisecond scale.
func unitScale(unit string) (int64, bool) {
	u := strings.ToLower(unit)
	switch {
	case u == "ms" || strings.HasPrefix(u, "millisecond"):
		return msPerMs, true
	case u == "s" || strings.HasPrefix(u, "second"):
		return msPerSecond, true
	case u == "m" || strings.HasPrefix(u, "minute"):
		return msPerMinute, true
	case u == "h" || strings.HasPrefix(u, "hour"):
		return msPerHour, true
	case u == "d" || strings.HasPrefix(u, "day"):
		return msPerDay, true
	case u == "w" || strings.HasPrefix(u, "week"):
		return msPerWeek, true
	default:
		return 0, false
	}
}

// Coerce attempts to interpret x as a duration, returning its value in
// milliseconds. It accepts an int64, a float64 with an integral value, or a
// string matching the duration literal grammar.
func Coerce(x any) (ms int64, ok bool) {
	switch v := x.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		if v == float64(int64(v)) {
			return int64(v), true
		}
		return 0, false
	case string:
		m := durationPattern.FindStringSubmatch(strings.TrimSpace(v))
		if m == nil {
			return 0, false
		}
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, false
		}
		scale, ok := unitScale(m[2])
		if !ok {
			return 0, false
		}
		return n * scale, true
	default:
		return 0, false
	}
}

// Kind identifies whether a parsed temporal value carries a calendar date
// only, or a full date-time.
type Kind int

const (
	KindDate Kind = iota
	KindDateTime
)

// Temporal is a parsed temporal value: its original kind plus the instant it
// names.
type Temporal struct {
	Kind Kind
	Time time.Time
}

const dateLayout = "2006-01-02"
const dateTimeLayout = "2006-01-02 15:04:05"

var permissiveLayouts = []string{
	dateTimeLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z07:00",
}

// ParseTemporal attempts to interpret s as a calendar date (exact
// YYYY-MM-DD) or, failing that, a permissively-parsed date/time string.
func ParseTemporal(s string) (Temporal, bool) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return Temporal{Kind: KindDate, Time: t}, true
	}
	for _, layout := range permissiveLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Temporal{Kind: KindDateTime, Time: t}, true
		}
	}
	return Temporal{}, false
}

// Format renders a temporal value back to its canonical string form:
// YYYY-MM-DD for KindDate, "YYYY-MM-DD HH:MM:SS" otherwise.
func (t Temporal) Format() string {
	if t.Kind == KindDate {
		return t.Time.Format(dateLayout)
	}
	return t.Time.Format(dateTimeLayout)
}

// Shift returns a new Temporal offset by ms milliseconds, preserving kind.
func (t Temporal) Shift(ms int64) Temporal {
	return Temporal{Kind: t.Kind, Time: t.Time.Add(time.Duration(ms) * time.Millisecond)}
}

// DiffMs returns the millisecond difference t - other. Callers are
// responsible for checking that both values share the same Kind; a
// date-to-datetime difference is not meaningful and must be rejected
// before calling this.
func (t Temporal) DiffMs(other Temporal) int64 {
	return t.Time.Sub(other.Time).Milliseconds()
}

// Now formats the current instant using the date-time layout, for the
// now() built-in function.
func Now() string {
	return time.Now().UTC().Format(dateTimeLayout)
}

// Midnight formats today's date at 00:00:00 using the date-time layout, for
// the midnight() built-in function.
func Midnight() string {
	y, m, d := time.Now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Format(dateTimeLayout)
}
